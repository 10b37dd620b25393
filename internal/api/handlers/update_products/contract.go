package update_products

import (
	"context"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
)

type ProductsService interface {
	ReplaceCatalog(ctx context.Context, products []*domain.Product, instructors []domain.Instructor) error
	UpdateSchedulingRules(ctx context.Context, id int64, rules []domain.SchedulingRule) error
	UpdateOverrides(ctx context.Context, id int64, overrides []domain.SessionOverride) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
