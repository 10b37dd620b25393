package get_products

import (
	"context"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
)

type ProductsService interface {
	List(ctx context.Context) ([]*domain.Product, error)
	Instructors(ctx context.Context) ([]*domain.Instructor, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
