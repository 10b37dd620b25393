package products

import (
	"context"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
)

// ProductRepository интерфейс репозитория продуктов
type ProductRepository interface {
	List(ctx context.Context) ([]*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	ReplaceAll(ctx context.Context, products []*domain.Product) error
	UpdateOverrides(ctx context.Context, id int64, overrides []domain.SessionOverride) error
	UpdateSchedulingRules(ctx context.Context, id int64, rules []domain.SchedulingRule) error
}

// InstructorRepository интерфейс репозитория инструкторов
type InstructorRepository interface {
	List(ctx context.Context) ([]*domain.Instructor, error)
	ReplaceAll(ctx context.Context, instructors []domain.Instructor) error
	Delete(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
