package product

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
	"github.com/ceramicalma/ALMA-BookingService/pkg/dbmetrics"
	"github.com/ceramicalma/ALMA-BookingService/pkg/psqlbuilder"
)

var productColumns = []string{
	"id",
	"type",
	"name",
	"classes",
	"price",
	"description",
	"image_url",
	"details",
	"is_active",
	"scheduling_rules",
	"overrides",
}

// Repository репозиторий каталога продуктов.
// Правила расписания и overrides вводных классов хранятся JSONB-полями на строке продукта.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория продуктов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// List получает все продукты каталога по возрастанию ID
func (r *Repository) List(ctx context.Context) ([]*domain.Product, error) {
	return r.list(ctx, psqlbuilder.Select(productColumns...).
		From("products").
		OrderBy("id ASC"), "List")
}

// ListIntroClasses получает продукты типа INTRODUCTORY_CLASS
func (r *Repository) ListIntroClasses(ctx context.Context) ([]*domain.Product, error) {
	return r.list(ctx, psqlbuilder.Select(productColumns...).
		From("products").
		Where(squirrel.Eq{"type": domain.ProductIntroClass}).
		OrderBy("id ASC"), "ListIntroClasses")
}

// GetByID получает продукт по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	products, err := r.list(ctx, psqlbuilder.Select(productColumns...).
		From("products").
		Where(squirrel.Eq{"id": id}), "GetByID")
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrProductNotFound
	}
	return products[0], nil
}

// ReplaceAll заменяет весь каталог продуктов.
// Вызывается только внутри транзакции (см. products service): редактор продуктов
// сохраняет каталог целиком, частично применённый каталог наблюдаться не должен.
func (r *Repository) ReplaceAll(ctx context.Context, products []*domain.Product) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("products").ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceAll - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceAll - execute delete: %v", ErrExecQuery, err)
	}

	for _, p := range products {
		rulesJSON, err := marshalNullable(p.SchedulingRules)
		if err != nil {
			return fmt.Errorf("%w: ReplaceAll - scheduling_rules: %v", ErrMarshal, err)
		}
		overridesJSON, err := marshalNullable(p.Overrides)
		if err != nil {
			return fmt.Errorf("%w: ReplaceAll - overrides: %v", ErrMarshal, err)
		}

		var details interface{}
		if len(p.Details) > 0 {
			details = []byte(p.Details)
		}

		query, args, err := psqlbuilder.Insert("products").
			Columns(productColumns...).
			Values(
				p.ID,
				p.Type,
				p.Name,
				p.Classes,
				p.Price,
				p.Description,
				p.ImageURL,
				details,
				p.IsActive,
				rulesJSON,
				overridesJSON,
			).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: ReplaceAll - build insert query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: ReplaceAll - execute insert: %v", ErrExecQuery, err)
		}
	}

	return nil
}

// UpdateOverrides сохраняет список overrides вводного класса
func (r *Repository) UpdateOverrides(ctx context.Context, id int64, overrides []domain.SessionOverride) error {
	overridesJSON, err := marshalNullable(overrides)
	if err != nil {
		return fmt.Errorf("%w: UpdateOverrides - overrides: %v", ErrMarshal, err)
	}
	return r.update(ctx, id, "overrides", overridesJSON, "UpdateOverrides")
}

// UpdateSchedulingRules сохраняет правила расписания вводного класса
func (r *Repository) UpdateSchedulingRules(ctx context.Context, id int64, rules []domain.SchedulingRule) error {
	rulesJSON, err := marshalNullable(rules)
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedulingRules - rules: %v", ErrMarshal, err)
	}
	return r.update(ctx, id, "scheduling_rules", rulesJSON, "UpdateSchedulingRules")
}

func (r *Repository) update(ctx context.Context, id int64, column string, value interface{}, op string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("products").
		Set(column, value).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *Repository) list(ctx context.Context, builder squirrel.SelectBuilder, op string) ([]*domain.Product, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return r.scanProducts(rows)
}

func (r *Repository) scanProducts(rows *sql.Rows) ([]*domain.Product, error) {
	products := make([]*domain.Product, 0)

	for rows.Next() {
		var (
			p             domain.Product
			details       []byte
			rulesJSON     []byte
			overridesJSON []byte
		)

		err := rows.Scan(
			&p.ID,
			&p.Type,
			&p.Name,
			&p.Classes,
			&p.Price,
			&p.Description,
			&p.ImageURL,
			&details,
			&p.IsActive,
			&rulesJSON,
			&overridesJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanProducts - scan row: %v", ErrScanRow, err)
		}

		if len(details) > 0 {
			p.Details = json.RawMessage(details)
		}
		if len(rulesJSON) > 0 {
			if err := json.Unmarshal(rulesJSON, &p.SchedulingRules); err != nil {
				return nil, fmt.Errorf("%w: scanProducts - scheduling_rules: %v", ErrScanRow, err)
			}
		}
		if len(overridesJSON) > 0 {
			if err := json.Unmarshal(overridesJSON, &p.Overrides); err != nil {
				return nil, fmt.Errorf("%w: scanProducts - overrides: %v", ErrScanRow, err)
			}
		}

		products = append(products, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanProducts - rows error: %v", ErrScanRow, err)
	}

	return products, nil
}

// marshalNullable сериализует слайс, возвращая NULL вместо пустого значения
func marshalNullable(v interface{}) (interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(data) == "null" {
		return nil, nil
	}
	return data, nil
}
