package instructor

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
	"github.com/ceramicalma/ALMA-BookingService/pkg/dbmetrics"
	"github.com/ceramicalma/ALMA-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий инструкторов студии
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория инструкторов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// List получает всех инструкторов по возрастанию ID
func (r *Repository) List(ctx context.Context) ([]*domain.Instructor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "color_scheme").
		From("instructors").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	instructors := make([]*domain.Instructor, 0)
	for rows.Next() {
		var ins domain.Instructor
		if err := rows.Scan(&ins.ID, &ins.Name, &ins.ColorScheme); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		instructors = append(instructors, &ins)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return instructors, nil
}

// ReplaceAll заменяет список инструкторов целиком.
// Вызывается внутри транзакции вместе с ReplaceAll каталога продуктов.
func (r *Repository) ReplaceAll(ctx context.Context, instructors []domain.Instructor) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("instructors").ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceAll - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceAll - execute delete: %v", ErrExecQuery, err)
	}

	if len(instructors) == 0 {
		return nil
	}

	builder := psqlbuilder.Insert("instructors").Columns("id", "name", "color_scheme")
	for _, ins := range instructors {
		builder = builder.Values(ins.ID, ins.Name, ins.ColorScheme)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceAll - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceAll - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Delete удаляет инструктора по ID
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("instructors").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrInstructorNotFound
	}

	return nil
}
