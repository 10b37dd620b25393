package inquiry

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
	"github.com/ceramicalma/ALMA-BookingService/pkg/dbmetrics"
	"github.com/ceramicalma/ALMA-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий запросов на групповые мероприятия
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория запросов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новый запрос на групповое мероприятие
func (r *Repository) Create(ctx context.Context, i *domain.GroupInquiry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Предварительная дата необязательна, пустая строка хранится как NULL
	tentativeDate := sql.NullString{String: i.TentativeDate, Valid: i.TentativeDate != ""}

	query, args, err := psqlbuilder.Insert("inquiries").
		Columns("id", "name", "email", "phone", "country_code", "participants",
			"tentative_date", "event_type", "message", "status", "created_at", "inquiry_type").
		Values(i.ID, i.Name, i.Email, i.Phone, i.CountryCode, i.Participants,
			tentativeDate, i.EventType, i.Message, i.Status, i.CreatedAt, i.InquiryType).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// List получает все запросы, новые первыми
func (r *Repository) List(ctx context.Context) ([]*domain.GroupInquiry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "email", "phone", "country_code", "participants",
		"tentative_date", "event_type", "message", "status", "created_at", "inquiry_type").
		From("inquiries").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	inquiries := make([]*domain.GroupInquiry, 0)
	for rows.Next() {
		inquiry, err := scanInquiry(rows)
		if err != nil {
			return nil, err
		}
		inquiries = append(inquiries, inquiry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return inquiries, nil
}

// UpdateStatus изменяет статус запроса
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("inquiries").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrInquiryNotFound
	}

	return nil
}

// scanInquiry сканирует строку запроса
func scanInquiry(rows *sql.Rows) (*domain.GroupInquiry, error) {
	var i domain.GroupInquiry
	var tentativeDate sql.NullString

	err := rows.Scan(&i.ID, &i.Name, &i.Email, &i.Phone, &i.CountryCode, &i.Participants,
		&tentativeDate, &i.EventType, &i.Message, &i.Status, &i.CreatedAt, &i.InquiryType)
	if err != nil {
		return nil, fmt.Errorf("%w: scanInquiry: %v", ErrScanRow, err)
	}

	i.TentativeDate = tentativeDate.String
	return &i, nil
}
