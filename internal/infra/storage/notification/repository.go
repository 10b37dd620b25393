package notification

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
	"github.com/ceramicalma/ALMA-BookingService/pkg/dbmetrics"
	"github.com/ceramicalma/ALMA-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий уведомлений: лента администратора и журнал клиентских писем.
// Журнал клиентских писем также служит защитой от повторной отправки напоминаний.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория уведомлений
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateAdmin сохраняет уведомление для ленты администратора
func (r *Repository) CreateAdmin(ctx context.Context, n *domain.AdminNotification) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("notifications").
		Columns("id", "type", "target_id", "user_name", "summary", "created_at", "read").
		Values(n.ID, n.Type, n.TargetID, n.UserName, n.Summary, n.Timestamp, n.Read).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateAdmin - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateAdmin - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListAdmin получает уведомления администратора, новые первыми
func (r *Repository) ListAdmin(ctx context.Context) ([]*domain.AdminNotification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "type", "target_id", "user_name", "summary", "created_at", "read").
		From("notifications").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAdmin - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAdmin - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	notifications := make([]*domain.AdminNotification, 0)
	for rows.Next() {
		var n domain.AdminNotification
		if err := rows.Scan(&n.ID, &n.Type, &n.TargetID, &n.UserName, &n.Summary, &n.Timestamp, &n.Read); err != nil {
			return nil, fmt.Errorf("%w: ListAdmin - scan row: %v", ErrScanRow, err)
		}
		notifications = append(notifications, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAdmin - rows error: %v", ErrScanRow, err)
	}

	return notifications, nil
}

// MarkAllRead помечает все уведомления администратора прочитанными
func (r *Repository) MarkAllRead(ctx context.Context) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("notifications").
		Set("read", true).
		Where(squirrel.Eq{"read": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkAllRead - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkAllRead - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// CreateClient сохраняет запись об отправленном клиентском письме
func (r *Repository) CreateClient(ctx context.Context, n *domain.ClientNotification) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("client_notifications").
		Columns("id", "created_at", "client_name", "client_email", "type", "channel", "status", "booking_code", "scheduled_at").
		Values(n.ID, n.CreatedAt, n.ClientName, n.ClientEmail, n.Type, n.Channel, n.Status, n.BookingCode, n.ScheduledAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateClient - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateClient - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListClient получает журнал клиентских писем, новые первыми
func (r *Repository) ListClient(ctx context.Context) ([]*domain.ClientNotification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "created_at", "client_name", "client_email", "type", "channel", "status", "booking_code", "scheduled_at").
		From("client_notifications").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListClient - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListClient - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	notifications := make([]*domain.ClientNotification, 0)
	for rows.Next() {
		var n domain.ClientNotification
		err := rows.Scan(&n.ID, &n.CreatedAt, &n.ClientName, &n.ClientEmail, &n.Type, &n.Channel, &n.Status, &n.BookingCode, &n.ScheduledAt)
		if err != nil {
			return nil, fmt.Errorf("%w: ListClient - scan row: %v", ErrScanRow, err)
		}
		notifications = append(notifications, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListClient - rows error: %v", ErrScanRow, err)
	}

	return notifications, nil
}

// ListReminderKeys возвращает ключи уже отправленных напоминаний.
// Для напоминаний в booking_code хранится ключ дедупликации "bookingCode_date_time".
func (r *Repository) ListReminderKeys(ctx context.Context) (map[string]struct{}, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("booking_code").
		From("client_notifications").
		Where(squirrel.Eq{"type": domain.ClientClassReminder}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListReminderKeys - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListReminderKeys - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("%w: ListReminderKeys - scan row: %v", ErrScanRow, err)
		}
		keys[key] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListReminderKeys - rows error: %v", ErrScanRow, err)
	}

	return keys, nil
}
