package booking

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

// bookingColumns полный список колонок таблицы bookings
var bookingColumns = []string{
	"id",
	"product_id",
	"product_type",
	"slots",
	"user_info",
	"created_at",
	"is_paid",
	"price",
	"booking_mode",
	"product",
	"booking_code",
	"payment_details",
	"attendance",
}

// Repository репозиторий для работы с бронированиями.
// Слоты, снапшот продукта, контакты клиента, детали оплаты и посещаемость
// хранятся в JSONB-колонках.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование.
// Если в контексте есть активная транзакция (через dbmetrics.WithTx), использует её —
// admission engine всегда вызывает Create внутри сериализуемой транзакции,
// чтобы проверка конфликтов и вставка были неразделимы.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	slotsJSON, err := json.Marshal(b.Slots)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - slots: %v", ErrMarshal, err)
	}
	userInfoJSON, err := json.Marshal(b.UserInfo)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - user_info: %v", ErrMarshal, err)
	}
	productJSON, err := json.Marshal(b.Product)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - product: %v", ErrMarshal, err)
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"product_id",
			"product_type",
			"slots",
			"user_info",
			"created_at",
			"is_paid",
			"price",
			"booking_mode",
			"product",
			"booking_code",
		).
		Values(
			b.ID,
			b.ProductID,
			b.ProductType,
			slotsJSON,
			userInfoJSON,
			b.CreatedAt,
			b.IsPaid,
			b.Price,
			b.BookingMode,
			productJSON,
			b.BookingCode,
		).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrBookingNotFound
	}
	return bookings[0], nil
}

// List получает все бронирования, новые первыми
func (r *Repository) List(ctx context.Context) ([]*domain.Booking, error) {
	return r.list(ctx, psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("created_at DESC"), "List")
}

// ListPaid получает все оплаченные бронирования (для напоминаний о занятиях)
func (r *Repository) ListPaid(ctx context.Context) ([]*domain.Booking, error) {
	return r.list(ctx, psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"is_paid": true}).
		OrderBy("created_at DESC"), "ListPaid")
}

// ListByEmail получает бронирования клиента по email.
// Внутри транзакции блокирует строки (FOR UPDATE) — admission engine сравнивает
// слоты новых заявок с этими бронированиями и не должен гоняться с параллельной вставкой.
func (r *Repository) ListByEmail(ctx context.Context, email string) ([]*domain.Booking, error) {
	builder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_info->>'email'": email}).
		OrderBy("created_at DESC")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	return r.list(ctx, builder, "ListByEmail")
}

// ListBySlotDates получает бронирования, у которых есть слот хотя бы на одну
// из указанных дат (JSONB containment по полю slots).
// Внутри транзакции блокирует строки (FOR UPDATE) для проверки вместимости.
func (r *Repository) ListBySlotDates(ctx context.Context, dates []string) ([]*domain.Booking, error) {
	if len(dates) == 0 {
		return []*domain.Booking{}, nil
	}

	conditions := make(squirrel.Or, 0, len(dates))
	for _, date := range dates {
		pattern, err := json.Marshal([]map[string]string{{"date": date}})
		if err != nil {
			return nil, fmt.Errorf("%w: ListBySlotDates - date pattern: %v", ErrMarshal, err)
		}
		conditions = append(conditions, squirrel.Expr("slots @> ?::jsonb", string(pattern)))
	}

	builder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(conditions).
		OrderBy("created_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	return r.list(ctx, builder, "ListBySlotDates")
}

// UpdateUserInfo обновляет контактные данные и цену бронирования
func (r *Repository) UpdateUserInfo(ctx context.Context, id string, userInfo domain.UserInfo, price float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	userInfoJSON, err := json.Marshal(userInfo)
	if err != nil {
		return fmt.Errorf("%w: UpdateUserInfo - user_info: %v", ErrMarshal, err)
	}

	query, args, err := psqlbuilder.Update("bookings").
		Set("user_info", userInfoJSON).
		Set("price", price).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateUserInfo - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateUserInfo")
}

// UpdateSlots заменяет весь массив слотов одним UPDATE.
// Перенос слота выражается именно так — одной записью, без промежуточного
// состояния, в котором у бронирования нет ни старого, ни нового слота.
func (r *Repository) UpdateSlots(ctx context.Context, id string, slots []domain.TimeSlot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	slotsJSON, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("%w: UpdateSlots - slots: %v", ErrMarshal, err)
	}

	query, args, err := psqlbuilder.Update("bookings").
		Set("slots", slotsJSON).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSlots - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateSlots")
}

// UpdatePayment устанавливает или снимает отметку об оплате.
// details == nil очищает payment_details (снятие оплаты).
func (r *Repository) UpdatePayment(ctx context.Context, id string, isPaid bool, details *domain.PaymentDetails) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("bookings").
		Set("is_paid", isPaid).
		Where(squirrel.Eq{"id": id})

	if details != nil {
		detailsJSON, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("%w: UpdatePayment - payment_details: %v", ErrMarshal, err)
		}
		builder = builder.Set("payment_details", detailsJSON)
	} else {
		builder = builder.Set("payment_details", nil)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdatePayment")
}

// MergeAttendance дописывает отметку посещаемости по ключу "date_time".
// JSONB-конкатенация добавляет/заменяет только этот ключ, остальные записи сохраняются.
func (r *Repository) MergeAttendance(ctx context.Context, id string, slotKey string, status domain.AttendanceStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	patch, err := json.Marshal(map[string]domain.AttendanceStatus{slotKey: status})
	if err != nil {
		return fmt.Errorf("%w: MergeAttendance - patch: %v", ErrMarshal, err)
	}

	query, args, err := psqlbuilder.Update("bookings").
		Set("attendance", squirrel.Expr("COALESCE(attendance, '{}'::jsonb) || ?::jsonb", string(patch))).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MergeAttendance - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "MergeAttendance")
}

// Delete удаляет бронирование. Используется только каскадом очистки расписания:
// обычные отмены сохраняют запись для истории.
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Delete")
}

func (r *Repository) list(ctx context.Context, builder squirrel.SelectBuilder, op string) ([]*domain.Booking, error) {
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

	return r.scanBookings(rows)
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var (
			b              domain.Booking
			slotsJSON      []byte
			userInfoJSON   []byte
			productJSON    []byte
			bookingMode    sql.NullString
			paymentDetails []byte
			attendance     []byte
		)

		err := rows.Scan(
			&b.ID,
			&b.ProductID,
			&b.ProductType,
			&slotsJSON,
			&userInfoJSON,
			&b.CreatedAt,
			&b.IsPaid,
			&b.Price,
			&bookingMode,
			&productJSON,
			&b.BookingCode,
			&paymentDetails,
			&attendance,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		if err := json.Unmarshal(slotsJSON, &b.Slots); err != nil {
			return nil, fmt.Errorf("%w: scanBookings - slots: %v", ErrScanRow, err)
		}
		if err := json.Unmarshal(userInfoJSON, &b.UserInfo); err != nil {
			return nil, fmt.Errorf("%w: scanBookings - user_info: %v", ErrScanRow, err)
		}
		if err := json.Unmarshal(productJSON, &b.Product); err != nil {
			return nil, fmt.Errorf("%w: scanBookings - product: %v", ErrScanRow, err)
		}
		if bookingMode.Valid {
			mode := domain.BookingMode(bookingMode.String)
			b.BookingMode = &mode
		}
		if len(paymentDetails) > 0 {
			if err := json.Unmarshal(paymentDetails, &b.PaymentDetails); err != nil {
				return nil, fmt.Errorf("%w: scanBookings - payment_details: %v", ErrScanRow, err)
			}
		}
		if len(attendance) > 0 {
			if err := json.Unmarshal(attendance, &b.Attendance); err != nil {
				return nil, fmt.Errorf("%w: scanBookings - attendance: %v", ErrScanRow, err)
			}
		}

		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
