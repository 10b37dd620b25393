package update_payment_status

import (
	"context"

	"github.com/ceramicalma/ALMA-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	MarkPaid(ctx context.Context, id string, req *models.MarkPaidRequest) (*models.BookingResponse, error)
	MarkUnpaid(ctx context.Context, id string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
