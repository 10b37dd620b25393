package remove_booking_slot

import (
	"context"

	"github.com/ceramicalma/ALMA-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	RemoveSlot(ctx context.Context, id string, req *models.RemoveSlotRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
