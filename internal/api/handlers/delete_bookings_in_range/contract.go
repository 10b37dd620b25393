package delete_bookings_in_range

import (
	"context"

	"github.com/ceramicalma/ALMA-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	DeleteInRange(ctx context.Context, req *models.DeleteInRangeRequest) (*models.DeleteInRangeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
