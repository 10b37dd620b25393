package update_attendance

import (
	"context"

	"github.com/ceramicalma/ALMA-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	UpdateAttendance(ctx context.Context, id string, req *models.UpdateAttendanceRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
