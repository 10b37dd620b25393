package update_inquiry

import (
	"context"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
)

type InquiriesService interface {
	UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
