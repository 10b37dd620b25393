package get_inquiries

import (
	"context"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
)

type InquiriesService interface {
	List(ctx context.Context) ([]*domain.GroupInquiry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
