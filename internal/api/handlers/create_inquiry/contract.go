package create_inquiry

import (
	"context"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
	inquiriesService "github.com/ceramicalma/ALMA-BookingService/internal/service/inquiries"
)

type InquiriesService interface {
	Create(ctx context.Context, req *inquiriesService.CreateInquiryRequest) (*domain.GroupInquiry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
