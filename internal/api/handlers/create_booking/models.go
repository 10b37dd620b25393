package create_booking

import (
	"fmt"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
	createBooking "github.com/ceramicalma/ALMA-BookingService/internal/usecase/create_booking"
	"github.com/ceramicalma/ALMA-BookingService/pkg/types"
)

// SlotRequest HTTP модель слота
type SlotRequest struct {
	Date         string `json:"date"` // "2026-09-15"
	Time         string `json:"time"` // "10:00" или "10:00 AM"
	InstructorID int64  `json:"instructorId"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ProductID   int64           `json:"productId"`
	Slots       []SlotRequest   `json:"slots"`
	UserInfo    domain.UserInfo `json:"userInfo"`
	Price       float64         `json:"price"`
	BookingMode *string         `json:"bookingMode,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          string          `json:"id"`
	BookingCode string          `json:"bookingCode"`
	ProductID   int64           `json:"productId"`
	ProductType string          `json:"productType"`
	ProductName string          `json:"productName"`
	Slots       []SlotResponse  `json:"slots"`
	UserInfo    domain.UserInfo `json:"userInfo"`
	Price       float64         `json:"price"`
	IsPaid      bool            `json:"isPaid"`
	ExpiryDate  *string         `json:"expiryDate,omitempty"` // "YYYY-MM-DD"
	CreatedAt   string          `json:"createdAt"`            // RFC 3339
}

// SlotResponse HTTP модель слота в ответе
type SlotResponse struct {
	Date         string `json:"date"`
	Time         string `json:"time"`
	TimeDisplay  string `json:"timeDisplay"` // "10:00 AM"
	InstructorID int64  `json:"instructorId"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	slots := make([]domain.TimeSlot, 0, len(r.Slots))
	for _, s := range r.Slots {
		t, err := types.NewTimeStringFromString(s.Time)
		if err != nil {
			return nil, fmt.Errorf("invalid slot time %q: %w", s.Time, err)
		}
		slots = append(slots, domain.TimeSlot{
			Date:         s.Date,
			Time:         t,
			InstructorID: s.InstructorID,
		})
	}

	var mode *domain.BookingMode
	if r.BookingMode != nil {
		m := domain.BookingMode(*r.BookingMode)
		mode = &m
	}

	return &createBooking.Request{
		ProductID:   r.ProductID,
		Slots:       slots,
		UserInfo:    r.UserInfo,
		Price:       r.Price,
		BookingMode: mode,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:          resp.ID,
		BookingCode: resp.BookingCode,
		ProductID:   resp.ProductID,
		ProductType: string(resp.ProductType),
		ProductName: resp.ProductName,
		Slots:       make([]SlotResponse, 0, len(resp.Slots)),
		UserInfo:    resp.UserInfo,
		Price:       resp.Price,
		IsPaid:      resp.IsPaid,
		CreatedAt:   resp.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			Date:         s.Date,
			Time:         s.Time.String(),
			TimeDisplay:  s.Time.Format12(),
			InstructorID: s.InstructorID,
		})
	}
	if resp.ExpiryDate != nil {
		formatted := resp.ExpiryDate.Format(domain.DateFormat)
		out.ExpiryDate = &formatted
	}
	return out
}
