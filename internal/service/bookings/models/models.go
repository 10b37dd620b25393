package models

import (
	"time"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
)

// Request модели

// UpdateBookingRequest запрос на изменение контактных данных и цены
type UpdateBookingRequest struct {
	UserInfo domain.UserInfo `json:"userInfo"`
	Price    float64         `json:"price"`
}

// RemoveSlotRequest запрос на снятие слота с бронирования
type RemoveSlotRequest struct {
	Slot domain.TimeSlot `json:"slot"`
}

// RescheduleSlotRequest запрос на перенос слота
type RescheduleSlotRequest struct {
	OldSlot domain.TimeSlot `json:"oldSlot"`
	NewSlot domain.TimeSlot `json:"newSlot"`
}

// DeleteInRangeRequest запрос на удаление слотов за период
type DeleteInRangeRequest struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// UpdateAttendanceRequest запрос на отметку посещаемости слота
type UpdateAttendanceRequest struct {
	Slot   domain.TimeSlot         `json:"slot"`
	Status domain.AttendanceStatus `json:"status"`
}

// MarkPaidRequest запрос на отметку оплаты
type MarkPaidRequest struct {
	Method domain.PaymentMethod `json:"method"`
	Amount float64              `json:"amount"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID             string                             `json:"id"`
	BookingCode    string                             `json:"bookingCode"`
	ProductID      int64                              `json:"productId"`
	ProductType    string                             `json:"productType"`
	ProductName    string                             `json:"productName"`
	Slots          []domain.TimeSlot                  `json:"slots"`
	UserInfo       domain.UserInfo                    `json:"userInfo"`
	IsPaid         bool                               `json:"isPaid"`
	Price          float64                            `json:"price"`
	BookingMode    *domain.BookingMode                `json:"bookingMode,omitempty"`
	PaymentDetails *domain.PaymentDetails             `json:"paymentDetails,omitempty"`
	Attendance     map[string]domain.AttendanceStatus `json:"attendance,omitempty"`
	ExpiryDate     *string                            `json:"expiryDate,omitempty"` // "YYYY-MM-DD"
	CreatedAt      time.Time                          `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// DeleteInRangeResponse итог удаления слотов за период
type DeleteInRangeResponse struct {
	DeletedBookings int `json:"deletedBookings"` // Бронирования, удаленные целиком
	TrimmedBookings int `json:"trimmedBookings"` // Бронирования с частично снятыми слотами
}

// FromDomainBooking конвертирует domain бронирование в response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:             b.ID,
		BookingCode:    b.BookingCode,
		ProductID:      b.ProductID,
		ProductType:    string(b.ProductType),
		ProductName:    b.Product.Name,
		Slots:          b.Slots,
		UserInfo:       b.UserInfo,
		IsPaid:         b.IsPaid,
		Price:          b.Price,
		BookingMode:    b.BookingMode,
		PaymentDetails: b.PaymentDetails,
		Attendance:     b.Attendance,
		CreatedAt:      b.CreatedAt,
	}

	if expiry := b.ExpiryDate(); expiry != nil {
		formatted := expiry.Format(domain.DateFormat)
		resp.ExpiryDate = &formatted
	}

	return resp
}

// FromDomainBookingList конвертирует список domain бронирований в response
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}
