package domain

import (
	"sort"
	"time"
)

// ProductType discriminates the product catalog entries.
type ProductType string

const (
	ProductClassPackage      ProductType = "CLASS_PACKAGE"
	ProductIntroClass        ProductType = "INTRODUCTORY_CLASS"
	ProductOpenStudio        ProductType = "OPEN_STUDIO_SUBSCRIPTION"
	ProductGroupExperience   ProductType = "GROUP_EXPERIENCE"
	ProductCouplesExperience ProductType = "COUPLES_EXPERIENCE"
)

// BookableProductTypes product types that can appear on a booking.
var BookableProductTypes = []ProductType{
	ProductClassPackage,
	ProductIntroClass,
	ProductOpenStudio,
}

// HasSlotConflicts reports whether bookings of this product type participate
// in the slot conflict check. Subscriptions carry no slots, so they cannot collide.
func (t ProductType) HasSlotConflicts() bool {
	return t == ProductClassPackage || t == ProductIntroClass
}

// BookingMode how a class package is scheduled
type BookingMode string

const (
	ModeFlexible BookingMode = "flexible"
	ModeMonthly  BookingMode = "monthly"
)

// AttendanceStatus per-slot attendance mark
type AttendanceStatus string

const (
	AttendanceAttended AttendanceStatus = "attended"
	AttendanceNoShow   AttendanceStatus = "no-show"
)

// IsValid reports whether the status is one of the known values.
func (s AttendanceStatus) IsValid() bool {
	return s == AttendanceAttended || s == AttendanceNoShow
}

// UserInfo customer contact details captured at booking time.
type UserInfo struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CountryCode string `json:"countryCode"`
}

// FullName returns "First Last" for notifications and receipts.
func (u UserInfo) FullName() string {
	return u.FirstName + " " + u.LastName
}

// PaymentMethod how a manual payment was received.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "Cash"
	PaymentCard     PaymentMethod = "Card"
	PaymentTransfer PaymentMethod = "Transfer"
	PaymentManual   PaymentMethod = "Manual"
)

// PaymentDetails record stamped when staff mark a booking as paid.
type PaymentDetails struct {
	Method     PaymentMethod `json:"method"`
	Amount     float64       `json:"amount"`
	ReceivedAt time.Time     `json:"receivedAt"`
}

// Booking is the durable record of one or more slots purchased together.
//
// Product holds an immutable snapshot of the product at booking time:
// historical bookings keep the terms they were sold under even if the
// catalog later changes price or details.
type Booking struct {
	ID             string
	ProductID      int64
	ProductType    ProductType
	Slots          []TimeSlot
	UserInfo       UserInfo
	CreatedAt      time.Time
	IsPaid         bool
	Price          float64
	BookingMode    *BookingMode
	Product        Product
	BookingCode    string
	PaymentDetails *PaymentDetails
	Attendance     map[string]AttendanceStatus
}

// HasSlotAt reports whether the booking holds a slot on the given date and time.
func (b *Booking) HasSlotAt(date string, t TimeSlot) bool {
	for _, s := range b.Slots {
		if s.Date == date && s.Time == t.Time {
			return true
		}
	}
	return false
}

// FirstSlotDate returns the earliest slot date, or zero time when the
// booking has no slots.
func (b *Booking) FirstSlotDate() time.Time {
	var first time.Time
	for _, s := range b.Slots {
		d, err := time.Parse(DateFormat, s.Date)
		if err != nil {
			continue
		}
		if first.IsZero() || d.Before(first) {
			first = d
		}
	}
	return first
}

// ExpiryDate returns the end of the class-package scheduling window:
// 30 days past the first slot's date. The window is anchored to the first
// slot, not to the payment date. Nil for slotless bookings or other product types.
func (b *Booking) ExpiryDate() *time.Time {
	if b.ProductType != ProductClassPackage {
		return nil
	}
	first := b.FirstSlotDate()
	if first.IsZero() {
		return nil
	}
	expiry := first.AddDate(0, 0, ClassPackageExpiryDays)
	return &expiry
}

// IsExpired reports whether the class-package window has closed at the given moment.
func (b *Booking) IsExpired(now time.Time) bool {
	expiry := b.ExpiryDate()
	if expiry == nil {
		return false
	}
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return nowDay.After(*expiry)
}

// SortSlots orders the slots chronologically (date, then time).
func SortSlots(slots []TimeSlot) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Date != slots[j].Date {
			return slots[i].Date < slots[j].Date
		}
		return slots[i].Time.IsBefore(slots[j].Time)
	})
}
