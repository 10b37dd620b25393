package domain

import "time"

// InquiryStatus lifecycle state of a group inquiry, moved by the admin.
type InquiryStatus string

const (
	InquiryNew          InquiryStatus = "New"
	InquiryContacted    InquiryStatus = "Contacted"
	InquiryProposalSent InquiryStatus = "Proposal Sent"
	InquiryConfirmed    InquiryStatus = "Confirmed"
	InquiryArchived     InquiryStatus = "Archived"
)

// ValidInquiryStatus reports whether s is a known lifecycle state.
func ValidInquiryStatus(s InquiryStatus) bool {
	switch s {
	case InquiryNew, InquiryContacted, InquiryProposalSent, InquiryConfirmed, InquiryArchived:
		return true
	}
	return false
}

// InquiryType kind of private event being requested.
type InquiryType string

const (
	InquiryGroup  InquiryType = "group"
	InquiryCouple InquiryType = "couple"
)

// ValidInquiryType reports whether t is a known event kind.
func ValidInquiryType(t InquiryType) bool {
	return t == InquiryGroup || t == InquiryCouple
}

// GroupInquiry request for a private group or couples session. Inquiries are
// not bookings: they carry no slots and never count against session capacity.
type GroupInquiry struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	CountryCode   string        `json:"countryCode"`
	Participants  int           `json:"participants"`
	TentativeDate string        `json:"tentativeDate,omitempty"` // "YYYY-MM-DD", optional
	EventType     string        `json:"eventType,omitempty"`
	Message       string        `json:"message"`
	Status        InquiryStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	InquiryType   InquiryType   `json:"inquiryType"`
}
