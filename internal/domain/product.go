package domain

import "encoding/json"

// Product is a catalog entry. The catalog mixes several product kinds;
// fields not applicable to a kind stay nil. Details is carried opaquely:
// the core never interprets package descriptions, only the scheduling data.
type Product struct {
	ID              int64             `json:"id"`
	Type            ProductType       `json:"type"`
	Name            string            `json:"name"`
	Classes         *int              `json:"classes,omitempty"`
	Price           *float64          `json:"price,omitempty"`
	Description     string            `json:"description,omitempty"`
	ImageURL        *string           `json:"imageUrl,omitempty"`
	Details         json.RawMessage   `json:"details,omitempty"`
	IsActive        bool              `json:"isActive"`
	SchedulingRules []SchedulingRule  `json:"schedulingRules,omitempty"`
	Overrides       []SessionOverride `json:"overrides,omitempty"`
}

// IsIntroductoryClass reports whether the product generates intro-class sessions.
func (p *Product) IsIntroductoryClass() bool {
	return p.Type == ProductIntroClass
}

// ClassCount returns the number of classes included in a class package (0 otherwise).
func (p *Product) ClassCount() int {
	if p.Classes == nil {
		return 0
	}
	return *p.Classes
}

// Instructor таблица инструкторов
type Instructor struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ColorScheme string `json:"colorScheme"`
}
