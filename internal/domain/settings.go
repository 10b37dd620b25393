package domain

// AutomationToggle включение/выключение одной автоматизации
type AutomationToggle struct {
	Enabled bool `json:"enabled"`
}

// TimedAutomation автоматизация с настраиваемым интервалом
type TimedAutomation struct {
	Enabled bool   `json:"enabled"`
	Value   int    `json:"value"`
	Unit    string `json:"unit"` // "hours" | "days"
}

// AutomationSettings управляет рассылкой клиентских уведомлений
type AutomationSettings struct {
	PreBookingConfirmation AutomationToggle `json:"preBookingConfirmation"`
	PaymentReceipt         AutomationToggle `json:"paymentReceipt"`
	ClassReminder          TimedAutomation  `json:"classReminder"`
	IncentiveRenewal       TimedAutomation  `json:"incentiveRenewal"`
}

// DefaultAutomationSettings значения по умолчанию
func DefaultAutomationSettings() AutomationSettings {
	return AutomationSettings{
		PreBookingConfirmation: AutomationToggle{Enabled: true},
		PaymentReceipt:         AutomationToggle{Enabled: true},
		ClassReminder:          TimedAutomation{Enabled: true, Value: 24, Unit: "hours"},
		IncentiveRenewal:       TimedAutomation{Enabled: false, Value: 1, Unit: "classes"},
	}
}

// ReminderLeadHours переводит настройку напоминания в часы
func (a AutomationSettings) ReminderLeadHours() int {
	if a.ClassReminder.Unit == "days" {
		return a.ClassReminder.Value * 24
	}
	return a.ClassReminder.Value
}

// BankDetails данные для перевода, включаются в письмо пре-подтверждения
type BankDetails struct {
	BankName      string `json:"bankName"`
	AccountHolder string `json:"accountHolder"`
	AccountNumber string `json:"accountNumber"`
	AccountType   string `json:"accountType"`
	TaxID         string `json:"taxId"`
	Details       string `json:"details,omitempty"`
}
