package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Default configuration values
const (
	DefaultClassCapacity         = 8
	DefaultGenerationLimitInDays = 30
	AdminGenerationLimitInDays   = 60 // горизонт для админского календаря
	ClassPackageExpiryDays       = 30 // окно действия пакета от даты первого слота
)

// BookingCodePrefix префикс кода бронирования.
// Формат кода стабилен: на него завязаны квитанции и поиск по коду.
const BookingCodePrefix = "C-ALMA"

// Business validation constants
const (
	MinSessionCapacity  = 1
	MaxSessionCapacity  = 100
	MaxSlotsPerBooking  = 50
	MaxThresholdPercent = 100
)
