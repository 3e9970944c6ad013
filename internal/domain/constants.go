package domain

// Availability defaults
const (
	// DefaultFullyBookedThreshold число занятых слотов, начиная с которого день считается полностью занятым.
	// Соответствует операционной модели "3 слота в день" (утро / день / закат).
	DefaultFullyBookedThreshold = 3

	// MaxAvailabilityRangeDays максимальная длина диапазона дат в одном запросе доступности
	MaxAvailabilityRangeDays = 62
)

// Reconciliation defaults
const (
	DefaultUrgentWithinDays = 3
	DefaultSoonWithinDays   = 7
	DefaultBalanceDueDays   = 0

	// DefaultPaymentMismatchEpsilon допустимое расхождение (в валюте) между cash+card и paidAmount
	DefaultPaymentMismatchEpsilon = 0.01

	// DefaultPaymentActionsLookbackDays сколько дней назад смотреть при поиске просроченных чартеров
	DefaultPaymentActionsLookbackDays = 30
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
