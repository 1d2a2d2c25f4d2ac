package domain

// Default calendar values
const (
	DefaultWorkingStart           = "09:00"
	DefaultWorkingEnd             = "17:00"
	DefaultSlotGranularityMinutes = 15
)

// Business validation constants
const (
	MaxServicesPerBooking = 20
	MaxHolidayReasonLen   = 255
	MaxCustomerNameLen    = 255
	MaxFilterTextLen      = 100
	MinVehicleYear        = 1900
	MaxVehicleYear        = 2100
)

// PaymentReferencePrefix префикс идентификатора платежа за аванс
const PaymentReferencePrefix = "PAY-"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, которые занимают время в календаре
var ActiveStatuses = []AppointmentStatus{
	StatusUpcoming,
	StatusCompleted,
}
