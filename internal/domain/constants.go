package domain

// Default business settings used when no settings row exists
const (
	DefaultOpeningTime            = "09:00"
	DefaultClosingTime            = "19:00"
	DefaultClosedDays             = "Sunday"
	DefaultSlotDurationMinutes    = 60
	DefaultMinAdvanceBookingHours = 24
	DefaultMaxAdvanceBookingDays  = 30
	DefaultRequestedDuration      = 60
	DefaultReferencePrefix        = "TBE-"
	DefaultBookingSource          = SourceWebsite
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 600
	MaxNotesLength            = 1000
	MaxNameLength             = 200
	MaxPhoneLength            = 20
	MaxEmailLength            = 254
	ReferenceHexLength        = 6
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Booking sources
const (
	SourceWebsite = "website"
	SourcePhone   = "phone"
	SourceWalkIn  = "walk-in"
)

// BookingSources lists accepted values of Booking.Source
var BookingSources = []string{SourceWebsite, SourcePhone, SourceWalkIn}

// IsValidSource reports whether s is one of BookingSources.
func IsValidSource(s string) bool {
	for _, v := range BookingSources {
		if v == s {
			return true
		}
	}
	return false
}
