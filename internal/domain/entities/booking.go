package entities

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
)

// Toggled returns the opposite status
func (s BookingStatus) Toggled() BookingStatus {
	if s == BookingStatusConfirmed {
		return BookingStatusPending
	}
	return BookingStatusConfirmed
}

// BookingDateLayout is the accepted format of BookingRecord.Date
const BookingDateLayout = "2006-01-02"

// TimeSlots lists the bookable appointment times in display order
var TimeSlots = []string{
	"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM", "6:00 PM", "7:00 PM",
}

var indianMobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

// BookingRecord represents an appointment request stored in the ledger
type BookingRecord struct {
	ID            int64         `json:"id"`
	Reference     string        `json:"reference"`
	PatientName   string        `json:"patient_name"`
	PatientMobile string        `json:"patient_mobile"`
	PatientAge    int           `json:"patient_age"`
	PatientSex    string        `json:"patient_sex"`
	Condition     string        `json:"condition"`
	ProviderName  string        `json:"provider_name"`
	Date          string        `json:"date"`
	Time          string        `json:"time"`
	Note          string        `json:"note,omitempty"`
	Status        BookingStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}

// BookingDraft is a booking before the ledger assigns it an id
type BookingDraft struct {
	PatientName   string `json:"patient_name"`
	PatientMobile string `json:"patient_mobile"`
	PatientAge    int    `json:"patient_age"`
	PatientSex    string `json:"patient_sex"`
	Condition     string `json:"condition"`
	ProviderName  string `json:"provider_name"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Note          string `json:"note,omitempty"`
}

// Validate returns field-level messages for every invalid field.
// An empty map means the draft is acceptable.
func (d BookingDraft) Validate() map[string]string {
	fields := PatientProfile{
		Name:   d.PatientName,
		Mobile: d.PatientMobile,
		Age:    d.PatientAge,
		Sex:    d.PatientSex,
	}.Validate()

	for k, v := range (BookingForm{Date: d.Date, Time: d.Time}).Validate() {
		fields[k] = v
	}
	if strings.TrimSpace(d.ProviderName) == "" {
		fields["provider"] = "Please choose a provider."
	}
	return fields
}

// BookingReference formats a ledger id the way bookings are shown to users
func BookingReference(id int64) string {
	return fmt.Sprintf("BK%03d", id)
}

// ParseBookingReference accepts either a numeric id or a "BK"-prefixed reference
func ParseBookingReference(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if len(s) > 2 && strings.EqualFold(s[:2], "BK") {
		s = s[2:]
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid booking reference %q", raw)
	}
	return id, nil
}

// PatientProfile holds the details collected at user login
type PatientProfile struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
	Age    int    `json:"age"`
	Sex    string `json:"sex"`
}

// Validate returns field-level messages for every invalid field
func (p PatientProfile) Validate() map[string]string {
	fields := make(map[string]string)
	if strings.TrimSpace(p.Name) == "" {
		fields["name"] = "Please enter your full name."
	}
	if !indianMobilePattern.MatchString(p.Mobile) {
		fields["mobile"] = "Enter a valid 10-digit Indian mobile number."
	}
	if p.Age < 1 || p.Age > 120 {
		fields["age"] = "Enter a valid age (1-120)."
	}
	if strings.TrimSpace(p.Sex) == "" {
		fields["sex"] = "Please select your sex."
	}
	return fields
}

// BookingForm holds the appointment details chosen on the booking step
type BookingForm struct {
	Date string `json:"date"`
	Time string `json:"time"`
	Note string `json:"note,omitempty"`
}

// Complete reports whether date and time are both present
func (f BookingForm) Complete() bool {
	return strings.TrimSpace(f.Date) != "" && strings.TrimSpace(f.Time) != ""
}

// Validate returns field-level messages for date and time
func (f BookingForm) Validate() map[string]string {
	fields := make(map[string]string)
	switch {
	case strings.TrimSpace(f.Date) == "":
		fields["date"] = "Please choose a date."
	default:
		if _, err := time.Parse(BookingDateLayout, f.Date); err != nil {
			fields["date"] = "Use the YYYY-MM-DD date format."
		}
	}
	switch {
	case strings.TrimSpace(f.Time) == "":
		fields["time"] = "Please choose a time."
	case !isTimeSlot(f.Time):
		fields["time"] = "Choose one of the available time slots."
	}
	return fields
}

func isTimeSlot(t string) bool {
	for _, slot := range TimeSlots {
		if slot == t {
			return true
		}
	}
	return false
}
