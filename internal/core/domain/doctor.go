package domain

import "time"

// Specialties is the fixed list a doctor profile may declare.
var Specialties = []string{
	"General Physician",
	"Cardiologist",
	"Dermatologist",
	"Pediatrician",
	"Neurologist",
	"Orthopedic",
	"Gynecologist",
	"Dentist",
}

// ValidSpecialty reports whether s is one of the known specialties.
func ValidSpecialty(s string) bool {
	for _, known := range Specialties {
		if known == s {
			return true
		}
	}
	return false
}

// TimeSlot is a bookable (date, time) unit owned by one doctor.
// The id is unique within its doctor. The booked flag flips to true on a
// successful booking and is released again when the appointment is
// cancelled or rejected.
type TimeSlot struct {
	ID       string `json:"id" bson:"id"`
	Date     string `json:"date" bson:"date"`
	Time     string `json:"time" bson:"time"`
	IsBooked bool   `json:"is_booked" bson:"is_booked"`
}

// Doctor is a user specialized with role DOCTOR plus a public profile and
// an embedded slot list. Rating is set at creation and never recomputed.
type Doctor struct {
	ID              string     `json:"id" bson:"_id"`
	Name            string     `json:"name" bson:"name"`
	Email           string     `json:"email" bson:"email"`
	Role            string     `json:"role" bson:"role"`
	Specialty       string     `json:"specialty" bson:"specialty"`
	Experience      int        `json:"experience" bson:"experience"`
	About           string     `json:"about" bson:"about"`
	Rating          float64    `json:"rating" bson:"rating"`
	ConsultationFee int        `json:"consultation_fee" bson:"consultation_fee"`
	AvailableDays   []string   `json:"available_days" bson:"available_days"`
	Slots           []TimeSlot `json:"slots" bson:"slots"`
	Avatar          string     `json:"avatar,omitempty" bson:"avatar,omitempty"`
	CreatedAt       time.Time  `json:"created_at" bson:"created_at"`
}

// SlotAt returns the slot matching (date, time), or nil.
func (d *Doctor) SlotAt(date, t string) *TimeSlot {
	for i := range d.Slots {
		if d.Slots[i].Date == date && d.Slots[i].Time == t {
			return &d.Slots[i]
		}
	}
	return nil
}
