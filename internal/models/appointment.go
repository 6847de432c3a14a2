package models

import (
	"time"
)

// AppointmentStatus represents the derived temporal state of an appointment.
// It is computed at read time and never persisted.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusUpcoming  AppointmentStatus = "upcoming"
	StatusOngoing   AppointmentStatus = "ongoing"
	StatusCompleted AppointmentStatus = "completed"
)

// Layouts for the stored date and slot label text.
const (
	DateLayout = "2006-01-02"
	SlotLayout = "3:04 PM"
)

// Appointment represents a booked visit for a child with a clinic doctor.
// DoctorName is free text, not a foreign key; doctor data is static
// reference content.
type Appointment struct {
	BaseModel
	// Binary collation keeps guardian email matching exact and
	// case-sensitive on MySQL.
	GuardianEmail string `gorm:"type:varchar(255) COLLATE utf8mb4_bin;not null;index" json:"guardianEmail"`
	DoctorName    string `gorm:"size:255;not null" json:"doctorName"`
	Date          string `gorm:"size:10;not null" json:"date"`
	Time          string `gorm:"size:20;not null" json:"time"`
	ChildName     string `gorm:"size:255;not null" json:"childName"`
	ChildAge      string `gorm:"size:20;not null" json:"childAge"`
	Phone         string `gorm:"size:30;not null" json:"phone"`
	Issue         string `gorm:"type:text;not null" json:"issue"`
}

// StatusAt classifies the appointment relative to the given clock:
// completed when the slot started more than 2 hours ago, ongoing when it
// started within the last 2 hours, upcoming when it starts within the next
// 24 hours, scheduled otherwise. Records whose date or time cannot be
// parsed are reported as scheduled.
func (a *Appointment) StatusAt(now time.Time) AppointmentStatus {
	start, err := time.ParseInLocation(DateLayout+" "+SlotLayout, a.Date+" "+a.Time, now.Location())
	if err != nil {
		return StatusScheduled
	}

	delta := now.Sub(start)
	switch {
	case delta > 2*time.Hour:
		return StatusCompleted
	case delta > 0:
		return StatusOngoing
	case delta > -24*time.Hour:
		return StatusUpcoming
	default:
		return StatusScheduled
	}
}

// AppointmentView is an Appointment plus its derived status, as returned
// by the read endpoints.
type AppointmentView struct {
	Appointment
	Status AppointmentStatus `json:"status"`
}

// ViewAt builds the read representation of the appointment at the given time.
func (a *Appointment) ViewAt(now time.Time) AppointmentView {
	return AppointmentView{Appointment: *a, Status: a.StatusAt(now)}
}
