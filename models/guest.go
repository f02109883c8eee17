package models

import (
	"time"
)

type GuestType string

// Guest type constants
const (
	GuestTypeVIP       GuestType = "VIP"
	GuestTypeSpouse    GuestType = "SPOUSE"
	GuestTypePA        GuestType = "PA"
	GuestTypeAssociate GuestType = "ASSOCIATE"
)

func (t GuestType) Valid() bool {
	switch t {
	case GuestTypeVIP, GuestTypeSpouse, GuestTypePA, GuestTypeAssociate:
		return true
	}
	return false
}

// Guest is a registered attendee. Zone is derived from Type and is never persisted.
type Guest struct {
	ID               string         `json:"id" db:"id"`
	Token            string         `json:"token" db:"token"`
	Type             GuestType      `json:"type" db:"type"`
	Title            string         `json:"title" db:"title"`
	FirstName        string         `json:"firstName" db:"first_name"`
	Surname          string         `json:"surname" db:"surname"`
	FullName         string         `json:"fullName" db:"full_name"`
	Phone            string         `json:"phone" db:"phone"`
	Email            string         `json:"email" db:"email"`
	ChurchName       *string        `json:"churchName,omitempty" db:"church_name"`
	Position         *string        `json:"position,omitempty" db:"position"`
	WithCar          bool           `json:"withCar" db:"with_car"`
	Zone             string         `json:"zone" db:"-"`
	RegistrationDate time.Time      `json:"registrationDate" db:"registration_date"`
	CheckIns         []CheckInEvent `json:"checkIns" db:"-"`
}

// HasCheckIn reports whether the guest already has a check-in recorded for day.
func (g *Guest) HasCheckIn(day string) bool {
	for _, ci := range g.CheckIns {
		if ci.Day == day {
			return true
		}
	}
	return false
}

// Clone returns a copy that does not share the check-in slice.
func (g Guest) Clone() Guest {
	out := g
	out.CheckIns = append([]CheckInEvent(nil), g.CheckIns...)
	return out
}

// GuestSummary is the per-attendee entry of a registration response.
type GuestSummary struct {
	ID     string     `json:"id"`
	Token  string     `json:"token"`
	Name   string     `json:"name"`
	Type   GuestType  `json:"type"`
	QRData QRCodeData `json:"qrData"`
}

type QRCodeData struct {
	Token      string `json:"token"`
	CheckInURL string `json:"checkInUrl"`
}
