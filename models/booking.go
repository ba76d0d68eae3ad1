package models

import "time"

// Booking is the persisted appointment record. Field names at the store
// boundary match the existing bookings collection: date is the
// appointment day truncated to midnight, time is the zero-padded
// "HH:MM" slot label, createdAt is the full write timestamp.
type Booking struct {
	ID           string    `json:"id" bson:"id"`
	UserID       string    `json:"userId" bson:"userId"`
	UserEmail    string    `json:"userEmail" bson:"userEmail"`
	ServiceID    string    `json:"serviceId" bson:"serviceId"`
	ServiceTitle string    `json:"serviceTitle" bson:"serviceTitle"`
	Date         time.Time `json:"date" bson:"date"`
	Time         string    `json:"time" bson:"time"`
	Note         string    `json:"note" bson:"note"`
	OwnerName    string    `json:"ownerName" bson:"ownerName"`
	PetName      string    `json:"petName" bson:"petName"`
	PetWeightKg  *float64  `json:"petWeightKg,omitempty" bson:"petWeightKg,omitempty"`
	PetPhoto     string    `json:"petPhoto,omitempty" bson:"petPhoto,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// DayConfig overrides the global services config for one calendar day.
// DateKey is "YYYY-MM-DD" in the shop timezone. TimeSlots is derived
// from StartTime/EndTime/IntervalMinutes when the day is saved.
type DayConfig struct {
	DateKey         string         `json:"dateKey" bson:"dateKey"`
	IsClosed        bool           `json:"isClosed" bson:"isClosed"`
	StartTime       string         `json:"startTime" bson:"startTime"`
	EndTime         string         `json:"endTime" bson:"endTime"`
	IntervalMinutes int            `json:"intervalMinutes" bson:"intervalMinutes"`
	TimeSlots       []string       `json:"timeSlots" bson:"timeSlots"`
	Prices          map[string]int `json:"prices" bson:"prices"`
	UpdatedAt       time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// ServicesConfig is the singleton fallback template: the default slot
// labels and default price per service id.
type ServicesConfig struct {
	ConfigID  string         `json:"configId" bson:"configId"`
	TimeSlots []string       `json:"timeSlots" bson:"timeSlots"`
	Prices    map[string]int `json:"prices" bson:"prices"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// GlobalConfigID keys the singleton document in services_config.
const GlobalConfigID = "services"
