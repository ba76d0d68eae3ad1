package booking

import (
	"fmt"
	"strconv"
	"strings"

	"groombook/models"
	"groombook/schedule"
)

// BookingInput is the request body for creating a booking. PetWeightKg
// arrives as free text; the form accepts a comma decimal separator.
type BookingInput struct {
	ServiceID   string `json:"serviceId"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Note        string `json:"note"`
	OwnerName   string `json:"ownerName"`
	PetName     string `json:"petName"`
	PetWeightKg string `json:"petWeightKg"`
}

// ParseWeight normalizes the weight field. Empty means not provided.
func ParseWeight(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	raw = strings.ReplaceAll(raw, ",", ".")
	kg, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid pet weight %q", raw)
	}
	if kg <= 0 {
		return nil, fmt.Errorf("pet weight must be positive")
	}
	return &kg, nil
}

// validateInput runs every check that must pass before any write is
// attempted. catalog is the day's effective slot list.
func validateInput(in BookingInput, catalog []string, isClosed, isToday bool, nowMinutes int) error {
	if !models.KnownService(in.ServiceID) {
		return fmt.Errorf("unknown service %q", in.ServiceID)
	}
	if strings.TrimSpace(in.OwnerName) == "" {
		return fmt.Errorf("owner name is required")
	}
	if strings.TrimSpace(in.PetName) == "" {
		return fmt.Errorf("pet name is required")
	}
	if !schedule.ValidLabel(in.Time) {
		return fmt.Errorf("invalid time slot %q", in.Time)
	}
	if isClosed {
		return fmt.Errorf("the shop is closed on this day")
	}

	inCatalog := false
	for _, slot := range catalog {
		if slot == in.Time {
			inCatalog = true
			break
		}
	}
	if !inCatalog {
		return fmt.Errorf("time slot %q is not offered on this day", in.Time)
	}

	if isToday && schedule.MinutesOf(in.Time) <= nowMinutes {
		return fmt.Errorf("time slot %q has already passed", in.Time)
	}
	return nil
}
