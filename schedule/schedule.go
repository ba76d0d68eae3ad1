package schedule

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	TimeLayout = "15:04"      // HH:MM
	DateLayout = "2006-01-02" // YYYY-MM-DD
)

// Slot construction is capped so a bad interval can never spin the
// builder forever.
const maxSlotsPerDay = 200

// MinutesOf converts an "HH:MM" label to minutes since midnight. A
// malformed label maps to 0 so it sorts first instead of failing the
// caller; well-formed labels land in [0, 1439].
func MinutesOf(label string) int {
	parts := strings.SplitN(label, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0
	}
	return h*60 + m
}

// LabelOf converts a minute offset back to a zero-padded "HH:MM"
// label, clamping the hour to [0,23] and the minute to [0,59].
func LabelOf(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if h < 0 {
		h = 0
	}
	if h > 23 {
		h = 23
	}
	if m < 0 {
		m = 0
	}
	if m > 59 {
		m = 59
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// ValidLabel reports whether label is a well-formed zero-padded
// 24-hour "HH:MM" string.
func ValidLabel(label string) bool {
	if len(label) != 5 || label[2] != ':' {
		return false
	}
	h, err1 := strconv.Atoi(label[:2])
	m, err2 := strconv.Atoi(label[3:])
	if err1 != nil || err2 != nil {
		return false
	}
	return h >= 0 && h <= 23 && m >= 0 && m <= 59
}

// BuildSlots produces the ordered slot labels from start stepping by
// interval minutes, inclusive of a step landing exactly on end. An
// empty result means the configuration is invalid; a closed day is a
// separate explicit flag on the day config.
func BuildSlots(startTime, endTime string, intervalMinutes int) []string {
	if intervalMinutes <= 0 {
		return []string{}
	}

	start := MinutesOf(startTime)
	end := MinutesOf(endTime)
	if start >= end {
		return []string{}
	}

	slots := []string{}
	for offset, i := start, 0; offset <= end && i < maxSlotsPerDay; offset, i = offset+intervalMinutes, i+1 {
		slots = append(slots, LabelOf(offset))
	}
	return slots
}

// Slot status values.
const (
	StatusAvailable = "available"
	StatusBooked    = "booked"
	StatusExpired   = "expired"
)

type SlotInfo struct {
	Time   string `json:"time"`
	Status string `json:"status"`
}

// Availability annotates every catalog label with a tri-state status:
// booked labels come from the booked set, expired labels are today's
// labels at or before the current minute, the rest are available.
// Catalog order is preserved; no re-sort is applied.
func Availability(catalog []string, booked []string, isToday bool, nowMinutes int) []SlotInfo {
	bookedSet := make(map[string]bool, len(booked))
	for _, t := range booked {
		bookedSet[t] = true
	}

	out := make([]SlotInfo, 0, len(catalog))
	for _, label := range catalog {
		status := StatusAvailable
		switch {
		case bookedSet[label]:
			status = StatusBooked
		case isToday && MinutesOf(label) <= nowMinutes:
			status = StatusExpired
		}
		out = append(out, SlotInfo{Time: label, Status: status})
	}
	return out
}

// --- Shop timezone ---

var (
	locOnce sync.Once
	shopLoc *time.Location
)

// Location returns the shop timezone. All calendar-day truncation and
// "today" decisions use this one zone (SHOP_TZ, default Asia/Bangkok).
func Location() *time.Location {
	locOnce.Do(func() {
		name := os.Getenv("SHOP_TZ")
		if name == "" {
			name = "Asia/Bangkok"
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			loc = time.UTC
		}
		shopLoc = loc
	})
	return shopLoc
}

// DayStart truncates t to midnight in the shop timezone.
func DayStart(t time.Time) time.Time {
	t = t.In(Location())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Location())
}

// ParseDateKey parses a "YYYY-MM-DD" key as midnight in the shop
// timezone.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, key, Location())
}

// DateKey formats t as its shop-timezone calendar day.
func DateKey(t time.Time) string {
	return t.In(Location()).Format(DateLayout)
}

// NowMinutes returns the current shop-timezone minutes since midnight.
func NowMinutes(now time.Time) int {
	now = now.In(Location())
	return now.Hour()*60 + now.Minute()
}
