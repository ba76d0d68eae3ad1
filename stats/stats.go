package stats

import (
	"sort"
	"time"

	"groombook/models"
	"groombook/schedule"
)

// DaySummary is the dashboard header for one day: a total plus a count
// per catalog service. The total counts every row; only the per-service
// counts skip service ids outside the catalog.
type DaySummary struct {
	Total     int            `json:"total"`
	ByService map[string]int `json:"byService"`
}

func SummarizeDay(rows []models.Booking) DaySummary {
	summary := DaySummary{ByService: map[string]int{}}
	for _, s := range models.Services {
		summary.ByService[s.ID] = 0
	}

	for _, b := range rows {
		summary.Total++
		if _, known := summary.ByService[b.ServiceID]; known {
			summary.ByService[b.ServiceID]++
		}
	}
	return summary
}

// DayBucket is one calendar day inside a month summary.
type DayBucket struct {
	DateKey   string         `json:"dateKey"`
	Total     int            `json:"total"`
	ByService map[string]int `json:"byService"`
}

// MonthSummary groups rows by shop-timezone calendar day, keeps only
// days inside the given month, and returns the buckets in
// chronological order.
type MonthSummary struct {
	Total     int            `json:"total"`
	Days      []DayBucket    `json:"days"`
	ByService map[string]int `json:"byService"`
}

func SummarizeMonth(rows []models.Booking, year int, month time.Month) MonthSummary {
	summary := MonthSummary{ByService: map[string]int{}}
	for _, s := range models.Services {
		summary.ByService[s.ID] = 0
	}

	buckets := map[string]*DayBucket{}
	for _, b := range rows {
		day := b.Date.In(schedule.Location())
		if day.Year() != year || day.Month() != month {
			continue
		}

		key := schedule.DateKey(b.Date)
		bucket, ok := buckets[key]
		if !ok {
			bucket = &DayBucket{DateKey: key, ByService: map[string]int{}}
			buckets[key] = bucket
		}

		bucket.Total++
		summary.Total++
		if models.KnownService(b.ServiceID) {
			bucket.ByService[b.ServiceID]++
			summary.ByService[b.ServiceID]++
		}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys) // YYYY-MM-DD keys sort chronologically

	summary.Days = make([]DayBucket, 0, len(keys))
	for _, k := range keys {
		summary.Days = append(summary.Days, *buckets[k])
	}
	return summary
}

// Loyalty is derived from the customer's total booking count on every
// view; there is no persisted loyalty record.
type Loyalty struct {
	Used           int  `json:"used"`
	Free           int  `json:"free"`
	CycleProgress  int  `json:"cycleProgress"`
	Remaining      int  `json:"remaining"`
	CompletedCycle bool `json:"completedCycle"`
}

// ComputeLoyalty awards one free service per ten bookings. A nonzero
// exact multiple of ten reads as a just-completed cycle: progress 0,
// a fresh 10 remaining.
func ComputeLoyalty(count int) Loyalty {
	if count < 0 {
		count = 0
	}
	progress := count % 10
	return Loyalty{
		Used:           count,
		Free:           count / 10,
		CycleProgress:  progress,
		Remaining:      10 - progress,
		CompletedCycle: count > 0 && progress == 0,
	}
}
