package admin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"groombook/models"
	"groombook/schedule"
)

func mk(id, serviceID, dateKey, slot, email, note string) models.Booking {
	day, _ := schedule.ParseDateKey(dateKey)
	return models.Booking{
		ID:           id,
		ServiceID:    serviceID,
		ServiceTitle: models.ServiceTitle(serviceID),
		Date:         day,
		Time:         slot,
		UserEmail:    email,
		Note:         note,
	}
}

func ids(rows []models.Booking) []string {
	out := make([]string, 0, len(rows))
	for _, b := range rows {
		out = append(out, b.ID)
	}
	return out
}

func TestFilterHistoryByService(t *testing.T) {
	rows := []models.Booking{
		mk("a", "bath", "2026-03-01", "10:00", "mint@example.com", ""),
		mk("b", "groom", "2026-03-02", "11:00", "mint@example.com", ""),
		mk("c", "bath", "2026-03-03", "12:00", "fah@example.com", ""),
	}
	now, _ := schedule.ParseDateKey("2026-03-05")

	got := FilterHistory(rows, HistoryFilter{ServiceID: "bath"}, now)
	assert.Equal(t, []string{"c", "a"}, ids(got))
}

func TestFilterHistoryByRange(t *testing.T) {
	rows := []models.Booking{
		mk("old", "bath", "2026-01-15", "10:00", "", ""),
		mk("week", "bath", "2026-03-03", "10:00", "", ""),
		mk("month", "bath", "2026-02-20", "10:00", "", ""),
	}
	now, _ := schedule.ParseDateKey("2026-03-05")

	got := FilterHistory(rows, HistoryFilter{Range: "7d"}, now)
	assert.Equal(t, []string{"week"}, ids(got))

	got = FilterHistory(rows, HistoryFilter{Range: "30d"}, now)
	assert.Equal(t, []string{"week", "month"}, ids(got))

	got = FilterHistory(rows, HistoryFilter{}, now)
	assert.Len(t, got, 3)
}

func TestFilterHistorySearch(t *testing.T) {
	rows := []models.Booking{
		mk("a", "bath", "2026-03-01", "10:00", "Mint@example.com", "first visit"),
		mk("b", "groom", "2026-03-02", "11:00", "fah@example.com", "long coat"),
		mk("c", "nail", "2026-03-03", "12:30", "pim@example.com", ""),
	}
	now, _ := schedule.ParseDateKey("2026-03-05")

	// case-insensitive over email
	got := FilterHistory(rows, HistoryFilter{Search: "mint"}, now)
	assert.Equal(t, []string{"a"}, ids(got))

	// note text
	got = FilterHistory(rows, HistoryFilter{Search: "coat"}, now)
	assert.Equal(t, []string{"b"}, ids(got))

	// slot label
	got = FilterHistory(rows, HistoryFilter{Search: "12:30"}, now)
	assert.Equal(t, []string{"c"}, ids(got))

	// service title
	got = FilterHistory(rows, HistoryFilter{Search: "haircut"}, now)
	assert.Equal(t, []string{"b"}, ids(got))
}

func TestFilterHistoryCombined(t *testing.T) {
	rows := []models.Booking{
		mk("a", "bath", "2026-03-01", "10:00", "mint@example.com", ""),
		mk("b", "bath", "2026-01-01", "10:00", "mint@example.com", ""),
		mk("c", "groom", "2026-03-02", "11:00", "mint@example.com", ""),
	}
	now, _ := schedule.ParseDateKey("2026-03-05")

	got := FilterHistory(rows, HistoryFilter{Search: "mint", ServiceID: "bath", Range: "30d"}, now)
	assert.Equal(t, []string{"a"}, ids(got))
}

func TestSortBySlot(t *testing.T) {
	rows := []models.Booking{
		mk("b", "bath", "2026-03-01", "14:00", "", ""),
		mk("a", "bath", "2026-03-01", "09:30", "", ""),
		mk("c", "bath", "2026-03-01", "16:00", "", ""),
	}
	sortBySlot(rows)
	assert.Equal(t, []string{"a", "b", "c"}, ids(rows))
}

func TestFilterHistoryEmptyIsNotNil(t *testing.T) {
	now := time.Now()
	got := FilterHistory(nil, HistoryFilter{}, now)
	assert.NotNil(t, got)
	assert.Len(t, got, 0)
}
