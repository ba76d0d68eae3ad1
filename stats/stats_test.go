package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"groombook/models"
	"groombook/schedule"
)

func mkBooking(serviceID, dateKey, slot string) models.Booking {
	day, _ := schedule.ParseDateKey(dateKey)
	return models.Booking{ServiceID: serviceID, Date: day, Time: slot}
}

func TestSummarizeDay(t *testing.T) {
	rows := []models.Booking{
		mkBooking("bath", "2026-03-10", "10:00"),
		mkBooking("bath", "2026-03-10", "10:30"),
		mkBooking("groom", "2026-03-10", "11:00"),
		mkBooking("retired-service", "2026-03-10", "11:30"),
	}

	got := SummarizeDay(rows)
	assert.Equal(t, 4, got.Total, "every row counts toward the total")
	assert.Equal(t, 2, got.ByService["bath"])
	assert.Equal(t, 1, got.ByService["groom"])
	assert.Equal(t, 0, got.ByService["nail"])
	assert.Equal(t, 0, got.ByService["combo"])
	assert.NotContains(t, got.ByService, "retired-service")
}

func TestSummarizeDayAgreesWithMonthTotal(t *testing.T) {
	rows := []models.Booking{
		mkBooking("bath", "2026-03-10", "10:00"),
		mkBooking("retired-service", "2026-03-10", "11:30"),
	}
	day := SummarizeDay(rows)
	month := SummarizeMonth(rows, 2026, time.March)
	assert.Equal(t, 2, day.Total)
	assert.Equal(t, day.Total, month.Total)
}

func TestSummarizeDayEmpty(t *testing.T) {
	got := SummarizeDay(nil)
	assert.Equal(t, 0, got.Total)
	assert.Len(t, got.ByService, len(models.Services))
}

func TestSummarizeMonth(t *testing.T) {
	rows := []models.Booking{
		mkBooking("bath", "2026-03-05", "10:00"),
		mkBooking("groom", "2026-03-05", "11:00"),
		mkBooking("nail", "2026-03-20", "12:00"),
		// outside the requested month, must be dropped
		mkBooking("bath", "2026-04-01", "10:00"),
		mkBooking("combo", "2026-02-28", "15:00"),
	}

	got := SummarizeMonth(rows, 2026, time.March)
	assert.Equal(t, 3, got.Total)
	assert.Len(t, got.Days, 2)
	assert.Equal(t, "2026-03-05", got.Days[0].DateKey, "days come back chronological")
	assert.Equal(t, "2026-03-20", got.Days[1].DateKey)
	assert.Equal(t, 2, got.Days[0].Total)
	assert.Equal(t, 1, got.Days[1].ByService["nail"])
	assert.Equal(t, 1, got.ByService["bath"])
}

func TestComputeLoyalty(t *testing.T) {
	fresh := ComputeLoyalty(0)
	assert.Equal(t, 0, fresh.Free)
	assert.Equal(t, 0, fresh.CycleProgress)
	assert.Equal(t, 10, fresh.Remaining)
	assert.False(t, fresh.CompletedCycle)

	exact := ComputeLoyalty(10)
	assert.Equal(t, 1, exact.Free)
	assert.Equal(t, 0, exact.CycleProgress)
	assert.Equal(t, 10, exact.Remaining)
	assert.True(t, exact.CompletedCycle)

	mid := ComputeLoyalty(23)
	assert.Equal(t, 2, mid.Free)
	assert.Equal(t, 3, mid.CycleProgress)
	assert.Equal(t, 7, mid.Remaining)
	assert.False(t, mid.CompletedCycle)

	negative := ComputeLoyalty(-4)
	assert.Equal(t, 0, negative.Used)
	assert.Equal(t, 0, negative.Free)
}
