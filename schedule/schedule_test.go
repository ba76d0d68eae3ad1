package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinutesOfRoundTrip(t *testing.T) {
	labels := []string{"00:00", "08:30", "10:00", "12:05", "17:30", "23:59"}
	for _, label := range labels {
		minutes := MinutesOf(label)
		assert.GreaterOrEqual(t, minutes, 0)
		assert.LessOrEqual(t, minutes, 1439)
		assert.Equal(t, label, LabelOf(minutes))
	}
}

func TestMinutesOfMalformed(t *testing.T) {
	// malformed labels sort first rather than failing
	assert.Equal(t, 0, MinutesOf(""))
	assert.Equal(t, 0, MinutesOf("bad"))
	assert.Equal(t, 0, MinutesOf("aa:bb"))
	assert.Equal(t, 0, MinutesOf("1030"))
}

func TestLabelOfClamps(t *testing.T) {
	assert.Equal(t, "23:00", LabelOf(25*60))
	assert.Equal(t, "00:00", LabelOf(-30))
}

func TestValidLabel(t *testing.T) {
	assert.True(t, ValidLabel("09:30"))
	assert.True(t, ValidLabel("23:59"))
	assert.False(t, ValidLabel("24:00"))
	assert.False(t, ValidLabel("09:60"))
	assert.False(t, ValidLabel("9:30"))
	assert.False(t, ValidLabel("0930"))
}

func TestBuildSlots(t *testing.T) {
	slots := BuildSlots("10:00", "12:00", 30)
	require.Equal(t, []string{"10:00", "10:30", "11:00", "11:30", "12:00"}, slots)

	// the first slot is the start, the last never exceeds the end
	slots = BuildSlots("09:00", "10:50", 45)
	require.Equal(t, []string{"09:00", "09:45", "10:30"}, slots)

	// strictly increasing
	prev := -1
	for _, s := range BuildSlots("08:30", "18:00", 25) {
		m := MinutesOf(s)
		assert.Greater(t, m, prev)
		prev = m
	}
}

func TestBuildSlotsInvalidConfig(t *testing.T) {
	assert.Empty(t, BuildSlots("10:00", "12:00", 0))
	assert.Empty(t, BuildSlots("10:00", "12:00", -15))
	assert.Empty(t, BuildSlots("12:00", "10:00", 30))
	assert.Empty(t, BuildSlots("10:00", "10:00", 30))
}

func TestBuildSlotsIterationCap(t *testing.T) {
	slots := BuildSlots("00:00", "23:59", 1)
	assert.Len(t, slots, 200)
}

func TestAvailabilityPartition(t *testing.T) {
	catalog := []string{"10:00", "10:30", "11:00", "11:30", "12:00"}
	booked := []string{"11:00", "12:00"}

	// 10:15 now: 10:00 is expired, 10:30+ still open
	infos := Availability(catalog, booked, true, 10*60+15)
	require.Len(t, infos, len(catalog))

	counts := map[string]int{}
	for i, info := range infos {
		assert.Equal(t, catalog[i], info.Time) // catalog order preserved
		counts[info.Status]++
	}
	assert.Equal(t, 2, counts[StatusBooked])
	assert.Equal(t, 1, counts[StatusExpired])
	assert.Equal(t, 2, counts[StatusAvailable])
	assert.Equal(t, len(catalog), counts[StatusBooked]+counts[StatusExpired]+counts[StatusAvailable])
}

func TestAvailabilityNotToday(t *testing.T) {
	catalog := []string{"10:00", "10:30"}
	infos := Availability(catalog, nil, false, 23*60)
	for _, info := range infos {
		assert.Equal(t, StatusAvailable, info.Status)
	}
}

func TestAvailabilityBookedBeatsExpired(t *testing.T) {
	infos := Availability([]string{"09:00"}, []string{"09:00"}, true, 600)
	require.Len(t, infos, 1)
	assert.Equal(t, StatusBooked, infos[0].Status)
}
