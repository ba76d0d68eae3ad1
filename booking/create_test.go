package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groombook/globals"
	"groombook/models"
	"groombook/settings"
)

// slotStore stands in for the bookings collection: first claim on a
// key wins, every later claim reports the slot taken.
type slotStore struct {
	mu    sync.Mutex
	slots map[string]models.Booking
}

func newSlotStore() *slotStore {
	return &slotStore{slots: map[string]models.Booking{}}
}

func (s *slotStore) claim(_ context.Context, doc models.Booking) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := fmt.Sprintf("%s|%s|%s", doc.ServiceID, doc.Date.Format("2006-01-02"), doc.Time)
	if _, taken := s.slots[key]; taken {
		return false, nil
	}
	s.slots[key] = doc
	return true, nil
}

func withSeams(t *testing.T, store *slotStore) {
	t.Helper()
	origLoad, origClaim := loadEffectiveDay, claimSlot
	loadEffectiveDay = func(_ context.Context, dateKey string) (settings.EffectiveDay, error) {
		return settings.EffectiveDay{
			DateKey:   dateKey,
			TimeSlots: []string{"10:00", "10:30", "11:00"},
			Prices:    models.DefaultPrices,
		}, nil
	}
	claimSlot = store.claim
	t.Cleanup(func() {
		loadEffectiveDay = origLoad
		claimSlot = origClaim
	})
}

func postBooking(t *testing.T, userID string, input BookingInput) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(input)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	ctx := context.WithValue(req.Context(), globals.UserIDKey, userID)
	ctx = context.WithValue(ctx, globals.EmailKey, userID+"@example.com")
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	CreateBooking(rec, req, nil)
	return rec
}

func TestCreateBookingSecondSubmissionConflicts(t *testing.T) {
	store := newSlotStore()
	withSeams(t, store)

	input := BookingInput{
		ServiceID: "bath",
		Date:      "2030-05-10",
		Time:      "10:30",
		OwnerName: "Somsri",
		PetName:   "Mochi",
	}

	first := postBooking(t, "u-aaa", input)
	assert.Equal(t, http.StatusCreated, first.Code)

	second := postBooking(t, "u-bbb", input)
	assert.Equal(t, http.StatusConflict, second.Code)

	// the loser wrote nothing; the winner's document is untouched
	require.Len(t, store.slots, 1)
	for _, doc := range store.slots {
		assert.Equal(t, "u-aaa", doc.UserID)
	}

	// a different slot is still free
	input.Time = "11:00"
	third := postBooking(t, "u-bbb", input)
	assert.Equal(t, http.StatusCreated, third.Code)
	assert.Len(t, store.slots, 2)
}

func TestCreateBookingRejectsBeforeWrite(t *testing.T) {
	store := newSlotStore()
	withSeams(t, store)

	offCatalog := BookingInput{
		ServiceID: "bath",
		Date:      "2030-05-10",
		Time:      "12:00",
		OwnerName: "Somsri",
		PetName:   "Mochi",
	}
	rec := postBooking(t, "u-aaa", offCatalog)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, store.slots, 0, "validation failures must not reach the store")

	noPet := BookingInput{
		ServiceID: "bath",
		Date:      "2030-05-10",
		Time:      "10:00",
		OwnerName: "Somsri",
	}
	rec = postBooking(t, "u-aaa", noPet)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, store.slots, 0)
}
