package booking

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"groombook/db"
	"groombook/models"
	"groombook/mq"
	"groombook/schedule"
	"groombook/settings"
	"groombook/utils"
)

// GetAvailability returns the tri-state slot grid for one service on
// one date. One read against the bookings collection per call.
func GetAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	serviceID := ps.ByName("serviceid")
	dateKey := ps.ByName("date")

	if !models.KnownService(serviceID) {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown service")
		return
	}
	day, err := schedule.ParseDateKey(dateKey)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid date")
		return
	}

	eff, err := settings.LoadEffectiveDay(r.Context(), dateKey)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load schedule")
		return
	}
	if eff.IsClosed {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"date":     dateKey,
			"service":  serviceID,
			"isClosed": true,
			"slots":    []schedule.SlotInfo{},
		})
		return
	}

	cursor, err := db.BookingsCollection.Find(r.Context(), bson.M{
		"serviceId": serviceID,
		"date":      day,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load bookings")
		return
	}
	defer cursor.Close(r.Context())

	booked := []string{}
	for cursor.Next(r.Context()) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			continue
		}
		booked = append(booked, b.Time)
	}

	now := time.Now()
	isToday := schedule.DateKey(now) == dateKey
	slots := schedule.Availability(eff.TimeSlots, booked, isToday, schedule.NowMinutes(now))

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"date":     dateKey,
		"service":  serviceID,
		"isClosed": false,
		"price":    eff.Prices[serviceID],
		"slots":    slots,
	})
}

// loadEffectiveDay is a seam so handler tests can supply a schedule
// without a live store.
var loadEffectiveDay = settings.LoadEffectiveDay

// claimSlot writes doc only when no booking holds the (service, date,
// time) key. The filter keys the slot; $setOnInsert writes the
// document only on first claim, so a false return means someone else
// got there first.
var claimSlot = func(ctx context.Context, doc models.Booking) (bool, error) {
	filter := bson.M{
		"serviceId": doc.ServiceID,
		"date":      doc.Date,
		"time":      doc.Time,
	}
	update := bson.M{"$setOnInsert": doc}
	opts := options.Update().SetUpsert(true)

	result, err := db.BookingsCollection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return false, err
	}
	return result.UpsertedCount > 0, nil
}

// CreateBooking validates the request fully, then claims the slot with
// a single conditional upsert. Two racing requests for the same
// service, date and time resolve to one winner; the loser sees 409.
func CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input BookingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	day, err := schedule.ParseDateKey(input.Date)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid date")
		return
	}

	weight, err := ParseWeight(input.PetWeightKg)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	eff, err := loadEffectiveDay(r.Context(), input.Date)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load schedule")
		return
	}

	now := time.Now()
	isToday := schedule.DateKey(now) == input.Date
	if err := validateInput(input, eff.TimeSlots, eff.IsClosed, isToday, schedule.NowMinutes(now)); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	newBooking := models.Booking{
		ID:           utils.GetUUID(),
		UserID:       userID,
		UserEmail:    utils.GetEmailFromRequest(r),
		ServiceID:    input.ServiceID,
		ServiceTitle: models.ServiceTitle(input.ServiceID),
		Date:         day,
		Time:         input.Time,
		Note:         input.Note,
		OwnerName:    input.OwnerName,
		PetName:      input.PetName,
		PetWeightKg:  weight,
		CreatedAt:    now,
	}

	claimed, err := claimSlot(context.TODO(), newBooking)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create booking")
		return
	}
	if !claimed {
		utils.RespondWithError(w, http.StatusConflict, "Slot already booked")
		return
	}

	mq.Emit(r.Context(), mq.Event{
		Name:      "booking-created",
		UserID:    userID,
		ServiceID: input.ServiceID,
		DateKey:   input.Date,
		Time:      input.Time,
	})
	log.Printf("Booking %s created: %s %s %s", newBooking.ID, input.ServiceID, input.Date, input.Time)

	utils.SendResponse(w, http.StatusCreated, newBooking, "Booking created", nil)
}

// GetMyBookings lists the caller's bookings, newest appointment first.
func GetMyBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cursor, err := db.BookingsCollection.Find(r.Context(), bson.M{"userId": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load bookings")
		return
	}
	defer cursor.Close(r.Context())

	rows := []models.Booking{}
	if err := cursor.All(r.Context(), &rows); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load bookings")
		return
	}

	SortNewestFirst(rows)
	utils.RespondWithJSON(w, http.StatusOK, rows)
}

// SortNewestFirst orders bookings by appointment moment descending:
// day first, then the slot's minute within the day.
func SortNewestFirst(rows []models.Booking) {
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.After(rows[j].Date)
		}
		return schedule.MinutesOf(rows[i].Time) > schedule.MinutesOf(rows[j].Time)
	})
}
