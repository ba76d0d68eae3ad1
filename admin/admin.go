package admin

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"groombook/booking"
	"groombook/db"
	"groombook/models"
	"groombook/schedule"
	"groombook/stats"
	"groombook/utils"
)

// GetDayBookings returns every booking for one calendar day, in slot
// order, with the per-service summary the dashboard header shows.
func GetDayBookings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	dateKey := ps.ByName("date")
	day, err := schedule.ParseDateKey(dateKey)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid date")
		return
	}

	cursor, err := db.BookingsCollection.Find(r.Context(), bson.M{"date": day})
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

	sortBySlot(rows)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"date":     dateKey,
		"summary":  stats.SummarizeDay(rows),
		"bookings": rows,
	})
}

// GetMonthBookings aggregates a whole month ("YYYY-MM") into per-day
// buckets for the calendar view.
func GetMonthBookings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	monthKey := ps.ByName("month")
	first, err := time.ParseInLocation("2006-01", monthKey, schedule.Location())
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid month")
		return
	}
	next := first.AddDate(0, 1, 0)

	cursor, err := db.BookingsCollection.Find(r.Context(), bson.M{
		"date": bson.M{"$gte": first, "$lt": next},
	})
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

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"month":   monthKey,
		"summary": stats.SummarizeMonth(rows, first.Year(), first.Month()),
	})
}

// HistoryFilter is the query surface of the booking history page.
type HistoryFilter struct {
	Search    string // matched against email, service title, note, slot
	ServiceID string
	Range     string // "7d", "30d" or "" for everything
}

// FilterHistory applies the filter in memory and returns the rows
// newest appointment first.
func FilterHistory(rows []models.Booking, f HistoryFilter, now time.Time) []models.Booking {
	var cutoff time.Time
	switch f.Range {
	case "7d":
		cutoff = schedule.DayStart(now).AddDate(0, 0, -7)
	case "30d":
		cutoff = schedule.DayStart(now).AddDate(0, 0, -30)
	}

	out := []models.Booking{}
	for _, b := range rows {
		if f.ServiceID != "" && b.ServiceID != f.ServiceID {
			continue
		}
		if !cutoff.IsZero() && b.Date.Before(cutoff) {
			continue
		}
		if f.Search != "" && !matchesSearch(b, f.Search) {
			continue
		}
		out = append(out, b)
	}

	booking.SortNewestFirst(out)
	return out
}

func matchesSearch(b models.Booking, q string) bool {
	return utils.ContainsIgnoreCase(b.UserEmail, q) ||
		utils.ContainsIgnoreCase(b.ServiceTitle, q) ||
		utils.ContainsIgnoreCase(b.Note, q) ||
		utils.ContainsIgnoreCase(b.OwnerName, q) ||
		utils.ContainsIgnoreCase(b.PetName, q) ||
		strings.Contains(b.Time, q)
}

// GetBookingHistory is the full searchable history behind the admin
// table: ?search=&service=&range=7d|30d.
func GetBookingHistory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := HistoryFilter{
		Search:    strings.TrimSpace(r.URL.Query().Get("search")),
		ServiceID: r.URL.Query().Get("service"),
		Range:     r.URL.Query().Get("range"),
	}
	if filter.ServiceID != "" && !models.KnownService(filter.ServiceID) {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown service")
		return
	}

	cursor, err := db.BookingsCollection.Find(r.Context(), bson.M{})
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

	utils.RespondWithJSON(w, http.StatusOK, FilterHistory(rows, filter, time.Now()))
}

func sortBySlot(rows []models.Booking) {
	sort.SliceStable(rows, func(i, j int) bool {
		return schedule.MinutesOf(rows[i].Time) < schedule.MinutesOf(rows[j].Time)
	})
}
