package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"groombook/db"
	"groombook/models"
	"groombook/mq"
	"groombook/schedule"
	"groombook/utils"
)

// DayPatch carries a partial day-config update. Nil pointer fields are
// left untouched in the stored document, so the admin page can flip
// isClosed without resending the slot grid.
type DayPatch struct {
	IsClosed        *bool          `json:"isClosed"`
	StartTime       *string        `json:"startTime"`
	EndTime         *string        `json:"endTime"`
	IntervalMinutes *int           `json:"intervalMinutes"`
	TimeSlots       []string       `json:"timeSlots"`
	Prices          map[string]int `json:"prices"`
}

func validatePatch(p DayPatch) error {
	if p.StartTime != nil && !schedule.ValidLabel(*p.StartTime) {
		return fmt.Errorf("invalid startTime %q", *p.StartTime)
	}
	if p.EndTime != nil && !schedule.ValidLabel(*p.EndTime) {
		return fmt.Errorf("invalid endTime %q", *p.EndTime)
	}
	if p.IntervalMinutes != nil && *p.IntervalMinutes <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	for _, slot := range p.TimeSlots {
		if !schedule.ValidLabel(slot) {
			return fmt.Errorf("invalid time slot %q", slot)
		}
	}
	if p.TimeSlots == nil && p.StartTime != nil && p.EndTime != nil && p.IntervalMinutes != nil {
		if len(schedule.BuildSlots(*p.StartTime, *p.EndTime, *p.IntervalMinutes)) == 0 {
			return fmt.Errorf("working window %s-%s yields no slots", *p.StartTime, *p.EndTime)
		}
	}
	for id, price := range p.Prices {
		if !models.KnownService(id) {
			return fmt.Errorf("unknown service %q", id)
		}
		if price < 0 {
			return fmt.Errorf("negative price for %q", id)
		}
	}
	return nil
}

// buildSetDoc turns a patch into the $set document. When the working
// window changes and no explicit slot list was sent, the slot grid is
// rebuilt from the window so stored slots never drift from it.
func buildSetDoc(dateKey string, p DayPatch) bson.M {
	set := bson.M{"dateKey": dateKey, "updatedAt": time.Now()}
	if p.IsClosed != nil {
		set["isClosed"] = *p.IsClosed
	}
	if p.StartTime != nil {
		set["startTime"] = *p.StartTime
	}
	if p.EndTime != nil {
		set["endTime"] = *p.EndTime
	}
	if p.IntervalMinutes != nil {
		set["intervalMinutes"] = *p.IntervalMinutes
	}
	if p.TimeSlots != nil {
		set["timeSlots"] = p.TimeSlots
	} else if p.StartTime != nil && p.EndTime != nil && p.IntervalMinutes != nil {
		set["timeSlots"] = schedule.BuildSlots(*p.StartTime, *p.EndTime, *p.IntervalMinutes)
	}
	if p.Prices != nil {
		set["prices"] = p.Prices
	}
	return set
}

// GetDaySchedule returns the resolved configuration for one date. This
// is the public endpoint the booking page loads first.
func GetDaySchedule(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	dateKey := ps.ByName("date")
	if _, err := schedule.ParseDateKey(dateKey); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid date")
		return
	}

	eff, err := LoadEffectiveDay(r.Context(), dateKey)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load schedule")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, eff)
}

// GetServices lists the catalog with resolved default prices.
func GetServices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	global, err := loadGlobalConfig(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load services")
		return
	}

	prices := map[string]int{}
	for id, price := range models.DefaultPrices {
		prices[id] = price
	}
	if global != nil {
		for id, price := range global.Prices {
			prices[id] = price
		}
	}

	type serviceView struct {
		models.Service
		Price int `json:"price"`
	}
	out := make([]serviceView, 0, len(models.Services))
	for _, s := range models.Services {
		out = append(out, serviceView{Service: s, Price: prices[s.ID]})
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// GetDayConfig returns the raw stored override plus the resolved view,
// so the admin form can show which fields are actually set.
func GetDayConfig(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	dateKey := ps.ByName("date")
	if _, err := schedule.ParseDateKey(dateKey); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid date")
		return
	}

	var stored *models.DayConfig
	var doc models.DayConfig
	err := db.DayConfigCollection.FindOne(r.Context(), bson.M{"dateKey": dateKey}).Decode(&doc)
	if err == nil {
		stored = &doc
	} else if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load day config")
		return
	}

	eff, err := LoadEffectiveDay(r.Context(), dateKey)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load day config")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"stored": stored, "effective": eff})
}

// UpdateDayConfig merge-upserts the override for one date.
func UpdateDayConfig(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	dateKey := ps.ByName("date")
	if _, err := schedule.ParseDateKey(dateKey); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid date")
		return
	}

	var patch DayPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := validatePatch(patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := bson.M{"dateKey": dateKey}
	update := bson.M{"$set": buildSetDoc(dateKey, patch)}
	opts := options.Update().SetUpsert(true)
	if _, err := db.DayConfigCollection.UpdateOne(context.TODO(), filter, update, opts); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save day config")
		return
	}

	mq.Emit(r.Context(), mq.Event{Name: "schedule-updated", DateKey: dateKey})

	eff, err := LoadEffectiveDay(r.Context(), dateKey)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load day config")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, eff)
}

// GetServicesConfig returns the global template for the admin form.
func GetServicesConfig(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cfg, err := loadGlobalConfig(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load services config")
		return
	}
	if cfg == nil {
		cfg = &models.ServicesConfig{
			ConfigID:  models.GlobalConfigID,
			TimeSlots: models.DefaultTimeSlots,
			Prices:    models.DefaultPrices,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, cfg)
}

// UpdateServicesConfig merge-upserts the global template.
func UpdateServicesConfig(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var patch struct {
		TimeSlots []string       `json:"timeSlots"`
		Prices    map[string]int `json:"prices"`
	}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := validatePatch(DayPatch{TimeSlots: patch.TimeSlots, Prices: patch.Prices}); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	set := bson.M{"configId": models.GlobalConfigID, "updatedAt": time.Now()}
	if patch.TimeSlots != nil {
		set["timeSlots"] = patch.TimeSlots
	}
	if patch.Prices != nil {
		set["prices"] = patch.Prices
	}

	filter := bson.M{"configId": models.GlobalConfigID}
	opts := options.Update().SetUpsert(true)
	if _, err := db.ServicesCollection.UpdateOne(context.TODO(), filter, bson.M{"$set": set}, opts); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save services config")
		return
	}

	mq.Emit(r.Context(), mq.Event{Name: "services-config-updated"})
	utils.SendResponse(w, http.StatusOK, nil, "Services config updated", nil)
}
