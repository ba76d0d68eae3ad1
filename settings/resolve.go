package settings

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"groombook/db"
	"groombook/models"
	"groombook/schedule"
)

// EffectiveDay is the resolved configuration the booking page works
// from: day override beats the global template beats the built-in
// defaults, field by field.
type EffectiveDay struct {
	DateKey   string         `json:"dateKey"`
	IsClosed  bool           `json:"isClosed"`
	TimeSlots []string       `json:"timeSlots"`
	Prices    map[string]int `json:"prices"`
}

func resolveDay(dateKey string, day *models.DayConfig, global *models.ServicesConfig) EffectiveDay {
	eff := EffectiveDay{
		DateKey:   dateKey,
		TimeSlots: append([]string{}, models.DefaultTimeSlots...),
		Prices:    map[string]int{},
	}
	for id, price := range models.DefaultPrices {
		eff.Prices[id] = price
	}

	if global != nil {
		if len(global.TimeSlots) > 0 {
			eff.TimeSlots = append([]string{}, global.TimeSlots...)
		}
		for id, price := range global.Prices {
			eff.Prices[id] = price
		}
	}

	if day != nil {
		eff.IsClosed = day.IsClosed
		switch {
		case len(day.TimeSlots) > 0:
			eff.TimeSlots = append([]string{}, day.TimeSlots...)
		case day.StartTime != "" && day.EndTime != "" && day.IntervalMinutes > 0:
			eff.TimeSlots = schedule.BuildSlots(day.StartTime, day.EndTime, day.IntervalMinutes)
		}
		for id, price := range day.Prices {
			eff.Prices[id] = price
		}
	}
	return eff
}

// LoadEffectiveDay fetches the day override and the global template and
// resolves them. Missing documents are not errors, the defaults cover
// them.
func LoadEffectiveDay(ctx context.Context, dateKey string) (EffectiveDay, error) {
	var day *models.DayConfig
	var dayDoc models.DayConfig
	err := db.DayConfigCollection.FindOne(ctx, bson.M{"dateKey": dateKey}).Decode(&dayDoc)
	if err == nil {
		day = &dayDoc
	} else if err != mongo.ErrNoDocuments {
		return EffectiveDay{}, err
	}

	global, err := loadGlobalConfig(ctx)
	if err != nil {
		return EffectiveDay{}, err
	}
	return resolveDay(dateKey, day, global), nil
}

func loadGlobalConfig(ctx context.Context) (*models.ServicesConfig, error) {
	var cfg models.ServicesConfig
	err := db.ServicesCollection.FindOne(ctx, bson.M{"configId": models.GlobalConfigID}).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
