package models

// Service describes one bookable grooming service.
type Service struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Services is the fixed catalog. Unknown service ids in stored bookings
// are ignored by the aggregators, not errored.
var Services = []Service{
	{ID: "bath", Icon: "💦", Title: "Bath & Deep Clean", Description: "Full wash with coat-appropriate shampoo and deodorising rinse"},
	{ID: "groom", Icon: "✂️", Title: "Haircut & Styling", Description: "Standard trim or a custom style on request"},
	{ID: "nail", Icon: "🐾", Title: "Nail Trim & Paw Care", Description: "Nail clipping and paw pad cleaning"},
	{ID: "combo", Icon: "🎀", Title: "Bath & Grooming Combo", Description: "Bath, haircut and overall tidy-up in one visit"},
}

// ServiceTitle returns the catalog title for a service id, falling back
// to the id itself for unknown values.
func ServiceTitle(id string) string {
	for _, s := range Services {
		if s.ID == id {
			return s.Title
		}
	}
	return id
}

// KnownService reports whether id is in the fixed catalog.
func KnownService(id string) bool {
	for _, s := range Services {
		if s.ID == id {
			return true
		}
	}
	return false
}

// DefaultTimeSlots is the template slot list used until an admin saves
// a global or per-day configuration.
var DefaultTimeSlots = []string{
	"10:00", "10:30", "11:00", "11:30", "12:00", "12:30",
	"13:00", "13:30", "14:00", "14:30", "15:00", "15:30",
	"16:00", "16:30", "17:00", "17:30", "18:00",
}

// DefaultPrices holds the fallback price per service id.
var DefaultPrices = map[string]int{
	"bath":  350,
	"groom": 450,
	"nail":  150,
	"combo": 650,
}
