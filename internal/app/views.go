package app

import "concierge/internal/domain"

type ActivityCard struct {
	Title              string     `json:"title"`
	Address            string     `json:"address"`
	Geo                [2]float64 `json:"geo"`
	PriceTier          string     `json:"price_tier"`
	DurationMinutes    int        `json:"duration_minutes"`
	Tags               []string   `json:"tags"`
	WheelchairFriendly bool       `json:"wheelchair_friendly"`
	ChildFriendly      bool       `json:"child_friendly"`
}

type RestaurantCard struct {
	Title     string     `json:"title"`
	Address   string     `json:"address"`
	Geo       [2]float64 `json:"geo"`
	PriceTier string     `json:"price_tier"`
	Tags      []string   `json:"tags"`
}

type DayBlock struct {
	Morning   []ActivityCard `json:"morning"`
	Afternoon []ActivityCard `json:"afternoon"`
	Evening   []ActivityCard `json:"evening"`
}

type DayPlanView struct {
	Date   string   `json:"date"`
	Blocks DayBlock `json:"blocks"`
}

type PlanResponse struct {
	Itinerary        []DayPlanView    `json:"itinerary"`
	Restaurants      []RestaurantCard `json:"restaurants"`
	PackingChecklist []string         `json:"packing_checklist"`
	WeatherSummary   string           `json:"weather_summary"`
	Notes            string           `json:"notes,omitempty"`
}

// PlanEnvelope is what POST /v1/plans and GET /v1/plans/{id} return.
type PlanEnvelope struct {
	RunID  string       `json:"run_id,omitempty"`
	Output PlanResponse `json:"output"`
}

func NewPlanResponse(p domain.Plan) PlanResponse {
	out := PlanResponse{
		Itinerary:        make([]DayPlanView, 0, len(p.Itinerary)),
		Restaurants:      make([]RestaurantCard, 0, len(p.Restaurants)),
		PackingChecklist: p.PackingChecklist,
		WeatherSummary:   p.WeatherSummary,
		Notes:            p.Notes,
	}
	if out.PackingChecklist == nil {
		out.PackingChecklist = []string{}
	}
	for _, d := range p.Itinerary {
		out.Itinerary = append(out.Itinerary, DayPlanView{
			Date: d.Date.Format(domain.DateLayout),
			Blocks: DayBlock{
				Morning:   activityCards(d.Blocks.Morning),
				Afternoon: activityCards(d.Blocks.Afternoon),
				Evening:   activityCards(d.Blocks.Evening),
			},
		})
	}
	for _, r := range p.Restaurants {
		out.Restaurants = append(out.Restaurants, RestaurantCard{
			Title:     r.Title,
			Address:   r.Address,
			Geo:       [2]float64{r.Geo.Lat, r.Geo.Lon},
			PriceTier: string(r.PriceTier),
			Tags:      nonNilTags(r.Tags),
		})
	}
	return out
}

func activityCards(cs []domain.Candidate) []ActivityCard {
	out := make([]ActivityCard, 0, len(cs))
	for _, c := range cs {
		out = append(out, ActivityCard{
			Title:              c.Title,
			Address:            c.Address,
			Geo:                [2]float64{c.Geo.Lat, c.Geo.Lon},
			PriceTier:          string(c.PriceTier),
			DurationMinutes:    c.DurationMinutes,
			Tags:               nonNilTags(c.Tags),
			WheelchairFriendly: c.WheelchairFriendly,
			ChildFriendly:      c.ChildFriendly,
		})
	}
	return out
}

func nonNilTags(t []string) []string {
	if t == nil {
		return []string{}
	}
	return t
}
