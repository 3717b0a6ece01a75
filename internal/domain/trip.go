package domain

import (
	"fmt"
	"strings"
	"time"
)

type PartyType string

const (
	PartyCouple   PartyType = "couple"
	PartyFamily   PartyType = "family"
	PartyFriends  PartyType = "friends"
	PartyBusiness PartyType = "business"
)

const DateLayout = "2006-01-02"

// DefaultMaxTripDays bounds a booking when no limit is configured.
const DefaultMaxTripDays = 30

type Booking struct {
	StartDate time.Time
	EndDate   time.Time
	Location  string
	PartyType PartyType
}

// Validate rejects bookings that can never produce an itinerary or that span
// more than maxDays days. maxDays <= 0 means DefaultMaxTripDays.
func (b Booking) Validate(maxDays int) error {
	if strings.TrimSpace(b.Location) == "" {
		return fmt.Errorf("%w: location is required", ErrInvalidRequest)
	}
	if b.StartDate.IsZero() || b.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidRequest)
	}
	if day(b.EndDate).Before(day(b.StartDate)) {
		return fmt.Errorf("%w: end date %s is before start date %s",
			ErrInvalidRequest, b.EndDate.Format(DateLayout), b.StartDate.Format(DateLayout))
	}
	if maxDays <= 0 {
		maxDays = DefaultMaxTripDays
	}
	if n := b.span(); n > maxDays {
		return fmt.Errorf("%w: trip spans %d days, at most %d allowed", ErrInvalidRequest, n, maxDays)
	}
	return nil
}

// span counts days without materializing them. Sub saturates past ~292 years,
// which still exceeds any sane limit.
func (b Booking) span() int {
	return int(day(b.EndDate).Sub(day(b.StartDate)).Hours()/24) + 1
}

// Days lists every calendar day of the booking, both ends included.
func (b Booking) Days() []time.Time {
	start, end := day(b.StartDate), day(b.EndDate)
	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type Preferences struct {
	BudgetTier PriceTier
	Interests  []string
	Mobility   string
	Dietary    string
}

// PreferenceOverride is a partial record extracted from free text.
// Nil or empty fields keep the stored preference.
type PreferenceOverride struct {
	BudgetTier *string
	Interests  []string
	Mobility   *string
	Dietary    *string
}

func (o PreferenceOverride) IsEmpty() bool {
	return o.BudgetTier == nil && len(o.Interests) == 0 && o.Mobility == nil && o.Dietary == nil
}

// Apply merges o over p field by field and normalizes the budget tier.
func (p Preferences) Apply(o PreferenceOverride) Preferences {
	out := p
	if o.BudgetTier != nil && strings.TrimSpace(*o.BudgetTier) != "" {
		out.BudgetTier = PriceTier(strings.TrimSpace(*o.BudgetTier))
	}
	if len(o.Interests) > 0 {
		out.Interests = append([]string(nil), o.Interests...)
	}
	if o.Mobility != nil && strings.TrimSpace(*o.Mobility) != "" {
		out.Mobility = *o.Mobility
	}
	if o.Dietary != nil && strings.TrimSpace(*o.Dietary) != "" {
		out.Dietary = strings.TrimSpace(*o.Dietary)
	}
	out.BudgetTier = NormalizeTier(string(out.BudgetTier), TierMid)
	out.Mobility = NormalizeMobility(out.Mobility)
	return out
}

// NormalizeMobility trims and lowercases a mobility tag.
func NormalizeMobility(raw string) string { return strings.ToLower(strings.TrimSpace(raw)) }

type TripRequest struct {
	Booking     Booking
	Preferences Preferences
	Ask         string // optional free text
}

type Blocks struct {
	Morning   []Candidate
	Afternoon []Candidate
	Evening   []Candidate
}

func (b Blocks) Len() int { return len(b.Morning) + len(b.Afternoon) + len(b.Evening) }

type DayPlan struct {
	Date   time.Time
	Blocks Blocks
}

type Event struct {
	Name  string
	URL   string
	Tags  []string
	Start *time.Time
}

// Forecast holds daily series as returned by the weather provider; missing values are 0.
type Forecast struct {
	MaxTempC   []float64
	MinTempC   []float64
	PrecipProb []float64
}

func (f Forecast) Empty() bool { return len(f.MaxTempC) == 0 || len(f.MinTempC) == 0 }

// Plan is the result of one plan-building run.
type Plan struct {
	Itinerary        []DayPlan
	Restaurants      []Candidate
	PackingChecklist []string
	WeatherSummary   string
	Notes            string
}

// PlanRun is the persisted log of one plan request.
type PlanRun struct {
	ID             string
	Booking        Booking
	Preferences    Preferences
	UserQuery      string
	WeatherSummary string
	ResultJSON     []byte
	CreatedAt      time.Time
}
