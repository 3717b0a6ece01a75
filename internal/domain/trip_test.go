package domain_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"concierge/internal/domain"
)

func date(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBooking_DaysInclusive(t *testing.T) {
	b := domain.Booking{StartDate: date("2025-03-30"), EndDate: date("2025-04-02"), Location: "Boston, MA"}
	days := b.Days()
	if len(days) != 4 {
		t.Fatalf("expected 4 days, got %d", len(days))
	}
	if got := days[3].Format(domain.DateLayout); got != "2025-04-02" {
		t.Fatalf("last day: %s", got)
	}

	single := domain.Booking{StartDate: date("2025-01-01"), EndDate: date("2025-01-01"), Location: "x"}
	if n := len(single.Days()); n != 1 {
		t.Fatalf("single-day booking should have 1 day, got %d", n)
	}
}

func TestBooking_ValidateEndBeforeStart(t *testing.T) {
	b := domain.Booking{StartDate: date("2025-05-02"), EndDate: date("2025-05-01"), Location: "Austin, TX"}
	if err := b.Validate(0); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	b.Location = ""
	b.EndDate = date("2025-05-03")
	if err := b.Validate(0); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for empty location, got %v", err)
	}
}

func TestBooking_ValidateTooLong(t *testing.T) {
	b := domain.Booking{StartDate: date("2025-07-01"), EndDate: date("2025-07-30"), Location: "Austin, TX"}
	if err := b.Validate(0); err != nil {
		t.Fatalf("30 days should pass the default limit: %v", err)
	}
	b.EndDate = date("2025-07-31")
	if err := b.Validate(0); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("31 days: expected ErrInvalidRequest, got %v", err)
	}
	if err := b.Validate(31); err != nil {
		t.Fatalf("configured limit not honored: %v", err)
	}

	huge := domain.Booking{StartDate: date("1000-01-01"), EndDate: date("9999-12-31"), Location: "Austin, TX"}
	if err := huge.Validate(365); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("millennia-long trip accepted: %v", err)
	}
}

func TestPreferences_ApplyNormalizesMobility(t *testing.T) {
	up := " Wheelchair "
	if got := (domain.Preferences{}).Apply(domain.PreferenceOverride{Mobility: &up}); got.Mobility != "wheelchair" {
		t.Fatalf("override mobility not normalized: %q", got.Mobility)
	}
	if got := (domain.Preferences{Mobility: "STROLLER"}).Apply(domain.PreferenceOverride{}); got.Mobility != "stroller" {
		t.Fatalf("stored mobility not normalized: %q", got.Mobility)
	}
}

func TestPreferences_ApplyKeepsStoredFields(t *testing.T) {
	stored := domain.Preferences{BudgetTier: "$$$", Interests: []string{"art"}, Mobility: "wheelchair", Dietary: "vegan"}

	same := stored.Apply(domain.PreferenceOverride{})
	if !reflect.DeepEqual(same, stored) {
		t.Fatalf("empty override changed preferences: %+v", same)
	}

	empty := ""
	diet := "halal"
	got := stored.Apply(domain.PreferenceOverride{Mobility: &empty, Dietary: &diet, Interests: []string{"museum"}})
	if got.Mobility != "wheelchair" {
		t.Fatalf("empty mobility must not clear stored value, got %q", got.Mobility)
	}
	if got.Dietary != "halal" || !reflect.DeepEqual(got.Interests, []string{"museum"}) {
		t.Fatalf("override not applied: %+v", got)
	}
}

func TestPreferences_ApplyNormalizesTier(t *testing.T) {
	bad := "cheap"
	got := domain.Preferences{BudgetTier: "$"}.Apply(domain.PreferenceOverride{BudgetTier: &bad})
	if got.BudgetTier != domain.TierMid {
		t.Fatalf("expected $$ fallback, got %q", got.BudgetTier)
	}
}

func TestNormalizeTier(t *testing.T) {
	cases := []struct {
		raw  string
		def  domain.PriceTier
		want domain.PriceTier
	}{
		{"$", domain.TierHigh, domain.TierLow},
		{" $$$ ", domain.TierLow, domain.TierHigh},
		{"$$$$", domain.TierLow, domain.TierLow},
		{"", "bogus", domain.TierMid},
	}
	for _, c := range cases {
		if got := domain.NormalizeTier(c.raw, c.def); got != c.want {
			t.Errorf("NormalizeTier(%q,%q)=%q want %q", c.raw, c.def, got, c.want)
		}
	}
}

func TestTagsAndCityKey(t *testing.T) {
	got := domain.SplitTags(" Museum,art,,museum , ART")
	if !reflect.DeepEqual(got, []string{"art", "museum"}) {
		t.Fatalf("SplitTags: %v", got)
	}
	if k := domain.CityKey("San Francisco, CA"); k != "San Francisco" {
		t.Fatalf("CityKey: %q", k)
	}
	if k := domain.CityKey(" Paris "); k != "Paris" {
		t.Fatalf("CityKey without comma: %q", k)
	}
}
