package httpserver

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"concierge/internal/domain"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// report JSON names rather than Go field names
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

type bookingIn struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Location  string `json:"location" validate:"required,max=200"`
	PartyType string `json:"party_type" validate:"required,oneof=couple family friends business"`
}

type preferencesIn struct {
	BudgetTier string   `json:"budget_tier" validate:"omitempty,oneof=$ $$ $$$"`
	Interests  []string `json:"interests" validate:"max=20,dive,max=40"`
	Mobility   *string  `json:"mobility" validate:"omitempty,max=40"`
	Dietary    *string  `json:"dietary" validate:"omitempty,max=40"`
}

// planRequest is the body of POST /v1/plans.
type planRequest struct {
	Booking     bookingIn     `json:"booking" validate:"required"`
	Preferences preferencesIn `json:"preferences"`
	Ask         *string       `json:"ask" validate:"omitempty,max=1000"`
}

// toDomain validates r and converts it. Every failure wraps domain.ErrInvalidRequest.
// maxDays bounds the trip length as in domain.Booking.Validate.
func (r planRequest) toDomain(maxDays int) (domain.TripRequest, error) {
	if err := getValidator().Struct(r); err != nil {
		return domain.TripRequest{}, fmt.Errorf("%w: %s", domain.ErrInvalidRequest, describe(err))
	}
	start, _ := time.Parse(domain.DateLayout, r.Booking.StartDate)
	end, _ := time.Parse(domain.DateLayout, r.Booking.EndDate)

	tier := domain.PriceTier(r.Preferences.BudgetTier)
	if tier == "" {
		tier = domain.TierMid
	}
	out := domain.TripRequest{
		Booking: domain.Booking{
			StartDate: start,
			EndDate:   end,
			Location:  strings.TrimSpace(r.Booking.Location),
			PartyType: domain.PartyType(r.Booking.PartyType),
		},
		Preferences: domain.Preferences{
			BudgetTier: tier,
			Interests:  domain.NormalizeTags(r.Preferences.Interests),
			Mobility:   domain.NormalizeMobility(deref(r.Preferences.Mobility)),
			Dietary:    deref(r.Preferences.Dietary),
		},
		Ask: deref(r.Ask),
	}
	if err := out.Booking.Validate(maxDays); err != nil {
		return domain.TripRequest{}, err
	}
	return out, nil
}

func describe(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		field := strings.TrimPrefix(fe.Namespace(), "planRequest.")
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
		case "datetime":
			msgs = append(msgs, field+" must be a date (YYYY-MM-DD)")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
