package app

import "strings"

const (
	MobilityWheelchair  = "wheelchair"
	MobilityNoLongHikes = "no-long-hikes"
	MobilityStroller    = "stroller"

	maxNoHikeMinutes = 120
)

// InterestMatch is true when interests is empty or shares at least one tag with tags.
func InterestMatch(tags, interests []string) bool {
	wants := make(map[string]struct{}, len(interests))
	for _, i := range interests {
		if i = strings.ToLower(strings.TrimSpace(i)); i != "" {
			wants[i] = struct{}{}
		}
	}
	if len(wants) == 0 {
		return true
	}
	for _, t := range tags {
		if _, ok := wants[strings.ToLower(strings.TrimSpace(t))]; ok {
			return true
		}
	}
	return false
}

// MobilityOK applies the hard mobility constraints; unknown tags impose none.
func MobilityOK(mobility string, wheelchair bool, durationMinutes int) bool {
	switch strings.ToLower(strings.TrimSpace(mobility)) {
	case MobilityWheelchair:
		return wheelchair
	case MobilityNoLongHikes:
		return durationMinutes <= maxNoHikeMinutes
	}
	return true
}
