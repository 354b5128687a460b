package handlers

import (
	"strings"
	"time"

	"ratehub/internal/schema"
)

type MainlineFilterOption func(*schema.MainlineRate, *schema.RateQueryParams) bool

func WithCarrier() MainlineFilterOption {
	return func(rate *schema.MainlineRate, query *schema.RateQueryParams) bool {
		if query.Carrier != "" {
			return strings.EqualFold(rate.Carrier, query.Carrier)
		}
		return true
	}
}

func WithTransitType() MainlineFilterOption {
	return func(rate *schema.MainlineRate, query *schema.RateQueryParams) bool {
		if query.TransitType == schema.Direct || query.TransitType == schema.Transit {
			return rate.TransitType == query.TransitType
		}
		return true
	}
}

func WithTransitPort() MainlineFilterOption {
	return func(rate *schema.MainlineRate, query *schema.RateQueryParams) bool {
		if query.TransitPort != "" {
			return strings.EqualFold(rate.TransitPort, query.TransitPort)
		}
		return true
	}
}

// WithinValidity drops offers whose validity window does not cover the
// requested departure date (today when no date was given).
func WithinValidity(now time.Time) MainlineFilterOption {
	layout := "2006-01-02"
	return func(rate *schema.MainlineRate, query *schema.RateQueryParams) bool {
		reference := query.StartDate
		if reference == "" {
			reference = now.Format(layout)
		}
		day, err := time.Parse(layout, reference)
		if err != nil {
			return true
		}
		from, errFrom := time.Parse(layout, rate.ValidFrom)
		to, errTo := time.Parse(layout, rate.ValidTo)
		if errFrom != nil || errTo != nil {
			return false
		}
		return !day.Before(from) && !day.After(to)
	}
}

func MainlineFilters(opts ...MainlineFilterOption) MainlineFilterOption {
	return func(rate *schema.MainlineRate, query *schema.RateQueryParams) bool {
		result := true
		for _, opt := range opts {
			result = result && opt(rate, query)
		}
		return result
	}
}
