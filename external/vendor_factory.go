package external

import (
	"net/http"
	"time"

	"ratehub/external/interfaces"
	"ratehub/internal/schema"
	env "ratehub/internal/secret"
)

// RateServiceFactory wires each leg of the journey to its rate vendor.
// Every service shares the caching HTTP client, with a cache namespace per
// vendor so one vendor's expiry never evicts another's.
type RateServiceFactory struct {
	precarriage *interfaces.RateService[[]*schema.PrecarriageRate]
	mainline    *interfaces.RateService[[]*schema.MainlineRate]
	oncarriage  *interfaces.RateService[[]*schema.OncarriageRate]
}

func NewRateServiceFactory(e *env.Manager) *RateServiceFactory {
	return &RateServiceFactory{
		precarriage: &interfaces.RateService[[]*schema.PrecarriageRate]{
			RateConfig: interfaces.RateConfig{
				RateURL:    *e.TransporexURL,
				Method:     http.MethodGet,
				RateExpiry: 2 * time.Hour,
				Namespace:  "transporex rates",
			},
			RateProvider: &TransporexRateResponse{},
		},
		mainline: &interfaces.RateService[[]*schema.MainlineRate]{
			RateConfig: interfaces.RateConfig{
				RateURL:    *e.OceanlinkURL,
				Method:     http.MethodGet,
				RateExpiry: 1 * time.Hour,
				Namespace:  "oceanlink rates",
			},
			RateProvider: &OceanlinkRateResponse{},
		},
		oncarriage: &interfaces.RateService[[]*schema.OncarriageRate]{
			RateConfig: interfaces.RateConfig{
				RateURL:    *e.DraymateURL,
				Method:     http.MethodGet,
				RateExpiry: 2 * time.Hour,
				Namespace:  "draymate rates",
			},
			RateProvider: &DraymateRateResponse{},
		},
	}
}

func (f *RateServiceFactory) PrecarriageService() *interfaces.RateService[[]*schema.PrecarriageRate] {
	return f.precarriage
}

func (f *RateServiceFactory) MainlineService() *interfaces.RateService[[]*schema.MainlineRate] {
	return f.mainline
}

func (f *RateServiceFactory) OncarriageService() *interfaces.RateService[[]*schema.OncarriageRate] {
	return f.oncarriage
}
