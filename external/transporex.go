package external

import (
	"encoding/json"
	"strings"

	"ratehub/external/interfaces"
	"ratehub/internal/schema"
)

// Transporex serves door-to-port trucking quotes for the precarriage leg.

type TransporexRateResponse struct {
	Quotes []TransporexQuote `json:"quotes"`
}

type TransporexQuote struct {
	QuoteID     string              `json:"quoteId"`
	CertNo      string              `json:"certNo"`
	HaulageMode string              `json:"haulageMode"`
	PickupCity  string              `json:"pickupCity"`
	LoadingPort string              `json:"loadingPort"`
	Haulier     string              `json:"haulier"`
	Currency    string              `json:"currency"`
	BoxRates    []TransporexBoxRate `json:"boxRates"`
	FlatAmount  string              `json:"flatAmount"`
	ValidUntil  string              `json:"validUntil"`
	TransitDays int                 `json:"transitDays"`
}

type TransporexBoxRate struct {
	EquipmentType string `json:"equipmentType"`
	Amount        string `json:"amount"`
}

func (t *TransporexRateResponse) RateHeaderParams(args *interfaces.RateArgs) interfaces.HeaderParams {
	if args.Query.Route == "" {
		// Trucking quotes need a pickup region; without one there is
		// nothing to ask the vendor for.
		return interfaces.HeaderParams{}
	}
	headers := map[string]string{
		"Authorization": "Bearer " + *args.Env.TransporexToken,
		"Accept":        "application/json",
	}
	params := map[string]string{
		"pickup":      args.Query.Route,
		"loadingPort": args.Query.DeparturePort,
	}
	return interfaces.HeaderParams{Headers: headers, Params: params}
}

func (t *TransporexRateResponse) GenerateRates(responseJson []byte) ([]*schema.PrecarriageRate, error) {
	var response TransporexRateResponse
	if err := json.Unmarshal(responseJson, &response); err != nil {
		return nil, err
	}

	rates := make([]*schema.PrecarriageRate, 0, len(response.Quotes))
	for _, quote := range response.Quotes {
		prices := make(schema.PriceTable, len(quote.BoxRates))
		for _, boxRate := range quote.BoxRates {
			containerType := schema.ContainerType(strings.ToUpper(boxRate.EquipmentType))
			if containerType.Valid() {
				prices[containerType] = boxRate.Amount
			}
		}

		kind, _ := HaulageModeLabel(quote.HaulageMode)

		rates = append(rates, &schema.PrecarriageRate{
			ID:          quote.QuoteID,
			CertNo:      quote.CertNo,
			Kind:        kind,
			Origin:      quote.PickupCity,
			Destination: quote.LoadingPort,
			Vendor:      quote.Haulier,
			Currency:    quote.Currency,
			Prices:      prices,
			FlatPrice:   quote.FlatAmount,
			ValidTo:     ConvertDateFormat(&quote.ValidUntil, "2006-01-02T15:04:05Z07:00"),
			TransitDays: quote.TransitDays,
		})
	}
	return rates, nil
}
