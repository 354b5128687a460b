package external

import (
	"encoding/json"
	"strings"

	"ratehub/external/interfaces"
	"ratehub/internal/schema"
)

// Oceanlink serves spot ocean freight offers per port pair.

type OceanlinkRateResponse struct {
	RequestRef string           `json:"requestRef"`
	Offers     []OceanlinkOffer `json:"offers"`
}

type OceanlinkOffer struct {
	ContractNo        string             `json:"contractNo"`
	CarrierCode       string             `json:"carrierCode"`
	PortOfLoading     string             `json:"portOfLoading"`
	PortOfDischarge   string             `json:"portOfDischarge"`
	TransitPort       *string            `json:"transitPort"`
	Routing           string             `json:"routing"`
	Currency          string             `json:"currency"`
	BoxRates          []OceanlinkBoxRate `json:"boxRates"`
	ValidFrom         string             `json:"validFrom"`
	ValidTo           string             `json:"validTo"`
	Etd               string             `json:"etd"`
	Eta               string             `json:"eta"`
	TransitTime       int                `json:"transitTime"`
	FreeDetentionDays int                `json:"freeDetentionDays"`
	FreeStorageDays   int                `json:"freeStorageDays"`
}

type OceanlinkBoxRate struct {
	EquipmentType string `json:"equipmentType"`
	Amount        string `json:"amount"`
}

func (o *OceanlinkRateResponse) RateHeaderParams(args *interfaces.RateArgs) interfaces.HeaderParams {
	headers := map[string]string{
		"Authorization": "Bearer " + *args.Env.OceanlinkToken,
		"Accept":        "application/json",
	}
	params := map[string]string{
		"pol":       args.Query.DeparturePort,
		"pod":       args.Query.DischargePort,
		"startDate": args.Query.StartDate,
	}
	if args.Query.Carrier != "" {
		params["carrier"] = args.Query.Carrier
	}
	if args.Query.TransitType == schema.Direct {
		params["routing"] = "DIRECT"
	}
	return interfaces.HeaderParams{Headers: headers, Params: params}
}

func (o *OceanlinkRateResponse) GenerateRates(responseJson []byte) ([]*schema.MainlineRate, error) {
	var response OceanlinkRateResponse
	if err := json.Unmarshal(responseJson, &response); err != nil {
		return nil, err
	}

	rates := make([]*schema.MainlineRate, 0, len(response.Offers))
	for _, offer := range response.Offers {
		prices := make(schema.PriceTable, len(offer.BoxRates))
		for _, boxRate := range offer.BoxRates {
			containerType := schema.ContainerType(strings.ToUpper(boxRate.EquipmentType))
			if containerType.Valid() {
				prices[containerType] = boxRate.Amount
			}
		}

		transitType := schema.Transit
		if strings.EqualFold(offer.Routing, "DIRECT") {
			transitType = schema.Direct
		}
		transitPort := ""
		if offer.TransitPort != nil {
			transitPort = *offer.TransitPort
		}

		etd := ConvertDateFormat(&offer.Etd, "2006-01-02T15:04:05Z07:00")
		eta := ConvertDateFormat(&offer.Eta, "2006-01-02T15:04:05Z07:00")
		transitDays := offer.TransitTime
		if transitDays == 0 {
			transitDays = CalculateTransitDays(&etd, &eta)
		}

		rates = append(rates, &schema.MainlineRate{
			CertNo:          offer.ContractNo,
			DeparturePort:   offer.PortOfLoading,
			DischargePort:   offer.PortOfDischarge,
			Carrier:         offer.CarrierCode,
			TransitPort:     transitPort,
			TransitType:     transitType,
			Prices:          prices,
			Currency:        offer.Currency,
			ValidFrom:       ConvertDateFormat(&offer.ValidFrom, "2006-01-02T15:04:05Z07:00"),
			ValidTo:         ConvertDateFormat(&offer.ValidTo, "2006-01-02T15:04:05Z07:00"),
			Etd:             etd,
			Eta:             eta,
			TransitDays:     transitDays,
			FreeBoxDays:     offer.FreeDetentionDays,
			FreeStorageDays: offer.FreeStorageDays,
		})
	}
	return rates, nil
}
