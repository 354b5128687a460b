package external

import (
	"encoding/json"
	"strings"

	"ratehub/external/interfaces"
	"ratehub/internal/schema"
)

// Draymate serves port-to-door delivery quotes for the last mile leg.

type DraymateRateResponse struct {
	Deliveries []DraymateDelivery `json:"deliveries"`
}

type DraymateDelivery struct {
	DeliveryID    string            `json:"deliveryId"`
	CertNo        string            `json:"certNo"`
	PortCode      string            `json:"portCode"`
	AddressType   string            `json:"addressType"`
	ZipCode       string            `json:"zipCode"`
	Address       string            `json:"address"`
	WarehouseCode *string           `json:"warehouseCode"`
	Agent         string            `json:"agent"`
	Currency      string            `json:"currency"`
	BoxRates      []DraymateBoxRate `json:"boxRates"`
	FlatAmount    string            `json:"flatAmount"`
	ValidFrom     string            `json:"validFrom"`
	ValidTo       string            `json:"validTo"`
	Remark        string            `json:"remark"`
	Status        string            `json:"status"`
	TransitDays   int               `json:"transitDays"`
}

type DraymateBoxRate struct {
	EquipmentType string `json:"equipmentType"`
	Amount        string `json:"amount"`
}

func (d *DraymateRateResponse) RateHeaderParams(args *interfaces.RateArgs) interfaces.HeaderParams {
	headers := map[string]string{
		"Authorization": "Bearer " + *args.Env.DraymateToken,
		"Accept":        "application/json",
	}
	params := map[string]string{
		"dischargePort": args.Query.DischargePort,
	}
	return interfaces.HeaderParams{Headers: headers, Params: params}
}

func (d *DraymateRateResponse) GenerateRates(responseJson []byte) ([]*schema.OncarriageRate, error) {
	var response DraymateRateResponse
	if err := json.Unmarshal(responseJson, &response); err != nil {
		return nil, err
	}

	rates := make([]*schema.OncarriageRate, 0, len(response.Deliveries))
	for _, delivery := range response.Deliveries {
		// Suspended quotes still come back in the payload; only the
		// active ones are offered to the console.
		if delivery.Status != "" && !strings.EqualFold(delivery.Status, "ACTIVE") {
			continue
		}
		prices := make(schema.PriceTable, len(delivery.BoxRates))
		for _, boxRate := range delivery.BoxRates {
			containerType := schema.ContainerType(strings.ToUpper(boxRate.EquipmentType))
			if containerType.Valid() {
				prices[containerType] = boxRate.Amount
			}
		}

		rates = append(rates, &schema.OncarriageRate{
			ID:            delivery.DeliveryID,
			CertNo:        delivery.CertNo,
			Origin:        delivery.PortCode,
			AddressType:   delivery.AddressType,
			ZipCode:       delivery.ZipCode,
			Address:       delivery.Address,
			WarehouseCode: delivery.WarehouseCode,
			Agent:         delivery.Agent,
			Currency:      delivery.Currency,
			Prices:        prices,
			FlatPrice:     delivery.FlatAmount,
			ValidFrom:     ConvertDateFormat(&delivery.ValidFrom, "2006-01-02T15:04:05Z07:00"),
			ValidTo:       ConvertDateFormat(&delivery.ValidTo, "2006-01-02T15:04:05Z07:00"),
			Remark:        delivery.Remark,
			Status:        delivery.Status,
			TransitDays:   delivery.TransitDays,
		})
	}
	return rates, nil
}
