package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"ratehub/internal/exceptions"
	"ratehub/internal/pricing"
	"ratehub/internal/quotation"
	"ratehub/internal/schema"
	"ratehub/internal/session"
)

// QuotationRequest carries the selected rate per enabled leg plus the
// shipment context the document prints.
type QuotationRequest struct {
	CargoMode   schema.CargoMode            `json:"cargoType"`
	Flags       schema.ServiceFlags         `json:"services"`
	Selections  []schema.ContainerSelection `json:"containers"`
	Origin      string                      `json:"origin"`
	Destination string                      `json:"destination"`
	Weight      string                      `json:"weight,omitempty"`
	Volume      string                      `json:"volume,omitempty"`
	Precarriage *schema.PrecarriageRate     `json:"precarriageRate,omitempty"`
	Mainline    *schema.MainlineRate        `json:"mainlineRate,omitempty"`
	Oncarriage  *schema.OncarriageRate      `json:"lastmileRate,omitempty"`
}

type QuotationResponse struct {
	Document *quotation.Document `json:"document"`
	Text     string              `json:"text"`
	Table    quotation.Table     `json:"table"`
}

// QuotationHandler assembles the quotation document for the selected rates
// and returns it with both renderings.
func QuotationHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request QuotationRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			exceptions.RequestErrorHandler(w, err)
			return
		}
		if request.CargoMode == "" {
			request.CargoMode = schema.FCL
		}

		sess, err := session.FromRequest(request.CargoMode, request.Flags, request.Selections)
		if err != nil {
			exceptions.MissingInputHandler(w, err)
			return
		}
		request.Selections = sess.Selections()

		sess.SelectPrecarriage(request.Precarriage)
		sess.SelectMainline(request.Mainline)
		sess.SelectOncarriage(request.Oncarriage)
		if err := sess.EnsureReady(); err != nil {
			exceptions.MissingInputHandler(w, err)
			return
		}

		legs, ok := priceSelectedLegs(w, &request)
		if !ok {
			return
		}

		meta := quotation.Meta{
			CargoMode:   request.CargoMode,
			Origin:      request.Origin,
			Destination: request.Destination,
			Weight:      request.Weight,
			Volume:      request.Volume,
		}
		document, err := quotation.Assemble(legs, request.Flags, request.Selections, meta, time.Now())
		if err != nil {
			var missing *quotation.MissingSelectionError
			if errors.As(err, &missing) {
				exceptions.MissingInputHandler(w, err)
				return
			}
			exceptions.InternalErrorHandler(w, err)
			return
		}

		response := QuotationResponse{
			Document: document,
			Text:     quotation.RenderText(document),
			Table:    quotation.RenderTable(document),
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			exceptions.InternalErrorHandler(w, err)
		}
	})
}

// priceSelectedLegs prices each leg that arrived with a rate. Validation
// failures on a rate record abort; the console never quotes off a malformed
// record.
func priceSelectedLegs(w http.ResponseWriter, request *QuotationRequest) (quotation.Legs, bool) {
	var legs quotation.Legs

	if request.Precarriage != nil {
		if err := schema.RateValidate.Struct(request.Precarriage); err != nil {
			exceptions.ValidationErrorHandler(w, err)
			return legs, false
		}
		result, err := pricing.PriceLeg(request.Precarriage, schema.Precarriage, request.Selections, request.CargoMode)
		if err != nil {
			exceptions.InternalErrorHandler(w, err)
			return legs, false
		}
		legs.Precarriage = &quotation.LegQuote{
			Party:     request.Precarriage.Vendor,
			RouteFrom: request.Precarriage.Origin,
			RouteTo:   request.Precarriage.Destination,
			Result:    result,
		}
	}

	if request.Mainline != nil {
		if err := schema.RateValidate.Struct(request.Mainline); err != nil {
			exceptions.ValidationErrorHandler(w, err)
			return legs, false
		}
		result, err := pricing.PriceLeg(request.Mainline, schema.Mainline, request.Selections, request.CargoMode)
		if err != nil {
			exceptions.InternalErrorHandler(w, err)
			return legs, false
		}
		legs.Mainline = &quotation.LegQuote{
			Party:     request.Mainline.Carrier,
			RouteFrom: request.Mainline.DeparturePort,
			RouteTo:   request.Mainline.DischargePort,
			Result:    result,
		}
	}

	if request.Oncarriage != nil {
		if err := schema.RateValidate.Struct(request.Oncarriage); err != nil {
			exceptions.ValidationErrorHandler(w, err)
			return legs, false
		}
		result, err := pricing.PriceLeg(request.Oncarriage, schema.Oncarriage, request.Selections, request.CargoMode)
		if err != nil {
			exceptions.InternalErrorHandler(w, err)
			return legs, false
		}
		legs.Oncarriage = &quotation.LegQuote{
			Party:     request.Oncarriage.Agent,
			RouteFrom: request.Oncarriage.Origin,
			RouteTo:   request.Oncarriage.Address,
			Remark:    request.Oncarriage.Remark,
			Result:    result,
		}
	}

	return legs, true
}
