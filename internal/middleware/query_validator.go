package middleware

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"

	"ratehub/internal/exceptions"
	"ratehub/internal/schema"
)

type queryContextKey string

const RateQueryParamsKey queryContextKey = "rateQueryParams"

// allowedParams creates a map of valid JSON field tags for a given struct.
func allowedParams(schemaStruct interface{}) map[string]struct{} {
	val := reflect.ValueOf(schemaStruct)
	jsonTags := make(map[string]struct{}, val.Type().NumField())
	for i := 0; i < val.Type().NumField(); i++ {
		if tag := val.Type().Field(i).Tag.Get("json"); tag != "" {
			jsonTags[strings.Split(tag, ",")[0]] = struct{}{}
		}
	}
	return jsonTags
}

// validateQueryParams checks if query parameters are allowed for a given schema.
func validateQueryParams(w http.ResponseWriter, query map[string][]string, schemaStruct interface{}) bool {
	allowed := allowedParams(schemaStruct)
	for param := range query {
		if _, ok := allowed[param]; !ok {
			err := fmt.Errorf("invalid parameter: %s", param)
			log.Error(err)
			exceptions.RequestErrorHandler(w, err)
			return false
		}
	}
	return true
}

// validateStruct validates a struct and returns formatted error if validation fails.
func validateStruct(w http.ResponseWriter, params interface{}) bool {
	if err := schema.RequestValidate.Struct(params); err != nil {
		for _, e := range err.(validator.ValidationErrors) {
			invalidQuery := fmt.Errorf("invalid field value in '%s': %v", e.Field(), e.Value())
			exceptions.RequestErrorHandler(w, invalidQuery)
			return false
		}
	}
	return true
}

// parseSelections decodes repeated "containers" values of the form TYPE or
// TYPE:COUNT, e.g. containers=20GP:2&containers=40HC.
func parseSelections(raw []string) ([]schema.ContainerSelection, error) {
	selections := make([]schema.ContainerSelection, 0, len(raw))
	for _, entry := range raw {
		parts := strings.SplitN(entry, ":", 2)
		count := 1
		if len(parts) == 2 {
			parsed, err := strconv.Atoi(parts[1])
			if err != nil {
				return nil, fmt.Errorf("invalid container count in %q", entry)
			}
			count = parsed
		}
		selections = append(selections, schema.ContainerSelection{
			Type:  schema.ContainerType(strings.ToUpper(parts[0])),
			Count: count,
		})
	}
	return selections, nil
}

func parseServiceFlags(raw string) schema.ServiceFlags {
	if raw == "" {
		return schema.ServiceFlags{Mainline: true}
	}
	var flags schema.ServiceFlags
	for _, leg := range strings.Split(raw, ",") {
		switch strings.TrimSpace(leg) {
		case "precarriage":
			flags.Precarriage = true
		case "mainline":
			flags.Mainline = true
		case "lastmile", "oncarriage":
			flags.Oncarriage = true
		}
	}
	return flags
}

// RateQueryValidation validates query parameters for rate-search requests and
// stores the decoded criteria in the request context.
func RateQueryValidation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if !validateQueryParams(w, query, schema.RateQueryParams{}) {
			return
		}

		selections, err := parseSelections(query["containers"])
		if err != nil {
			log.Error(err)
			exceptions.RequestErrorHandler(w, err)
			return
		}

		weight, _ := strconv.ParseFloat(query.Get("weight"), 64)
		volume, _ := strconv.ParseFloat(query.Get("volume"), 64)

		requestParams := schema.RateQueryParams{
			TransitType:   schema.TransitType(query.Get("transitType")),
			Route:         query.Get("route"),
			DeparturePort: query.Get("departurePort"),
			DischargePort: query.Get("dischargePort"),
			TransitPort:   query.Get("transitPort"),
			Carrier:       query.Get("shipCompany"),
			ServiceTerm:   schema.ServiceTerm(query.Get("serviceTerms")),
			CargoMode:     schema.CargoMode(query.Get("cargoType")),
			Selections:    selections,
			Weight:        weight,
			Volume:        volume,
			Flags:         parseServiceFlags(query.Get("services")),
			StartDate:     query.Get("startDate"),
		}

		if !validateStruct(w, requestParams) {
			return
		}

		ctx := context.WithValue(r.Context(), RateQueryParamsKey, requestParams)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
