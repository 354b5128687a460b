package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"ratehub/internal/combination"
	"ratehub/internal/exceptions"
	"ratehub/internal/schema"
	"ratehub/internal/session"
)

// CombinationRequest carries the matched candidate lists to enumerate.
type CombinationRequest struct {
	CargoMode     string                      `json:"cargoType"`
	Flags         schema.ServiceFlags         `json:"services"`
	Selections    []schema.ContainerSelection `json:"containers"`
	QuoteCurrency string                      `json:"quoteCurrency,omitempty"`
	Candidates    combination.Candidates      `json:"candidates"`
}

type CombinationResponse struct {
	Combinations []combination.Candidate `json:"combinations"`
	Count        int                     `json:"count"`
}

// CombinationsHandler enumerates every feasible rate combination across the
// enabled legs. The sort query parameter picks the ordering: price
// (default) or transit.
func CombinationsHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request CombinationRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			exceptions.RequestErrorHandler(w, err)
			return
		}

		mode := schema.CargoMode(request.CargoMode)
		if mode == "" {
			mode = schema.FCL
		}

		sess, err := session.FromRequest(mode, request.Flags, request.Selections)
		if err != nil {
			exceptions.MissingInputHandler(w, err)
			return
		}
		request.Selections = sess.Selections()

		enumerator := combination.NewEnumerator(request.Selections, mode)
		if request.QuoteCurrency != "" {
			enumerator.QuoteCurrency = request.QuoteCurrency
		}

		candidates, err := enumerator.Enumerate(request.Candidates, request.Flags)
		if err != nil {
			var noCandidates *combination.NoCandidatesError
			if errors.As(err, &noCandidates) {
				exceptions.MissingInputHandler(w, err)
				return
			}
			exceptions.InternalErrorHandler(w, err)
			return
		}

		switch r.URL.Query().Get("sort") {
		case "transit":
			combination.SortByTransitTime(candidates)
		default:
			combination.SortByTotalPrice(candidates)
		}

		response := CombinationResponse{Combinations: candidates, Count: len(candidates)}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			exceptions.InternalErrorHandler(w, err)
		}
	})
}
