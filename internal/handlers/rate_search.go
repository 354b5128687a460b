package handlers

import (
	"context"
	"net/http"

	"ratehub/external"
	"ratehub/internal/database"
	httpclient "ratehub/internal/http"
	"ratehub/internal/middleware"
	"ratehub/internal/schema"
	env "ratehub/internal/secret"
	"ratehub/internal/utils"
)

// RateSearchHandler streams the per-leg candidate lists for one combination
// query as NDJSON, one line per leg source.
func RateSearchHandler(client *httpclient.HttpClient, env *env.Manager,
	vendors *external.RateServiceFactory, oracle database.OracleRepository, rr database.RedisRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-ndjson; charset=utf-8")
		fw := utils.NewFlushWriter(w)
		ctx, cancel := context.WithCancel(r.Context())
		defer cancel() // Ensure cancellation when function exits
		queryParams, _ := r.Context().Value(middleware.RateQueryParamsKey).(schema.RateQueryParams)
		done := make(chan int) // shuts the fan-out goroutines down when this handler returns
		defer close(done)
		service := NewRateStreamingService(ctx, done, client, env, vendors, oracle, &queryParams)
		rateChannels := service.GenerateRateChannels()
		fannedInStream := service.FanIn(rateChannels...)
		service.StreamResponse(fw, fannedInStream)
		go rr.Set(r.URL.String())
	})
}
