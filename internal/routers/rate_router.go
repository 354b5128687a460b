package routers

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"ratehub/internal/dependencies"
	"ratehub/internal/handlers"
	"ratehub/internal/middleware"
)

func RateRouter() http.Handler {
	deps, err := dependencies.NewDependencies()
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize dependencies")
		return nil
	}
	middlewareStackForRates := middleware.CreateStack(
		middleware.Recovery,
		middleware.CheckCORS,
		middleware.AddCorrelationID,
		middleware.AddHeaders,
		middleware.GetAppConfig("service.registry.rates"),
		middleware.Logging,
		middleware.RateQueryValidation,
	)

	rateRouter := http.NewServeMux()

	search := middlewareStackForRates(handlers.RateSearchHandler(
		deps.HTTPClient,
		deps.EnvManager,
		deps.RateSvc,
		deps.OracleDB,
		deps.RedisDB,
	))
	rateRouter.Handle("GET /rates/search", search)
	return rateRouter
}
