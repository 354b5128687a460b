package routers

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"ratehub/internal/dependencies"
	"ratehub/internal/handlers"
	"ratehub/internal/middleware"
)

// QuotationRouter serves quotation assembly, combination enumeration and the
// per-user console preferences.
func QuotationRouter() http.Handler {
	deps, err := dependencies.NewDependencies()
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize dependencies")
		return nil
	}
	middlewareStackForQuotes := middleware.CreateStack(
		middleware.Recovery,
		middleware.CheckCORS,
		middleware.AddCorrelationID,
		middleware.AddHeaders,
		middleware.Logging,
	)

	quotationRouter := http.NewServeMux()

	quotationRouter.Handle("POST /quotations", middlewareStackForQuotes(handlers.QuotationHandler()))
	quotationRouter.Handle("POST /combinations", middlewareStackForQuotes(handlers.CombinationsHandler()))
	quotationRouter.Handle("GET /preferences/shortcuts", middlewareStackForQuotes(handlers.GetShortcutsHandler(deps.Preferences)))
	quotationRouter.Handle("PUT /preferences/shortcuts", middlewareStackForQuotes(handlers.SaveShortcutsHandler(deps.Preferences)))
	quotationRouter.Handle("GET /preferences/welcome", middlewareStackForQuotes(handlers.GetWelcomeHandler(deps.Preferences)))
	quotationRouter.Handle("PUT /preferences/welcome", middlewareStackForQuotes(handlers.MarkWelcomeHandler(deps.Preferences)))
	return quotationRouter
}
