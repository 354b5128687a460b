package middleware

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"ratehub/config/domain"
	"ratehub/internal/exceptions"
)

type appConfigContextKey string

const AppConfigKey appConfigContextKey = "appConfig"

// GetAppConfig loads the service section of config.yaml into the request
// context so handlers can read rate-search tuning without touching disk.
func GetAppConfig(serviceName string) Middleware {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			config := domain.Config{}
			currentDir, err := os.Getwd()
			if err != nil {
				log.Fatalf("Failed to setup config: %v", err)
			}
			data, err := os.ReadFile(filepath.Join(currentDir, "config.yaml"))
			if err != nil {
				exceptions.InternalErrorHandler(w, err)
				return
			}
			if err = config.SetFromBytes(data); err != nil {
				exceptions.InternalErrorHandler(w, err)
				return
			}
			result, err := config.Get(serviceName)
			if err != nil {
				exceptions.InternalErrorHandler(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), AppConfigKey, result)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(fn)
	}
}
