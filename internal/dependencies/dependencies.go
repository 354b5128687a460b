package dependencies

import (
	"sync"
	"time"

	"ratehub/external"
	"ratehub/internal/database"
	httpclient "ratehub/internal/http"
	env "ratehub/internal/secret"
)

// all dependencies required by this app
type Dependencies struct {
	HTTPClient  *httpclient.HttpClient
	EnvManager  *env.Manager
	RateSvc     *external.RateServiceFactory
	OracleDB    database.OracleRepository
	RedisDB     database.RedisRepository
	Preferences *database.PreferenceStore
}

// dependenciesInstance holds the singleton instance of Dependencies.
var (
	dependenciesInstance *Dependencies
	once                 sync.Once
	initErr              error
)

// NewDependencies initializes dependencies only once and returns the same instance on subsequent calls.
func NewDependencies() (*Dependencies, error) {
	once.Do(func() {
		// Initialize environment manager
		envManager, err := env.NewManager()
		if err != nil {
			initErr = err
			return
		}

		// Initialize Redis connection
		redisSettings := database.RedisSettings{
			DB:         envManager.RedisDb,
			DBUser:     envManager.RedisUser,
			DBPassword: envManager.RedisPw,
			Host:       envManager.RedisHost,
			Port:       envManager.RedisPort,
			Protocol:   envManager.RedisPrtl,
		}
		redis, err := database.NewRedisConnection(redisSettings)
		if err != nil {
			initErr = err
			return
		}

		// Initialize external rate vendors
		rateVendors := external.NewRateServiceFactory(envManager)

		// Initialize Oracle database connection
		oracleSetting := database.OracleSettings{
			DBUser:      envManager.DbUser,
			DBPassword:  envManager.DbPw,
			Host:        envManager.Host,
			Port:        envManager.Port,
			ServiceName: envManager.ServiceName,
		}
		oracle, err := database.NewOracleDBConnectionPool(oracleSetting, 100, 3)
		if err != nil {
			initErr = err
			return
		}

		// Initialize HTTP client
		httpClient := httpclient.CreateHttpClientInstance(
			redis,
			httpclient.WithCtxTimeout(7*time.Second),
			httpclient.WithMaxRetries(2),
			httpclient.WithRetryDelay(2*time.Second),
			httpclient.WithMaxIdleConns(200),
			httpclient.WithMaxConnsPerHost(200),
			httpclient.WithMaxIdleConnsPerHost(200),
			httpclient.WithIdleConnTimeout(90*time.Second),
			httpclient.WithDisableKeepAlives(false),
		)

		// Set the singleton instance
		dependenciesInstance = &Dependencies{
			HTTPClient:  httpClient,
			EnvManager:  envManager,
			RateSvc:     rateVendors,
			OracleDB:    oracle,
			RedisDB:     redis,
			Preferences: database.NewPreferenceStore(redis),
		}
	})

	if initErr != nil {
		return nil, initErr
	}

	return dependenciesInstance, nil
}
