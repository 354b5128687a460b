package interfaces

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	httpclient "ratehub/internal/http"
	"ratehub/internal/schema"
	env "ratehub/internal/secret"
)

type HeaderParams struct {
	Headers map[string]string
	Params  map[string]string
}

// Define a type constraint for the return type
type RateOutputType interface {
	[]*schema.PrecarriageRate | []*schema.MainlineRate | []*schema.OncarriageRate
}

type RateArgs struct {
	Env   *env.Manager
	Query *schema.RateQueryParams
}

// Each vendor has a different request shape and payload so we hide the
// underlying struct behind this interface. As long as the struct can build
// its header params and translate its payload, the service works.
type RateProvider[T RateOutputType] interface {
	RateHeaderParams(*RateArgs) HeaderParams
	GenerateRates(responseJson []byte) (T, error)
}

type RateConfig struct {
	RateURL    string
	Method     string
	RateExpiry time.Duration
	Namespace  string
}

type RateService[T RateOutputType] struct {
	RateConfig
	RateProvider[T]
}

// FetchRates pulls one vendor's rate list for the query, going through the
// caching HTTP client, and converts the payload into the common rate shape.
func (rs *RateService[T]) FetchRates(ctx context.Context, c *httpclient.HttpClient, e *env.Manager, query *schema.RateQueryParams) (T, error) {
	arguments := &RateArgs{Env: e, Query: query}
	headerParams := rs.RateProvider.RateHeaderParams(arguments)
	if headerParams.Headers == nil {
		return nil, nil
	}
	responseJson, err := c.Fetch(ctx, rs.RateConfig.Method, &rs.RateConfig.RateURL, &headerParams.Params, &headerParams.Headers, rs.RateConfig.Namespace, rs.RateConfig.RateExpiry)
	if err != nil {
		log.Info(err)
		return nil, err
	}
	finalRates, err := rs.RateProvider.GenerateRates(responseJson)
	if err != nil {
		return nil, err
	}
	return finalRates, nil
}
