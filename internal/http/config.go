package httpclient

import (
	"net/http"
	"net/url"
	"time"

	"ratehub/internal/database"
)

//grpc design pattern(func opton pattern) for config mgt

type HttpFuncOption func(*HttpClientWrapper)

type HttpClientWrapper struct {
	client            *http.Client
	redisDb           database.RedisRepository
	contextTimeout    time.Duration
	maxRetries        int
	initialRetryDelay time.Duration
}

func defaultHttpConfig(rdb database.RedisRepository) HttpClientWrapper {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxConnsPerHost = 100
	t.MaxIdleConnsPerHost = 100
	t.IdleConnTimeout = 90 * time.Second
	t.DisableKeepAlives = false

	return HttpClientWrapper{
		client:            &http.Client{Transport: t},
		redisDb:           rdb,
		contextTimeout:    7 * time.Second,
		maxRetries:        2,
		initialRetryDelay: 2 * time.Second,
	}
}

func WithCtxTimeout(ctxTimeout time.Duration) HttpFuncOption {
	return func(httpConfig *HttpClientWrapper) {
		httpConfig.contextTimeout = ctxTimeout
	}
}

func WithMaxRetries(maxRetries int) HttpFuncOption {
	return func(httpConfig *HttpClientWrapper) {
		httpConfig.maxRetries = maxRetries
	}
}

func WithRetryDelay(delay time.Duration) HttpFuncOption {
	return func(httpConfig *HttpClientWrapper) {
		httpConfig.initialRetryDelay = delay
	}
}

func WithMaxIdleConns(max int) HttpFuncOption {
	return func(httpConfig *HttpClientWrapper) {
		if transport, ok := httpConfig.client.Transport.(*http.Transport); ok {
			transport.MaxIdleConns = max
		}
	}
}

func WithMaxConnsPerHost(max int) HttpFuncOption {
	return func(httpConfig *HttpClientWrapper) {
		if transport, ok := httpConfig.client.Transport.(*http.Transport); ok {
			transport.MaxConnsPerHost = max
		}
	}
}

func WithMaxIdleConnsPerHost(max int) HttpFuncOption {
	return func(httpConfig *HttpClientWrapper) {
		if transport, ok := httpConfig.client.Transport.(*http.Transport); ok {
			transport.MaxIdleConnsPerHost = max
		}
	}
}

func WithIdleConnTimeout(timeout time.Duration) HttpFuncOption {
	return func(httpConfig *HttpClientWrapper) {
		if transport, ok := httpConfig.client.Transport.(*http.Transport); ok {
			transport.IdleConnTimeout = timeout
		}
	}
}

func WithDisableKeepAlives(disable bool) HttpFuncOption {
	return func(httpConfig *HttpClientWrapper) {
		if transport, ok := httpConfig.client.Transport.(*http.Transport); ok {
			transport.DisableKeepAlives = disable
		}
	}
}

func WithProxySetup(proxyAddress *url.URL) HttpFuncOption {
	return func(httpConfig *HttpClientWrapper) {
		if transport, ok := httpConfig.client.Transport.(*http.Transport); ok {
			transport.Proxy = http.ProxyURL(proxyAddress)
		}
	}
}

type HttpClient struct {
	HttpClientWrapper
}

// Constructor to create an instance of the HttpClientWrapper with connection pool setup
func CreateHttpClientInstance(rdb database.RedisRepository, httpConfig ...HttpFuncOption) *HttpClient {
	d := defaultHttpConfig(rdb)
	for _, fn := range httpConfig {
		fn(&d)
	}
	return &HttpClient{d}
}
