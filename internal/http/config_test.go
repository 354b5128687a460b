package httpclient

import (
	"net/http"
	"testing"
	"time"
)

func TestWithIdleConnTimeoutSetsTheDurationVerbatim(t *testing.T) {
	client := CreateHttpClientInstance(nil, WithIdleConnTimeout(90*time.Second))
	transport, ok := client.client.Transport.(*http.Transport)
	if !ok {
		t.Fatal("client should carry an *http.Transport")
	}
	if transport.IdleConnTimeout != 90*time.Second {
		t.Fatalf("expected 90s idle timeout, got %s", transport.IdleConnTimeout)
	}
	if transport.IdleConnTimeout <= 0 {
		t.Fatal("idle timeout must stay positive or idle reaping is disabled")
	}
}
