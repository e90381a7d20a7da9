// Package httpretry repete requisições HTTP com backoff exponencial e jitter.
package httpretry

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// HTTPDoer é satisfeito por *http.Client e por *RetryClient
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type RetryClient struct {
	client     HTTPDoer
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
	retryable  func(statusCode int) bool
}

type Option func(*RetryClient)

// WithBaseDelay altera o atraso inicial entre tentativas
func WithBaseDelay(d time.Duration) Option {
	return func(rc *RetryClient) {
		rc.baseDelay = d
		if rc.maxDelay < d {
			rc.maxDelay = d
		}
	}
}

// WithRetryableStatus substitui a regra de status que devem ser repetidos
func WithRetryableStatus(fn func(statusCode int) bool) Option {
	return func(rc *RetryClient) {
		rc.retryable = fn
	}
}

func NewRetryClient(client HTTPDoer, maxRetries int, opts ...Option) *RetryClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if maxRetries < 0 {
		maxRetries = 0
	}

	rc := &RetryClient{
		client:     client,
		maxRetries: maxRetries,
		baseDelay:  1 * time.Second,
		maxDelay:   30 * time.Second,
		retryable:  IsServerError,
	}
	for _, opt := range opts {
		opt(rc)
	}
	return rc
}

// Do executa a requisição repetindo erros de rede e status repetíveis. Na
// última tentativa a resposta é devolvida como veio para o chamador tratar.
func (rc *RetryClient) Do(req *http.Request) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= rc.maxRetries; attempt++ {
		if req.Context().Err() != nil {
			if lastErr != nil {
				return nil, lastErr
			}
			return nil, req.Context().Err()
		}

		if attempt > 0 {
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, fmt.Errorf("httpretry: erro ao reiniciar corpo da requisição: %w", err)
				}
				req.Body = body
			}

			delay := rc.calculateDelay(attempt)
			logrus.WithFields(logrus.Fields{
				"attempt": attempt,
				"max":     rc.maxRetries,
				"host":    req.URL.Host,
				"path":    req.URL.Path,
				"delay":   delay.String(),
			}).Warn("httpretry: repetindo requisição")

			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-req.Context().Done():
				timer.Stop()
				if lastErr != nil {
					return nil, lastErr
				}
				return nil, req.Context().Err()
			}
		}

		resp, err := rc.client.Do(req)
		if err != nil {
			lastErr = err
			if req.Context().Err() != nil {
				return nil, err
			}
			continue
		}

		if !rc.retryable(resp.StatusCode) || attempt == rc.maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		lastErr = fmt.Errorf("httpretry: servidor retornou status %d", resp.StatusCode)
	}

	return nil, lastErr
}

// calculateDelay usa jitter completo: aleatório em [0, min(maxDelay, base*2^(n-1))]
func (rc *RetryClient) calculateDelay(attempt int) time.Duration {
	expDelay := float64(rc.baseDelay) * math.Pow(2, float64(attempt-1))
	if expDelay > float64(rc.maxDelay) {
		expDelay = float64(rc.maxDelay)
	}

	jittered := time.Duration(rand.Float64() * expDelay)
	if minDelay := rc.baseDelay / 10; jittered < minDelay {
		jittered = minDelay
	}
	return jittered
}

// IsServerError repete 500, 502, 503 e 504
func IsServerError(statusCode int) bool {
	switch statusCode {
	case http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
