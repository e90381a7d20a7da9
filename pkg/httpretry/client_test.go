package httpretry

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryClient_Do(t *testing.T) {
	tests := []struct {
		name           string
		statuses       []int
		maxRetries     int
		expectedStatus int
		expectedCalls  int32
	}{
		{name: "Sucesso na primeira tentativa", statuses: []int{200}, maxRetries: 3, expectedStatus: 200, expectedCalls: 1},
		{name: "Repete erro de servidor", statuses: []int{503, 502, 200}, maxRetries: 3, expectedStatus: 200, expectedCalls: 3},
		{name: "Não repete erro de cliente", statuses: []int{400}, maxRetries: 3, expectedStatus: 400, expectedCalls: 1},
		{name: "Não repete limite de requisições", statuses: []int{429}, maxRetries: 3, expectedStatus: 429, expectedCalls: 1},
		{name: "Devolve a última resposta ao esgotar tentativas", statuses: []int{500, 500}, maxRetries: 1, expectedStatus: 500, expectedCalls: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := atomic.AddInt32(&calls, 1)
				w.WriteHeader(tt.statuses[n-1])
			}))
			defer server.Close()

			client := NewRetryClient(server.Client(), tt.maxRetries, WithBaseDelay(time.Millisecond))

			req, err := http.NewRequest(http.MethodGet, server.URL, nil)
			require.NoError(t, err)

			resp, err := client.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			assert.Equal(t, tt.expectedCalls, atomic.LoadInt32(&calls))
		})
	}
}
