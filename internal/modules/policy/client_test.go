package policy

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedgelab/hedgebench/internal/domain"
)

func TestClientSelectAction(t *testing.T) {
	var received selectActionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/select-action", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"action": 7, "aux": 0.68},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zerolog.Nop())
	action, aux, err := c.SelectAction(domain.Observation{
		NormalizedStockPrice: 0.95,
		TimeRemaining:        21.0 / 252.0,
		CurrentPosition:      0.3,
	}, false)
	require.NoError(t, err)

	assert.Equal(t, 7, action)
	assert.InDelta(t, 0.68, aux, 1e-12)
	assert.InDelta(t, 0.95, received.Observation.NormalizedStockPrice, 1e-12)
	assert.False(t, received.Training)
}

func TestClientSurfacesServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		msg := "model not loaded"
		json.NewEncoder(w).Encode(serviceResponse{Success: false, Error: &msg})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zerolog.Nop())
	_, _, err := c.SelectAction(domain.Observation{}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestClientRejectsMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zerolog.Nop())
	_, _, err := c.SelectAction(domain.Observation{}, false)
	assert.Error(t, err)
}

func TestClientTransportErrorIsFatal(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", zerolog.Nop())
	_, _, err := c.SelectAction(domain.Observation{}, false)
	assert.Error(t, err)
}

func TestClientHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	assert.NoError(t, NewClient(srv.URL, zerolog.Nop()).Health())
	assert.Error(t, NewClient(srv.URL+"/missing", zerolog.Nop()).Health())
}
