package assess

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solobank-dev/solobank/internal/model"
)

func TestClient_EmptyURLEvaluatesLocally(t *testing.T) {
	c := NewClient("", time.Second)

	result, err := c.Assess(context.Background(), strongInput())
	require.NoError(t, err)
	assert.Equal(t, Approve, result.Recommendation)
	assert.Equal(t, SourceLocal, result.Source)
}

func TestClient_RemoteAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "credit_score")
		assert.Contains(t, body, "requested_new_limit")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Result{
			Recommendation: Deny,
			Rationale:      "Service says no.",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	result, err := c.Assess(context.Background(), strongInput())
	require.NoError(t, err)

	// The remote verdict wins even when the local rules would approve.
	assert.Equal(t, Deny, result.Recommendation)
	assert.Equal(t, SourceRemote, result.Source)
	assert.NotNil(t, result.RiskFactors)
}

func TestClient_FallsBackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	result, err := c.Assess(context.Background(), strongInput())
	require.NoError(t, err)
	assert.Equal(t, Approve, result.Recommendation)
	assert.Equal(t, SourceLocal, result.Source)
}

func TestClient_FallsBackWhenUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := NewClient(srv.URL, time.Second)
	result, err := c.Assess(context.Background(), strongInput())
	require.NoError(t, err)
	assert.Equal(t, SourceLocal, result.Source)
}

func TestClient_InvalidInputFailsEitherWay(t *testing.T) {
	c := NewClient("", time.Second)

	in := strongInput()
	in.AnnualIncome = dec("0")
	_, err := c.Assess(context.Background(), in)
	require.ErrorIs(t, err, model.ErrInvalidInput)
}
