package predict

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func modelService(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/classify", func(w http.ResponseWriter, r *http.Request) {
		var req classifyRequest
		if r.Method != http.MethodPost || json.NewDecoder(r.Body).Decode(&req) != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		out := classifyResponse{Distributions: make([]Distribution, len(req.Texts))}
		for i := range req.Texts {
			out.Distributions[i] = Distribution{Positive: 0.7, Neutral: 0.2, Negative: 0.1}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out)
	})
	mux.HandleFunc("/predict", func(w http.ResponseWriter, r *http.Request) {
		var features Features
		if json.NewDecoder(r.Body).Decode(&features) != nil || features.Home == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"error":"missing Home"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Outcome{HomeGoals: features.AvgOddsAwayWin, AwayGoals: features.AvgOddsHomeWin})
	})
	mux.HandleFunc("/odds", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Query().Get("home") != "Arsenal" || r.URL.Query().Get("away") != "Chelsea" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"home_win":1.9,"draw":3.4,"away_win":4.2}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestRemoteClassify(t *testing.T) {
	server := modelService(t)
	m := NewRemoteModel(RemoteConfig{BaseURL: server.URL})

	ds, err := m.Classify(context.Background(), []string{"up the arsenal", "meh"})
	require.Equal(t, nil, err)
	require.Equal(t, 2, len(ds))
	require.Equal(t, 0.7, ds[1].Positive)
}

func TestRemotePredict(t *testing.T) {
	server := modelService(t)
	m := NewRemoteModel(RemoteConfig{BaseURL: server.URL})

	outcome, err := m.Predict(context.Background(), Features{Home: "Arsenal", Away: "Chelsea", AvgOddsHomeWin: 1, AvgOddsAwayWin: 2})
	require.Equal(t, nil, err)
	require.Equal(t, Outcome{HomeGoals: 2, AwayGoals: 1}, outcome)

	_, err = m.Predict(context.Background(), Features{})
	var serviceErr *ServiceError
	require.True(t, errors.As(err, &serviceErr))
	require.Equal(t, http.StatusUnprocessableEntity, serviceErr.StatusCode)
	require.Equal(t, "missing Home", serviceErr.Message)
}

func TestRemoteOdds(t *testing.T) {
	server := modelService(t)

	m := NewRemoteModel(RemoteConfig{BaseURL: server.URL, APIKey: "secret"})
	odds, err := m.Odds(context.Background(), "Arsenal", "Chelsea")
	require.Equal(t, nil, err)
	require.Equal(t, Odds{HomeWin: 1.9, Draw: 3.4, AwayWin: 4.2}, odds)

	unauthorized := NewRemoteModel(RemoteConfig{BaseURL: server.URL})
	_, err = unauthorized.Odds(context.Background(), "Arsenal", "Chelsea")
	var serviceErr *ServiceError
	require.True(t, errors.As(err, &serviceErr))
	require.Equal(t, http.StatusUnauthorized, serviceErr.StatusCode)
}
