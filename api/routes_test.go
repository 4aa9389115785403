package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-rules/internal/operator"
	"github.com/carson-networks/budget-rules/internal/rules"
	"github.com/carson-networks/budget-rules/internal/service"
	"github.com/carson-networks/budget-rules/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := storage.NewMemoryStorage()
	delegator := operator.NewOperatorDelegator(store, 1)
	delegator.Start()
	t.Cleanup(delegator.Stop)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	rest := &Rest{
		Logger:          logger,
		Storage:         store,
		Service:         service.NewService(store, delegator, rules.NewEngine()),
		DefaultCurrency: "USD",
	}
	srv := httptest.NewServer(rest.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// -- Status --

func TestRoutes_Status(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// -- Budget flow --

func TestRoutes_BudgetAlertAfterSpending(t *testing.T) {
	srv := newTestServer(t)
	today := time.Now().UTC()
	categoryID := "7d2f7c1e-9a4b-4b8e-9c51-0b6f3f1d2a10"

	resp := postJSON(t, srv.URL+"/v1/budget", map[string]any{
		"name":       "Food",
		"amount":     "100",
		"categoryID": categoryID,
		"period":     "custom",
		"startDate":  today.AddDate(0, 0, -5).Format(time.DateOnly),
		"endDate":    today.AddDate(0, 0, 5).Format(time.DateOnly),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/v1/transaction", map[string]any{
		"amount":      "120",
		"kind":        "expense",
		"categoryID":  categoryID,
		"description": "groceries",
		"date":        today.Format(time.DateOnly),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	alerts, err := http.Get(srv.URL + "/v1/budget/alerts?severity=exceeded")
	require.NoError(t, err)
	defer alerts.Body.Close()
	require.Equal(t, http.StatusOK, alerts.StatusCode)

	var body struct {
		Alerts []struct {
			Severity string `json:"severity"`
		} `json:"alerts"`
	}
	require.NoError(t, json.NewDecoder(alerts.Body).Decode(&body))
	require.Len(t, body.Alerts, 1)
	assert.Equal(t, "exceeded", body.Alerts[0].Severity)
}

// -- Rules --

func TestRoutes_ListRules(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/v1/rule")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
