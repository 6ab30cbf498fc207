package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/quantanalytics/internal/simulation/application"
	"github.com/wyfcoding/quantanalytics/pkg/response"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := application.NewSimulationService(application.Limits{
		MaxSimulations:   100000,
		MaxSteps:         2520,
		MinHistogramBins: 10,
		MaxHistogramBins: 200,
		MaxPathBudget:    50000000,
	}, 1, nil)
	router := gin.New()
	NewSimulationHandler(svc).RegisterRoutes(&router.RouterGroup)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRunMonteCarloEndpoint(t *testing.T) {
	router := newTestRouter()

	t.Run("Success", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/simulation/monte-carlo", map[string]any{
			"s0":              100.0,
			"mu":              0.08,
			"sigma":           0.20,
			"num_simulations": 500,
			"num_steps":       20,
			"seed":            42,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}

		var body response.Body
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatal(err)
		}
		if body.Code != 0 {
			t.Errorf("envelope code = %d, want 0", body.Code)
		}
		data, ok := body.Data.(map[string]any)
		if !ok {
			t.Fatalf("data is not an object: %T", body.Data)
		}
		results, ok := data["results"].(map[string]any)
		if !ok {
			t.Fatal("missing results object")
		}
		if _, ok := results["mean_path"]; !ok {
			t.Error("missing mean_path")
		}
		if _, ok := results["tail_risk"]; !ok {
			t.Error("missing tail_risk")
		}
	})

	t.Run("InvalidSigma", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/simulation/monte-carlo", map[string]any{
			"s0":              100.0,
			"sigma":           -0.2,
			"num_simulations": 100,
			"num_steps":       10,
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})

	t.Run("OverLimit", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/simulation/monte-carlo", map[string]any{
			"s0":              100.0,
			"sigma":           0.2,
			"num_simulations": 500000,
			"num_steps":       10,
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/simulation/monte-carlo",
			bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})
}

func TestEngineHealthEndpoint(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/simulation/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body response.Body
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	data, ok := body.Data.(map[string]any)
	if !ok {
		t.Fatalf("data is not an object: %T", body.Data)
	}
	if data["status"] != "healthy" {
		t.Errorf("status = %v", data["status"])
	}
}
