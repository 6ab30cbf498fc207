package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/quantanalytics/internal/options/application"
	"github.com/wyfcoding/quantanalytics/pkg/response"
)

func newTestRouter(maxPoints int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewGreeksHandler(application.NewGreeksService(maxPoints, nil)).RegisterRoutes(&router.RouterGroup)
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

func TestGreeksEndpoint(t *testing.T) {
	router := newTestRouter(100)

	t.Run("Call", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/options/greeks", map[string]any{
			"strike":         100.0,
			"time_to_expiry": 1.0,
			"spot":           100.0,
			"risk_free_rate": 0.05,
			"volatility":     0.2,
			"is_call":        true,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}

		var body response.Body
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatal(err)
		}
		data, ok := body.Data.(map[string]any)
		if !ok {
			t.Fatalf("data is not an object: %T", body.Data)
		}
		delta, ok := data["delta"].(float64)
		if !ok {
			t.Fatal("missing delta")
		}
		if delta <= 0.5 || delta >= 0.7 {
			t.Errorf("delta = %v, want within (0.5, 0.7)", delta)
		}
	})

	t.Run("ExpiredOptionStillSucceeds", func(t *testing.T) {
		w := postJSON(t, router, "/api/v1/options/greeks", map[string]any{
			"strike":         100.0,
			"time_to_expiry": 0.0,
			"spot":           110.0,
			"is_call":        true,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/options/greeks",
			bytes.NewReader([]byte("nope")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})
}

func TestSurfaceEndpoint(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router := newTestRouter(100)
		w := postJSON(t, router, "/api/v1/options/surface", map[string]any{
			"spot":           100.0,
			"risk_free_rate": 0.045,
			"points": []map[string]any{
				{"strike": 95.0, "days_to_expiry": 30.0, "implied_vol": 0.22},
				{"strike": 105.0, "days_to_expiry": 30.0, "implied_vol": 0.21},
			},
		})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		var body response.Body
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatal(err)
		}
		data, ok := body.Data.(map[string]any)
		if !ok {
			t.Fatalf("data is not an object: %T", body.Data)
		}
		if count, _ := data["count"].(float64); count != 2 {
			t.Errorf("count = %v, want 2", data["count"])
		}
	})

	t.Run("TooManyPoints", func(t *testing.T) {
		router := newTestRouter(1)
		w := postJSON(t, router, "/api/v1/options/surface", map[string]any{
			"spot": 100.0,
			"points": []map[string]any{
				{"strike": 95.0}, {"strike": 105.0},
			},
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})
}
