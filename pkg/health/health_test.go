package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// mockHealthCheck implements HealthCheck for testing
type mockHealthCheck struct {
	name    string
	healthy bool
}

func (m *mockHealthCheck) Name() string {
	return m.name
}

func (m *mockHealthCheck) Check(ctx context.Context) error {
	if !m.healthy {
		return fmt.Errorf("mock health check failed")
	}
	return nil
}

func TestHealthChecker_AddRemove(t *testing.T) {
	hc := NewHealthChecker()

	hc.AddCheck(&mockHealthCheck{name: "a", healthy: true})
	hc.AddCheck(&mockHealthCheck{name: "a", healthy: false})
	if len(hc.checks) != 1 {
		t.Fatalf("Expected 1 check after replacing, got %d", len(hc.checks))
	}

	hc.RemoveCheck("a")
	if len(hc.checks) != 0 {
		t.Errorf("Expected 0 checks, got %d", len(hc.checks))
	}
}

func TestHealthChecker_CheckHealth(t *testing.T) {
	tests := []struct {
		name   string
		checks []HealthCheck
		want   string
	}{
		{"no checks", nil, "healthy"},
		{"all healthy", []HealthCheck{&mockHealthCheck{"a", true}, &mockHealthCheck{"b", true}}, "healthy"},
		{"one failing", []HealthCheck{&mockHealthCheck{"a", true}, &mockHealthCheck{"b", false}}, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := NewHealthChecker()
			for _, c := range tt.checks {
				hc.AddCheck(c)
			}
			status := hc.CheckHealth(context.Background())
			if status.Status != tt.want {
				t.Errorf("Expected status %q, got %q", tt.want, status.Status)
			}
			if len(status.Checks) != len(tt.checks) {
				t.Errorf("Expected %d results, got %d", len(tt.checks), len(status.Checks))
			}
		})
	}
}

func TestHandlers(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		healthy bool
		code    int
		status  string
	}{
		{"liveness", "/health", false, http.StatusOK, "alive"},
		{"ready", "/ready", true, http.StatusOK, "healthy"},
		{"not ready", "/ready", false, http.StatusServiceUnavailable, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := NewHealthChecker()
			hc.AddCheck(&mockHealthCheck{name: "sim", healthy: tt.healthy})

			rec := httptest.NewRecorder()
			hc.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.code {
				t.Errorf("Expected code %d, got %d", tt.code, rec.Code)
			}
			var body struct {
				Status string `json:"status"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Status != tt.status {
				t.Errorf("Expected status %q, got %q", tt.status, body.Status)
			}
		})
	}
}

func TestTickProgressCheck(t *testing.T) {
	var tick uint64
	clock := time.Unix(0, 0)

	c := NewTickProgressCheck(func() uint64 { return tick }, time.Second)
	c.now = func() time.Time { return clock }
	c.lastSeen = clock

	if err := c.Check(context.Background()); err != nil {
		t.Errorf("fresh check should pass: %v", err)
	}

	clock = clock.Add(2 * time.Second)
	if err := c.Check(context.Background()); err == nil {
		t.Error("expected a stall after 2s without ticks")
	}

	tick = 10
	if err := c.Check(context.Background()); err != nil {
		t.Errorf("expected recovery once ticks advance: %v", err)
	}

	clock = clock.Add(500 * time.Millisecond)
	if err := c.Check(context.Background()); err != nil {
		t.Errorf("idle within the window should pass: %v", err)
	}
}

func TestMemoryHealthCheck(t *testing.T) {
	tests := []struct {
		name  string
		usage int64
		fails bool
	}{
		{"under", 100, false},
		{"at limit", 500, false},
		{"over", 501, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewMemoryHealthCheck(500, func() int64 { return tt.usage })
			if c.Name() != "memory" {
				t.Errorf("unexpected name %q", c.Name())
			}
			if err := c.Check(context.Background()); (err != nil) != tt.fails {
				t.Errorf("expected fails=%v, got %v", tt.fails, err)
			}
		})
	}
}
