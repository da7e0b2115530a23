package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sitewatch/internal/app/server"
	"sitewatch/internal/platform/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    *pageMeta       `json:"meta"`
	Error   any             `json:"error"`
}

type pageMeta struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func envelopeTotal(t *testing.T, env envelope) int {
	t.Helper()
	if env.Meta == nil {
		t.Fatal("expected paged response meta")
	}
	return env.Meta.Total
}

func testConfig(driver string) config.Config {
	return config.Config{
		Environment:      "test",
		StorageDriver:    driver,
		FrontendDir:      "frontend/dist",
		MaxBodyBytes:     1 << 20,
		PersistQueueSize: 64,
		ShutdownTimeout:  5 * time.Second,
		MetricsEnabled:   true,
	}
}

func startApp(t *testing.T, cfg config.Config) (*server.App, *httptest.Server) {
	t.Helper()
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	ts := httptest.NewServer(app.Router)
	t.Cleanup(func() {
		ts.Close()
		if err := app.Close(context.Background()); err != nil {
			t.Errorf("close app: %v", err)
		}
	})
	return app, ts
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any, want int) envelope {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	}
	return doRaw(t, client, method, url, reader, want)
}

func doRaw(t *testing.T, client *http.Client, method, url string, body io.Reader, want int) envelope {
	t.Helper()
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	if resp.StatusCode != want {
		t.Fatalf("%s %s: expected status %d, got %d: %s", method, url, want, resp.StatusCode, string(raw))
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return env
}

func getJSON(t *testing.T, client *http.Client, url string) envelope {
	t.Helper()
	return doJSON(t, client, http.MethodGet, url, nil, http.StatusOK)
}

func envelopeDataMap(t *testing.T, env envelope) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("failed to decode object payload: %v", err)
	}
	return payload
}

func envelopeDataSlice(t *testing.T, env envelope) []map[string]any {
	t.Helper()
	var payload []map[string]any
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("failed to decode array payload: %v", err)
	}
	return payload
}

func envelopeErrorCode(env envelope) string {
	if env.Error == nil {
		return ""
	}
	if m, ok := env.Error.(map[string]any); ok {
		if code, ok := m["code"].(string); ok {
			return code
		}
	}
	return ""
}

func assertValidationErrorField(t *testing.T, env envelope, field string) {
	t.Helper()
	if code := envelopeErrorCode(env); code != "validation_error" {
		t.Fatalf("expected validation_error, got %+v", env.Error)
	}
	errMap, ok := env.Error.(map[string]any)
	if !ok {
		t.Fatalf("expected error object, got %T", env.Error)
	}
	details, ok := errMap["details"].(map[string]any)
	if !ok {
		t.Fatalf("expected details object, got %+v", errMap["details"])
	}
	fieldsRaw, ok := details["fields"].([]any)
	if !ok {
		t.Fatalf("expected details.fields array, got %+v", details["fields"])
	}
	for _, item := range fieldsRaw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if value, _ := entry["field"].(string); value == field {
			return
		}
	}
	t.Fatalf("expected validation field %q in %+v", field, fieldsRaw)
}

func workerPayload(id, firstName string) map[string]any {
	return map[string]any{
		"id":             id,
		"firstName":      firstName,
		"lastName":       "Mason",
		"employeeId":     "EMP-" + id,
		"department":     "Concrete",
		"position":       "Foreman",
		"qualifications": []string{"Level 2 rigging"},
		"workSchedule":   map[string]any{"shift": "morning", "workingHours": "07:00-15:00", "daysOff": []string{"sunday"}},
		"salary":         map[string]any{"basic": 3200, "allowances": 250, "deductions": 400, "netSalary": 3050},
	}
}

func sitePayload(id, status string) map[string]any {
	return map[string]any{
		"id":               id,
		"name":             "Harbour Tower " + id,
		"location":         "Pier 4",
		"siteStatus":       status,
		"totalWorkers":     42,
		"safetyCompliance": 91.5,
		"equipment":        []map[string]any{{"type": "tower crane", "count": 1}},
	}
}

func newServer(app *server.App) *httptest.Server {
	return httptest.NewServer(app.Router)
}
