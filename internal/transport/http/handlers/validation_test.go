package handlers_test

import (
	"net/http"
	"strings"
	"testing"
)

func TestPayloadsReturnValidationErrors(t *testing.T) {
	_, ts := startApp(t, testConfig("memory"))
	client := ts.Client()
	base := ts.URL + "/api/v1"

	badWorker := workerPayload("w1", "Ana")
	badWorker["workSchedule"] = map[string]any{"shift": "graveyard"}
	badWorker["qualifications"] = "welding"
	resp := doJSON(t, client, http.MethodPost, base+"/workers", badWorker, http.StatusBadRequest)
	assertValidationErrorField(t, resp, "workSchedule.shift")
	assertValidationErrorField(t, resp, "qualifications")

	resp = doJSON(t, client, http.MethodPost, base+"/workers", map[string]any{"firstName": "NoID"}, http.StatusBadRequest)
	if code := envelopeErrorCode(resp); code != "validation_error" {
		t.Fatalf("expected validation_error for missing id, got %q", code)
	}

	resp = doJSON(t, client, http.MethodPost, base+"/sites", sitePayload("s1", "demolished"), http.StatusBadRequest)
	assertValidationErrorField(t, resp, "siteStatus")

	resp = doJSON(t, client, http.MethodPost, base+"/violations", map[string]any{"id": "v1", "severity": "critical"}, http.StatusBadRequest)
	assertValidationErrorField(t, resp, "severity")

	resp = doJSON(t, client, http.MethodPut, base+"/selection", map[string]any{"siteId": 7}, http.StatusBadRequest)
	assertValidationErrorField(t, resp, "siteId")

	doJSON(t, client, http.MethodPost, base+"/workers", workerPayload("w1", "Ana"), http.StatusCreated)
	resp = doJSON(t, client, http.MethodPut, base+"/workers/w1", workerPayload("w2", "Mismatch"), http.StatusBadRequest)
	assertValidationErrorField(t, resp, "id")

	resp = doRaw(t, client, http.MethodPost, base+"/workers", strings.NewReader("{not json"), http.StatusBadRequest)
	if code := envelopeErrorCode(resp); code != "validation_error" {
		t.Fatalf("expected validation_error for malformed JSON, got %q", code)
	}

	resp = doJSON(t, client, http.MethodGet, base+"/views/live-feed?severity=extreme", nil, http.StatusBadRequest)
	assertValidationErrorField(t, resp, "severity")
	resp = doJSON(t, client, http.MethodGet, base+"/views/live-feed?since=2025-07-10&until=2025-07-01", nil, http.StatusBadRequest)
	assertValidationErrorField(t, resp, "since")
	assertValidationErrorField(t, resp, "until")
	resp = doJSON(t, client, http.MethodGet, base+"/views/sites?status=paused", nil, http.StatusBadRequest)
	assertValidationErrorField(t, resp, "status")
}

func TestOversizedBodyRejected(t *testing.T) {
	cfg := testConfig("memory")
	cfg.MaxBodyBytes = 1024
	_, ts := startApp(t, cfg)

	big := workerPayload("w1", strings.Repeat("x", 4096))
	resp := doJSON(t, ts.Client(), http.MethodPost, ts.URL+"/api/v1/workers", big, http.StatusRequestEntityTooLarge)
	if code := envelopeErrorCode(resp); code != "body_too_large" {
		t.Fatalf("expected body_too_large, got %q", code)
	}
}
