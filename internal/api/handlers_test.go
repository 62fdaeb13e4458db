// Tunecarta - Listening History Analytics and Music Recommendations
// Copyright 2026 Tunecarta contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tunecarta/tunecarta

package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tunecarta/tunecarta/internal/catalog"
	"github.com/tunecarta/tunecarta/internal/config"
	"github.com/tunecarta/tunecarta/internal/database"
	"github.com/tunecarta/tunecarta/internal/models"
	"github.com/tunecarta/tunecarta/internal/recommend"
)

const uploadCSV = `Track Name,Artist Name(s),Duration (ms),Popularity,Explicit,Added At,Genres
Alpha,Artist One,200000,90,true,2024-01-10,pop
Beta,Artist Two,180000,40,false,2023-06-01,indie rock
`

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 3931, Host: "127.0.0.1"},
		API: config.APIConfig{
			DefaultTopTracks:  15,
			DefaultTopArtists: 12,
			MaxListSize:       100,
			GenreLimit:        15,
			MaxUploadBytes:    1 << 20,
		},
		Security: config.SecurityConfig{
			RateLimitReqs:     1000,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: true,
		},
		Recommend: config.RecommendConfig{
			DefaultK:   10,
			MaxK:       50,
			SampleSize: 10,
		},
	}
}

// newTestServer builds the full router over an in-memory database and an
// unpublished recommendation handle.
func newTestServer(t *testing.T) (*httptest.Server, *recommend.Handle) {
	t.Helper()

	db, err := database.New(&config.DatabaseConfig{Path: "", MaxMemory: "512MB"})
	if err != nil {
		t.Fatalf("database.New() failed: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() failed: %v", err)
		}
	})

	handle := recommend.NewHandle()
	handler := NewHandler(db, handle, testConfig())
	srv := httptest.NewServer(NewRouter(handler, NewChiMiddleware(nil)).Setup())
	t.Cleanup(srv.Close)
	return srv, handle
}

// publishTestCatalog publishes a five track catalog with a deterministic RNG.
func publishTestCatalog(t *testing.T, handle *recommend.Handle) {
	t.Helper()

	tracks := []catalog.Track{
		{ID: "a", TrackName: "A", ArtistNames: "Ann", Vector: []float64{0, 0}},
		{ID: "b", TrackName: "B", ArtistNames: "Bob", Vector: []float64{1, 0}},
		{ID: "c", TrackName: "C", ArtistNames: "Cal", Vector: []float64{0, 1}},
		{ID: "d", TrackName: "D", ArtistNames: "Dee", Vector: []float64{5, 5}},
		{ID: "e", TrackName: "E", ArtistNames: "Eve", Vector: []float64{5, 6}},
	}
	store, err := catalog.NewStore(tracks, []string{"x", "y"},
		catalog.Scaler{Means: []float64{0, 0}, Scales: []float64{1, 1}})
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}
	handle.Publish(recommend.NewService(store, 1))
}

func decodeResponse(t *testing.T, resp *http.Response) models.APIResponse {
	t.Helper()

	defer resp.Body.Close()
	var out models.APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func uploadHistory(t *testing.T, srv *httptest.Server, csv string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "history.csv")
	if err != nil {
		t.Fatalf("CreateFormFile() failed: %v", err)
	}
	if _, err := part.Write([]byte(csv)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	resp, err := http.Post(srv.URL+"/api/v1/history/upload", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("upload request failed: %v", err)
	}
	return resp
}

func TestHealthEndpoints(t *testing.T) {
	srv, handle := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/health/live")
	if err != nil {
		t.Fatalf("live probe failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("live probe status = %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/api/v1/health/ready")
	if err != nil {
		t.Fatalf("ready probe failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("ready probe status = %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/api/v1/health")
	if err != nil {
		t.Fatalf("health failed: %v", err)
	}
	body := decodeResponse(t, resp)
	data, ok := body.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("health data = %T, want object", body.Data)
	}
	// No catalog published yet: degraded but healthy database
	if data["status"] != "degraded" {
		t.Errorf("status = %v, want degraded before catalog publish", data["status"])
	}

	publishTestCatalog(t, handle)
	resp, err = http.Get(srv.URL + "/api/v1/health")
	if err != nil {
		t.Fatalf("health failed: %v", err)
	}
	body = decodeResponse(t, resp)
	data = body.Data.(map[string]interface{})
	if data["status"] != "healthy" {
		t.Errorf("status = %v, want healthy after catalog publish", data["status"])
	}
}

func TestAnalyticsNoData(t *testing.T) {
	srv, _ := newTestServer(t)

	endpoints := []string{
		"/api/v1/analytics/stats",
		"/api/v1/analytics/top-tracks",
		"/api/v1/analytics/top-artists",
		"/api/v1/analytics/mood-distribution",
		"/api/v1/analytics/genre-distribution",
		"/api/v1/analytics/temporal",
		"/api/v1/analytics/popularity-distribution",
		"/api/v1/analytics/audio-features",
		"/api/v1/analytics/explicit",
	}
	for _, ep := range endpoints {
		resp, err := http.Get(srv.URL + ep)
		if err != nil {
			t.Fatalf("GET %s failed: %v", ep, err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("GET %s status = %d, want 400 before upload", ep, resp.StatusCode)
		}
		body := decodeResponse(t, resp)
		if body.Error == nil || body.Error.Code != "NO_DATA" {
			t.Errorf("GET %s error = %+v, want NO_DATA", ep, body.Error)
		}
	}
}

func TestHistoryUploadAndAnalytics(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := uploadHistory(t, srv, uploadCSV)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("upload status = %d, want 200", resp.StatusCode)
	}
	body := decodeResponse(t, resp)
	summary, ok := body.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("upload data = %T, want object", body.Data)
	}
	if summary["rows_ingested"] != float64(2) {
		t.Errorf("rows_ingested = %v, want 2", summary["rows_ingested"])
	}
	if summary["unique_artists"] != float64(2) {
		t.Errorf("unique_artists = %v, want 2", summary["unique_artists"])
	}
	if summary["explicit_count"] != float64(1) {
		t.Errorf("explicit_count = %v, want 1", summary["explicit_count"])
	}

	resp, err := http.Get(srv.URL + "/api/v1/analytics/stats")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stats status = %d, want 200 after upload", resp.StatusCode)
	}
	body = decodeResponse(t, resp)
	stats := body.Data.(map[string]interface{})
	if stats["total_tracks"] != float64(2) {
		t.Errorf("total_tracks = %v, want 2", stats["total_tracks"])
	}

	resp, err = http.Get(srv.URL + "/api/v1/analytics/top-tracks?n=1")
	if err != nil {
		t.Fatalf("top-tracks failed: %v", err)
	}
	body = decodeResponse(t, resp)
	tracks, ok := body.Data.([]interface{})
	if !ok || len(tracks) != 1 {
		t.Fatalf("top-tracks data = %v, want one entry", body.Data)
	}
}

func TestHistoryUploadRejectsBadCSV(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := uploadHistory(t, srv, "Track Name,Popularity\nSong,50\n")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("upload status = %d, want 400 for missing columns", resp.StatusCode)
	}
	body := decodeResponse(t, resp)
	if body.Error == nil || body.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error = %+v, want VALIDATION_ERROR", body.Error)
	}
}

func TestHistoryUploadMissingFile(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/history/upload", "text/plain",
		bytes.NewBufferString("not a form"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 without a form file", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestRequestIDHeader(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/health/live")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header should be set")
	}
	if resp.Header.Get("ETag") == "" {
		t.Error("ETag header should be set")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("metrics status = %d, want 200", resp.StatusCode)
	}
}
