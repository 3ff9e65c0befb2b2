package insight_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sman1kwanyar/presensi/internal/insight"
	"github.com/sman1kwanyar/presensi/internal/models"
)

func stateWithRecords() models.AppState {
	return models.AppState{
		Records: []models.AttendanceRecord{{
			ID: "r1", Date: "2026-08-03",
			Details: []models.AttendanceDetail{{StudentID: "st1", Status: models.Hadir}},
		}},
	}
}

func TestInsightWithoutKey(t *testing.T) {
	g := insight.New("")
	got := g.AttendanceInsight(context.Background(), stateWithRecords())
	if got != insight.FallbackNoKey {
		t.Fatalf("got %q", got)
	}
}

func TestInsightWithoutRecords(t *testing.T) {
	g := insight.New("key")
	got := g.AttendanceInsight(context.Background(), models.AppState{})
	if got != insight.FallbackNoData {
		t.Fatalf("got %q", got)
	}
}

func TestInsightSuccess(t *testing.T) {
	var gotKey string
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-goog-api-key")
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Analisis singkat."}]}}]}`))
	}))
	defer srv.Close()

	g := insight.New("rahasia", insight.WithEndpoint(srv.URL), insight.WithHTTPClient(srv.Client()))
	got := g.AttendanceInsight(context.Background(), stateWithRecords())
	if got != "Analisis singkat." {
		t.Fatalf("got %q", got)
	}
	if gotKey != "rahasia" {
		t.Fatalf("api key header %q", gotKey)
	}
	if !strings.Contains(gotBody, "Hadir: 1") {
		t.Fatalf("prompt tanpa rincian: %s", gotBody)
	}
}

func TestInsightServerErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := insight.New("key", insight.WithEndpoint(srv.URL))
	if got := g.AttendanceInsight(context.Background(), stateWithRecords()); got != insight.FallbackAIError {
		t.Fatalf("got %q", got)
	}
}

func TestInsightEmptyCandidatesFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	g := insight.New("key", insight.WithEndpoint(srv.URL))
	if got := g.AttendanceInsight(context.Background(), stateWithRecords()); got != insight.FallbackEmpty {
		t.Fatalf("got %q", got)
	}
}
