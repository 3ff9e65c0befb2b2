// Package insight asks a text-generation service for a short Indonesian
// summary of the attendance data. Strictly best effort: any failure maps
// to a fixed message, never to an error.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sman1kwanyar/presensi/internal/metrics"
	"github.com/sman1kwanyar/presensi/internal/models"
	"github.com/sman1kwanyar/presensi/internal/report"
)

const (
	FallbackNoKey   = "API Key Gemini tidak ditemukan. Harap konfigurasi environment variable GEMINI_API_KEY."
	FallbackNoData  = "Belum ada data presensi untuk dianalisis."
	FallbackAIError = "Terjadi kesalahan saat menghubungi layanan AI."
	FallbackEmpty   = "Gagal mendapatkan analisis."
)

const defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

type Generator struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// Option tweaks the generator; used by tests to point at a stub server.
type Option func(*Generator)

func WithEndpoint(url string) Option { return func(g *Generator) { g.endpoint = url } }

func WithHTTPClient(c *http.Client) Option { return func(g *Generator) { g.client = c } }

func New(apiKey string, opts ...Option) *Generator {
	g := &Generator{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// AttendanceInsight summarizes the snapshot's attendance and asks for a
// two-paragraph analysis. No key, no records, or a failed call all yield
// a fixed fallback string; the call is made at most once (no retry).
func (g *Generator) AttendanceInsight(ctx context.Context, state models.AppState) string {
	if g.apiKey == "" {
		metrics.InsightCalls.WithLabelValues("no_key").Inc()
		return FallbackNoKey
	}
	if len(state.Records) == 0 {
		metrics.InsightCalls.WithLabelValues("no_data").Inc()
		return FallbackNoData
	}

	counts := report.GlobalStatusCounts(state)
	prompt := fmt.Sprintf(`Analisis data presensi siswa SMAN 1 Kwanyar ini.
Total Data Sesi Kelas: %d

Rincian Kehadiran Individual:
- Hadir: %d
- Izin: %d
- Sakit: %d
- Dispensasi: %d
- Alpa: %d

Berikan analisis singkat (maksimal 2 paragraf) tentang tingkat kedisiplinan dan saran untuk pihak sekolah (Kepala Sekolah/Guru BK). Gunakan bahasa Indonesia yang formal dan sopan.`,
		len(state.Records),
		counts[models.Hadir], counts[models.Izin], counts[models.Sakit],
		counts[models.Dispensasi], counts[models.Alpa])

	text, err := g.generate(ctx, prompt)
	if err != nil {
		metrics.InsightCalls.WithLabelValues("error").Inc()
		return FallbackAIError
	}
	if strings.TrimSpace(text) == "" {
		metrics.InsightCalls.WithLabelValues("empty").Inc()
		return FallbackEmpty
	}
	metrics.InsightCalls.WithLabelValues("ok").Inc()
	return text
}

func (g *Generator) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("generate: http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
