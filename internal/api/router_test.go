package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/jengzang/elevation-backend-go/internal/config"
	"github.com/jengzang/elevation-backend-go/internal/database"
	"github.com/jengzang/elevation-backend-go/internal/handler"
	"github.com/jengzang/elevation-backend-go/internal/middleware"
	"github.com/jengzang/elevation-backend-go/internal/repository"
	"github.com/jengzang/elevation-backend-go/internal/service"
)

func newTestRouter(t *testing.T) (*gin.Engine, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.EnsureSchema(db))

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "benchmarks.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("a.gpx,100\nb.gpx,200\n"), 0o644))

	cfg := &config.Config{
		JWTSecret:    "router-test-secret",
		GPXDir:       dir,
		BenchmarkCSV: csvPath,
		Workers:      2,
	}

	svc := service.NewAnalysisService(
		repository.NewAnalysisRepository(db),
		repository.NewBenchmarkRepository(db),
		cfg.GPXDir,
		cfg.Workers,
	)
	h := handler.NewAnalysisHandler(svc, cfg.BenchmarkCSV)

	return SetupRouter(cfg, h), cfg
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestAnalyzeTraceEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	distances := make([]float64, 50)
	elevations := make([]float64, 50)
	for i := range distances {
		distances[i] = float64(i) * 100
		elevations[i] = 500 + float64(i)*2
	}

	w := postJSON(t, r, "/api/v1/analysis", gin.H{
		"distances":  distances,
		"elevations": elevations,
		"variant":    "symmetric",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Code int `json:"code"`
		Data struct {
			ID           int64   `json:"id"`
			Terrain      string  `json:"terrain"`
			TotalAscentM float64 `json:"total_ascent_m"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.Code)
	assert.Positive(t, resp.Data.ID)
	assert.Greater(t, resp.Data.TotalAscentM, 50.0)

	// Fetch it back.
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/analysis/%d", resp.Data.ID), nil)
	got := httptest.NewRecorder()
	r.ServeHTTP(got, req)
	assert.Equal(t, http.StatusOK, got.Code)

	// Unknown ID.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/analysis/99999", nil)
	missing := httptest.NewRecorder()
	r.ServeHTTP(missing, req)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestAnalyzeTraceEndpointRejectsBadBody(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(t, r, "/api/v1/analysis", gin.H{"distances": []float64{0, 10}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, r, "/api/v1/analysis", gin.H{
		"distances":  []float64{0, 10},
		"elevations": []float64{100},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeGPXEndpointMissingFile(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(t, r, "/api/v1/analysis/gpx", gin.H{"filename": "missing.gpx"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadGPXEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	var doc bytes.Buffer
	doc.WriteString(`<gpx><trk><trkseg>`)
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&doc, `<trkpt lat="%.6f" lon="8.500000"><ele>%.1f</ele></trkpt>`,
			47.0+0.001*float64(i), 400.0+3.0*float64(i))
	}
	doc.WriteString(`</trkseg></trk></gpx>`)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "uploaded.gpx")
	require.NoError(t, err)
	_, err = part.Write(doc.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("variant", "symmetric"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analysis/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"filename":"uploaded.gpx"`)
}

func TestBenchmarkReloadRequiresAuth(t *testing.T) {
	r, cfg := newTestRouter(t)

	w := postJSON(t, r, "/api/v1/benchmarks/reload", gin.H{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := middleware.GenerateToken(cfg.JWTSecret, "admin", time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/benchmarks/reload", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	authed := httptest.NewRecorder()
	r.ServeHTTP(authed, req)
	require.Equal(t, http.StatusOK, authed.Code, authed.Body.String())
	assert.Contains(t, authed.Body.String(), `"loaded":2`)

	// Entries are now listable without auth.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/benchmarks", nil)
	list := httptest.NewRecorder()
	r.ServeHTTP(list, req)
	assert.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), "a.gpx")
}
