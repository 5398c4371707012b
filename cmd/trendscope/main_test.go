package main

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/Veraticus/trendscope/internal/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	*httptest.Server
	predictCalls atomic.Int32
	lastYMin     atomic.Value
}

func newFakeAPI(t *testing.T, status int, body string) *fakeAPI {
	t.Helper()
	f := &fakeAPI{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Stock Trend Prediction API is running"}`))
	})
	mux.HandleFunc("POST /predict_trend_from_image", func(w http.ResponseWriter, r *http.Request) {
		f.predictCalls.Add(1)
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			f.lastYMin.Store(r.FormValue("y_min"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

const upBody = `{
  "trend": "Up",
  "class_index": 2,
  "probabilities": {"Down": 0.1, "Sideways": 0.2, "Up": 0.7},
  "chatbot_message": "The chart shows an **upward** move.",
  "meta": {"series_length": 300, "used_window_size": 64, "file_name": "chart.png"}
}`

func writePNG(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	path := filepath.Join(t.TempDir(), "chart.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

type result struct {
	err    error
	stdout string
	stderr string
}

func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return result{err: err, stdout: stdout.String(), stderr: stderr.String()}
}

func TestVersionCommand(t *testing.T) {
	res := execute(t, "", "version")
	require.NoError(t, res.err)
	assert.Equal(t, "trendscope dev\n", res.stdout)
}

func TestPredictCommand_Text(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, upBody)
	path := writePNG(t)

	res := execute(t, "", "predict", path, "--api-url", api.URL, "--y-min", "10", "--y-max", "20")
	require.NoError(t, res.err, res.stderr)

	assert.Contains(t, res.stdout, "Selected chart.png")
	assert.Contains(t, res.stdout, "Moderate confidence prediction")
	assert.Contains(t, res.stdout, "70.0%")
	assert.Contains(t, res.stdout, "upward")
	assert.Equal(t, int32(1), api.predictCalls.Load())
	assert.Equal(t, "10", api.lastYMin.Load())
}

func TestPredictCommand_JSON(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, upBody)
	path := writePNG(t)

	res := execute(t, "", "predict", path, "--api-url", api.URL, "--y-min", "10", "--y-max", "20", "--output", "json", "--skip-health")
	require.NoError(t, res.err, res.stderr)

	var resp model.PredictionResponse
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &resp))
	assert.Equal(t, model.TrendUp, resp.Trend)
	assert.InDelta(t, 0.7, resp.Probabilities.Up, 1e-9)
	assert.Equal(t, 64, resp.Meta.UsedWindowSize)
}

func TestPredictCommand_ServerDetail(t *testing.T) {
	api := newFakeAPI(t, http.StatusUnprocessableEntity, `{"detail":"Chart axis values invalid"}`)
	path := writePNG(t)

	res := execute(t, "", "predict", path, "--api-url", api.URL, "--y-min", "10", "--y-max", "20")
	require.Error(t, res.err)

	assert.ErrorIs(t, res.err, errPredictionFailed)
	assert.NotContains(t, res.err.Error(), "Chart axis values invalid")
	assert.Contains(t, res.stderr, "Chart axis values invalid")
	assert.NotContains(t, res.stdout, "Prediction Result")
}

func TestPredictCommand_InvalidRangeNeverCallsAPI(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, upBody)
	path := writePNG(t)

	res := execute(t, "", "predict", path, "--api-url", api.URL, "--y-min", "20", "--y-max", "10")
	require.Error(t, res.err)

	assert.Contains(t, res.stderr, "Y-axis Max must be greater than Y-axis Min")
	assert.Zero(t, api.predictCalls.Load())
}

func TestPredictCommand_PromptsForMissingBounds(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, upBody)
	path := writePNG(t)

	res := execute(t, "abc\n150\n190\n", "predict", path, "--api-url", api.URL, "--skip-health")
	require.NoError(t, res.err, res.stderr)

	assert.Contains(t, res.stderr, "Y-axis Min")
	assert.Contains(t, res.stderr, "Y-axis Max")
	assert.Equal(t, "150", api.lastYMin.Load())
}

func TestPredictCommand_BadFileFailsBeforePrompting(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, upBody)
	missing := filepath.Join(t.TempDir(), "absent.png")

	res := execute(t, "150\n190\n", "predict", missing, "--api-url", api.URL, "--skip-health")
	require.Error(t, res.err)

	assert.Contains(t, res.err.Error(), "failed to select")
	assert.NotContains(t, res.stderr, "Y-axis Min")
	assert.Zero(t, api.predictCalls.Load())
}

func TestPredictCommand_Errors(t *testing.T) {
	path := writePNG(t)
	txt := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("not a chart"), 0o600))

	tests := []struct {
		name    string
		wantErr string
		args    []string
	}{
		{
			name:    "missing image argument",
			args:    []string{"predict"},
			wantErr: "accepts 1 arg(s)",
		},
		{
			name:    "bad output format",
			args:    []string{"predict", path, "--output", "yaml", "--y-min", "1", "--y-max", "2"},
			wantErr: "invalid output format",
		},
		{
			name:    "unsupported file type",
			args:    []string{"predict", txt, "--skip-health", "--y-min", "1", "--y-max", "2"},
			wantErr: "failed to select",
		},
		{
			name:    "missing file",
			args:    []string{"predict", filepath.Join(t.TempDir(), "absent.png"), "--skip-health", "--y-min", "1", "--y-max", "2"},
			wantErr: "failed to select",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, "", tt.args...)
			require.Error(t, res.err)
			assert.Contains(t, res.err.Error(), tt.wantErr)
		})
	}
}

func TestHealthCommand(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusOK, upBody)

		res := execute(t, "", "health", "--api-url", api.URL)
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "Prediction API is up at "+api.URL)
	})

	t.Run("unreachable", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusOK, upBody)
		url := api.URL
		api.Close()

		res := execute(t, "", "health", "--api-url", url)
		require.Error(t, res.err)
		assert.Contains(t, res.stderr, "Backend API is not running at "+url)
	})

	t.Run("url from environment", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusOK, upBody)
		t.Setenv("TRENDSCOPE_API_BASE_URL", api.URL)

		res := execute(t, "", "health")
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, api.URL)
	})
}

func TestInvalidLogLevel(t *testing.T) {
	res := execute(t, "", "version", "--log-level", "loud")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "invalid log level")
}
