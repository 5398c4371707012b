package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/trendscope/internal/common"
	"github.com/Veraticus/trendscope/internal/model"
	"github.com/google/uuid"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 * 1024

// Multipart form field names.
const (
	FieldFile        = "file"
	FieldYMin        = "y_min"
	FieldYMax        = "y_max"
	FieldNPoints     = "n_points"
	FieldRiskProfile = "risk_profile"
	FieldHorizon     = "horizon"
)

// RequestIDHeader carries the client-generated request ID.
const RequestIDHeader = "X-Request-ID"

// Predict uploads the chart image with its parameters and returns the prediction.
// Non-success responses are returned as *common.ServerError.
func (c *Client) Predict(ctx context.Context, req model.PredictionRequest) (*model.PredictionResponse, error) {
	body, contentType, err := encodeForm(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(PredictPath), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	slog.Debug("Submitting prediction request",
		"request_id", requestID,
		"file", req.Image.Name,
		"size", req.Image.Size,
		"n_points", req.NPoints)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("prediction request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	slog.Debug("Prediction response received",
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &common.ServerError{
			StatusCode: resp.StatusCode,
			Detail:     parseErrorDetail(data),
		}
	}

	var prediction model.PredictionResponse
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrMalformedResponse, err)
	}

	if prediction.Trend == "" {
		return nil, fmt.Errorf("%w: missing trend", common.ErrMalformedResponse)
	}

	return &prediction, nil
}

// encodeForm builds the multipart body for req.
func encodeForm(req model.PredictionRequest) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, FieldFile, req.Image.Name))
	contentType := req.Image.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}

	src, err := req.Image.Open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s: %w", req.Image.Name, err)
	}
	_, err = io.Copy(part, src)
	_ = src.Close()
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", req.Image.Name, err)
	}

	fields := []struct {
		name  string
		value string
	}{
		{FieldYMin, formatNumber(req.YMin)},
		{FieldYMax, formatNumber(req.YMax)},
		{FieldNPoints, strconv.Itoa(req.NPoints)},
		{FieldRiskProfile, req.RiskProfile},
		{FieldHorizon, req.Horizon},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", f.name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish form: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}

// formatNumber renders v in its shortest decimal form, e.g. 100 or 101.25.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseErrorDetail extracts the user-facing message from an error body.
// detail is either a string or a list of validation entries with a msg field.
func parseErrorDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var detail string
	if err := json.Unmarshal(envelope.Detail, &detail); err == nil {
		return strings.TrimSpace(detail)
	}

	var entries []struct {
		Msg string `json:"msg"`
		Loc []any  `json:"loc"`
	}
	if err := json.Unmarshal(envelope.Detail, &entries); err != nil {
		return ""
	}

	msgs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Msg == "" {
			continue
		}
		if field := lastLoc(e.Loc); field != "" {
			msgs = append(msgs, field+": "+e.Msg)
		} else {
			msgs = append(msgs, e.Msg)
		}
	}

	return strings.Join(msgs, "; ")
}

func lastLoc(loc []any) string {
	if len(loc) == 0 {
		return ""
	}
	if s, ok := loc[len(loc)-1].(string); ok {
		return s
	}
	return ""
}
