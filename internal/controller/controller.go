// Package controller implements the upload, validate, submit and render workflow
// as a state machine that is independent of any rendering surface.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/trendscope/internal/api"
	"github.com/Veraticus/trendscope/internal/common"
	"github.com/Veraticus/trendscope/internal/model"
	"github.com/Veraticus/trendscope/internal/presenter"
	"github.com/Veraticus/trendscope/internal/upload"
)

// DefaultRequestTimeout bounds a single prediction round-trip.
const DefaultRequestTimeout = 30 * time.Second

// Messages shown when a prediction fails without a server-provided detail.
const (
	msgPredictionFailed  = "Prediction failed"
	msgRequestFailed     = "Failed to get prediction. Please try again."
	msgInvalidResponse   = "Received an invalid response from the prediction service."
	msgPredictionCancel  = "Prediction canceled."
	msgBusy              = "Please wait for the current prediction to finish"
	msgBackendNotRunning = "Backend API is not running at %s. Please start the API server."
)

// Decoder turns a selected image into something displayable.
type Decoder interface {
	Decode(ctx context.Context, img model.SelectedImage) (model.Preview, error)
}

// Controller owns the selected image, the workflow state and the single
// in-flight prediction slot.
type Controller struct {
	predictor      api.Predictor
	decoder        Decoder
	surface        Surface
	now            func() time.Time
	notifications  *notificationCenter
	image          *model.SelectedImage
	preview        *model.Preview
	results        *model.ResultsView
	response       *model.PredictionResponse
	baseURL        string
	rules          upload.Rules
	requestTimeout time.Duration
	healthTimeout  time.Duration
	notifyTTL      time.Duration
	healthAttempts int
	selection      uint64
	state          model.UIState
	mu             sync.Mutex
	inFlight       bool
}

// New creates a controller in the Idle state.
func New(predictor api.Predictor, opts ...Option) (*Controller, error) {
	if predictor == nil {
		return nil, fmt.Errorf("%w: predictor is required", common.ErrMissingConfig)
	}

	c := &Controller{
		predictor:      predictor,
		decoder:        upload.NewDecoder(),
		surface:        nopSurface{},
		now:            time.Now,
		rules:          upload.DefaultRules(),
		requestTimeout: DefaultRequestTimeout,
		healthTimeout:  5 * time.Second,
		healthAttempts: 1,
		state:          model.StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.notifications = newNotificationCenter(c.notifyTTL, c.now)

	return c, nil
}

// Snapshot returns a copy of the current UI state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// State returns the current workflow state.
func (c *Controller) State() model.UIState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Notifications returns the notifications that have not yet expired.
func (c *Controller) Notifications() []model.Notification {
	return c.notifications.active()
}

// DismissNotification removes a notification early.
func (c *Controller) DismissNotification(id string) bool {
	return c.notifications.dismiss(id)
}

// SetSurface replaces the surface that receives renders and notifications.
func (c *Controller) SetSurface(s Surface) {
	if s == nil {
		s = nopSurface{}
	}
	c.mu.Lock()
	c.surface = s
	c.mu.Unlock()
}

// SelectFile validates img and makes it the selected image. The preview is
// decoded afterwards and only lands if img is still the selection. Invalid
// files leave the state and the current selection untouched.
func (c *Controller) SelectFile(ctx context.Context, img model.SelectedImage) error {
	if err := c.checkIdle("select a file"); err != nil {
		return err
	}

	if err := c.rules.Validate(img); err != nil {
		c.notifyError(err, "Please select a valid image file (PNG or JPG)")
		return err
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return c.busy("select a file")
	}
	c.selection++
	token := c.selection
	prev := c.selectionLocked()
	from := c.state
	c.image = &img
	c.preview = nil
	c.results = nil
	c.response = nil
	c.state = model.StatePreviewShown
	snap := c.snapshotLocked()
	surface := c.surface
	c.mu.Unlock()

	c.logTransition(from, snap.State, "select_file")
	surface.Render(snap)

	preview, err := c.decoder.Decode(ctx, img)

	c.mu.Lock()
	if token != c.selection {
		c.mu.Unlock()
		slog.Debug("Discarding stale preview", "file", img.Name)
		return nil
	}
	if err != nil {
		if !c.inFlight {
			c.restoreLocked(prev)
		}
		snap = c.snapshotLocked()
		surface = c.surface
		c.mu.Unlock()

		common.LogError(err, "Failed to decode image preview", common.Fields{"file": img.Name})
		surface.Render(snap)
		userErr := common.NewUserError(fmt.Sprintf("Could not read %s as an image", img.Name), err)
		c.notifyError(userErr, msgRequestFailed)
		return fmt.Errorf("failed to preview %s: %w", img.Name, userErr)
	}
	c.preview = &preview
	snap = c.snapshotLocked()
	surface = c.surface
	c.mu.Unlock()

	surface.Render(snap)
	return nil
}

// selection is the part of the controller state a failed decode rolls back.
type selection struct {
	image    *model.SelectedImage
	preview  *model.Preview
	results  *model.ResultsView
	response *model.PredictionResponse
	state    model.UIState
}

func (c *Controller) selectionLocked() selection {
	return selection{
		image:    c.image,
		preview:  c.preview,
		results:  c.results,
		response: c.response,
		state:    c.state,
	}
}

func (c *Controller) restoreLocked(s selection) {
	c.image = s.image
	c.preview = s.preview
	c.results = s.results
	c.response = s.response
	c.state = s.state
}

func (c *Controller) checkIdle(action string) error {
	c.mu.Lock()
	busy := c.inFlight
	c.mu.Unlock()
	if !busy {
		return nil
	}
	return c.busy(action)
}

func (c *Controller) busy(action string) error {
	c.Notify(msgBusy, model.SeverityWarning)
	return fmt.Errorf("%w: cannot %s while submitting", common.ErrInvalidState, action)
}

// SelectPath inspects the file at path and selects it.
func (c *Controller) SelectPath(ctx context.Context, path string) error {
	img, err := upload.Inspect(path)
	if err != nil {
		userErr := common.NewUserError(fmt.Sprintf("Could not open %s", path), err)
		c.notifyError(userErr, msgRequestFailed)
		return userErr
	}
	return c.SelectFile(ctx, img)
}

// ClearFile discards the selected image and returns to Idle.
func (c *Controller) ClearFile() error {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return c.busy("clear the file")
	}
	from := c.state
	c.selection++
	c.image = nil
	c.preview = nil
	c.results = nil
	c.response = nil
	c.state = model.StateIdle
	snap := c.snapshotLocked()
	surface := c.surface
	c.mu.Unlock()

	c.logTransition(from, snap.State, "clear_file")
	surface.Render(snap)

	return nil
}

// Submit validates form against the selected image and performs one prediction.
// A call made while another prediction is in flight returns
// common.ErrSubmitInFlight and has no other effect.
func (c *Controller) Submit(ctx context.Context, form model.FormValues) (err error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		slog.Debug("Ignoring submit while a prediction is in flight")
		return common.ErrSubmitInFlight
	}

	if c.image == nil {
		c.mu.Unlock()
		err := common.NewValidationError("file", msgNoImage, common.ErrNoImage)
		c.Notify(msgNoImage, model.SeverityError)
		return err
	}

	req, err := BuildRequest(*c.image, form)
	if err != nil {
		c.mu.Unlock()
		c.notifyError(err, msgInvalidYAxis)
		return err
	}

	from := c.state
	c.inFlight = true
	c.state = model.StateSubmitting
	snap := c.snapshotLocked()
	surface := c.surface
	c.mu.Unlock()

	c.logTransition(from, snap.State, "submit")
	surface.Render(snap)

	var resp *model.PredictionResponse
	defer func() {
		err = c.finishSubmit(from, resp, err)
	}()

	resp, err = c.predict(ctx, req)
	return err
}

// predict performs the network call under the request timeout.
func (c *Controller) predict(ctx context.Context, req model.PredictionRequest) (*model.PredictionResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	start := c.now()
	resp, err := c.predictor.Predict(ctx, req)
	if err != nil {
		var serverErr *common.ServerError
		if errors.As(err, &serverErr) && serverErr.StatusCode < 500 {
			slog.Warn("Prediction rejected",
				"file", req.Image.Name,
				"status", serverErr.StatusCode,
				"detail", serverErr.Detail)
			return nil, err
		}
		common.LogError(err, "Prediction failed", common.Fields{
			"file":     req.Image.Name,
			"duration": c.now().Sub(start),
		})
		return nil, err
	}
	if resp == nil {
		return nil, common.ErrMalformedResponse
	}

	slog.Info("Prediction received",
		"trend", resp.Trend,
		"file", req.Image.Name,
		"duration", c.now().Sub(start))

	return resp, nil
}

// finishSubmit leaves Submitting on every path and projects the outcome.
func (c *Controller) finishSubmit(from model.UIState, resp *model.PredictionResponse, err error) error {
	if err == nil && resp == nil {
		err = common.ErrMalformedResponse
	}

	c.mu.Lock()
	c.inFlight = false
	if err != nil {
		c.state = from
	} else {
		view := presenter.Present(*resp)
		c.results = &view
		c.response = resp
		c.state = model.StateResultsShown
	}
	snap := c.snapshotLocked()
	surface := c.surface
	c.mu.Unlock()

	c.logTransition(model.StateSubmitting, snap.State, "submit_done")
	surface.Render(snap)

	if err != nil {
		c.Notify(c.failureMessage(err), model.SeverityError)
		return err
	}

	surface.ScrollToResults()
	return nil
}

func (c *Controller) failureMessage(err error) string {
	var serverErr *common.ServerError
	switch {
	case errors.As(err, &serverErr):
		if serverErr.Detail != "" {
			return serverErr.Detail
		}
		return msgPredictionFailed
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("Prediction timed out after %s. Please try again.", c.requestTimeout)
	case errors.Is(err, context.Canceled):
		return msgPredictionCancel
	case errors.Is(err, common.ErrMalformedResponse):
		return msgInvalidResponse
	default:
		return msgRequestFailed
	}
}

// CheckBackendHealth pings the API root. Failure only produces a warning.
func (c *Controller) CheckBackendHealth(ctx context.Context) error {
	err := common.WithRetry(ctx, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
		defer cancel()
		return c.predictor.Health(ctx)
	}, common.RetryOptions{
		MaxAttempts:  c.healthAttempts,
		InitialDelay: 250 * time.Millisecond,
		MaxDelay:     2 * time.Second,
	})
	if err == nil {
		slog.Info("API is running", "base_url", c.baseURL)
		return nil
	}

	slog.Warn("API is not accessible. Make sure the backend is running", "base_url", c.baseURL, "error", err)
	c.Notify(fmt.Sprintf(msgBackendNotRunning, c.baseURL), model.SeverityWarning)

	if !errors.Is(err, common.ErrBackendUnreachable) {
		err = fmt.Errorf("%w: %w", common.ErrBackendUnreachable, err)
	}
	return err
}

// Notify shows a transient message. It never blocks on the surface's behalf.
func (c *Controller) Notify(message string, severity model.Severity) model.Notification {
	n := c.notifications.push(message, severity)

	c.mu.Lock()
	surface := c.surface
	c.mu.Unlock()

	slog.Debug("Notification", "severity", severity, "message", message)
	surface.Notify(n)
	return n
}

func (c *Controller) notifyError(err error, fallback string) {
	c.Notify(common.UserMessage(err, fallback), model.SeverityError)
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:           c.state,
		Busy:            c.inFlight,
		SubmitEnabled:   !c.inFlight,
		DropZoneVisible: c.image == nil,
		PreviewVisible:  c.image != nil,
		ResultsVisible:  c.results != nil,
	}
	if c.image != nil {
		img := *c.image
		snap.Image = &img
	}
	if c.preview != nil {
		preview := *c.preview
		snap.Preview = &preview
	}
	if c.results != nil {
		results := *c.results
		results.Probabilities = append([]model.ProbabilityRow(nil), c.results.Probabilities...)
		snap.Results = &results
	}
	if c.response != nil {
		resp := *c.response
		snap.Response = &resp
	}
	return snap
}

func (c *Controller) logTransition(from, to model.UIState, event string) {
	slog.Debug("State transition", "event", event, "from", from.String(), "to", to.String())
}
