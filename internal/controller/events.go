package controller

import (
	"context"
	"fmt"

	"github.com/Veraticus/trendscope/internal/model"
)

// Event is an input from a front end.
type Event interface {
	isEvent()
}

// FileSelected carries an already-described file.
type FileSelected struct {
	Image model.SelectedImage
}

// PathSelected carries a file path still to be inspected.
type PathSelected struct {
	Path string
}

// FileCleared asks for the selected file to be removed.
type FileCleared struct{}

// FormSubmitted carries the prediction parameters.
type FormSubmitted struct {
	Form model.FormValues
}

// HealthCheckRequested asks for a backend ping.
type HealthCheckRequested struct{}

func (FileSelected) isEvent()         {}
func (PathSelected) isEvent()         {}
func (FileCleared) isEvent()          {}
func (FormSubmitted) isEvent()        {}
func (HealthCheckRequested) isEvent() {}

// Dispatcher routes front-end events to workflow operations.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev Event) error
}

// Ensure we implement the interface.
var _ Dispatcher = (*Controller)(nil)

// Dispatch routes ev to the matching operation.
func (c *Controller) Dispatch(ctx context.Context, ev Event) error {
	switch ev := ev.(type) {
	case FileSelected:
		return c.SelectFile(ctx, ev.Image)
	case PathSelected:
		return c.SelectPath(ctx, ev.Path)
	case FileCleared:
		return c.ClearFile()
	case FormSubmitted:
		return c.Submit(ctx, ev.Form)
	case HealthCheckRequested:
		return c.CheckBackendHealth(ctx)
	default:
		return fmt.Errorf("unknown event %T", ev)
	}
}
