package controller

import "github.com/Veraticus/trendscope/internal/model"

// Surface is a front end that displays controller state. Implementations must
// not call back into the controller synchronously.
type Surface interface {
	// Render shows the sections and controls described by the snapshot.
	Render(snapshot Snapshot)
	// Notify shows a transient message.
	Notify(notification model.Notification)
	// ScrollToResults brings the results section into view.
	ScrollToResults()
}

// Snapshot is a point-in-time copy of the controller's UI state.
type Snapshot struct {
	Image           *model.SelectedImage
	Preview         *model.Preview
	Results         *model.ResultsView
	Response        *model.PredictionResponse
	State           model.UIState
	Busy            bool
	SubmitEnabled   bool
	DropZoneVisible bool
	PreviewVisible  bool
	ResultsVisible  bool
}

type nopSurface struct{}

func (nopSurface) Render(Snapshot)           {}
func (nopSurface) Notify(model.Notification) {}
func (nopSurface) ScrollToResults()          {}
