package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/trendscope/internal/controller"
	"github.com/Veraticus/trendscope/internal/model"
	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
)

// Output formats for the console surface.
const (
	OutputText = "text"
	OutputJSON = "json"
)

const spinnerInterval = 100 * time.Millisecond

// Console is a controller.Surface that writes to a terminal. It prints the
// selected image once, shows a spinner while a prediction is in flight and
// prints the results when they arrive.
type Console struct {
	writer   io.Writer
	errOut   io.Writer
	bar      *progressbar.ProgressBar
	stop     chan struct{}
	done     chan struct{}
	format   string
	lastFile string
	state    model.UIState
	mu       sync.Mutex
	spinner  bool
}

// Ensure we implement the interface.
var _ controller.Surface = (*Console)(nil)

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithErrorWriter sends notifications to w instead of the main writer.
func WithErrorWriter(w io.Writer) ConsoleOption {
	return func(c *Console) {
		if w != nil {
			c.errOut = w
		}
	}
}

// WithFormat selects text or JSON results.
func WithFormat(format string) ConsoleOption {
	return func(c *Console) {
		c.format = format
	}
}

// WithSpinner enables the busy spinner.
func WithSpinner(enabled bool) ConsoleOption {
	return func(c *Console) {
		c.spinner = enabled
	}
}

// NewConsole creates a console surface writing to writer.
func NewConsole(writer io.Writer, opts ...ConsoleOption) *Console {
	if writer == nil {
		writer = os.Stdout
	}
	c := &Console{
		writer:  writer,
		errOut:  writer,
		format:  OutputText,
		spinner: true,
		state:   model.StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Render implements controller.Surface.
func (c *Console) Render(snap controller.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if snap.Busy {
		c.startSpinnerLocked(snap)
	} else {
		c.stopSpinnerLocked()
	}

	prev := c.state
	c.state = snap.State

	switch {
	case snap.State == model.StatePreviewShown && snap.Image != nil && snap.Preview != nil && snap.Image.Name != c.lastFile:
		c.lastFile = snap.Image.Name
		if c.format == OutputText {
			c.println(FormatInfo(describeSelection(snap)))
		}
	case snap.State == model.StateResultsShown && prev != model.StateResultsShown:
		c.writeResultsLocked(snap)
	case snap.State == model.StateIdle:
		c.lastFile = ""
	}
}

// Notify implements controller.Surface.
func (c *Console) Notify(n model.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bar != nil {
		_ = c.bar.Clear()
	}
	if _, err := fmt.Fprintln(c.errOut, FormatNotification(n)); err != nil {
		slog.Warn("Failed to write notification", "error", err)
	}
}

// ScrollToResults implements controller.Surface. Terminal output already
// ends with the results, so there is nothing to scroll.
func (c *Console) ScrollToResults() {}

// Close stops the spinner if it is still running.
func (c *Console) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopSpinnerLocked()
}

func (c *Console) writeResultsLocked(snap controller.Snapshot) {
	if c.format == OutputJSON {
		if snap.Response == nil {
			return
		}
		if err := WriteJSON(c.writer, snap.Response); err != nil {
			slog.Warn("Failed to write prediction", "error", err)
		}
		return
	}

	if snap.Results == nil {
		return
	}
	out, err := RenderResults(*snap.Results)
	if err != nil {
		slog.Warn("Failed to render results", "error", err)
		return
	}
	c.println(out)
}

func (c *Console) startSpinnerLocked(snap controller.Snapshot) {
	if !c.spinner || c.bar != nil {
		return
	}

	desc := "Analyzing chart..."
	if snap.Image != nil {
		desc = fmt.Sprintf("Analyzing %s...", snap.Image.Name)
	}

	c.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(c.errOut),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetDescription("[cyan]"+desc+"[reset]"),
		progressbar.OptionClearOnFinish(),
	)
	c.stop = make(chan struct{})
	c.done = make(chan struct{})

	go spin(c.bar, c.stop, c.done)
}

func spin(bar *progressbar.ProgressBar, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := bar.Add(1); err != nil {
				slog.Debug("Failed to advance spinner", "error", err)
			}
		}
	}
}

func (c *Console) stopSpinnerLocked() {
	if c.bar == nil {
		return
	}
	close(c.stop)
	<-c.done
	if err := c.bar.Finish(); err != nil {
		slog.Debug("Failed to finish spinner", "error", err)
	}
	c.bar = nil
}

func (c *Console) println(s string) {
	if _, err := fmt.Fprintln(c.writer, s); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}

func describeSelection(snap controller.Snapshot) string {
	parts := []string{"Selected " + snap.Image.Name}
	var details []string
	if snap.Preview != nil {
		if snap.Preview.Format != "" {
			details = append(details, strings.ToUpper(snap.Preview.Format))
		}
		if snap.Preview.Width > 0 {
			details = append(details, fmt.Sprintf("%dx%d", snap.Preview.Width, snap.Preview.Height))
		}
	}
	if snap.Image.Size > 0 {
		details = append(details, humanize.IBytes(uint64(snap.Image.Size)))
	}
	if len(details) > 0 {
		parts = append(parts, "("+strings.Join(details, ", ")+")")
	}
	return strings.Join(parts, " ")
}
