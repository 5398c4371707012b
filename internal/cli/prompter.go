package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/Veraticus/trendscope/internal/model"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// Prompter asks for prediction parameters that were not given as flags.
type Prompter struct {
	writer io.Writer
	lines  chan lineResult
	reader *bufio.Reader
}

type lineResult struct {
	err   error
	value string
}

// NewPrompter creates a prompter reading from reader and writing to writer.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Prompter{
		reader: bufio.NewReader(reader),
		writer: writer,
	}
}

// CompleteForm prompts for every blank Y-axis bound until it parses as a number.
// Fields that already hold a value are left alone.
func (p *Prompter) CompleteForm(ctx context.Context, form model.FormValues) (model.FormValues, error) {
	if strings.TrimSpace(form.YMin) == "" {
		v, err := p.promptNumber(ctx, "Y-axis Min")
		if err != nil {
			return form, err
		}
		form.YMin = v
	}

	if strings.TrimSpace(form.YMax) == "" {
		v, err := p.promptNumber(ctx, "Y-axis Max")
		if err != nil {
			return form, err
		}
		form.YMax = v
	}

	return form, nil
}

func (p *Prompter) promptNumber(ctx context.Context, label string) (string, error) {
	for {
		if _, err := fmt.Fprint(p.writer, FormatPrompt(label)); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}

		line, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}

		if _, err := strconv.ParseFloat(line, 64); err == nil {
			return line, nil
		}

		if _, err := fmt.Fprintln(p.writer, FormatError("Please enter a number.")); err != nil {
			slog.Warn("Failed to write error message", "error", err)
		}
	}
}

// readLine reads one trimmed line, returning early if ctx is canceled. A read
// abandoned by cancellation is handed to the next call.
func (p *Prompter) readLine(ctx context.Context) (string, error) {
	if p.lines == nil {
		p.lines = make(chan lineResult, 1)
		go func() {
			value, err := p.reader.ReadString('\n')
			p.lines <- lineResult{value: value, err: err}
		}()
	}

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-p.lines:
		p.lines = nil
		if res.err != nil {
			if errors.Is(res.err, io.EOF) && strings.TrimSpace(res.value) != "" {
				return strings.TrimSpace(res.value), nil
			}
			if errors.Is(res.err, io.EOF) {
				return "", fmt.Errorf("input terminated")
			}
			return "", res.err
		}
		return strings.TrimSpace(res.value), nil
	}
}
