package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompter implements the interactive confirmation prompt for detected text.
// It satisfies service.Confirmer.
type Prompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewPrompter creates a prompter with the given reader and writer.
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

// Confirm shows the detected text and asks whether to copy it to the
// clipboard. It returns false with a nil error when the user declines;
// declining is not a failure.
func (p *Prompter) Confirm(ctx context.Context, text string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	if _, err := fmt.Fprintln(p.writer, RenderBox("Detected text", text)); err != nil {
		return false, fmt.Errorf("failed to write detected text: %w", err)
	}

	for {
		if _, err := fmt.Fprint(p.writer, FormatPrompt("Copy to clipboard? [y/n]: ")); err != nil {
			return false, fmt.Errorf("failed to write prompt: %w", err)
		}

		line, err := p.reader.ReadString('\n')
		if err != nil && line == "" {
			return false, fmt.Errorf("failed to read response: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			if _, err := fmt.Fprintln(p.writer, FormatSuccess("Copied")); err != nil {
				return true, nil
			}
			return true, nil
		case "n", "no":
			if _, err := fmt.Fprintln(p.writer, SubtleStyle.Render("Skipped")); err != nil {
				return false, nil
			}
			return false, nil
		}

		if _, err := fmt.Fprintln(p.writer, WarningStyle.Render("Please answer y or n")); err != nil {
			return false, fmt.Errorf("failed to write retry prompt: %w", err)
		}
		if err != nil {
			// Reader is exhausted and no valid answer arrived.
			return false, fmt.Errorf("no valid response: %w", err)
		}
	}
}
