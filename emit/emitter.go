// Package emit serializes a final namespace tree into one generated
// source unit and runs the external formatter over it.
//
// Formatting is best effort. Correctness of generated code does not
// depend on its formatting, so a missing formatter binary or a non-zero
// exit is reported as a warning and the unformatted artifact is kept:
// the caller always gets a usable file.
package emit

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/winterop/winrtgen/closure"
	"github.com/winterop/winrtgen/errors"
	"github.com/winterop/winrtgen/logger"
	"github.com/winterop/winrtgen/metadata"
)

// Mode selects how the formatter is applied.
type Mode string

const (
	// ModePipe feeds the unformatted text to the formatter's stdin and
	// persists the reformatted stream it writes to stdout.
	ModePipe Mode = "pipe"
	// ModeInPlace writes the unformatted file first, then runs the
	// formatter on it in place.
	ModeInPlace Mode = "in-place"
)

// Emitter writes the generated source for a closed, pruned tree.
type Emitter struct {
	Universe metadata.Universe
	// Formatter is the external formatter command line, shell-quoted
	// (e.g. "rustfmt --edition 2021"). Empty disables formatting.
	Formatter string
	Mode      Mode
}

// Render serializes the tree in sorted namespace order. Two runs over the
// same tree produce byte-identical text.
func (e *Emitter) Render(tree *closure.Tree) string {
	var sb strings.Builder

	sb.WriteString("// Code generated by winrtgen. DO NOT EDIT.\n\n")

	for _, ns := range tree.Namespaces() {
		sb.WriteString("// namespace ")
		sb.WriteString(ns)
		sb.WriteString("\n")

		for _, patch := range tree.Patches(ns) {
			sb.WriteString("use ")
			sb.WriteString(patch.Alias)
			sb.WriteString("; // replaces ")
			sb.WriteString(patch.Removed.String())
			sb.WriteString("\n")
		}

		for _, h := range tree.Types(ns) {
			sb.WriteString(e.Universe.Render(h))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// Emit renders the tree and writes it, formatted where possible, to
// outputPath.
func (e *Emitter) Emit(tree *closure.Tree, outputPath string) error {
	text := e.Render(tree)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}

	if e.Formatter == "" {
		return writeRaw(outputPath, text)
	}

	args, err := shellquote.Split(e.Formatter)
	if err != nil || len(args) == 0 {
		logger.Warnw("Formatter command line is malformed, keeping unformatted output",
			"formatter", e.Formatter,
			"error", err)
		return writeRaw(outputPath, text)
	}

	switch e.Mode {
	case ModePipe:
		return e.emitPiped(args, text, outputPath)
	default:
		return e.emitInPlace(args, text, outputPath)
	}
}

// emitPiped streams text through the formatter. A dedicated goroutine
// drains the formatter's stdout into the destination file while the text
// is still being written to its stdin; without it both sides deadlock
// once the pipe buffer fills.
func (e *Emitter) emitPiped(args []string, text, outputPath string) error {
	cmd := exec.Command(args[0], args[1:]...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return errors.Wrap(err, "failed to open formatter stdin")
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return errors.Wrap(err, "failed to open formatter stdout")
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		logger.Warnw("Formatter could not be started, keeping unformatted output",
			"formatter", args[0],
			"error", err)
		return writeRaw(outputPath, text)
	}

	var formatted bytes.Buffer
	drained := make(chan error, 1)
	go func() {
		_, err := io.Copy(&formatted, stdout)
		drained <- err
	}()

	_, writeErr := io.WriteString(stdin, text)
	stdin.Close()
	copyErr := <-drained
	waitErr := cmd.Wait()

	if writeErr != nil || copyErr != nil || waitErr != nil {
		logger.Warnw("Formatter failed, keeping unformatted output",
			"formatter", args[0],
			"error", firstError(writeErr, copyErr, waitErr),
			"stderr", stderr.String())
		return writeRaw(outputPath, text)
	}

	return writeRaw(outputPath, formatted.String())
}

// emitInPlace writes the unformatted file, then runs the formatter over
// it. The raw file survives any formatter failure.
func (e *Emitter) emitInPlace(args []string, text, outputPath string) error {
	if err := writeRaw(outputPath, text); err != nil {
		return err
	}

	cmd := exec.Command(args[0], append(args[1:], outputPath)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		logger.Warnw("Formatter failed, keeping unformatted output",
			"formatter", args[0],
			"file", outputPath,
			"error", err,
			"stderr", stderr.String())
	}
	return nil
}

func writeRaw(outputPath, text string) error {
	if err := os.WriteFile(outputPath, []byte(text), 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", outputPath)
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
