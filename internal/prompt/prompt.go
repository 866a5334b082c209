// Package prompt asks the operator questions on a terminal.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// ErrNotInteractive is returned when input is not a terminal and a question
// would block forever or read garbage.
var ErrNotInteractive = errors.New("input is not an interactive terminal")

// Prompter asks free-form and yes/no questions.
type Prompter interface {
	Ask(ctx context.Context, question string) (string, error)
	Confirm(ctx context.Context, question string) (bool, error)
}

// Terminal reads answers line by line from an input stream.
type Terminal struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewTerminal returns a prompter bound to stdin and stdout.
func NewTerminal() *Terminal {
	fd := os.Stdin.Fd()
	interactive := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return NewTerminalWith(os.Stdin, os.Stdout, interactive)
}

// NewTerminalWith builds a prompter over arbitrary streams.
func NewTerminalWith(in io.Reader, out io.Writer, interactive bool) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out, interactive: interactive}
}

// Interactive reports whether questions can be answered.
func (t *Terminal) Interactive() bool {
	return t.interactive
}

// Ask prints question and returns the trimmed answer line.
func (t *Terminal) Ask(ctx context.Context, question string) (string, error) {
	if !t.interactive {
		return "", ErrNotInteractive
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprintf(t.out, "%s ", question)
	line, err := t.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question until the first letter of the answer is y
// or n, in either case.
func (t *Terminal) Confirm(ctx context.Context, question string) (bool, error) {
	for {
		answer, err := t.Ask(ctx, question+" (y/n)?")
		if err != nil {
			return false, err
		}
		if answer == "" {
			continue
		}
		switch strings.ToLower(answer[:1]) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
	}
}
