// Package prompt implements ports.Decider for terminals and pipes, and the
// pause shown before the program exits.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/revelare/toolbelt/internal/ports"
)

// ErrNoInput is returned when the input stream ends before an answer is read.
var ErrNoInput = errors.New("no input available")

// LineDecider asks on out and reads a single line from in. It is used when
// stdin is not a terminal, e.g. when answers are piped in. Besides "Y" the
// whole word "yes" is accepted, in any case; everything else, including an
// empty line, means no.
type LineDecider struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLineDecider creates a LineDecider.
func NewLineDecider(in io.Reader, out io.Writer) *LineDecider {
	return &LineDecider{in: bufio.NewReader(in), out: out}
}

// Confirm prints question and waits for a line or for ctx to end.
func (d *LineDecider) Confirm(ctx context.Context, question string) (bool, error) {
	_, _ = fmt.Fprintf(d.out, "\n%s (Y/N): ", question)

	line, err := readLine(ctx, d.in)
	if err != nil {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// HuhDecider renders a confirm field with charmbracelet/huh.
type HuhDecider struct {
	theme *huh.Theme
}

// NewHuhDecider creates a HuhDecider with the Charm theme.
func NewHuhDecider() *HuhDecider {
	return &HuhDecider{theme: huh.ThemeCharm()}
}

// Confirm shows question with Yes/No choices. Aborting the form (Esc or
// Ctrl+C) answers no.
func (d *HuhDecider) Confirm(ctx context.Context, question string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(d.theme)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// AlwaysYes answers yes without asking. It backs --yes.
type AlwaysYes struct{}

// Confirm returns true.
func (AlwaysYes) Confirm(context.Context, string) (bool, error) {
	return true, nil
}

// Options selects a decider.
type Options struct {
	AssumeYes bool
	In        *os.File
	Out       *os.File
}

// NewDecider picks AlwaysYes for AssumeYes, a huh form when both streams are
// terminals, and a line prompt otherwise.
func NewDecider(opts Options) ports.Decider {
	switch {
	case opts.AssumeYes:
		return AlwaysYes{}
	case IsTerminal(opts.In) && IsTerminal(opts.Out):
		return NewHuhDecider()
	default:
		return NewLineDecider(opts.In, opts.Out)
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Pause prints "Press Enter to exit..." and waits for a line, EOF or ctx.
func Pause(ctx context.Context, in io.Reader, out io.Writer) {
	_, _ = fmt.Fprint(out, "\nPress Enter to exit...")
	_, _ = readLine(ctx, bufio.NewReader(in))
}

func readLine(ctx context.Context, r *bufio.Reader) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := r.ReadString('\n')
		ch <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.err != nil {
			if errors.Is(res.err, io.EOF) && res.line != "" {
				return res.line, nil
			}
			if errors.Is(res.err, io.EOF) {
				return "", ErrNoInput
			}
			return "", res.err
		}
		return res.line, nil
	}
}

var (
	_ ports.Decider = (*LineDecider)(nil)
	_ ports.Decider = (*HuhDecider)(nil)
	_ ports.Decider = AlwaysYes{}
)
