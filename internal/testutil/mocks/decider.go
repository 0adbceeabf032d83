package mocks

import (
	"context"
	"sync"

	"github.com/revelare/toolbelt/internal/ports"
)

// Decider replays scripted answers and records the questions asked.
// Once the script is exhausted it keeps returning the last answer, or false
// when no answers were scripted.
type Decider struct {
	mu        sync.Mutex
	answers   []bool
	err       error
	questions []string
}

// NewDecider creates a Decider that answers in the given order.
func NewDecider(answers ...bool) *Decider {
	return &Decider{answers: answers}
}

// WithError makes every Confirm call fail with err.
func (d *Decider) WithError(err error) *Decider {
	d.err = err
	return d
}

// Confirm returns the next scripted answer.
func (d *Decider) Confirm(_ context.Context, question string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.questions = append(d.questions, question)
	if d.err != nil {
		return false, d.err
	}
	if len(d.answers) == 0 {
		return false, nil
	}
	answer := d.answers[0]
	if len(d.answers) > 1 {
		d.answers = d.answers[1:]
	}
	return answer, nil
}

// Questions returns the questions asked so far.
func (d *Decider) Questions() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.questions))
	copy(out, d.questions)
	return out
}

var _ ports.Decider = (*Decider)(nil)
