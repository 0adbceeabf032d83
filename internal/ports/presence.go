package ports

import "context"

// PresenceChecker reports whether an executable resolves on the search path.
// Implementations must not cache: every call probes the environment again.
type PresenceChecker interface {
	Exists(ctx context.Context, name string) bool
}

// Decider answers yes/no questions asked while a session runs.
type Decider interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// DeciderFunc adapts a function to the Decider interface.
type DeciderFunc func(ctx context.Context, question string) (bool, error)

// Confirm calls f.
func (f DeciderFunc) Confirm(ctx context.Context, question string) (bool, error) {
	return f(ctx, question)
}
