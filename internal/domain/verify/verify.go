// Package verify runs the version checks of catalog entries and reports what
// is present, missing or outdated.
package verify

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	version "github.com/hashicorp/go-version"

	"github.com/revelare/toolbelt/internal/domain/catalog"
	"github.com/revelare/toolbelt/internal/ports"
)

// DefaultTimeout bounds each version check.
const DefaultTimeout = 30 * time.Second

// versionPattern matches the first version-looking token, e.g. "2.44.0" in
// "git version 2.44.0.windows.1".
var versionPattern = regexp.MustCompile(`v?(\d+(?:\.\d+)+)`)

// Status is the verification outcome for one entry.
type Status int

const (
	// Present means the check succeeded and printed a parseable version.
	Present Status = iota
	// Unparsed means the check succeeded but no version could be read.
	Unparsed
	// Outdated means the version is below the entry's minimum.
	Outdated
	// Missing means the check command failed.
	Missing
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case Present:
		return "present"
	case Unparsed:
		return "unparsed"
	case Outdated:
		return "outdated"
	case Missing:
		return "missing"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result is the verification of a single entry.
type Result struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Check    string `json:"check"`
	Status   Status `json:"status"`
	Version  string `json:"version,omitempty"`
	Minimum  string `json:"min_version,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

// OK reports whether the entry needs no attention.
func (r Result) OK() bool {
	return r.Status == Present || r.Status == Unparsed
}

// Verifier runs check commands.
type Verifier struct {
	runner  ports.CommandRunner
	timeout time.Duration
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithTimeout sets the per-check timeout.
func WithTimeout(d time.Duration) Option {
	return func(v *Verifier) {
		v.timeout = d
	}
}

// New creates a Verifier.
func New(runner ports.CommandRunner, opts ...Option) *Verifier {
	v := &Verifier{runner: runner, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify checks every entry of the given categories that has a check command,
// in catalog order. Entries without one are not reported.
func (v *Verifier) Verify(ctx context.Context, categories []catalog.Category) []Result {
	var results []Result
	for _, cat := range categories {
		for _, entry := range cat.Entries() {
			if strings.TrimSpace(entry.Check) == "" {
				continue
			}
			if ctx.Err() != nil {
				return results
			}
			results = append(results, v.verifyEntry(ctx, cat.Name, entry))
		}
	}
	return results
}

func (v *Verifier) verifyEntry(ctx context.Context, category string, entry catalog.ToolEntry) Result {
	r := Result{
		Category: category,
		Name:     entry.DisplayName(),
		Check:    entry.Check,
		Minimum:  entry.MinVersion,
	}

	res, err := v.runner.Run(ctx, entry.Check, v.timeout)
	if err != nil || !res.Success() {
		r.Status = Missing
		switch {
		case err != nil:
			r.Detail = err.Error()
		case res.Stderr != "":
			r.Detail = firstLine(res.Stderr)
		default:
			r.Detail = fmt.Sprintf("exit code %d", res.ExitCode)
		}
		return r
	}

	found, ok := ExtractVersion(res.Stdout + "\n" + res.Stderr)
	if !ok {
		r.Status = Unparsed
		r.Detail = firstLine(res.Stdout)
		return r
	}
	r.Version = found.String()
	r.Status = Present

	if entry.MinVersion != "" {
		minimum, err := version.NewVersion(entry.MinVersion)
		if err != nil {
			r.Detail = fmt.Sprintf("invalid min_version %q", entry.MinVersion)
			return r
		}
		if found.LessThan(minimum) {
			r.Status = Outdated
			r.Detail = fmt.Sprintf("%s < %s", found, minimum)
		}
	}
	return r
}

// ExtractVersion finds and parses the first version-looking token in output.
func ExtractVersion(output string) (*version.Version, bool) {
	for _, m := range versionPattern.FindAllStringSubmatch(output, -1) {
		v, err := version.NewVersion(m[1])
		if err == nil {
			return v, true
		}
	}
	return nil, false
}

// Summary counts results per status.
func Summary(results []Result) map[Status]int {
	out := make(map[Status]int, 4)
	for _, r := range results {
		out[r.Status]++
	}
	return out
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
