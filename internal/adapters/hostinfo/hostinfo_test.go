package hostinfo

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollect(t *testing.T) {
	t.Parallel()

	facts, _ := Collect(context.Background())

	assert.NotEmpty(t, facts.OS)
	assert.NotEmpty(t, facts.Arch)
}

func TestFacts_Describe(t *testing.T) {
	t.Parallel()

	f := Facts{OS: "windows", Platform: "Microsoft Windows 11 Pro", PlatformVersion: "10.0.22631", Arch: "x86_64"}
	assert.Equal(t, "Microsoft Windows 11 Pro 10.0.22631 (x86_64)", f.Describe())

	bare := Facts{OS: runtime.GOOS, Arch: "arm64"}
	assert.Equal(t, runtime.GOOS+" (arm64)", bare.Describe())
}

func TestFacts_Fields(t *testing.T) {
	t.Parallel()

	fields := Facts{Hostname: "dev-box"}.Fields()

	assert.Len(t, fields, 5)
	assert.Equal(t, "hostname", fields[0].Key)
	assert.Equal(t, "dev-box", fields[0].Value)
}
