package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionInfo(t *testing.T) {
	assert.Equal(t, "dev", GetVersion())
	assert.Contains(t, GetVersionInfo(), "Journal dev")

	Version, Commit, Date = "1.2.3", "abc123", "2026-10-19"
	t.Cleanup(func() { Version, Commit, Date = "dev", "none", "unknown" })

	assert.Equal(t, "1.2.3", GetVersion())
	assert.Contains(t, GetVersionInfo(), "Journal 1.2.3 (commit: abc123, built: 2026-10-19")
}
