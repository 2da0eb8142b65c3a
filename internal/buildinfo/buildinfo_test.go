package buildinfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintBuildData(t *testing.T) {
	orig := [3]string{Version, Date, Commit}
	t.Cleanup(func() { Version, Date, Commit = orig[0], orig[1], orig[2] })

	var buf bytes.Buffer
	Version, Date, Commit = "", "", ""
	PrintBuildData(&buf)
	assert.Equal(t, "Build version: N/A\nBuild date: N/A\nBuild commit: N/A\n", buf.String())

	buf.Reset()
	Version, Date, Commit = "v0.1.0", "2026-10-19", "abc123"
	PrintBuildData(&buf)
	assert.Equal(t, "Build version: v0.1.0\nBuild date: 2026-10-19\nBuild commit: abc123\n", buf.String())
}

func TestUserAgent(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = ""
	assert.Equal(t, "userdir/dev", UserAgent())
	Version = "v1.4.0"
	assert.Equal(t, "userdir/v1.4.0", UserAgent())
}
