package version

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	origV, origC, origD := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() { Version, GitCommit, BuildDate = origV, origC, origD })
}

func TestVersion_DefaultValue(t *testing.T) {
	assert.NotEmpty(t, Version)
}

func TestCurrentTrims(t *testing.T) {
	withVersion(t, " 1.2.3 ", "abc123\n", "")
	info := Current()
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "abc123", info.GitCommit)
	assert.Equal(t, "bwqlint 1.2.3 (abc123)", info.String())
}

func TestInfoString(t *testing.T) {
	assert.Equal(t, "bwqlint 0.1.0", Info{Version: "0.1.0"}.String())
	assert.Equal(t, "bwqlint 0.1.0 (abc, 2024-01-15)",
		Info{Version: "0.1.0", GitCommit: "abc", BuildDate: "2024-01-15"}.String())
}

func TestColored(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	for _, v := range []string{"0.1.0-dev", "1.2.3", "1.2.3-rc.1+build.123", "weird"} {
		withVersion(t, v, "", "")
		assert.Equal(t, v, Colored(), v)
	}
}
