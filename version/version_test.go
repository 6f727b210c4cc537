package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShort(t *testing.T) {
	i := Info{Version: "v1.2.0", Commit: "3f2c1a9d0e"}
	assert.Equal(t, "v1.2.0 (3f2c1a9)", i.Short())

	i.Modified = true
	assert.Equal(t, "v1.2.0 (3f2c1a9-dirty)", i.Short())

	assert.Equal(t, "dev (none)", Info{Version: "dev", Commit: "none"}.Short())
}

func TestGetInfoKeepsLinkerValues(t *testing.T) {
	old := Version
	Version = "v9.9.9"
	defer func() { Version = old }()

	info := GetInfo()
	assert.Equal(t, "v9.9.9", info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}
