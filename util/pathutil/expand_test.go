package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := Expand("~/studio/onair.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "studio", "onair.db"), got)

	t.Setenv("ONAIR_TEST_ROOT", "/srv/onair")
	got, err = Expand("$ONAIR_TEST_ROOT/templates")
	require.NoError(t, err)
	assert.Equal(t, "/srv/onair/templates", got)

	got, err = Expand("")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Expand("relative/dir")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
}

func TestExpandAll(t *testing.T) {
	t.Setenv("ONAIR_TEST_ROOT", "/srv/onair")
	a, b := "$ONAIR_TEST_ROOT/a", ""
	require.NoError(t, ExpandAll(&a, &b, nil))
	assert.Equal(t, "/srv/onair/a", a)
	assert.Empty(t, b)
}
