package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/onair/pkg/models"
)

func TestStateOperations(t *testing.T) {
	f := Open(filepath.Join(t.TempDir(), "state", "flags.yml"))

	t.Run("Load empty state", func(t *testing.T) {
		st, err := f.Load()
		require.NoError(t, err)
		assert.Empty(t, st)
	})

	t.Run("Set and Get values", func(t *testing.T) {
		require.NoError(t, f.Set("test.key", "test-value"))
		require.NoError(t, f.Set("flag", true))

		got, err := f.GetString("test.key")
		require.NoError(t, err)
		assert.Equal(t, "test-value", got)

		b, err := f.GetBool("flag")
		require.NoError(t, err)
		assert.True(t, b)

		missing, err := f.GetString("nope")
		require.NoError(t, err)
		assert.Empty(t, missing)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, f.Delete("test.key"))
		_, ok, err := f.Get("test.key")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestPrefs(t *testing.T) {
	f := Open(filepath.Join(t.TempDir(), "flags.yml"))
	def := models.Prefs{Theme: "dark"}

	got, err := f.LoadPrefs(def)
	require.NoError(t, err)
	assert.Equal(t, def, got)

	require.NoError(t, f.Set("other", 1))
	require.NoError(t, f.SavePrefs(models.Prefs{SetupCompleted: true, Theme: "light"}))

	got, err = f.LoadPrefs(def)
	require.NoError(t, err)
	assert.Equal(t, models.Prefs{SetupCompleted: true, Theme: "light"}, got)

	_, ok, err := f.Get("other")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.yml")
	require.NoError(t, os.WriteFile(path, []byte("setup_completed: [unclosed"), 0644))

	f := Open(path)
	_, err := f.Load()
	assert.Error(t, err)
	got, err := f.LoadPrefs(models.Prefs{Theme: "dark"})
	assert.Error(t, err)
	assert.Equal(t, "dark", got.Theme)
}
