package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiresock/netwatch/config"
)

func TestLoadEnv_MissingFileIsNotAnError(t *testing.T) {
	err := config.LoadEnv(filepath.Join(t.TempDir(), "does-not-exist.env"))
	assert.NoError(t, err)
}

func TestLoadEnv_AppliesKeyValueLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("NETWATCH_TEST_ONE=one\nNETWATCH_TEST_TWO=two\r\n"), 0o644))
	os.Unsetenv("NETWATCH_TEST_ONE")
	os.Unsetenv("NETWATCH_TEST_TWO")

	require.NoError(t, config.LoadEnv(path))

	assert.Equal(t, "one", os.Getenv("NETWATCH_TEST_ONE"))
	assert.Equal(t, "two", os.Getenv("NETWATCH_TEST_TWO"), "a trailing \\r must be trimmed before parsing")
}

// A line longer than the configured ceiling must be skipped on its own,
// not abort the rest of the file — a bufio.Scanner-based reader would lose
// every line after the oversized one.
func TestLoadEnv_OversizedLineIsSkippedNotFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	oversized := "NETWATCH_TEST_OVERSIZED=" + strings.Repeat("x", 3000)
	content := oversized + "\nNETWATCH_TEST_AFTER=after\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	os.Unsetenv("NETWATCH_TEST_OVERSIZED")
	os.Unsetenv("NETWATCH_TEST_AFTER")

	require.NoError(t, config.LoadEnv(path))

	assert.Empty(t, os.Getenv("NETWATCH_TEST_OVERSIZED"))
	assert.Equal(t, "after", os.Getenv("NETWATCH_TEST_AFTER"), "a valid line after an oversized one must still load")
}
