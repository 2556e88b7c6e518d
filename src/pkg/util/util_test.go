package util

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(0, 1, 20))
	assert.Equal(t, 20, Clamp(99, 1, 20))
	assert.Equal(t, 5, Clamp(5, 1, 20))
}

func TestGroupThousands(t *testing.T) {
	cases := []struct {
		raw  string
		sep  string
		want string
	}{
		{"0", ",", "0"},
		{"999", ",", "999"},
		{"1000", ",", "1,000"},
		{"1234567", ".", "1.234.567"},
		{"-1234", ",", "-1,234"},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, GroupThousands(tc.raw, tc.sep))
		})
	}
}

func TestFormatIntHuman(t *testing.T) {
	assert.Equal(t, "12,345", FormatIntHuman(12345))
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source.csv")
	destination := filepath.Join(dir, "copy.csv")
	require.NoError(t, os.WriteFile(source, []byte("a,b\n1,2\n"), 0o644))

	e := CopyFile(source, destination)
	require.Nil(t, e)

	copied, err := os.ReadFile(destination)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(copied))
	assert.True(t, FileExists(destination))
	assert.False(t, FileExists(dir))
}

func TestCopyFileMissingSource(t *testing.T) {
	e := CopyFile(filepath.Join(t.TempDir(), "missing.csv"), filepath.Join(t.TempDir(), "out.csv"))
	assert.NotNil(t, e)
}

func TestEnsureDirectory(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b")
	require.Nil(t, EnsureDirectory(target))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestClampSwappedBounds(t *testing.T) {
	assert.Equal(t, 5, Clamp(9, 5, 1))
	assert.Equal(t, 1, Clamp(-3, 5, 1))
}

func TestMissingFlags(t *testing.T) {
	saved := requiredFlags
	t.Cleanup(func() { requiredFlags = saved })
	requiredFlags = nil

	sender := "  "
	recipient := "someone@example.org"
	RequiredFlag(&sender, "sender")
	RequiredFlag(&recipient, "-recipient")
	RequiredFlag(nil, "--provider")

	assert.Equal(t, []string{"--sender", "--provider"}, MissingFlags())
}

func TestTodayFromFlag(t *testing.T) {
	parsed := TodayFromFlag(" 2024-03-11 ", "today")
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, time.March, parsed.Month())
	assert.Equal(t, 11, parsed.Day())

	assert.WithinDuration(t, time.Now(), TodayFromFlag("", "today"), time.Minute)
}
