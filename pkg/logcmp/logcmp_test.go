package logcmp

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompareIdentical(t *testing.T) {
	lines := []string{"boot start", "init done", "service up"}
	require.Empty(t, Compare(lines, lines, DefaultContext))
}

func TestCompareReorderedWithinWindow(t *testing.T) {
	oldLines := []string{"a", "b", "c"}
	newLines := []string{"b", "a", "c"}

	require.Empty(t, Compare(oldLines, newLines, 5), "reordering inside the window is not a difference")
}

func TestCompareOutsideWindow(t *testing.T) {
	oldLines := []string{"target", "x", "y", "z"}
	newLines := []string{"x", "y", "z", "target"}

	diff := Compare(oldLines, newLines, 1)
	require.Len(t, diff, 2, "the same line counts on both sides when displaced beyond the window")
	require.Equal(t, DiffEntry{OldLine: 1, NewLine: -1, Content: "target"}, diff[0])
	require.Equal(t, DiffEntry{OldLine: -1, NewLine: 4, Content: "target"}, diff[1])
}

func TestCompareConsumesMatchesOnce(t *testing.T) {
	oldLines := []string{"dup", "dup"}
	newLines := []string{"dup"}

	diff := Compare(oldLines, newLines, 5)
	require.Len(t, diff, 1)
	require.Equal(t, 2, diff[0].OldLine)
	require.Equal(t, -1, diff[0].NewLine)
}

func TestCompareSortsByLineNumber(t *testing.T) {
	oldLines := []string{"only-old", "shared"}
	newLines := []string{"shared", "only-new"}

	diff := Compare(oldLines, newLines, 5)
	require.Len(t, diff, 2)
	require.Equal(t, "only-old", diff[0].Content)
	require.Equal(t, "only-new", diff[1].Content)
}

func TestPreprocessDmesg(t *testing.T) {
	in := []string{
		"[    0.123456] Booting Linux",
		"[   12.000001] usb 1-1: new device",
		"no timestamp here",
	}
	require.Equal(t, []string{
		"Booting Linux",
		"usb 1-1: new device",
		"no timestamp here",
	}, PreprocessDmesg(in))
}

func TestReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n"), 0644))

	lines, err := ReadLines(path)
	require.NoError(t, err)
	require.Equal(t, []string{"one", "two"}, lines)
}

func TestRenderPlain(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, []DiffEntry{
		{OldLine: 3, NewLine: -1, Content: "gone"},
		{OldLine: -1, NewLine: 7, Content: "new"},
	}, false)
	require.NoError(t, err)
	require.Equal(t, "     3      - gone\n     -      7 new\n", buf.String())
}
