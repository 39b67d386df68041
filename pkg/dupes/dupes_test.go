package dupes

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	return root
}

func TestCompare(t *testing.T) {
	dir1 := buildTree(t, map[string]string{
		"same.txt":         "identical\n",
		"sub/changed.txt":  "left\n",
		"only-in-one.txt":  "solo\n",
		".git/config":      "ignored\n",
		"sub/.git/objects": "ignored\n",
	})
	dir2 := buildTree(t, map[string]string{
		"same.txt":        "identical\n",
		"sub/changed.txt": "right\n",
		"only-in-two.txt": "solo\n",
	})

	res, err := Compare(context.Background(), dir1, dir2, nil)
	require.NoError(t, err)

	require.Equal(t, []string{"same.txt"}, res.Identical)
	require.Equal(t, []string{"only-in-one.txt", "only-in-two.txt", "sub/changed.txt"}, res.Different)
}

func TestCompareRejectsNonDirectory(t *testing.T) {
	dir := buildTree(t, map[string]string{"a.txt": "x"})

	_, err := Compare(context.Background(), filepath.Join(dir, "a.txt"), dir, nil)
	require.Error(t, err)
}

func TestCompareCancellation(t *testing.T) {
	dir1 := buildTree(t, map[string]string{"a.txt": "x"})
	dir2 := buildTree(t, map[string]string{"a.txt": "x"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Compare(ctx, dir1, dir2, nil)
	require.Error(t, err)
}
