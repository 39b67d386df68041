package textdiff

import (
	"errors"
	"testing"
)

func TestLinesSplitsKeepingEndings(t *testing.T) {
	lines, err := Lines([]byte("one\ntwo\n"))
	if err != nil {
		t.Fatalf("Lines() error: %v", err)
	}
	if len(lines) != 2 || lines[0] != "one\n" || lines[1] != "two\n" {
		t.Errorf("Lines() = %q", lines)
	}
}

func TestLinesEmpty(t *testing.T) {
	lines, err := Lines(nil)
	if err != nil {
		t.Fatalf("Lines() error: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("Lines(nil) = %q, want empty", lines)
	}
}

func TestLinesRejectsBinary(t *testing.T) {
	if _, err := Lines([]byte{0x7f, 0x45, 0x4c, 0x46, 0x00, 0x01}); !errors.Is(err, ErrNotText) {
		t.Errorf("Lines() on NUL content: err = %v, want ErrNotText", err)
	}
	if _, err := Lines([]byte{0xff, 0xfe, 0xfd}); !errors.Is(err, ErrNotText) {
		t.Errorf("Lines() on invalid UTF-8: err = %v, want ErrNotText", err)
	}
}

func TestUnifiedLineCountIdentical(t *testing.T) {
	lines := []string{"a\n", "b\n"}
	n, err := UnifiedLineCount(lines, lines)
	if err != nil {
		t.Fatalf("UnifiedLineCount() error: %v", err)
	}
	if n != 0 {
		t.Errorf("identical inputs: count = %d, want 0", n)
	}
}

func TestUnifiedLineCountSingleChange(t *testing.T) {
	// ---, +++, @@, -v1, +v2 = 5 rendered lines
	n, err := UnifiedLineCount([]string{"v1\n"}, []string{"v2\n"})
	if err != nil {
		t.Fatalf("UnifiedLineCount() error: %v", err)
	}
	if n != 5 {
		t.Errorf("single-line change: count = %d, want 5", n)
	}
}

func TestUnifiedLineCountMonotonic(t *testing.T) {
	archive := []string{"a\n", "b\n", "c\n", "d\n"}
	near := []string{"a\n", "b\n", "c\n", "X\n"}
	far := []string{"w\n", "x\n", "y\n", "z\n"}

	nNear, err := UnifiedLineCount(near, archive)
	if err != nil {
		t.Fatalf("UnifiedLineCount() error: %v", err)
	}
	nFar, err := UnifiedLineCount(far, archive)
	if err != nil {
		t.Fatalf("UnifiedLineCount() error: %v", err)
	}
	if nNear >= nFar {
		t.Errorf("closer content should diff smaller: near=%d far=%d", nNear, nFar)
	}
}

func TestUnifiedLineCountDeterministic(t *testing.T) {
	old := []string{"a\n", "b\n"}
	new := []string{"a\n", "c\n", "d\n"}

	first, err := UnifiedLineCount(old, new)
	if err != nil {
		t.Fatalf("UnifiedLineCount() error: %v", err)
	}
	second, err := UnifiedLineCount(old, new)
	if err != nil {
		t.Fatalf("UnifiedLineCount() error: %v", err)
	}
	if first != second {
		t.Errorf("diff size not deterministic: %d vs %d", first, second)
	}
}
