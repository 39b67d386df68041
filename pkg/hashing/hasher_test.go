package hashing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Known SHA-256 of "hello\n"
const helloDigest = "5891b5b522d5df086d0ff0b110fbd9d21bb4fc7163af34d08286a2e846f6be03"

func TestDigestBytes(t *testing.T) {
	if got := DigestBytes([]byte("hello\n")); got != helloDigest {
		t.Errorf("DigestBytes() = %s, want %s", got, helloDigest)
	}
}

func TestDigestReader(t *testing.T) {
	got, err := Digest(strings.NewReader("hello\n"))
	if err != nil {
		t.Fatalf("Digest() error: %v", err)
	}
	if got != helloDigest {
		t.Errorf("Digest() = %s, want %s", got, helloDigest)
	}
}

func TestDigestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.txt")
	if err := os.WriteFile(path, []byte("hello\n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	got, err := DigestFile(path)
	if err != nil {
		t.Fatalf("DigestFile() error: %v", err)
	}
	if got != helloDigest {
		t.Errorf("DigestFile() = %s, want %s", got, helloDigest)
	}
}

func TestDigestFileMissing(t *testing.T) {
	if _, err := DigestFile(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("DigestFile() on missing file should return an error")
	}
}

func TestDigestAgreement(t *testing.T) {
	// Bytes hashed via reader and via buffer must produce the same key,
	// since archive files and repo blobs take different paths.
	content := []byte("some\nmultiline\ncontent\n")

	fromReader, err := Digest(strings.NewReader(string(content)))
	if err != nil {
		t.Fatalf("Digest() error: %v", err)
	}
	if fromBytes := DigestBytes(content); fromBytes != fromReader {
		t.Errorf("digest mismatch: reader %s vs bytes %s", fromReader, fromBytes)
	}
}

func TestDigestEmpty(t *testing.T) {
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := DigestBytes(nil); got != want {
		t.Errorf("DigestBytes(nil) = %s, want %s", got, want)
	}
}
