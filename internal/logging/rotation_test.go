package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRotatingWriterRotatesPastMaxSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "collector.log")

	rw, err := NewRotatingWriter(path, 1, 2)
	if err != nil {
		t.Fatalf("expected writer, got %v", err)
	}
	defer rw.Close()
	rw.maxSize = 64 // shrink for the test

	line := bytes.Repeat([]byte("x"), 48)
	for i := 0; i < 3; i++ {
		if _, err := rw.Write(line); err != nil {
			t.Fatalf("write %d failed: %v", i, err)
		}
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("current log file missing: %v", err)
	}
	if _, err := os.Stat(path + ".1"); err != nil {
		t.Fatalf("expected first backup after rotation: %v", err)
	}
}

func TestRotatingWriterKeepsLimitedBackups(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "collector.log")

	rw, err := NewRotatingWriter(path, 1, 2)
	if err != nil {
		t.Fatalf("expected writer, got %v", err)
	}
	defer rw.Close()
	rw.maxSize = 8

	for i := 0; i < 6; i++ {
		if _, err := rw.Write([]byte("0123456789")); err != nil {
			t.Fatalf("write %d failed: %v", i, err)
		}
	}

	if _, err := os.Stat(path + ".2"); err != nil {
		t.Fatalf("expected second backup: %v", err)
	}
	if _, err := os.Stat(path + ".3"); err == nil {
		t.Fatal("backup beyond maxBackups should not exist")
	}
}
