package uploads

import (
	"os"
	"strings"
	"testing"
)

func TestDiskSinkStore(t *testing.T) {
	sink, err := NewDiskSink(t.TempDir())
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}

	path, err := sink.Store("cracked screen!.jpg", strings.NewReader("fake-bytes"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "fake-bytes" {
		t.Errorf("stored content = %q", data)
	}
	if strings.Contains(path, "!") {
		t.Errorf("path not sanitized: %q", path)
	}
}

func TestNewDiskSinkRequiresDir(t *testing.T) {
	if _, err := NewDiskSink(""); err == nil {
		t.Fatal("expected error for empty dir")
	}
}
