package uploads

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Sink stores raw uploaded files and hands back an opaque path string.
// The core never inspects file contents; the path is carried on records
// (product images, repair photos, sell-request photos) as-is.
type Sink interface {
	Store(filename string, r io.Reader) (string, error)
}

// DiskSink writes uploads to a local directory.
type DiskSink struct {
	dir string
}

// NewDiskSink ensures the directory exists and returns a sink over it.
func NewDiskSink(dir string) (*DiskSink, error) {
	if dir == "" {
		return nil, fmt.Errorf("uploads dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &DiskSink{dir: dir}, nil
}

// Store writes the file under a timestamp-prefixed sanitized name and
// returns the stored path.
func (s *DiskSink) Store(filename string, r io.Reader) (string, error) {
	name := sanitizeFilename(filename)
	if name == "" {
		name = "upload"
	}
	path := filepath.Join(s.dir, fmt.Sprintf("%d-%s", time.Now().Unix(), name))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return path, nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-.")
}
