// Package filesystem provides an object store backed by a local directory.
// Storage keys map to file paths relative to the root, so a drop directory
// stands in for a remote bucket.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/askitty/askitty/internal/core/domain"
	"github.com/askitty/askitty/internal/core/ports/driven"
)

// Ensure ObjectStore implements the interface.
var _ driven.ObjectStore = (*ObjectStore)(nil)

// unsafeKeyChars matches everything a key segment may not contain.
var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeKey rewrites each slash-separated segment of a key, replacing
// disallowed characters with underscores and dropping empty segments. The
// result never escapes the store root.
func SanitizeKey(key string) string {
	parts := strings.Split(key, "/")
	kept := parts[:0]
	for _, p := range parts {
		p = unsafeKeyChars.ReplaceAllString(p, "_")
		if p == "" || p == "." || p == ".." {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, "/")
}

// ObjectStore reads document bytes from files under a root directory.
type ObjectStore struct {
	root string
}

// New creates an object store rooted at dir.
func New(dir string) (*ObjectStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("object store root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("object store root %s is not a directory", dir)
	}
	return &ObjectStore{root: dir}, nil
}

// Root returns the store's root directory.
func (s *ObjectStore) Root() string {
	return s.root
}

// KeyFor converts an absolute or root-relative file path into the storage
// key it would be served under.
func (s *ObjectStore) KeyFor(path string) (string, error) {
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return "", fmt.Errorf("key for %s: %w", path, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s is outside the store root", path)
	}
	return SanitizeKey(filepath.ToSlash(rel)), nil
}

// Get returns the bytes of the file stored under the key. Missing files map
// to domain.ErrNotFound.
func (s *ObjectStore) Get(_ context.Context, key string) ([]byte, error) {
	clean := SanitizeKey(key)
	if clean == "" {
		return nil, fmt.Errorf("%w: empty key", domain.ErrInvalidInput)
	}

	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(clean)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("object %s: %w", clean, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("read object %s: %w", clean, err)
	}
	return data, nil
}

// List walks the store and returns every key in lexical order.
func (s *ObjectStore) List(_ context.Context) ([]string, error) {
	var keys []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		key, err := s.KeyFor(path)
		if err != nil {
			return err
		}
		keys = append(keys, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}
	return keys, nil
}
