// Package workspace manages the flat directory holding generated sources
// and the artifacts their execution produces.
package workspace

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/doeshing/arcgen/internal/domain"
	"github.com/doeshing/arcgen/internal/ports"
)

// Store is the filesystem-backed artifact repository. One source file per
// category name exists at any time; new generations of the same category
// overwrite it.
type Store struct {
	dir      string
	suffixes map[string]bool
	mu       sync.Mutex
}

// NewStore creates the workspace directory if needed and returns the store.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	suffixes := make(map[string]bool)
	for _, s := range domain.RecognizedSuffixes() {
		suffixes[s] = true
	}
	return &Store{dir: dir, suffixes: suffixes}, nil
}

// Dir returns the workspace directory path.
func (s *Store) Dir() string {
	return s.dir
}

// WriteSource persists the sanitized source under the category's fixed
// filename, overwriting any prior file of that name, and returns the path.
func (s *Store) WriteSource(category domain.Category, code string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	path := filepath.Join(s.dir, category.SourceFilename())
	if err := os.WriteFile(path, []byte(code), domain.SourceFilePermissions); err != nil {
		return "", err
	}
	return path, nil
}

// List enumerates workspace files with recognized suffixes, ordered by
// modification time descending (most recent first).
func (s *Store) List() ([]domain.OutputFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var files []domain.OutputFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !s.suffixes[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, domain.OutputFile{
			Name:    entry.Name(),
			Path:    filepath.Join(s.dir, entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(files, func(i, j int) bool {
		if !files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].ModTime.After(files[j].ModTime)
		}
		return files[i].Name < files[j].Name
	})
	return files, nil
}

// Archive packs every regular file currently in the workspace into a single
// zip archive in memory, using each file's base name as its entry name.
// The namespace is flat; colliding basenames overwrite within the archive.
func (s *Store) Archive() ([]byte, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := addArchiveEntry(zw, filepath.Join(s.dir, entry.Name()), entry.Name()); err != nil {
			zw.Close()
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addArchiveEntry(zw *zip.Writer, path, name string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, file)
	return err
}

// Clear deletes every regular file in the workspace. Irreversible; any
// confirmation is a UI concern.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

var _ ports.ArtifactRepository = (*Store)(nil)
