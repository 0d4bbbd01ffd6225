package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/griddeck/griddeck/pkg/errors"
	"github.com/griddeck/griddeck/pkg/observability"
)

// FileStore persists records as JSON files in a directory, one file
// per layout id. It suits single-user CLI workflows.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir, creating the directory
// if needed. An empty dir defaults to ~/.config/griddeck/layouts.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(home, ".config", "griddeck", "layouts")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Get returns the record with the given id.
func (s *FileStore) Get(ctx context.Context, id string) (*Record, error) {
	rec, err := s.read(id)
	observability.Store().OnGet(ctx, "file", id, err)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *FileStore) read(id string) (*Record, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(id))
	if os.IsNotExist(err) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "reading layout %s", id)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decoding layout %s", id)
	}
	return &rec, nil
}

// Put inserts or replaces a record. The write goes through a temp
// file and rename, so a crash cannot leave a half-written layout.
func (s *FileStore) Put(ctx context.Context, rec *Record) error {
	err := s.write(rec)
	observability.Store().OnPut(ctx, "file", rec.ID, err)
	return err
}

func (s *FileStore) write(rec *Record) error {
	if err := ValidateID(rec.ID); err != nil {
		return err
	}
	rec.UpdatedAt = time.Now().UTC()

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "encoding layout %s", rec.ID)
	}

	tmp, err := os.CreateTemp(s.dir, "."+rec.ID+"-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "writing layout %s", rec.ID)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeStore, err, "writing layout %s", rec.ID)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "writing layout %s", rec.ID)
	}
	if err := os.Rename(tmp.Name(), s.path(rec.ID)); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "writing layout %s", rec.ID)
	}
	return nil
}

// Delete removes a record.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	err := s.remove(id)
	observability.Store().OnDelete(ctx, "file", id, err)
	return err
}

func (s *FileStore) remove(id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	err := os.Remove(s.path(id))
	if os.IsNotExist(err) {
		return notFound(id)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "deleting layout %s", id)
	}
	return nil
}

// List returns all records, most recently updated first. Unreadable
// files are skipped rather than failing the whole listing.
func (s *FileStore) List(ctx context.Context) ([]Record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "listing layouts")
	}

	var out []Record
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, ".") {
			continue
		}
		rec, err := s.read(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		out = append(out, *rec)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Close does nothing.
func (s *FileStore) Close() error { return nil }

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
