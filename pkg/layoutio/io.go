package layoutio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/griddeck/griddeck/pkg/errors"
)

// ReadJSON decodes a JSON layout document from r and validates it.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Document{}, err
	}
	return d, nil
}

// WriteJSON encodes a layout document to w, indented for human
// editing.
func WriteJSON(w io.Writer, d Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// ReadTOML decodes a TOML layout document from r and validates it.
func ReadTOML(r io.Reader) (Document, error) {
	var d Document
	if _, err := toml.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Document{}, err
	}
	return d, nil
}

// WriteTOML encodes a layout document to w.
func WriteTOML(w io.Writer, d Document) error {
	return toml.NewEncoder(w).Encode(d)
}

// Import reads a layout document from path, picking the encoding by
// file extension (.json or .toml).
func Import(path string) (Document, error) {
	read, err := codecFor(path)
	if err != nil {
		return Document{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	d, err := read(f)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Export writes a layout document to path, picking the encoding by
// file extension (.json or .toml).
func Export(path string, d Document) error {
	write, err := encoderFor(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := write(f, d); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	// A short write can surface at close.
	if err := f.Close(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func codecFor(path string) (func(io.Reader) (Document, error), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON, nil
	case ".toml":
		return ReadTOML, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported layout format %q", filepath.Ext(path))
	}
}

func encoderFor(path string) (func(io.Writer, Document) error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return WriteJSON, nil
	case ".toml":
		return WriteTOML, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported layout format %q", filepath.Ext(path))
	}
}
