package dinos

import (
	"context"
	"io/fs"
	"os"
)

// DefaultPath is where the catalog lives, relative to the working directory.
const DefaultPath = "data/dinosaurs.json"

// Source yields the raw catalog text.
type Source interface {
	Read(ctx context.Context) ([]byte, error)
	// Location names the source in errors and logs.
	Location() string
}

// FileSource reads the catalog from disk on every call.
type FileSource struct {
	Path string
}

func (s FileSource) path() string {
	if s.Path == "" {
		return DefaultPath
	}
	return s.Path
}

func (s FileSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(s.path())
}

func (s FileSource) Location() string { return s.path() }

// FSSource reads the catalog from an fs.FS (embedded data, fstest.MapFS).
type FSSource struct {
	FS   fs.FS
	Name string
}

func (s FSSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.FS == nil {
		return nil, fs.ErrInvalid
	}
	return fs.ReadFile(s.FS, s.Name)
}

func (s FSSource) Location() string { return s.Name }

// Load reads the full contents of src. Every failure is a *FileReadError.
func Load(ctx context.Context, src Source) ([]byte, error) {
	if src == nil {
		return nil, &FileReadError{Path: "<nil>", Err: fs.ErrInvalid}
	}
	raw, err := src.Read(ctx)
	if err != nil {
		return nil, &FileReadError{Path: src.Location(), Err: err}
	}
	return raw, nil
}
