package transform

import (
	"fmt"

	"github.com/ironsheep/image-transform-mcp/internal/codec"
	"github.com/ironsheep/image-transform-mcp/internal/imaging"
)

// Load reads an image file into the store.
type Load struct {
	path string
	dst  string
	info *codec.FileInfo
}

// NewLoad creates a load of path published as dst.
func NewLoad(path, dst string) (*Load, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: file path must not be empty", imaging.ErrValidation)
	}
	if dst == "" {
		return nil, fmt.Errorf("%w: destination image name must not be empty", imaging.ErrValidation)
	}
	return &Load{path: path, dst: dst}, nil
}

// Name returns "load".
func (l *Load) Name() string { return "load" }

// Path returns the file the image is read from.
func (l *Load) Path() string { return l.path }

// Dest returns the name the image is published under.
func (l *Load) Dest() string { return l.dst }

// Info describes the file read by the most recent successful Apply.
func (l *Load) Info() *codec.FileInfo { return l.info }

// Apply reads the file and publishes the image.
func (l *Load) Apply(s Store) error {
	img, info, err := codec.ReadFile(l.path)
	if err != nil {
		return err
	}
	if err := s.Add(l.dst, img); err != nil {
		return err
	}
	l.info = info
	return nil
}

func (*Load) sealed() {}

// Save writes an image from the store to a file.
type Save struct {
	src  string
	path string
	opts codec.Options
	info *codec.FileInfo
}

// NewSave creates a save of src to path.
func NewSave(src, path string, opts codec.Options) (*Save, error) {
	if src == "" {
		return nil, fmt.Errorf("%w: source image name must not be empty", imaging.ErrValidation)
	}
	if path == "" {
		return nil, fmt.Errorf("%w: file path must not be empty", imaging.ErrValidation)
	}
	if opts.JPEGQuality < 0 || opts.JPEGQuality > 100 {
		return nil, fmt.Errorf("%w: jpeg quality must be 0-100 (0 means default), got %d",
			imaging.ErrValidation, opts.JPEGQuality)
	}
	return &Save{src: src, path: path, opts: opts}, nil
}

// Name returns "save".
func (v *Save) Name() string { return "save" }

// Source returns the name of the image written.
func (v *Save) Source() string { return v.src }

// Path returns the destination file.
func (v *Save) Path() string { return v.path }

// Info describes the file written by the most recent successful Apply.
func (v *Save) Info() *codec.FileInfo { return v.info }

// Apply writes the image. The store is never modified.
func (v *Save) Apply(s Store) error {
	img, err := s.Get(v.src)
	if err != nil {
		return err
	}
	info, err := codec.WriteFile(v.path, img, v.opts)
	if err != nil {
		return err
	}
	v.info = info
	return nil
}

func (*Save) sealed() {}
