// Package codec reads and writes images on disk.
//
// The plain PPM (P3) format is implemented here bit-for-bit. Every other
// raster format is delegated to github.com/disintegration/imaging, and this
// package only converts between its image.Image values and imaging.Image.
//
// The format is chosen from the file extension, case-insensitively:
//   - ".ppm" -> plain PPM
//   - ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff" -> raster codec
//   - ".webp" -> raster codec, read only
package codec

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"

	model "github.com/ironsheep/image-transform-mcp/internal/imaging"
)

// FileInfo describes an image file that was read or written.
type FileInfo struct {
	Path          string `json:"path"`
	Format        string `json:"format"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	FileSizeBytes int64  `json:"file_size_bytes"`
	FileSize      string `json:"file_size"` // human readable, e.g. "1.2 MB"
}

// ReadFile loads the image at path.
//
// Returns an error wrapping ErrIO naming the path if the file does not exist or
// cannot be decoded, and ErrValidation if a PPM file is malformed.
func ReadFile(path string) (*model.Image, *FileInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: file not found: %s", model.ErrIO, path)
		}
		return nil, nil, fmt.Errorf("%w: unable to read image: %s: %v", model.ErrIO, path, err)
	}
	defer f.Close()

	format := formatName(path)
	var img *model.Image
	if format == "ppm" {
		img, err = DecodePPM(f)
	} else {
		img, err = DecodeRaster(f)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	info, err := describe(path, format, img)
	if err != nil {
		return nil, nil, err
	}
	return img, info, nil
}

// WriteFile saves img to path, choosing the format from the extension.
//
// Returns an error wrapping ErrIO if the extension is not a writable format or
// the file cannot be created.
func WriteFile(path string, img *model.Image, opts Options) (*FileInfo, error) {
	format := formatName(path)

	var rasterFormat imaging.Format
	if format != "ppm" {
		var err error
		rasterFormat, err = imaging.FormatFromFilename(path)
		if err != nil {
			return nil, fmt.Errorf("%w: file format of %s is not supported: %q",
				model.ErrIO, path, filepath.Ext(path))
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to save file: %s: %v", model.ErrIO, path, err)
	}

	if format == "ppm" {
		err = EncodePPM(f, img)
	} else {
		err = EncodeRaster(f, img, rasterFormat, opts)
	}
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("%w: failed to save file: %s: %v", model.ErrIO, path, cerr)
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return describe(path, format, img)
}

// formatName maps a file extension to a short format name.
func formatName(path string) string {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ppm":
		return "ppm"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".tif", ".tiff":
		return "tiff"
	case "":
		return "unknown"
	default:
		return ext[1:]
	}
}

func describe(path, format string, img *model.Image) (*FileInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to stat file: %v", model.ErrIO, err)
	}
	return &FileInfo{
		Path:          path,
		Format:        format,
		Width:         img.Width(),
		Height:        img.Height(),
		FileSizeBytes: stat.Size(),
		FileSize:      humanize.Bytes(uint64(stat.Size())),
	}, nil
}
