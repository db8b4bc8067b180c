// Package export saves the rendered result screen as a document.
package export

import (
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/mrsinham/healthsurvey/internal/present"
)

// Format of an exported document.
type Format string

const (
	FormatPNG   Format = "png"
	FormatDICOM Format = "dcm"
)

// DefaultFilename is used when the caller passes an empty name.
const DefaultFilename = "Health_Report"

// Exporter writes a view to a document and returns the written path.
type Exporter interface {
	Export(view present.View, filename string) (string, error)
}

// New returns the exporter for format writing into dir.
func New(format, dir string) (Exporter, error) {
	switch Format(strings.ToLower(strings.TrimSpace(format))) {
	case FormatPNG, "":
		return &PNGExporter{Dir: dir}, nil
	case FormatDICOM:
		return &DICOMExporter{Dir: dir}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q (valid: png, dcm)", format)
	}
}

// PNGExporter writes the rendered page as a PNG image.
type PNGExporter struct {
	Dir string
}

func (e *PNGExporter) Export(view present.View, filename string) (string, error) {
	path, err := outputPath(e.Dir, filename, FormatPNG)
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	if err := png.Encode(f, RenderPage(view)); err != nil {
		return "", fmt.Errorf("encoding png: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	log.Printf("export: wrote %s", path)
	return path, nil
}

// Describe returns the path and human readable size of an exported file.
func Describe(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return path
	}
	return fmt.Sprintf("%s (%s)", path, humanize.Bytes(uint64(info.Size())))
}

// outputPath joins dir and filename, replacing any extension with the
// format's and creating dir when needed.
func outputPath(dir, filename string, format Format) (string, error) {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = DefaultFilename
	}
	name = strings.TrimSuffix(name, filepath.Ext(name)) + "." + string(format)

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}
	return filepath.Join(dir, name), nil
}
