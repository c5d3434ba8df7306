// Package sink delivers the final export string to its destinations.
// The pipeline has no opinion on sink mechanics; it hands the string over
// and is done.
package sink

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sink receives one complete export string.
type Sink interface {
	Write(ctx context.Context, export string) error
}

// Console writes the export string to a writer, followed by a newline.
type Console struct {
	w io.Writer
}

// NewConsole creates a console sink. A nil writer defaults to stdout.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{w: w}
}

func (c *Console) Write(_ context.Context, export string) error {
	_, err := fmt.Fprintln(c.w, export)
	return err
}

// File writes the export string to a deterministically named file inside a
// directory, so repeated conversions of the same fight land on the same
// path.
type File struct {
	dir    string
	report string
	fight  int
}

// NewFile creates a file sink for one report/fight pair.
func NewFile(dir, report string, fight int) *File {
	return &File{dir: dir, report: report, fight: fight}
}

// Filename returns the deterministic export filename for a report/fight.
func Filename(report string, fight int) string {
	return fmt.Sprintf("mdt_import_%s_fight_%d.txt", report, fight)
}

// Path returns the full path the sink writes to.
func (f *File) Path() string {
	return filepath.Join(f.dir, Filename(f.report, f.fight))
}

func (f *File) Write(_ context.Context, export string) error {
	return os.WriteFile(f.Path(), []byte(export), 0o644)
}
