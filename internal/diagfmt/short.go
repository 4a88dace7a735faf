package diagfmt

import (
	"fmt"
	"io"

	"globalint/internal/diag"
	"globalint/internal/source"
)

// Short печатает по одной строке на диагностику:
// <severity> <rule> <path>:<line>:<col> <message>
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) error {
	out := diag.FormatShortDiagnostics(bag.Items(), fs, includeNotes)
	if out == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, out)
	return err
}
