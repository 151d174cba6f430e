// Package output writes the three files a successful assembly run produces:
// the object file and, when non-empty, the entries and externals files
// (spec.md §6).
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

const wordMask = 1<<24 - 1

// errWriter tracks the first write error and keeps returning it, so a
// multi-line emission doesn't need an err check after every Fprintf
// (grounded on db47h-ngaro's ngi.ErrWriter).
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = errors.Wrap(err, "write failed")
	}
	return n, ew.err
}

// Entry is one line of a .ent or .ext file: a symbol name and an address —
// the symbol's own address for .ent, the address of the referencing word
// for .ext (spec.md §6).
type Entry struct {
	Name    string
	Address uint32
}

// WriteObject writes <base>.ob: a header line "     <code-size> <data-size>",
// then one "%07d %06x" line per code word followed by one per data word,
// code words addressed starting at baseAddr (spec.md §6).
func WriteObject(path string, code, data []uint32, baseAddr uint32) error {
	f, err := os.Create(path) // #nosec G304 -- path is derived from a user-supplied source base name
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()

	ew := &errWriter{w: f}
	fmt.Fprintf(ew, "     %d %d\n", len(code), len(data))

	addr := baseAddr
	for _, w := range code {
		fmt.Fprintf(ew, "%07d %06x\n", addr, w&wordMask)
		addr++
	}
	for _, w := range data {
		fmt.Fprintf(ew, "%07d %06x\n", addr, w&wordMask)
		addr++
	}

	if ew.err != nil {
		return ew.err
	}
	return nil
}

// WriteIntermediate writes <base>.am: one normalized source line per line,
// produced only when the preprocessor stage itself raised no errors —
// callers must not invoke this otherwise (spec.md §6).
func WriteIntermediate(path string, lines []string) error {
	f, err := os.Create(path) // #nosec G304 -- path is derived from a user-supplied source base name
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()

	ew := &errWriter{w: f}
	for _, line := range lines {
		fmt.Fprintln(ew, line)
	}

	if ew.err != nil {
		return ew.err
	}
	return nil
}

// WriteEntries writes <base>.ent, one "NAME %07d" line per entry. Callers
// must not call this when entries is empty — the file is omitted entirely
// in that case (spec.md §6).
func WriteEntries(path string, entries []Entry) error {
	return writeNameAddressFile(path, entries)
}

// WriteExterns writes <base>.ext, one "NAME %07d" line per external
// reference site. Omitted entirely when refs is empty (spec.md §6).
func WriteExterns(path string, refs []Entry) error {
	return writeNameAddressFile(path, refs)
}

func writeNameAddressFile(path string, entries []Entry) error {
	f, err := os.Create(path) // #nosec G304 -- path is derived from a user-supplied source base name
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()

	ew := &errWriter{w: f}
	for _, e := range entries {
		fmt.Fprintf(ew, "%s %07d\n", e.Name, e.Address)
	}

	if ew.err != nil {
		return ew.err
	}
	return nil
}
