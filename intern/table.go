// Package intern assigns small, stable tags to format strings and value
// shapes. A tag is what travels on the wire; the table mapping tags back to
// strings is the debug metadata a host needs to decode a stream.
package intern

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sync"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Tag identifies one interned string. Zero is never assigned.
type Tag uint16

var (
	ErrTableFull    = errors.New("intern table full")
	ErrCorruptTable = errors.New("corrupt intern table")
)

// Table is an append-only string interner. It is safe for concurrent use;
// interning is expected to happen during package initialization, lookups on
// hot paths only go through the returned constants.
type Table struct {
	mu      sync.RWMutex
	strs    []string
	index   map[string]Tag
	BuildID uuid.UUID
}

func NewTable() *Table {
	t := &Table{
		strs:    make([]string, 0, len(builtinShapes)+32),
		index:   make(map[string]Tag, len(builtinShapes)+32),
		BuildID: uuid.New(),
	}

	for i := range builtinShapes {
		t.push(builtinShapes[i])
	}

	return t
}

func (t *Table) push(s string) Tag {
	t.strs = append(t.strs, s)
	tag := Tag(len(t.strs))
	t.index[s] = tag
	return tag
}

// Intern returns the tag of s, assigning the next free tag on first use.
// It panics when the table runs out of tags; that can only happen in a build
// with more than 65535 distinct strings.
func (t *Table) Intern(s string) Tag {
	tag, err := t.TryIntern(s)

	if err != nil {
		panic(err)
	}

	return tag
}

func (t *Table) TryIntern(s string) (tag Tag, err error) {
	t.mu.RLock()
	tag, ok := t.index[s]
	t.mu.RUnlock()

	if ok {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if tag, ok = t.index[s]; ok {
		return
	}

	if len(t.strs) >= math.MaxUint16 {
		return 0, ErrTableFull
	}

	return t.push(s), nil
}

func (t *Table) Lookup(tag Tag) (s string, ok bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if tag == 0 || int(tag) > len(t.strs) {
		return
	}

	return t.strs[tag-1], true
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.strs)
}

type tableFile struct {
	BuildID uuid.UUID `json:"build_id"`
	Strings []string  `json:"strings"`
}

// WriteTo writes the table as JSON. Tag n is element n-1 of "strings".
func (t *Table) WriteTo(w io.Writer) (n int64, err error) {
	t.mu.RLock()
	b, err := json.Marshal(tableFile{
		BuildID: t.BuildID,
		Strings: t.strs,
	})
	t.mu.RUnlock()

	if err != nil {
		return
	}

	s, err := w.Write(b)
	return int64(s), err
}

// SaveFile writes the table to path, replacing any previous file.
func (t *Table) SaveFile(path string) (err error) {
	f, err := os.Create(path)

	if err != nil {
		return
	}

	if _, err = t.WriteTo(f); err != nil {
		f.Close()
		return
	}

	return f.Close()
}

// ReadTable loads a table written by WriteTo. The builtin shapes must be
// present and in order, otherwise the file belongs to an incompatible build.
func ReadTable(r io.Reader) (t *Table, err error) {
	var f tableFile

	if err = json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("read intern table: %w", err)
	}

	if len(f.Strings) < len(builtinShapes) || len(f.Strings) > math.MaxUint16 {
		return nil, ErrCorruptTable
	}

	for i := range builtinShapes {
		if f.Strings[i] != builtinShapes[i] {
			return nil, fmt.Errorf("%w: shape %d is %q", ErrCorruptTable, i+1, f.Strings[i])
		}
	}

	t = &Table{
		strs:    make([]string, 0, len(f.Strings)),
		index:   make(map[string]Tag, len(f.Strings)),
		BuildID: f.BuildID,
	}

	for _, s := range f.Strings {
		if _, dup := t.index[s]; dup {
			return nil, fmt.Errorf("%w: duplicate string %q", ErrCorruptTable, s)
		}

		t.push(s)
	}

	return
}

// Default is the process-wide table used by log call sites.
var Default = NewTable()

// Intern interns s in Default.
func Intern(s string) Tag {
	return Default.Intern(s)
}
