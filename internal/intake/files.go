// Package intake identifies the uploaded attendance exports and decodes their
// rows into typed attendance records.
package intake

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type Category int

const (
	Events Category = iota
	Sessions
	Users
)

// Marker returns the filename substring that identifies the category.
func (c Category) Marker() string {
	switch c {
	case Events:
		return "ActivityEvents"
	case Sessions:
		return "ActivitySessions"
	case Users:
		return "Misc"
	default:
		return ""
	}
}

func (c Category) String() string { return c.Marker() }

// CategoryOf matches a filename against the category markers (case-sensitive).
func CategoryOf(name string) (Category, bool) {
	base := filepath.Base(name)
	for _, c := range []Category{Sessions, Events, Users} {
		if strings.Contains(base, c.Marker()) {
			return c, true
		}
	}
	return 0, false
}

// File is a named input that can be opened for reading.
type File struct {
	Name string
	Open func() (io.ReadCloser, error)
}

func OSFile(path string) File {
	return File{
		Name: filepath.Base(path),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// InputError means the set of files supplied cannot produce a report.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return e.Msg }

// Bundle is a validated set of inputs. Users is optional.
type Bundle struct {
	Events   File
	Sessions File
	Users    *File
}

// Files lists the bundle's inputs in events, sessions, users order.
func (b Bundle) Files() []File {
	out := []File{b.Events, b.Sessions}
	if b.Users != nil {
		out = append(out, *b.Users)
	}
	return out
}

// NewBundle builds a bundle from explicitly selected files.
func NewBundle(events, sessions, users *File) (Bundle, error) {
	switch {
	case events == nil && sessions == nil:
		return Bundle{}, &InputError{Msg: "Please provide at least two files: ActivityEvents and ActivitySessions"}
	case events == nil:
		return Bundle{}, &InputError{Msg: "Missing ActivityEvents file"}
	case sessions == nil:
		return Bundle{}, &InputError{Msg: "Missing ActivitySessions file"}
	}
	return Bundle{Events: *events, Sessions: *sessions, Users: users}, nil
}

// Classify sorts files into categories by filename.
func Classify(files []File) (Bundle, error) {
	if len(files) < 2 {
		return Bundle{}, &InputError{Msg: "Please provide at least two files: ActivityEvents and ActivitySessions"}
	}

	found := make(map[Category][]File)
	for _, f := range files {
		c, ok := CategoryOf(f.Name)
		if !ok {
			return Bundle{}, &InputError{Msg: fmt.Sprintf(
				"File %q is not an ActivityEvents, ActivitySessions or Misc export", f.Name)}
		}
		found[c] = append(found[c], f)
	}

	for _, c := range []Category{Events, Sessions, Users} {
		if len(found[c]) > 1 {
			names := make([]string, 0, len(found[c]))
			for _, f := range found[c] {
				names = append(names, f.Name)
			}
			return Bundle{}, &InputError{Msg: fmt.Sprintf(
				"More than one %s file: %s", c.Marker(), strings.Join(names, ", "))}
		}
	}

	pick := func(c Category) *File {
		if fs := found[c]; len(fs) == 1 {
			return &fs[0]
		}
		return nil
	}
	return NewBundle(pick(Events), pick(Sessions), pick(Users))
}
