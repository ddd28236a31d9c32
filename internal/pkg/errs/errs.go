// Package errs is a thin layer over cockroachdb/errors so callers get stack
// traces and marks without importing it everywhere.
package errs

import (
	"fmt"
	"slices"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func New(msg string) error {
	return cr.New(msg)
}

// Wrap returns nil for a nil err, so it can wrap a call result directly.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.Wrapf(err, format, args...)
}

// Mark tags err so that Is(err, kind) holds while err keeps its own message.
// A nil err yields kind itself.
func Mark(err, kind error) error {
	if err == nil {
		return kind
	}
	return cr.Mark(err, kind)
}

func Is(err, reference error) bool {
	return cr.Is(err, reference)
}

func IsAny(err error, references ...error) bool {
	return slices.ContainsFunc(references, func(ref error) bool { return cr.Is(err, ref) })
}

// ExtractStackLines renders err with its stack and keeps the first maxLines
// lines; maxLines <= 0 keeps all of them.
func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	lines := strings.Split(fmt.Sprintf("%+v", err), "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
