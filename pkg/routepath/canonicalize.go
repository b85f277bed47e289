// Package routepath normalizes and validates the URL paths used by the
// route tree, incoming requests and navigation links.
package routepath

import (
	"errors"
	"strings"
)

// Result contains the result of path canonicalization.
type Result struct {
	// Path is the canonicalized path (without query string).
	Path string

	// Query is the query string (without leading "?").
	Query string

	// Changed indicates if the path was modified during canonicalization.
	Changed bool
}

// Path errors.
var (
	ErrInvalidPath          = errors.New("invalid path")
	ErrBackslashInPath      = errors.New("path contains backslash")
	ErrNullByteInPath       = errors.New("path contains null byte")
	ErrInvalidPercentEscape = errors.New("invalid percent escape sequence")
	ErrPathEscapesRoot      = errors.New("path escapes root via ..")
	ErrDynamicSegment       = errors.New("dynamic segments are not supported")
)

// Canonicalize normalizes a request path:
//   - trailing slash removed (except for root "/")
//   - repeated slashes collapsed (/demos//pong → /demos/pong)
//   - "." segments removed and ".." segments resolved
//
// Backslashes, NUL bytes, malformed percent-escapes and ".." above root are
// rejected. A query string is split off and preserved as-is.
func Canonicalize(input string) (Result, error) {
	if input == "" {
		return Result{Path: "/", Changed: true}, nil
	}

	path, query := SplitPathAndQuery(input)

	if strings.Contains(path, "\\") {
		return Result{}, ErrBackslashInPath
	}
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return Result{}, ErrNullByteInPath
	}
	if strings.Contains(path, "%") {
		if err := validatePercentEscapes(path); err != nil {
			return Result{}, err
		}
	}

	original := path
	segments, err := resolve(path)
	if err != nil {
		return Result{}, err
	}
	path = "/" + strings.Join(segments, "/")

	return Result{
		Path:    path,
		Query:   query,
		Changed: path != original,
	}, nil
}

// resolve splits path into segments, dropping empty and "." segments and
// applying "..".
func resolve(path string) ([]string, error) {
	var out []string
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(out) == 0 {
				return nil, ErrPathEscapesRoot
			}
			out = out[:len(out)-1]
		default:
			out = append(out, seg)
		}
	}
	return out, nil
}

// validatePercentEscapes checks that all percent-escapes are %XX with hex X.
func validatePercentEscapes(path string) error {
	for i := 0; i < len(path); i++ {
		if path[i] != '%' {
			continue
		}
		if i+2 >= len(path) || !isHexDigit(path[i+1]) || !isHexDigit(path[i+2]) {
			return ErrInvalidPercentEscape
		}
		i += 2
	}
	return nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// SplitPathAndQuery splits a path into path and query components.
// The query is returned without the leading "?".
func SplitPathAndQuery(input string) (path, query string) {
	path, query, _ = strings.Cut(input, "?")
	return path, query
}

// Segments splits a canonical path into its segments. Root has none.
func Segments(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
