package routepath

import "strings"

// ValidateRoutePath checks a path used to register a route. It must already
// be canonical, start with "/" and contain only static segments.
func ValidateRoutePath(path string) error {
	if !strings.HasPrefix(path, "/") {
		return ErrInvalidPath
	}
	res, err := Canonicalize(path)
	if err != nil {
		return err
	}
	if res.Changed || res.Query != "" {
		return ErrInvalidPath
	}
	for _, seg := range Segments(path) {
		if strings.HasPrefix(seg, ":") || strings.HasPrefix(seg, "*") || strings.ContainsAny(seg, "[]{}") {
			return ErrDynamicSegment
		}
	}
	return nil
}

// LinkTarget classifies an href. Local links return their canonical path
// and true. External URLs, fragments and mailto: links return false.
func LinkTarget(href string) (string, bool, error) {
	switch {
	case href == "":
		return "", false, ErrInvalidPath
	case strings.HasPrefix(href, "#"),
		strings.HasPrefix(href, "//"),
		strings.Contains(href, "://"),
		strings.HasPrefix(href, "mailto:"):
		return "", false, nil
	case !strings.HasPrefix(href, "/"):
		return "", false, ErrInvalidPath
	}

	href, _, _ = strings.Cut(href, "#")
	res, err := Canonicalize(href)
	if err != nil {
		return "", false, err
	}
	return res.Path, true, nil
}
