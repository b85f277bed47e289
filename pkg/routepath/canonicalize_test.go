package routepath

import (
	"errors"
	"reflect"
	"testing"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantPath    string
		wantQuery   string
		wantChanged bool
	}{
		{name: "root", input: "/", wantPath: "/"},
		{name: "empty string", input: "", wantPath: "/", wantChanged: true},
		{name: "no leading slash", input: "about", wantPath: "/about", wantChanged: true},
		{name: "trailing slash", input: "/demos/", wantPath: "/demos", wantChanged: true},
		{name: "collapse slashes", input: "/demos//pong", wantPath: "/demos/pong", wantChanged: true},
		{name: "single dot", input: "/demos/./pong", wantPath: "/demos/pong", wantChanged: true},
		{name: "double dot", input: "/demos/pong/../matrix", wantPath: "/demos/matrix", wantChanged: true},
		{name: "double dot to root", input: "/about/..", wantPath: "/", wantChanged: true},
		{name: "query preserved", input: "/demos/pong?w=640", wantPath: "/demos/pong", wantQuery: "w=640"},
		{name: "valid percent escape", input: "/a%20b", wantPath: "/a%20b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Canonicalize(tt.input)
			if err != nil {
				t.Fatalf("Canonicalize(%q) error: %v", tt.input, err)
			}
			if got.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", got.Path, tt.wantPath)
			}
			if got.Query != tt.wantQuery {
				t.Errorf("Query = %q, want %q", got.Query, tt.wantQuery)
			}
			if got.Changed != tt.wantChanged {
				t.Errorf("Changed = %v, want %v", got.Changed, tt.wantChanged)
			}
		})
	}
}

func TestCanonicalizeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"backslash", "/demos\\pong", ErrBackslashInPath},
		{"null byte literal", "/a\x00b", ErrNullByteInPath},
		{"null byte encoded", "/a%00b", ErrNullByteInPath},
		{"incomplete escape", "/a%2", ErrInvalidPercentEscape},
		{"bad escape", "/a%GG", ErrInvalidPercentEscape},
		{"escape root", "/../secret", ErrPathEscapesRoot},
		{"deep escape root", "/demos/../../secret", ErrPathEscapesRoot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Canonicalize(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Canonicalize(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestSegments(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"/", nil},
		{"/about", []string{"about"}},
		{"/demos/pong", []string{"demos", "pong"}},
	}
	for _, tt := range tests {
		if got := Segments(tt.path); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Segments(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestValidateRoutePath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr error
	}{
		{"/", nil},
		{"/demos/wwii", nil},
		{"about", ErrInvalidPath},
		{"/about/", ErrInvalidPath},
		{"/demos//pong", ErrInvalidPath},
		{"/demos?x=1", ErrInvalidPath},
		{"/users/:id", ErrDynamicSegment},
		{"/files/*rest", ErrDynamicSegment},
		{"/posts/[slug]", ErrDynamicSegment},
		{"/../x", ErrPathEscapesRoot},
	}
	for _, tt := range tests {
		err := ValidateRoutePath(tt.path)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("ValidateRoutePath(%q) = %v, want %v", tt.path, err, tt.wantErr)
		}
	}
}

func TestLinkTarget(t *testing.T) {
	tests := []struct {
		href      string
		wantPath  string
		wantLocal bool
		wantErr   bool
	}{
		{href: "/", wantPath: "/", wantLocal: true},
		{href: "/about", wantPath: "/about", wantLocal: true},
		{href: "/demos/pong/", wantPath: "/demos/pong", wantLocal: true},
		{href: "/about#team", wantPath: "/about", wantLocal: true},
		{href: "https://github.com/starbugmolt"},
		{href: "//cdn.example.com/x.js"},
		{href: "mailto:hi@example.com"},
		{href: "#top"},
		{href: "", wantErr: true},
		{href: "about", wantErr: true},
	}
	for _, tt := range tests {
		path, local, err := LinkTarget(tt.href)
		if (err != nil) != tt.wantErr {
			t.Errorf("LinkTarget(%q) error = %v, wantErr %v", tt.href, err, tt.wantErr)
			continue
		}
		if path != tt.wantPath || local != tt.wantLocal {
			t.Errorf("LinkTarget(%q) = (%q, %v), want (%q, %v)", tt.href, path, local, tt.wantPath, tt.wantLocal)
		}
	}
}
