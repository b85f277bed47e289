package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		code     string
		category Category
		message  string
	}{
		{"E100", CategoryRoute, "Duplicate route path"},
		{"E110", CategoryRoute, "Route not found"},
		{"E121", CategoryConfig, "Config file not found"},
		{"E131", CategoryDemo, "Demo is unmounted"},
		{"E140", CategoryAsset, "Asset not found"},
	}

	for _, tt := range tests {
		err := New(tt.code)
		if err.Code != tt.code {
			t.Errorf("New(%q).Code = %q", tt.code, err.Code)
		}
		if err.Category != tt.category {
			t.Errorf("New(%q).Category = %q, want %q", tt.code, err.Category, tt.category)
		}
		if err.Message != tt.message {
			t.Errorf("New(%q).Message = %q, want %q", tt.code, err.Message, tt.message)
		}
	}
}

func TestNewUnknownCode(t *testing.T) {
	err := New("E999")
	if err.Message != "Unknown error" {
		t.Errorf("Message = %q, want %q", err.Message, "Unknown error")
	}
}

func TestSiteError_Error(t *testing.T) {
	err := New("E100").WithDetail(`path "/about" registered twice`)
	want := `E100: Duplicate route path: path "/about" registered twice`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	plain := Newf(CategoryCLI, "bad flag %s", "--x")
	if plain.Error() != "bad flag --x" {
		t.Errorf("Error() = %q", plain.Error())
	}
}

func TestSiteError_IsByCode(t *testing.T) {
	sentinel := New("E110")
	err := New("E110").WithDetail("/nope")

	if !stderrors.Is(err, sentinel) {
		t.Error("errors with the same code should match")
	}
	if stderrors.Is(New("E100"), sentinel) {
		t.Error("errors with different codes should not match")
	}
	if stderrors.Is(Newf(CategoryRoute, "x"), Newf(CategoryRoute, "x")) {
		t.Error("code-less errors should not match by code")
	}
}

func TestSiteError_Wrap(t *testing.T) {
	cause := stderrors.New("disk on fire")
	err := New("E120").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause should be reachable")
	}
	if !strings.Contains(err.Error(), "disk on fire") {
		t.Errorf("Error() = %q, want cause included", err.Error())
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E120") != nil {
		t.Error("FromError(nil) should be nil")
	}

	original := New("E102")
	if got := FromError(original, "E120"); got != original {
		t.Error("FromError should return an existing SiteError unchanged")
	}

	plain := stderrors.New("boom")
	got := FromError(plain, "E120")
	if got.Code != "E120" || got.Wrapped != plain {
		t.Errorf("FromError = %+v", got)
	}
}

func TestCode(t *testing.T) {
	if got := Code(New("E133")); got != "E133" {
		t.Errorf("Code = %q", got)
	}
	if got := Code(stderrors.New("x")); got != "" {
		t.Errorf("Code = %q, want empty", got)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E104").
		WithDetail(`nav link "Blog" points at "/blog"`).
		WithSuggestion("Register the route or fix the link")

	out := err.Format()
	for _, want := range []string{"ERROR E104: Link target is not a route", `"/blog"`, "Hint: Register the route"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	if got := New("E130").FormatCompact(); got != "E130: Unknown demo" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestFormatJSON(t *testing.T) {
	out := New("E122").WithDetail("port out of range").FormatJSON()

	var decoded map[string]string
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("FormatJSON produced invalid JSON: %v\n%s", err, out)
	}
	if decoded["code"] != "E122" || decoded["category"] != "config" || decoded["detail"] != "port out of range" {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) != len(registry) {
		t.Errorf("len(codes) = %d, want %d", len(codes), len(registry))
	}
	for _, code := range codes {
		if _, ok := GetTemplate(code); !ok {
			t.Errorf("GetTemplate(%q) missing", code)
		}
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("the quick brown fox jumps over the lazy dog", 10)
	for _, line := range lines {
		if len(line) > 10 {
			t.Errorf("line %q longer than 10", line)
		}
	}
	if strings.Join(lines, " ") != "the quick brown fox jumps over the lazy dog" {
		t.Errorf("wrapText lost words: %v", lines)
	}
}

func TestIsAsPassthrough(t *testing.T) {
	err := fmt.Errorf("loading: %w", New("E121").WithDetail("starbug.json"))
	if !Is(err, New("E121")) {
		t.Error("Is should match by code through fmt wrapping")
	}
	var se *SiteError
	if !As(err, &se) || se.Detail != "starbug.json" {
		t.Errorf("As = %+v", se)
	}
}
