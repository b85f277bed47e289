package assets

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	sberrors "github.com/starbugmolt/starbug/internal/errors"
)

func TestCleanName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"simple", "avatar.png", true},
		{"nested", "img/avatar.png", true},
		{"dotfile", ".well-known", true},
		{"empty", "", false},
		{"absolute", "/etc/passwd", false},
		{"traversal", "../secret", false},
		{"inner traversal", "img/../../secret", false},
		{"dot segment", "./avatar.png", false},
		{"double slash", "img//avatar.png", false},
		{"trailing slash", "img/", false},
		{"backslash", "img\\avatar.png", false},
		{"nul", "avatar.png\x00.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanName(tt.input)
			if tt.ok {
				if err != nil || got != tt.input {
					t.Errorf("CleanName(%q) = %q, %v", tt.input, got, err)
				}
				return
			}
			if sberrors.Code(err) != "E141" {
				t.Errorf("CleanName(%q) err = %v, want E141", tt.input, err)
			}
		})
	}
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"avatar.png":    {Data: []byte("\x89PNG"), ModTime: time.Unix(1700000000, 0)},
		"site.css":      {Data: []byte("body{}")},
		"img/ship.svg":  {Data: []byte("<svg/>")},
		"manifest.json": {Data: []byte(`{"site.css":"site.abc123.css"}`)},
	}
}

func TestFSSource(t *testing.T) {
	src := NewFSSource(testFS())
	ctx := context.Background()

	obj, err := src.Open(ctx, "site.css")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	body, _ := io.ReadAll(obj.Body)
	obj.Body.Close()
	if string(body) != "body{}" || obj.Size != 6 {
		t.Errorf("got %q size %d", body, obj.Size)
	}
	if !strings.HasPrefix(obj.ContentType, "text/css") {
		t.Errorf("ContentType = %q", obj.ContentType)
	}

	if _, err := src.Open(ctx, "missing.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing: err = %v, want ErrNotFound", err)
	}
	if _, err := src.Open(ctx, "img"); !errors.Is(err, ErrNotFound) {
		t.Errorf("directory: err = %v, want ErrNotFound", err)
	}
	if _, err := src.Open(ctx, "../avatar.png"); sberrors.Code(err) != "E141" {
		t.Errorf("traversal: err = %v, want E141", err)
	}
}

type fakeS3 struct {
	objects map[string]string
	err     error
	keys    []string
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(in.Key)
	f.keys = append(f.keys, aws.ToString(in.Bucket)+"/"+key)
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[key]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("no such key")}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(strings.NewReader(body)),
		ContentLength: aws.Int64(int64(len(body))),
		ETag:          aws.String(`"etag-` + key + `"`),
	}, nil
}

func TestS3Source(t *testing.T) {
	client := &fakeS3{objects: map[string]string{"static/avatar.png": "png"}}
	src := NewS3Source(client, "site", "static/")
	ctx := context.Background()

	obj, err := src.Open(ctx, "avatar.png")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer obj.Body.Close()
	if obj.Size != 3 || obj.ContentType != "image/png" || obj.ETag != `"etag-static/avatar.png"` {
		t.Errorf("object = %+v", obj)
	}

	if _, err := src.Open(ctx, "nope.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing: err = %v, want ErrNotFound", err)
	}
	if _, err := src.Open(ctx, "../../other-bucket"); sberrors.Code(err) != "E141" {
		t.Errorf("traversal: err = %v, want E141", err)
	}
	if len(client.keys) != 2 || client.keys[0] != "site/static/avatar.png" {
		t.Errorf("keys requested = %v", client.keys)
	}

	client.err = errors.New("connection reset")
	if _, err := src.Open(ctx, "avatar.png"); sberrors.Code(err) != "E142" {
		t.Errorf("backend failure: err = %v, want E142", err)
	}
}

func TestManifest(t *testing.T) {
	m, err := LoadManifest(context.Background(), NewFSSource(testFS()))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	r := NewResolver("/static/", m)

	tests := []struct{ in, want string }{
		{"site.css", "/static/site.abc123.css"},
		{"avatar.png", "/static/avatar.png"},
	}
	for _, tt := range tests {
		if got := r.Asset(tt.in); got != tt.want {
			t.Errorf("Asset(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	empty, err := LoadManifest(context.Background(), NewFSSource(fstest.MapFS{}))
	if err != nil || empty.Len() != 0 {
		t.Errorf("missing manifest = %v, %v; want empty", empty, err)
	}

	if got := NewResolver("/s/", nil).Asset("a.js"); got != "/s/a.js" {
		t.Errorf("nil manifest Asset = %q", got)
	}
}

func TestHandler(t *testing.T) {
	fsHandler := http.StripPrefix("/static", Handler(NewFSSource(testFS()), HandlerOptions{}))
	s3Handler := http.StripPrefix("/static", Handler(
		NewS3Source(&fakeS3{objects: map[string]string{"avatar.png": "png"}}, "b", ""),
		HandlerOptions{CacheControl: "no-cache"},
	))

	tests := []struct {
		name       string
		handler    http.Handler
		method     string
		path       string
		header     map[string]string
		wantStatus int
		wantBody   string
		wantHeader map[string]string
	}{
		{
			name: "fs file", handler: fsHandler, method: "GET", path: "/static/site.css",
			wantStatus: 200, wantBody: "body{}",
			wantHeader: map[string]string{"Cache-Control": "public, max-age=3600", "X-Content-Type-Options": "nosniff"},
		},
		{name: "fs nested", handler: fsHandler, method: "GET", path: "/static/img/ship.svg", wantStatus: 200, wantBody: "<svg/>"},
		{name: "fs missing", handler: fsHandler, method: "GET", path: "/static/missing.png", wantStatus: 404},
		{name: "absolute attempt", handler: fsHandler, method: "GET", path: "/static//etc/passwd", wantStatus: 404},
		{name: "post", handler: fsHandler, method: "POST", path: "/static/site.css", wantStatus: 405},
		{name: "head", handler: fsHandler, method: "HEAD", path: "/static/site.css", wantStatus: 200},
		{
			name: "s3 file", handler: s3Handler, method: "GET", path: "/static/avatar.png",
			wantStatus: 200, wantBody: "png",
			wantHeader: map[string]string{"Cache-Control": "no-cache", "Content-Type": "image/png", "Content-Length": "3"},
		},
		{
			name: "s3 not modified", handler: s3Handler, method: "GET", path: "/static/avatar.png",
			header:     map[string]string{"If-None-Match": `"etag-avatar.png"`},
			wantStatus: 304,
		},
		{name: "s3 missing", handler: s3Handler, method: "GET", path: "/static/x.png", wantStatus: 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			tt.handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
			for k, v := range tt.wantHeader {
				if got := rec.Header().Get(k); got != v {
					t.Errorf("%s = %q, want %q", k, got, v)
				}
			}
		})
	}
}
