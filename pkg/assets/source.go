package assets

import (
	"context"
	"io"
	"io/fs"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/starbugmolt/starbug/internal/errors"
)

// ErrNotFound matches, under errors.Is, every missing-asset error.
var ErrNotFound = errors.New("E140")

// Object is an opened asset. The caller must close Body.
type Object struct {
	Body        io.ReadCloser
	Size        int64 // -1 when unknown
	ContentType string
	ModTime     time.Time
	ETag        string
}

// Source opens assets by name.
type Source interface {
	Open(ctx context.Context, name string) (*Object, error)
}

// CleanName validates an asset name: a relative, slash-separated path
// with no empty, "." or ".." segments, no backslashes and no NUL bytes.
func CleanName(name string) (string, error) {
	invalid := func(reason string) (string, error) {
		return "", errors.New("E141").WithDetailf("%q: %s", name, reason)
	}
	switch {
	case name == "":
		return invalid("empty")
	case strings.IndexByte(name, 0) != -1:
		return invalid("contains NUL")
	case strings.Contains(name, "\\"):
		return invalid("contains a backslash")
	case strings.HasPrefix(name, "/"):
		return invalid("absolute")
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return invalid("bad path segment")
		}
	}
	return name, nil
}

// contentType guesses the media type from the extension.
func contentType(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// FSSource serves assets from an fs.FS, such as the embedded web/static
// tree or os.DirFS(static.dir).
type FSSource struct {
	fsys fs.FS
}

// NewFSSource creates a source over fsys.
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

func (s *FSSource) Open(ctx context.Context, name string) (*Object, error) {
	name, err := CleanName(name)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := s.fsys.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.New("E140").WithDetail(name)
	}
	if err != nil {
		return nil, errors.New("E142").WithDetail(name).Wrap(err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.New("E142").WithDetail(name).Wrap(err)
	}
	if info.IsDir() {
		f.Close()
		return nil, errors.New("E140").WithDetailf("%s is a directory", name)
	}

	return &Object{
		Body:        f,
		Size:        info.Size(),
		ContentType: contentType(name),
		ModTime:     info.ModTime(),
	}, nil
}
