package assets

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/starbugmolt/starbug/internal/errors"
)

// HandlerOptions configures Handler.
type HandlerOptions struct {
	// CacheControl is sent with every asset. Defaults to one hour of
	// public caching; use "no-cache" in development.
	CacheControl string

	Logger *slog.Logger
}

// Handler serves assets from src. The asset name is the request path
// without its leading slash, so mount it behind http.StripPrefix.
func Handler(src Source, opts HandlerOptions) http.Handler {
	if opts.CacheControl == "" {
		opts.CacheControl = "public, max-age=3600"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		// One leading slash comes from StripPrefix; a second one is an
		// absolute-path attempt and is left for CleanName to reject.
		name := r.URL.Path
		if strings.HasPrefix(name, "/") {
			name = name[1:]
		}

		obj, err := src.Open(r.Context(), name)
		if err != nil {
			switch errors.Code(err) {
			case "E140", "E141":
				http.NotFound(w, r)
			default:
				logger.Error("asset open failed", "name", name, "error", err)
				http.Error(w, "Bad Gateway", http.StatusBadGateway)
			}
			return
		}
		defer obj.Body.Close()

		h := w.Header()
		h.Set("Content-Type", obj.ContentType)
		h.Set("Cache-Control", opts.CacheControl)
		h.Set("X-Content-Type-Options", "nosniff")
		if obj.ETag != "" {
			h.Set("ETag", obj.ETag)
		}

		if rs, ok := obj.Body.(io.ReadSeeker); ok {
			http.ServeContent(w, r, name, obj.ModTime, rs)
			return
		}

		if obj.ETag != "" && r.Header.Get("If-None-Match") == obj.ETag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		if obj.Size >= 0 {
			h.Set("Content-Length", strconv.FormatInt(obj.Size, 10))
		}
		if !obj.ModTime.IsZero() {
			h.Set("Last-Modified", obj.ModTime.UTC().Format(http.TimeFormat))
		}
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		if _, err := io.Copy(w, obj.Body); err != nil {
			logger.Debug("asset copy aborted", "name", name, "error", err)
		}
	})
}
