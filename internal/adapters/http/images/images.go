// Package images serves hero portraits referenced by Hero.Image.
package images

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/gorilla/mux"
)

// PathPrefix is the URL prefix hero image paths start with.
const PathPrefix = "/images/"

// Error constants
var (
	ErrNotDir = errors.New("images path is not a directory")
)

// Option configures Register.
type Option func(*handler)

// WithNotFoundHandler answers requests for missing images. Defaults to
// http.NotFound.
func WithNotFoundHandler(h http.Handler) Option {
	return func(s *handler) {
		if h != nil {
			s.notFound = h
		}
	}
}

// Register serves the files under dir at PathPrefix. An empty dir leaves
// the routes unregistered so image requests fall through to the router's
// not found handler.
func Register(_ context.Context, router *mux.Router, dir string, opts ...Option) error {
	if router == nil {
		panic("router is nil")
	}
	if dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("images dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDir, dir)
	}

	fs := noListing{http.Dir(dir)}
	h := &handler{
		fs:       fs,
		files:    http.StripPrefix(PathPrefix, http.FileServer(fs)),
		notFound: http.NotFoundHandler(),
	}
	for _, opt := range opts {
		opt(h)
	}

	router.PathPrefix(PathPrefix).Handler(h).Methods(http.MethodGet).Name("images")
	return nil
}

type handler struct {
	fs       http.FileSystem
	files    http.Handler
	notFound http.Handler
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := path.Clean("/" + strings.TrimPrefix(r.URL.Path, PathPrefix))
	f, err := h.fs.Open(name)
	if err != nil {
		h.notFound.ServeHTTP(w, r)
		return
	}
	_ = f.Close()
	h.files.ServeHTTP(w, r)
}

// noListing hides directory indexes.
type noListing struct {
	fs http.FileSystem
}

func (n noListing) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
