// Package textures loads the stadium's texture images in the background. Images are decoded and
// prepared off the render goroutine; uploading them to the GPU is left to the caller.
package textures

import (
	"context"
	"fmt"
	"image"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"stadium/internal/download"
)

// AssetLoadError is a texture that could not be loaded. It is never fatal: the material falls
// back to its flat colour.
type AssetLoadError struct {
	Name string
	Ref  string
	Err  error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("texture %s (%s): %v", e.Name, e.Ref, e.Err)
}

func (e *AssetLoadError) Unwrap() error { return e.Err }

// Request asks for one named texture. Ref and AlphaRef are file paths or http(s) URLs; when
// AlphaRef is set its green channel becomes the texture's alpha.
type Request struct {
	Name     string
	Ref      string
	AlphaRef string
}

// Result is a finished request: either Image or Err is set.
type Result struct {
	Name  string
	Image *image.NRGBA
	Err   error
}

// Loader resolves and decodes requests with a bounded number of workers.
type Loader struct {
	// Fetcher downloads remote refs. Nil makes remote refs fail.
	Fetcher *download.Fetcher
	// MaxSize caps the longest side of every image; 0 keeps the original size.
	MaxSize int
	// Workers bounds concurrent loads; 0 means 4.
	Workers int
}

// Start loads every request in the background. The returned channel receives one Result per
// request, in completion order, and is closed when all are done. Requests with an empty Ref are
// skipped. Cancelling ctx abandons the remaining requests.
func (l *Loader) Start(ctx context.Context, reqs []Request) <-chan Result {
	todo := make([]Request, 0, len(reqs))
	for _, r := range reqs {
		if strings.TrimSpace(r.Ref) != "" {
			todo = append(todo, r)
		}
	}
	out := make(chan Result, len(todo))

	workers := l.Workers
	if workers <= 0 {
		workers = 4
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	go func() {
		defer close(out)
		for _, r := range todo {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				img, err := l.Load(gctx, r)
				out <- Result{Name: r.Name, Image: img, Err: err}
				return nil
			})
		}
		_ = g.Wait()
	}()
	return out
}

// Load resolves, decodes, scales and composes a single request.
func (l *Loader) Load(ctx context.Context, r Request) (*image.NRGBA, error) {
	base, err := l.open(ctx, r.Ref)
	if err != nil {
		return nil, &AssetLoadError{Name: r.Name, Ref: r.Ref, Err: err}
	}
	if strings.TrimSpace(r.AlphaRef) == "" {
		return ToNRGBA(base), nil
	}
	alpha, err := l.open(ctx, r.AlphaRef)
	if err != nil {
		return nil, &AssetLoadError{Name: r.Name, Ref: r.AlphaRef, Err: err}
	}
	return ApplyAlphaMap(base, alpha), nil
}

func (l *Loader) open(ctx context.Context, ref string) (image.Image, error) {
	path := strings.TrimSpace(ref)
	if download.IsRemote(path) {
		if l.Fetcher == nil {
			return nil, fmt.Errorf("remote texture but no download directory configured")
		}
		p, err := l.Fetcher.Fetch(ctx, path)
		if err != nil {
			return nil, err
		}
		path = p
	}
	img, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}
	return Fit(img, l.MaxSize), nil
}

// Status of one texture in a Set.
type Status int

const (
	StatusPending Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	}
	return "pending"
}

// Set collects results as they arrive so the render goroutine can pick up new images.
type Set struct {
	mu     sync.Mutex
	status map[string]Status
	errs   map[string]error
	fresh  map[string]*image.NRGBA
	order  []string
}

// NewSet tracks the named textures as pending.
func NewSet(names ...string) *Set {
	s := &Set{
		status: make(map[string]Status),
		errs:   make(map[string]error),
		fresh:  make(map[string]*image.NRGBA),
	}
	for _, n := range names {
		s.track(n)
	}
	return s
}

func (s *Set) track(name string) {
	if _, ok := s.status[name]; !ok {
		s.order = append(s.order, name)
		s.status[name] = StatusPending
	}
}

// Put records a result.
func (s *Set) Put(r Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.track(r.Name)
	if r.Err != nil || r.Image == nil {
		s.status[r.Name] = StatusFailed
		s.errs[r.Name] = r.Err
		delete(s.fresh, r.Name)
		return
	}
	s.status[r.Name] = StatusReady
	delete(s.errs, r.Name)
	s.fresh[r.Name] = r.Image
}

// Drain moves every result already waiting on ch into the set without blocking and returns the
// results it took. It reports false once ch is closed.
func (s *Set) Drain(ch <-chan Result) ([]Result, bool) {
	var got []Result
	for {
		select {
		case r, ok := <-ch:
			if !ok {
				return got, false
			}
			s.Put(r)
			got = append(got, r)
		default:
			return got, true
		}
	}
}

// TakeReady returns the images that became ready since the last call, keyed by name.
func (s *Set) TakeReady() map[string]*image.NRGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.fresh) == 0 {
		return nil
	}
	out := s.fresh
	s.fresh = make(map[string]*image.NRGBA)
	return out
}

// Status returns the state of name; unknown names are pending.
func (s *Set) Status(name string) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status[name]
}

// Err is the load error of a failed texture.
func (s *Set) Err(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errs[name]
}

// Names lists tracked textures in the order they were first seen.
func (s *Set) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

// Counts returns how many textures are pending, ready and failed.
func (s *Set) Counts() (pending, ready, failed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.status {
		switch st {
		case StatusPending:
			pending++
		case StatusReady:
			ready++
		case StatusFailed:
			failed++
		}
	}
	return
}
