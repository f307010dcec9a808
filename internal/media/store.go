package media

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

var ErrStoreClosed = errors.New("preview store closed")

// Preview is a staged upload: a temp file on local disk addressed by an
// opaque id. The id doubles as the preview URL slug served by the gateway.
type Preview struct {
	ID       string
	FileName string
	Path     string
	Size     int64
}

// Store owns a private temp directory of staged uploads. Every staged file
// must be released exactly once; Release is idempotent so teardown paths can
// overlap without double-delete errors. Remote media URLs never enter the
// store.
type Store struct {
	mu       sync.Mutex
	dir      string
	previews map[string]Preview
	closed   bool
}

// NewStore creates the backing directory under parent (os.TempDir() when
// parent is empty).
func NewStore(parent string) (*Store, error) {
	if parent == "" {
		parent = os.TempDir()
	}
	dir, err := os.MkdirTemp(parent, "previews-")
	if err != nil {
		return nil, err
	}
	return &Store{dir: dir, previews: make(map[string]Preview)}, nil
}

func (s *Store) Stage(fileName string, r io.Reader) (Preview, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Preview{}, ErrStoreClosed
	}
	s.mu.Unlock()

	id := uuid.New().String()
	path := filepath.Join(s.dir, id)

	f, err := os.Create(path)
	if err != nil {
		return Preview{}, err
	}
	size, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return Preview{}, err
	}

	p := Preview{ID: id, FileName: fileName, Path: path, Size: size}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		os.Remove(path)
		return Preview{}, ErrStoreClosed
	}
	s.previews[id] = p
	return p, nil
}

func (s *Store) Get(id string) (Preview, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.previews[id]
	return p, ok
}

// Release deletes the staged file and forgets the id. Unknown or already
// released ids are a no-op.
func (s *Store) Release(id string) {
	if id == "" {
		return
	}
	s.mu.Lock()
	p, ok := s.previews[id]
	if ok {
		delete(s.previews, id)
	}
	s.mu.Unlock()

	if ok {
		os.Remove(p.Path)
	}
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.previews)
}

// Close releases everything and removes the backing directory. Safe to call
// more than once.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.previews = map[string]Preview{}
	dir := s.dir
	s.mu.Unlock()

	os.RemoveAll(dir)
}
