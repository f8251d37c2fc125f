package imaging

import (
	"fmt"
	"sort"
	"sync"
)

// Store is a thread-safe registry of images keyed by name.
//
// The store never hands out or keeps a reference it shares with a caller:
// Add stores a deep copy and Get returns a deep copy. A transformation can
// therefore read an image, build a new one and publish it under the same name
// without disturbing anyone else holding the old version.
//
// # Example Usage
//
//	store := imaging.NewStore()
//	if err := store.Add("koala", img); err != nil {
//	    log.Fatal(err)
//	}
//	copy, err := store.Get("koala")
type Store struct {
	mu     sync.RWMutex
	images map[string]*Image
}

// NewStore creates and initializes a new empty store.
func NewStore() *Store {
	return &Store{
		images: make(map[string]*Image),
	}
}

// Add stores a copy of img under name, replacing any previous image.
//
// Returns an error wrapping ErrValidation if name is empty or img is nil.
func (s *Store) Add(name string, img *Image) error {
	if name == "" {
		return fmt.Errorf("%w: image name must not be empty", ErrValidation)
	}
	if img == nil {
		return fmt.Errorf("%w: image %q is nil", ErrValidation, name)
	}
	c := img.Clone()

	s.mu.Lock()
	s.images[name] = c
	s.mu.Unlock()
	return nil
}

// Get returns a copy of the image stored under name.
//
// Returns an error wrapping ErrNotFound if no image has that name.
func (s *Store) Get(name string) (*Image, error) {
	s.mu.RLock()
	img, ok := s.images[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return img.Clone(), nil
}

// Names returns the stored image names in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.images))
	for name := range s.images {
		names = append(names, name)
	}
	s.mu.RUnlock()

	sort.Strings(names)
	return names
}
