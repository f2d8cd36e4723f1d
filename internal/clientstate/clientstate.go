// Package clientstate persists small per-visitor stores (currency preference, favorites) in a
// versioned JSON envelope. A blob written under another schema version is discarded, never
// shape-merged.
package clientstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// Storage holds one serialized blob. Load returns nil, nil when nothing was stored yet.
type Storage interface {
	Load() ([]byte, error)
	Save(blob []byte) error
}

// envelope matches the layout browser-side persisted stores use: {"state": ..., "version": n}.
type envelope[T any] struct {
	State   T   `json:"state"`
	Version int `json:"version"`
}

// Decode returns the stored state when it was written under version. ok is false for an absent,
// undecodable or differently versioned blob.
func Decode[T any](blob []byte, version int) (state T, ok bool) {
	if len(blob) == 0 {
		return state, false
	}
	var env envelope[T]
	if err := json.Unmarshal(blob, &env); err != nil {
		return state, false
	}
	if env.Version != version {
		return state, false
	}
	return env.State, true
}

func Encode[T any](state T, version int) ([]byte, error) {
	return json.Marshal(envelope[T]{State: state, Version: version})
}

// Restore loads and decodes from storage in one step.
func Restore[T any](s Storage, version int) (T, bool) {
	var zero T
	if s == nil {
		return zero, false
	}
	blob, err := s.Load()
	if err != nil {
		return zero, false
	}
	return Decode[T](blob, version)
}

// Persist encodes and saves state.
func Persist[T any](s Storage, state T, version int) error {
	if s == nil {
		return nil
	}
	blob, err := Encode(state, version)
	if err != nil {
		return fmt.Errorf("encoding client state: %w", err)
	}
	return s.Save(blob)
}

// CookieStorage keeps the blob in a cookie on the visitor's browser.
type CookieStorage struct {
	c      *gin.Context
	name   string
	maxAge int
	secure bool

	written []byte
}

// DefaultCookieMaxAge keeps preferences for a year.
const DefaultCookieMaxAge = 365 * 24 * 60 * 60

func NewCookieStorage(c *gin.Context, name string, secure bool) *CookieStorage {
	return &CookieStorage{c: c, name: name, maxAge: DefaultCookieMaxAge, secure: secure}
}

func (s *CookieStorage) Load() ([]byte, error) {
	if s.written != nil {
		return s.written, nil
	}
	value, err := s.c.Cookie(s.name)
	if errors.Is(err, http.ErrNoCookie) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

func (s *CookieStorage) Save(blob []byte) error {
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(s.name, string(blob), s.maxAge, "/", "", s.secure, false)
	s.written = blob
	return nil
}

// FileStorage keeps the blob in a local file, replaced atomically on save. It suits stores
// that outlive a request, such as preferences kept by a local tool.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (s *FileStorage) Load() ([]byte, error) {
	blob, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return blob, err
}

func (s *FileStorage) Save(blob []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// MemoryStorage keeps the blob in memory.
type MemoryStorage struct {
	Blob []byte
}

func (s *MemoryStorage) Load() ([]byte, error) { return s.Blob, nil }

func (s *MemoryStorage) Save(blob []byte) error {
	s.Blob = append([]byte(nil), blob...)
	return nil
}
