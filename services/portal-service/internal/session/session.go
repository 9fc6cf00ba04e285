package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys mirrored per visitor, named after the browser storage keys the
// portal front end uses.
const (
	KeyUser         = "user"
	KeyCompany      = "company"
	KeyAppointments = "appointments"
	KeyOnboarding   = "onboarding"
)

var ErrNotFound = errors.New("session: key not found")

// Backend stores opaque values per session id and key.
type Backend interface {
	Get(ctx context.Context, sessionID, key string) ([]byte, error)
	Set(ctx context.Context, sessionID, key string, value []byte) error
	Delete(ctx context.Context, sessionID string, keys ...string) error
}

// Session is the key-value port handlers and the directory talk to.
type Session struct {
	id      string
	backend Backend
}

func New(id string, backend Backend) *Session {
	return &Session{id: id, backend: backend}
}

func (s *Session) ID() string { return s.id }

func (s *Session) Get(ctx context.Context, key string) ([]byte, error) {
	return s.backend.Get(ctx, s.id, key)
}

func (s *Session) Set(ctx context.Context, key string, value []byte) error {
	return s.backend.Set(ctx, s.id, key, value)
}

func (s *Session) Clear(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.backend.Delete(ctx, s.id, keys...)
}

// Has reports whether key holds a value.
func (s *Session) Has(ctx context.Context, key string) (bool, error) {
	_, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *Session) Load(ctx context.Context, key string, v any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("session: decode %s: %w", key, err)
	}
	return nil
}

func (s *Session) Save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("session: encode %s: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}
