// Package store persists the client's state on the device filesystem:
// the UserData aggregate as a single JSON blob plus the two bearer
// tokens under their own keys. Token lifecycle is independent of the
// aggregate's; ClearUser leaves tokens in place.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/healix-app/healix-go/pkg/model"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	userKey         = "user.json"
	accessTokenKey  = "access_token"
	refreshTokenKey = "refresh_token"
)

// Store is the local profile store. A single process-local mutex guards
// the read-modify-write cycle; across processes the discipline stays
// last writer wins.
type Store struct {
	fs     afero.Fs
	dir    string
	logger *zap.Logger
	mu     sync.Mutex
}

// New creates a Store rooted at dir on the given filesystem
func New(fs afero.Fs, dir string, logger *zap.Logger) (*Store, error) {
	if err := fs.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{fs: fs, dir: dir, logger: logger}, nil
}

// NewOnDisk creates a Store on the OS filesystem
func NewOnDisk(dir string, logger *zap.Logger) (*Store, error) {
	return New(afero.NewOsFs(), dir, logger)
}

// LoadUser reads the persisted aggregate. Any read or decode failure is
// absorbed and reported as absent.
func (s *Store) LoadUser(ctx context.Context) (*model.UserData, bool) {
	if ctx.Err() != nil {
		return nil, false
	}

	raw, err := afero.ReadFile(s.fs, s.path(userKey))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read user data", zap.Error(err))
		}
		return nil, false
	}

	var user model.UserData
	if err := json.Unmarshal(raw, &user); err != nil {
		s.logger.Warn("failed to decode user data", zap.Error(err))
		return nil, false
	}
	return &user, true
}

// SaveUser overwrites the persisted aggregate as one unit
func (s *Store) SaveUser(ctx context.Context, user *model.UserData) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := json.Marshal(user)
	if err != nil {
		s.logger.Error("failed to encode user data", zap.Error(err))
		return fmt.Errorf("failed to encode user data: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path(userKey), raw, 0o600); err != nil {
		s.logger.Error("failed to write user data", zap.Error(err))
		return fmt.Errorf("failed to write user data: %w", err)
	}
	return nil
}

// ClearUser removes the aggregate. Tokens are untouched; only Logout
// clears those.
func (s *Store) ClearUser(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := s.fs.Remove(s.path(userKey)); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to clear user data", zap.Error(err))
	}
}

// UpdateUser runs a read-modify-write cycle against the aggregate. When
// nothing is stored yet the mutation starts from an empty aggregate.
func (s *Store) UpdateUser(ctx context.Context, mutate func(*model.UserData)) (*model.UserData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.LoadUser(ctx)
	if !ok {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		user = &model.UserData{}
	}
	mutate(user)
	if err := s.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Tokens returns the stored access and refresh tokens; either may be
// empty.
func (s *Store) Tokens(ctx context.Context) (access, refresh string) {
	return s.readToken(ctx, accessTokenKey), s.readToken(ctx, refreshTokenKey)
}

// SetTokens stores both tokens
func (s *Store) SetTokens(ctx context.Context, access, refresh string) error {
	if err := s.writeToken(ctx, accessTokenKey, access); err != nil {
		return err
	}
	return s.writeToken(ctx, refreshTokenKey, refresh)
}

// SetAccessToken replaces only the access token, after a refresh
func (s *Store) SetAccessToken(ctx context.Context, access string) error {
	return s.writeToken(ctx, accessTokenKey, access)
}

// ClearTokens removes both tokens, on logout
func (s *Store) ClearTokens(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	for _, key := range []string{accessTokenKey, refreshTokenKey} {
		if err := s.fs.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to clear token", zap.String("key", key), zap.Error(err))
		}
	}
}

func (s *Store) readToken(ctx context.Context, key string) string {
	if ctx.Err() != nil {
		return ""
	}
	raw, err := afero.ReadFile(s.fs, s.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read token", zap.String("key", key), zap.Error(err))
		}
		return ""
	}
	return string(raw)
}

func (s *Store) writeToken(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := afero.WriteFile(s.fs, s.path(key), []byte(value), 0o600); err != nil {
		s.logger.Error("failed to write token", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to write token: %w", err)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key)
}
