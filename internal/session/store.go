// Package session owns the authenticated identity: the cached user record
// and bearer token pair, persisted across restarts in the embedded database.
package session

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/punchcardhq/punchcard/pkg/domain"
)

// sessionKey is the single record the store persists. User and token live in
// one JSON value so a crash can never leave one half behind.
var sessionKey = []byte("session")

// Store is the single owner of session state. All mutation goes through Set
// and Clear, which persist before updating the in-memory pair, so the cached
// session is never ahead of what a restart would rehydrate.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	mu      sync.RWMutex
	current domain.Session
	subs    []func(domain.Session)
}

// Open creates a store on top of an opened database and rehydrates the
// persisted session. A persisted record that fails to decode is treated as
// no session: the store fails open to logged-out rather than erroring, and
// removes the unusable record.
func Open(db *badger.DB, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{db: db, logger: logger}

	err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey)
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var sess domain.Session
			if err := json.Unmarshal(val, &sess); err != nil || sess.User == nil || sess.Token == "" {
				s.logger.Warn("discarding undecodable session record")
				return nil
			}
			s.current = sess
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if !s.current.LoggedIn() {
		// Drop any leftover record so the next read starts clean.
		if err := db.Update(func(txn *badger.Txn) error {
			return txn.Delete(sessionKey)
		}); err != nil {
			s.logger.Warn("failed to remove stale session record", slog.String("error", err.Error()))
		}
	}
	return s, nil
}

// Current returns the cached session pair.
func (s *Store) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set stores user and token together: one persisted record, one in-memory
// update, one notification. Returns without mutating memory if persistence
// fails, keeping cache and disk in agreement.
func (s *Store) Set(user domain.UserRecord, token string) error {
	if token == "" {
		// A user without a credential would break the set-and-cleared-
		// together pairing; the caller treats this like any auth failure.
		return errors.New("session: empty token")
	}
	sess := domain.Session{User: &user, Token: token}
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(sessionKey, data)
	}); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = sess
	subs := s.subs
	s.mu.Unlock()

	s.logger.Info("session set", slog.String("user", user.Email), slog.String("role", string(user.Role)))
	for _, fn := range subs {
		fn(sess)
	}
	return nil
}

// Clear removes the persisted record and nulls the cached pair.
func (s *Store) Clear() error {
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(sessionKey)
	}); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = domain.Session{}
	subs := s.subs
	s.mu.Unlock()

	s.logger.Info("session cleared")
	for _, fn := range subs {
		fn(domain.Session{})
	}
	return nil
}

// Subscribe registers fn to run after every successful mutation. The store
// calls it with the new session; subscribers must not call back into the
// store from the callback.
func (s *Store) Subscribe(fn func(domain.Session)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}
