// Package services contains application services of the docs session
// client: the session store over local storage and the login flow.
package services

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/dmitrijs2005/docsauth/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/docsauth/internal/client/siteconfig"
	"github.com/dmitrijs2005/docsauth/internal/dbx"
)

// StoredSession is the raw client session state. Expiry is kept as the
// stored text; interpreting it is the guard's job.
type StoredSession struct {
	Token  string
	Expiry string
}

// SessionStore keeps the token and its expiry under the configured storage
// keys. Writes touching both keys run in one transaction.
type SessionStore struct {
	db        *sql.DB
	tokenKey  string
	expiryKey string
}

// NewSessionStore binds a store to the storage keys of auth.
func NewSessionStore(db *sql.DB, auth siteconfig.AuthConfig) *SessionStore {
	return &SessionStore{db: db, tokenKey: auth.TokenKey, expiryKey: auth.ExpiryKey}
}

// Save stores token and its expiry (unix seconds).
func (s *SessionStore) Save(ctx context.Context, token string, expiry int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, s.tokenKey, token); err != nil {
			return err
		}
		return repo.Set(ctx, s.expiryKey, strconv.FormatInt(expiry, 10))
	})
}

// Load returns the stored session, or nil when either value is absent or
// empty.
func (s *SessionStore) Load(ctx context.Context) (*StoredSession, error) {
	repo := metadata.NewSQLiteRepository(s.db)

	token, ok, err := repo.Get(ctx, s.tokenKey)
	if err != nil || !ok || token == "" {
		return nil, err
	}

	expiry, ok, err := repo.Get(ctx, s.expiryKey)
	if err != nil || !ok || expiry == "" {
		return nil, err
	}

	return &StoredSession{Token: token, Expiry: expiry}, nil
}

// Clear removes both values.
func (s *SessionStore) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Remove(ctx, s.tokenKey, s.expiryKey)
}
