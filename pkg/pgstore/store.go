package pgstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/authgate/pkg/identity"
)

// Store implements identity.Store on a pgx connection pool.
type Store struct {
	pool       *pgxpool.Pool
	bcryptCost int
	sessionTTL time.Duration
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithBcryptCost sets the bcrypt cost used when hashing passwords.
func WithBcryptCost(cost int) StoreOption {
	return func(s *Store) {
		s.bcryptCost = cost
	}
}

// WithSessionTTL sets the lifetime of issued session keys.
func WithSessionTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// New builds a Store on an existing pool. The schema must already be
// migrated, see Migrate.
func New(pool *pgxpool.Pool, opts ...StoreOption) *Store {
	s := &Store{
		pool:       pool,
		bcryptCost: bcrypt.DefaultCost,
		sessionTTL: 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateUser provisions an account and returns its ID.
func (s *Store) CreateUser(ctx context.Context, username, email, password string, admin bool) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return 0, err
	}

	var id int64
	err = s.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, is_admin) VALUES ($1, $2, $3, $4) RETURNING id`,
		username, email, hash, admin,
	).Scan(&id)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, identity.ErrUserExists
		}
		return 0, err
	}
	return id, nil
}

// CheckKey implements identity.Store. Expired sessions resolve to
// StatusNotFound; expired rows are left for the next login to overwrite or
// for KillSessions to sweep.
func (s *Store) CheckKey(ctx context.Context, key string) (identity.Resolution, error) {
	var (
		username string
		userID   int64
		data     map[string]any
	)
	err := s.pool.QueryRow(ctx,
		`SELECT u.username, u.id, s.data
		   FROM sessions s
		   JOIN users u ON u.id = s.user_id
		  WHERE s.key = $1 AND s.expires_at > now()`,
		key,
	).Scan(&username, &userID, &data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return identity.Resolution{Status: identity.StatusNotFound}, nil
		}
		return identity.Resolution{}, err
	}

	return identity.Resolution{
		Status:   identity.StatusOK,
		Username: username,
		UserID:   userID,
		Data:     data,
	}, nil
}

// FindUser implements identity.Store.
func (s *Store) FindUser(ctx context.Context, userID int64) (*identity.User, error) {
	u := identity.User{ID: userID}
	err := s.pool.QueryRow(ctx,
		`SELECT username, email, is_admin, extra FROM users WHERE id = $1`,
		userID,
	).Scan(&u.Username, &u.Email, &u.Admin, &u.Extra)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, identity.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// ValidateUser implements identity.Store. A failed validation returns an
// empty key with a nil error; query failures are returned as errors.
func (s *Store) ValidateUser(ctx context.Context, username, password string, extra map[string]any) (string, bool, int64, error) {
	var (
		userID int64
		hash   []byte
		admin  bool
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, password_hash, is_admin FROM users WHERE username = $1`,
		username,
	).Scan(&userID, &hash, &admin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, 0, nil
		}
		return "", false, 0, err
	}

	if bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
		return "", false, 0, nil
	}

	key := uuid.NewString()
	_, err = s.pool.Exec(ctx,
		`INSERT INTO sessions (key, user_id, data, expires_at) VALUES ($1, $2, $3, $4)`,
		key, userID, extra, time.Now().Add(s.sessionTTL),
	)
	if err != nil {
		return "", false, 0, err
	}

	return key, admin, userID, nil
}

// KillSessions implements identity.Store.
func (s *Store) KillSessions(ctx context.Context, userID int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	return err
}

// ChangePassword implements identity.Store. The old hash is read and
// replaced under a row lock so two concurrent changes cannot interleave.
func (s *Store) ChangePassword(ctx context.Context, userID int64, newPassword, oldPassword string) (identity.Status, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return identity.StatusRejected, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	var hash []byte
	err = tx.QueryRow(ctx,
		`SELECT password_hash FROM users WHERE id = $1 FOR UPDATE`,
		userID,
	).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return identity.StatusNotFound, nil
		}
		return identity.StatusRejected, err
	}

	if bcrypt.CompareHashAndPassword(hash, []byte(oldPassword)) != nil {
		return identity.StatusRejected, nil
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return identity.StatusRejected, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET password_hash = $1 WHERE id = $2`,
		newHash, userID,
	); err != nil {
		return identity.StatusRejected, err
	}

	if err := tx.Commit(ctx); err != nil {
		return identity.StatusRejected, err
	}
	return identity.StatusOK, nil
}
