package identity

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type memUser struct {
	user User
	hash []byte
}

type memSession struct {
	username  string
	userID    int64
	data      map[string]any
	expiresAt time.Time
}

// MemoryStore is an in-memory Store for tests and sample applications.
// Sessions expire after the configured TTL; expired keys resolve to
// StatusNotFound on the next CheckKey.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[int64]*memUser
	byName   map[string]int64
	sessions map[string]memSession
	nextID   int64
	ttl      time.Duration
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithSessionTTL sets the lifetime of issued session keys.
func WithSessionTTL(ttl time.Duration) MemoryOption {
	return func(s *MemoryStore) {
		s.ttl = ttl
	}
}

// NewMemoryStore creates an empty MemoryStore with a 24h session TTL.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		users:    make(map[int64]*memUser),
		byName:   make(map[string]int64),
		sessions: make(map[string]memSession),
		nextID:   1,
		ttl:      24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateUser registers a user with a bcrypt-hashed password and returns the
// assigned user ID.
func (s *MemoryStore) CreateUser(username, email, password string, admin bool) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byName[username]; ok {
		return 0, ErrUserExists
	}

	id := s.nextID
	s.nextID++
	s.users[id] = &memUser{
		user: User{ID: id, Username: username, Email: email, Admin: admin},
		hash: hash,
	}
	s.byName[username] = id
	return id, nil
}

// CheckKey implements Store.
func (s *MemoryStore) CheckKey(ctx context.Context, key string) (Resolution, error) {
	s.mu.RLock()
	sess, ok := s.sessions[key]
	s.mu.RUnlock()

	if !ok {
		return Resolution{Status: StatusNotFound}, nil
	}
	if time.Now().After(sess.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, key)
		s.mu.Unlock()
		return Resolution{Status: StatusNotFound}, nil
	}

	return Resolution{
		Status:   StatusOK,
		Username: sess.username,
		UserID:   sess.userID,
		Data:     sess.data,
	}, nil
}

// FindUser implements Store.
func (s *MemoryStore) FindUser(ctx context.Context, userID int64) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := u.user
	return &cp, nil
}

// ValidateUser implements Store. A wrong username or password returns an
// empty key with a nil error.
func (s *MemoryStore) ValidateUser(ctx context.Context, username, password string, extra map[string]any) (string, bool, int64, error) {
	s.mu.RLock()
	id, ok := s.byName[username]
	var u *memUser
	if ok {
		u = s.users[id]
	}
	s.mu.RUnlock()

	if u == nil {
		return "", false, 0, nil
	}
	if bcrypt.CompareHashAndPassword(u.hash, []byte(password)) != nil {
		return "", false, 0, nil
	}

	key := uuid.NewString()
	s.mu.Lock()
	s.sessions[key] = memSession{
		username:  username,
		userID:    id,
		data:      extra,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()

	return key, u.user.Admin, id, nil
}

// KillSessions implements Store.
func (s *MemoryStore) KillSessions(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, sess := range s.sessions {
		if sess.userID == userID {
			delete(s.sessions, key)
		}
	}
	return nil
}

// ChangePassword implements Store.
func (s *MemoryStore) ChangePassword(ctx context.Context, userID int64, newPassword, oldPassword string) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return StatusNotFound, nil
	}
	if bcrypt.CompareHashAndPassword(u.hash, []byte(oldPassword)) != nil {
		return StatusRejected, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return StatusRejected, err
	}
	u.hash = hash
	return StatusOK, nil
}
