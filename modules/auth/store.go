package auth

import (
	"errors"
	"sort"
	"sync"
	"time"

	domain "github.com/example/recipe-share/domain/user"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when the email is already registered.
	// Matching is exact and case-sensitive; no normalization is performed.
	ErrEmailTaken = errors.New("email already in use")
)

// UserStore holds identity records. Create must perform the uniqueness
// check and the insert as one atomic unit so two concurrent registrations
// with the same email cannot both succeed.
type UserStore interface {
	Create(name, email, passwordHash string, role domain.Role) (*domain.User, error)
	FindByEmail(email string) (*domain.User, error)
	FindByID(id int64) (*domain.User, error)
	ListAll() ([]*domain.User, error)
}

// memoryUserStore is the default in-memory UserStore. IDs are assigned by
// a monotonic counter starting at 1 and never reused.
type memoryUserStore struct {
	mu      sync.Mutex
	users   map[int64]*domain.User
	byEmail map[string]int64
	nextID  int64
}

// NewMemoryUserStore creates an empty in-memory user store.
func NewMemoryUserStore() UserStore {
	return &memoryUserStore{
		users:   make(map[int64]*domain.User),
		byEmail: make(map[string]int64),
		nextID:  1,
	}
}

func (s *memoryUserStore) Create(name, email, passwordHash string, role domain.Role) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return nil, ErrEmailTaken
	}

	u := &domain.User{
		ID:           s.nextID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	s.nextID++
	s.users[u.ID] = u
	s.byEmail[u.Email] = u.ID

	copied := *u
	return &copied, nil
}

func (s *memoryUserStore) FindByEmail(email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *s.users[id]
	return &copied, nil
}

func (s *memoryUserStore) FindByID(id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *memoryUserStore) ListAll() ([]*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		copied := *u
		users = append(users, &copied)
	}
	// IDs are monotonic, so id order is registration order.
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}
