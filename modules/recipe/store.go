package recipe

import (
	"errors"
	"sort"
	"sync"

	domain "github.com/example/recipe-share/domain/recipe"
)

// ErrNotFound is returned when a recipe is not found.
var ErrNotFound = errors.New("recipe not found")

// Store holds recipe records. IDs are assigned by the store, monotonically
// from 1, and never reused. Implementations must keep id assignment atomic
// with respect to concurrent creates.
type Store interface {
	Create(r *domain.Recipe) (*domain.Recipe, error)
	FindByID(id int64) (*domain.Recipe, error)
	FindAll() ([]*domain.Recipe, error)
	Save(r *domain.Recipe) error
	Delete(id int64) error
	Count() (int64, error)
}

// memoryStore is the default in-memory Store.
type memoryStore struct {
	mu      sync.Mutex
	recipes map[int64]*domain.Recipe
	nextID  int64
}

// NewMemoryStore creates an empty in-memory recipe store.
func NewMemoryStore() Store {
	return &memoryStore{
		recipes: make(map[int64]*domain.Recipe),
		nextID:  1,
	}
}

func copyRecipe(r *domain.Recipe) *domain.Recipe {
	copied := *r
	copied.Ingredients = append(domain.StringList(nil), r.Ingredients...)
	if r.UpdatedAt != nil {
		t := *r.UpdatedAt
		copied.UpdatedAt = &t
	}
	return &copied
}

func (s *memoryStore) Create(r *domain.Recipe) (*domain.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := copyRecipe(r)
	stored.ID = s.nextID
	s.nextID++
	s.recipes[stored.ID] = stored

	return copyRecipe(stored), nil
}

func (s *memoryStore) FindByID(id int64) (*domain.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recipes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyRecipe(r), nil
}

func (s *memoryStore) FindAll() ([]*domain.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		out = append(out, copyRecipe(r))
	}
	// IDs are monotonic, so id order is creation order.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memoryStore) Save(r *domain.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[r.ID]; !ok {
		return ErrNotFound
	}
	s.recipes[r.ID] = copyRecipe(r)
	return nil
}

func (s *memoryStore) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[id]; !ok {
		return ErrNotFound
	}
	delete(s.recipes, id)
	return nil
}

func (s *memoryStore) Count() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.recipes)), nil
}
