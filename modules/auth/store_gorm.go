package auth

import (
	"errors"
	"time"

	domain "github.com/example/recipe-share/domain/user"
	"gorm.io/gorm"
)

// userRecord is the GORM mapping for a user row. The unique index on email
// makes the duplicate check atomic at the database level.
type userRecord struct {
	ID           int64       `gorm:"primaryKey;autoIncrement"`
	Name         string      `gorm:"not null;type:text"`
	Email        string      `gorm:"uniqueIndex;not null;type:text"`
	PasswordHash string      `gorm:"not null;type:text"`
	Role         domain.Role `gorm:"not null;type:text"`
	CreatedAt    time.Time
}

// TableName returns the table name for the userRecord entity.
func (userRecord) TableName() string {
	return "users"
}

func (r *userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Role:         r.Role,
		CreatedAt:    r.CreatedAt,
	}
}

// gormUserStore is a UserStore backed by GORM, used when a persistent
// backend is selected instead of the in-memory default.
type gormUserStore struct {
	db *gorm.DB
}

// NewGormUserStore migrates the schema and returns a persistent UserStore.
func NewGormUserStore(db *gorm.DB) (UserStore, error) {
	if err := db.AutoMigrate(&userRecord{}); err != nil {
		return nil, err
	}
	return &gormUserStore{db: db}, nil
}

func (s *gormUserStore) Create(name, email, passwordHash string, role domain.Role) (*domain.User, error) {
	rec := &userRecord{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := s.db.Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return rec.toDomain(), nil
}

func (s *gormUserStore) FindByEmail(email string) (*domain.User, error) {
	var rec userRecord
	if err := s.db.First(&rec, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return rec.toDomain(), nil
}

func (s *gormUserStore) FindByID(id int64) (*domain.User, error) {
	var rec userRecord
	if err := s.db.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return rec.toDomain(), nil
}

func (s *gormUserStore) ListAll() ([]*domain.User, error) {
	var recs []userRecord
	if err := s.db.Order("id").Find(&recs).Error; err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(recs))
	for i := range recs {
		users = append(users, recs[i].toDomain())
	}
	return users, nil
}
