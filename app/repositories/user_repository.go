// Package repositories holds the GORM data access layer. Every method takes
// a context so persistence calls inherit the request deadline.
package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/models"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/metrics"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	defer metrics.ObserveDBQuery("user.find_by_email", time.Now())

	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return user, err
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (models.User, error) {
	defer metrics.ObserveDBQuery("user.find_by_id", time.Now())

	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	return user, err
}

// RoleByID resolves a user's current role. Satisfies rbac.RoleResolver so
// the admin gate always checks the live role, not a token claim.
func (r *UserRepository) RoleByID(ctx context.Context, userID uint) (int, error) {
	defer metrics.ObserveDBQuery("user.role_by_id", time.Now())

	var role int
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("role").
		Where("id = ?", userID).
		Take(&role).Error
	return role, err
}

// Create persists a new user record.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	defer metrics.ObserveDBQuery("user.create", time.Now())
	return r.db.WithContext(ctx).Create(user).Error
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	defer metrics.ObserveDBQuery("user.update", time.Now())
	return r.db.WithContext(ctx).Save(user).Error
}
