package repository

import (
	"context"

	"github.com/wingops/wingscore/internal/model"
	"gorm.io/gorm"
)

// ConflictRow is one user implicated in a duplicate-name conflict, annotated
// with how many same-name rows exist under a different wing.
type ConflictRow struct {
	ID           uint
	Name         string
	Wing         *string
	PasswordHash *string
	Others       int
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByNameAndWing(ctx context.Context, name, wing string) (*model.User, error)
	FindAll(ctx context.Context, wing *string) ([]*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Select(ctx context.Context, user *model.User, columns ...string) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	FindConflicts(ctx context.Context, wing *string) ([]ConflictRow, error)
	// Purge hard-deletes the user: scores, roster entry and the row itself,
	// in one transaction. Irreversible.
	Purge(ctx context.Context, user *model.User) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindByNameAndWing(ctx context.Context, name, wing string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("name = ? AND wing = ?", name, wing).
		First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context, wing *string) ([]*model.User, error) {
	var users []*model.User
	query := r.db.WithContext(ctx).Order("name")
	if wing != nil {
		query = query.Where("wing = ?", *wing)
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Select persists only the named columns of user. Needed where zeroed fields
// (cleared password, nil timestamps) must actually be written.
func (r *userRepository) Select(ctx context.Context, user *model.User, columns ...string) error {
	return r.db.WithContext(ctx).
		Model(user).
		Select(columns).
		Updates(user).Error
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id).Error
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *userRepository) Purge(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Score{}, "user_id = ?", user.ID).Error; err != nil {
			return err
		}
		if user.Wing != nil {
			if err := tx.Delete(&model.RosterEntry{},
				"name = ? AND wing = ?", user.Name, *user.Wing).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.User{}, "id = ?", user.ID).Error
	})
}

// FindConflicts returns users whose name appears under more than one distinct
// wing, a null wing counting as its own value. With a wing filter, only names
// that exist under that wing are considered.
func (r *userRepository) FindConflicts(ctx context.Context, wing *string) ([]ConflictRow, error) {
	var rows []ConflictRow

	query := `
		SELECT u.id, u.name, u.wing, u.password_hash,
		       (SELECT COUNT(*) FROM users o
		        WHERE o.name = u.name AND o.id <> u.id
		          AND COALESCE(o.wing, '') <> COALESCE(u.wing, '')) AS others
		FROM users u
		WHERE u.name IN (
			SELECT name FROM users
			GROUP BY name
			HAVING COUNT(DISTINCT COALESCE(wing, '')) > 1
		)`
	args := []interface{}{}

	if wing != nil {
		query += ` AND u.name IN (SELECT name FROM users WHERE wing = ?)`
		args = append(args, *wing)
	}
	query += ` ORDER BY u.name, u.wing`

	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}
