package store

import (
	"context"

	"github.com/andrewpaige1/lexideck-api/apperr"
	"github.com/andrewpaige1/lexideck-api/models"
	"gorm.io/gorm"
)

// CreateUser inserts u. An email or username already in use is a Conflict.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	var taken int64
	if err := s.conn(ctx).Model(&models.User{}).
		Where("email = ? OR username = ?", u.Email, u.Username).
		Count(&taken).Error; err != nil {
		return err
	}
	if taken > 0 {
		return apperr.Conflict("user already exists with this email or username")
	}
	return s.conn(ctx).Create(u).Error
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.conn(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.conn(ctx).First(&u, "email = ?", email).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &u, nil
}

// UserUpdate carries a profile edit. Nil fields are left alone.
type UserUpdate struct {
	Username *string
	Email    *string
	Avatar   *string
}

func (s *Store) UpdateUser(ctx context.Context, id string, u UserUpdate) (*models.User, error) {
	var user *models.User
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var current models.User
		if err := tx.First(&current, "id = ?", id).Error; err != nil {
			return notFound(err, "user")
		}
		user = &current
		if u.Username != nil && *u.Username != user.Username {
			if err := ensureUnique(tx, id, "username", *u.Username); err != nil {
				return err
			}
			user.Username = *u.Username
		}
		if u.Email != nil && *u.Email != user.Email {
			if err := ensureUnique(tx, id, "email", *u.Email); err != nil {
				return err
			}
			user.Email = *u.Email
		}
		setString(&user.Avatar, u.Avatar)
		return tx.Save(user).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func ensureUnique(tx *gorm.DB, selfID, column, value string) error {
	var n int64
	if err := tx.Model(&models.User{}).
		Where(column+" = ? AND id <> ?", value, selfID).
		Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return apperr.Conflict("%s is already taken", column)
	}
	return nil
}
