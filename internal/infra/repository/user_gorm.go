package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (r *UserGormRepository) FindByID(ctx context.Context, id int64) (model.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserGormRepository) FindByUsername(ctx context.Context, username string) (model.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserGormRepository) findOne(ctx context.Context, query string, arg interface{}) (model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, repo.ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}
