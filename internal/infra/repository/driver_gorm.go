package repository

import (
	"app/internal/domain/model"
	repo "app/internal/repository"
	"context"
	"errors"

	"gorm.io/gorm"
)

type DriverGormRepository struct {
	db *gorm.DB
}

func NewDriverGormRepository(db *gorm.DB) *DriverGormRepository {
	return &DriverGormRepository{db: db}
}

func (r *DriverGormRepository) Create(ctx context.Context, d model.Driver) (model.Driver, error) {
	if err := r.db.WithContext(ctx).Create(&d).Error; err != nil {
		return model.Driver{}, err
	}
	return d, nil
}

func (r *DriverGormRepository) FindByID(ctx context.Context, id int64) (model.Driver, error) {
	var d model.Driver
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Driver{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Driver{}, err
	}
	return d, nil
}

func (r *DriverGormRepository) Update(ctx context.Context, d model.Driver) error {
	res := r.db.WithContext(ctx).Save(&d)
	if res.Error != nil {
		return res.Error
	}
	return nil
}

func (r *DriverGormRepository) FindByUserID(ctx context.Context, userID int64) (model.Driver, error) {
	var d model.Driver
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Driver{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Driver{}, err
	}
	return d, nil
}
