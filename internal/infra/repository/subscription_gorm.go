package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/CastingWorksHQ/casting-api/internal/domain/subscription"
	"github.com/CastingWorksHQ/casting-api/internal/httperr"
	"github.com/CastingWorksHQ/casting-api/internal/models"
)

type SubscriptionGormRepository struct {
	db *gorm.DB
}

func NewSubscriptionGormRepository(db *gorm.DB) *SubscriptionGormRepository {
	return &SubscriptionGormRepository{db: db}
}

func (r *SubscriptionGormRepository) GetUser(
	ctx context.Context,
	userID uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *SubscriptionGormRepository) GetCurrentSubscription(
	ctx context.Context,
	userID uint,
) (*models.Subscription, error) {

	var sub models.Subscription
	err := r.db.WithContext(ctx).
		Preload("Plan").
		Where("user_id = ? AND status IN ?", userID,
			[]string{string(domain.StatusActive), string(domain.StatusTrialing)}).
		Order("created_at DESC").
		First(&sub).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionGormRepository) GetSubscription(
	ctx context.Context,
	id uint,
) (*models.Subscription, error) {

	var sub models.Subscription
	if err := r.db.WithContext(ctx).Preload("Plan").First(&sub, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionGormRepository) UpdateSubscription(
	ctx context.Context,
	sub *models.Subscription,
) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

func (r *SubscriptionGormRepository) CreateSubscription(
	ctx context.Context,
	sub *models.Subscription,
) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *SubscriptionGormRepository) FindOrCreatePlan(
	ctx context.Context,
	name string,
	price float64,
	interval string,
) (*models.SubscriptionPlan, error) {

	var plan models.SubscriptionPlan
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&plan).Error

	if err == nil {
		return &plan, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	plan = models.SubscriptionPlan{
		Name:     name,
		Price:    price,
		Interval: interval,
		Active:   true,
	}
	if err := r.db.WithContext(ctx).Create(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// Compile-time check
var _ domain.Repository = (*SubscriptionGormRepository)(nil)
