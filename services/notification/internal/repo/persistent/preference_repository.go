package persistent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"book-notify/services/notification/internal/entity"
	"book-notify/services/notification/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceRepository interface {
	// GetOrCreate returns the stored preferences, persisting the all-enabled
	// defaults the first time a user is looked up.
	GetOrCreate(ctx context.Context, userID string) (entity.Preferences, error)
	Replace(ctx context.Context, prefs entity.Preferences) (entity.Preferences, error)
}

type preferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) GetOrCreate(ctx context.Context, userID string) (entity.Preferences, error) {
	var m model.PreferenceModel
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error
	if err == nil {
		return ToPreferencesEntity(&m), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.Preferences{}, fmt.Errorf("%w: load preferences: %w", entity.ErrStorage, err)
	}

	defaults := entity.DefaultPreferences(userID)
	defaults.UpdatedAt = time.Now().UTC()
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// A concurrent first read may have inserted the row already.
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(ToPreferenceModel(&defaults)).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).First(&m).Error
	})
	if err != nil {
		return entity.Preferences{}, fmt.Errorf("%w: create default preferences: %w", entity.ErrStorage, err)
	}
	return ToPreferencesEntity(&m), nil
}

func (r *preferenceRepository) Replace(ctx context.Context, prefs entity.Preferences) (entity.Preferences, error) {
	prefs.UpdatedAt = time.Now().UTC()
	m := ToPreferenceModel(&prefs)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).Create(m).Error
	})
	if err != nil {
		return entity.Preferences{}, fmt.Errorf("%w: replace preferences: %w", entity.ErrStorage, err)
	}
	return ToPreferencesEntity(m), nil
}
