package usecase

import (
	"context"

	"book-notify/pkg/logger"
	"book-notify/services/notification/internal/entity"
	"book-notify/services/notification/internal/repo/persistent"
)

type PreferenceUseCase interface {
	// Get returns the stored preferences, creating the all-enabled defaults
	// on first access.
	Get(ctx context.Context, userID string) (entity.Preferences, error)
	// Replace overwrites every flag. It takes effect for the next dispatch.
	Replace(ctx context.Context, prefs entity.Preferences) (entity.Preferences, error)
}

type preferenceUseCase struct {
	preferenceRepo persistent.PreferenceRepository
	logger         *logger.Logger
}

func NewPreferenceUseCase(preferenceRepo persistent.PreferenceRepository, logger *logger.Logger) PreferenceUseCase {
	return &preferenceUseCase{
		preferenceRepo: preferenceRepo,
		logger:         logger,
	}
}

func (uc *preferenceUseCase) Get(ctx context.Context, userID string) (entity.Preferences, error) {
	prefs, err := uc.preferenceRepo.GetOrCreate(ctx, userID)
	if err != nil {
		uc.logger.Error("[PREFERENCES] Failed to load preferences for user %s: %v", userID, err)
		return entity.Preferences{}, err
	}
	return prefs, nil
}

func (uc *preferenceUseCase) Replace(ctx context.Context, prefs entity.Preferences) (entity.Preferences, error) {
	saved, err := uc.preferenceRepo.Replace(ctx, prefs)
	if err != nil {
		uc.logger.Error("[PREFERENCES] Failed to save preferences for user %s: %v", prefs.UserID, err)
		return entity.Preferences{}, err
	}
	uc.logger.Info("[PREFERENCES] Updated preferences for user %s: in_app=%t", saved.UserID, saved.InAppEnabled)
	return saved, nil
}
