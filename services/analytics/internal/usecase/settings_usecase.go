package usecase

import (
	"encoding/json"
	"regexp"
	"strings"

	"dalil/pkg/apperr"
	"dalil/pkg/audit"
	"dalil/pkg/authz"
	"dalil/pkg/cache"
	"dalil/pkg/logger"
	"dalil/services/analytics/internal/entity"
	"dalil/services/analytics/internal/repo/persistent"
)

var settingKeyPattern = regexp.MustCompile(`^[a-z][a-z0-9_.-]{0,99}$`)

type SettingsUseCase interface {
	ListSettings() ([]*entity.Setting, error)
	GetSetting(key string) (*entity.Setting, error)
	UpsertSetting(adminID, key string, value json.RawMessage) (*entity.Setting, error)
}

type settingsUseCase struct {
	settingsRepo persistent.SettingsRepository
	gate         authz.Gate
	recorder     audit.Recorder
	revalidator  cache.Revalidator
	logger       *logger.Logger
}

func NewSettingsUseCase(
	settingsRepo persistent.SettingsRepository,
	gate authz.Gate,
	recorder audit.Recorder,
	revalidator cache.Revalidator,
	logger *logger.Logger,
) SettingsUseCase {
	return &settingsUseCase{
		settingsRepo: settingsRepo,
		gate:         gate,
		recorder:     recorder,
		revalidator:  revalidator,
		logger:       logger,
	}
}

func (uc *settingsUseCase) ListSettings() ([]*entity.Setting, error) {
	settings, err := uc.settingsRepo.List()
	if err != nil {
		uc.logger.Error("Failed to list settings: %v", err)
		return nil, apperr.Internal(err)
	}
	return settings, nil
}

func (uc *settingsUseCase) GetSetting(key string) (*entity.Setting, error) {
	setting, err := uc.settingsRepo.GetByKey(strings.TrimSpace(key))
	if err != nil {
		return nil, storeErr(err, ErrSettingNotFound)
	}
	return setting, nil
}

// UpsertSetting stores any JSON value under key, creating the key if needed.
func (uc *settingsUseCase) UpsertSetting(adminID, key string, value json.RawMessage) (*entity.Setting, error) {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return nil, err
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrSettingKeyRequired
	}
	if !settingKeyPattern.MatchString(key) || len(value) == 0 || !json.Valid(value) {
		return nil, ErrInvalidSettingValue
	}

	setting, err := uc.settingsRepo.Upsert(key, value, adminID)
	if err != nil {
		uc.logger.Error("Failed to save setting %s: %v", key, err)
		return nil, apperr.Internal(err)
	}

	uc.recorder.Record(audit.Entry{
		AdminID:      adminID,
		Action:       audit.ActionUpdateSetting,
		ResourceType: audit.ResourceSetting,
		ResourceID:   key,
		Details:      map[string]interface{}{"value": value},
	})
	uc.revalidator.RevalidatePath(cache.PathSettings)
	return setting, nil
}
