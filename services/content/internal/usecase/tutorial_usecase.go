package usecase

import (
	"fmt"
	"strings"

	"dalil/pkg/apperr"
	"dalil/pkg/audit"
	"dalil/pkg/authz"
	"dalil/pkg/cache"
	"dalil/pkg/logger"
	"dalil/services/content/internal/entity"
	"dalil/services/content/internal/repo/persistent"
)

type TutorialUseCase interface {
	ListTutorials(filter entity.TutorialFilter) (tutorials []*entity.Tutorial, total int64, degraded bool)
	GetTutorial(id string) (*entity.Tutorial, error)
	RecordView(id, viewerKey string) (bool, error)
	CreateTutorial(adminID string, input entity.TutorialInput) (*entity.Tutorial, error)
	UpdateTutorial(adminID, id string, update entity.TutorialUpdate) (*entity.Tutorial, error)
	DeleteTutorial(adminID, id string) error
}

type tutorialUseCase struct {
	tutorialRepo persistent.TutorialRepository
	gate         authz.Gate
	recorder     audit.Recorder
	store        *cache.Store
	revalidator  cache.Revalidator
	logger       *logger.Logger
}

func NewTutorialUseCase(
	tutorialRepo persistent.TutorialRepository,
	gate authz.Gate,
	recorder audit.Recorder,
	store *cache.Store,
	revalidator cache.Revalidator,
	logger *logger.Logger,
) TutorialUseCase {
	return &tutorialUseCase{
		tutorialRepo: tutorialRepo,
		gate:         gate,
		recorder:     recorder,
		store:        store,
		revalidator:  revalidator,
		logger:       logger,
	}
}

func (uc *tutorialUseCase) ListTutorials(filter entity.TutorialFilter) ([]*entity.Tutorial, int64, bool) {
	filter.Limit, filter.Offset = NormalizePage(filter.Limit, filter.Offset)
	if filter.Difficulty != "" && !filter.Difficulty.Valid() {
		return []*entity.Tutorial{}, 0, false
	}

	tutorials, total, err := uc.tutorialRepo.List(filter)
	if err != nil {
		uc.logger.Error("Failed to list tutorials: %v", err)
		return []*entity.Tutorial{}, 0, true
	}
	return tutorials, total, false
}

func (uc *tutorialUseCase) GetTutorial(id string) (*entity.Tutorial, error) {
	tutorial, err := uc.tutorialRepo.GetByID(id)
	if err != nil {
		return nil, storeErr(err, ErrTutorialNotFound)
	}
	return tutorial, nil
}

func (uc *tutorialUseCase) RecordView(id, viewerKey string) (bool, error) {
	if !uc.store.FirstSeen(fmt.Sprintf("views:tutorial:%s:%s", id, viewerKey), viewDedupTTL) {
		return false, nil
	}
	if err := uc.tutorialRepo.IncrementViews(id); err != nil {
		uc.logger.Error("Failed to increment views for tutorial %s: %v", id, err)
		return false, apperr.Internal(err)
	}
	return true, nil
}

func (uc *tutorialUseCase) CreateTutorial(adminID string, input entity.TutorialInput) (*entity.Tutorial, error) {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return nil, err
	}
	if input.Difficulty == "" {
		input.Difficulty = entity.DifficultyBeginner
	}
	if !input.Difficulty.Valid() {
		return nil, ErrInvalidDifficulty
	}

	tutorial := &entity.Tutorial{
		TitleAr:    strings.TrimSpace(input.TitleAr),
		TitleEn:    strings.TrimSpace(input.TitleEn),
		ContentAr:  input.ContentAr,
		ContentEn:  input.ContentEn,
		Category:   strings.TrimSpace(input.Category),
		Difficulty: input.Difficulty,
		Tags:       NormalizeTags(input.Tags),
		ImageURL:   strings.TrimSpace(input.ImageURL),
		AuthorID:   adminID,
	}
	if tutorial.TitleAr == "" && tutorial.TitleEn == "" {
		return nil, ErrTutorialTitle
	}

	if err := uc.tutorialRepo.Create(tutorial); err != nil {
		uc.logger.Error("Failed to create tutorial: %v", err)
		return nil, apperr.Internal(err)
	}

	uc.recorder.Record(audit.Entry{
		AdminID:      adminID,
		Action:       audit.ActionCreate,
		ResourceType: audit.ResourceTutorial,
		ResourceID:   tutorial.ID,
		Details:      map[string]interface{}{"title": tutorialTitle(tutorial), "difficulty": string(tutorial.Difficulty)},
	})
	uc.revalidator.RevalidatePath(cache.PathTutorials)
	return tutorial, nil
}

func (uc *tutorialUseCase) UpdateTutorial(adminID, id string, update entity.TutorialUpdate) (*entity.Tutorial, error) {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return nil, err
	}
	if update.Difficulty != nil && !update.Difficulty.Valid() {
		return nil, ErrInvalidDifficulty
	}

	tutorial, err := uc.tutorialRepo.GetByID(id)
	if err != nil {
		return nil, storeErr(err, ErrTutorialNotFound)
	}

	changed := applyTutorialUpdate(tutorial, update)
	if tutorial.TitleAr == "" && tutorial.TitleEn == "" {
		return nil, ErrTutorialTitle
	}
	if err := uc.tutorialRepo.Update(tutorial, changed...); err != nil {
		err = storeErr(err, ErrTutorialNotFound)
		if apperr.KindOf(err) == apperr.KindInternal {
			uc.logger.Error("Failed to update tutorial %s: %v", id, err)
		}
		return nil, err
	}

	uc.recorder.Record(audit.Entry{
		AdminID:      adminID,
		Action:       audit.ActionUpdate,
		ResourceType: audit.ResourceTutorial,
		ResourceID:   id,
		Details:      map[string]interface{}{"fields": changed},
	})
	uc.revalidator.RevalidatePath(cache.PathTutorials)
	return tutorial, nil
}

func (uc *tutorialUseCase) DeleteTutorial(adminID, id string) error {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return err
	}

	if err := uc.tutorialRepo.Delete(id); err != nil {
		err = storeErr(err, ErrTutorialNotFound)
		if apperr.KindOf(err) == apperr.KindInternal {
			uc.logger.Error("Failed to delete tutorial %s: %v", id, err)
		}
		return err
	}

	uc.recorder.Record(audit.Entry{
		AdminID:      adminID,
		Action:       audit.ActionDelete,
		ResourceType: audit.ResourceTutorial,
		ResourceID:   id,
	})
	uc.revalidator.RevalidatePath(cache.PathTutorials)
	return nil
}

func applyTutorialUpdate(t *entity.Tutorial, u entity.TutorialUpdate) []string {
	var changed []string
	set := func(field string, dst *string, src *string) {
		if src != nil {
			*dst = *src
			changed = append(changed, field)
		}
	}

	if u.TitleAr != nil {
		trimmed := strings.TrimSpace(*u.TitleAr)
		set("title_ar", &t.TitleAr, &trimmed)
	}
	if u.TitleEn != nil {
		trimmed := strings.TrimSpace(*u.TitleEn)
		set("title_en", &t.TitleEn, &trimmed)
	}
	set("content_ar", &t.ContentAr, u.ContentAr)
	set("content_en", &t.ContentEn, u.ContentEn)
	if u.Category != nil {
		trimmed := strings.TrimSpace(*u.Category)
		set("category", &t.Category, &trimmed)
	}
	if u.ImageURL != nil {
		trimmed := strings.TrimSpace(*u.ImageURL)
		set("image_url", &t.ImageURL, &trimmed)
	}
	if u.Difficulty != nil {
		t.Difficulty = *u.Difficulty
		changed = append(changed, "difficulty")
	}
	if u.Tags != nil {
		t.Tags = NormalizeTags(*u.Tags)
		changed = append(changed, "tags")
	}
	return changed
}

// NormalizeTags trims, lowercases and de-duplicates tags, keeping order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func tutorialTitle(t *entity.Tutorial) string {
	if t.TitleAr != "" {
		return t.TitleAr
	}
	return t.TitleEn
}
