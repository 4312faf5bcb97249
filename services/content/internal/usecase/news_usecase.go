package usecase

import (
	"fmt"
	"strings"
	"time"

	"dalil/pkg/apperr"
	"dalil/pkg/audit"
	"dalil/pkg/authz"
	"dalil/pkg/cache"
	"dalil/pkg/logger"
	"dalil/services/content/internal/entity"
	"dalil/services/content/internal/repo/persistent"
)

const viewDedupTTL = 24 * time.Hour

type NewsUseCase interface {
	ListNews(filter entity.NewsFilter) (items []*entity.News, total int64, degraded bool)
	GetNews(id string) (*entity.News, error)
	RecordView(id, viewerKey string) (bool, error)
	AdminListNews(adminID string, filter entity.NewsFilter) ([]*entity.News, int64, error)
	AdminGetNews(adminID, id string) (*entity.News, error)
	CreateNews(adminID string, input entity.NewsInput) (*entity.News, error)
	UpdateNews(adminID, id string, update entity.NewsUpdate) (*entity.News, error)
	DeleteNews(adminID, id string) error
	TogglePublish(adminID, id string) (*entity.News, error)
	ToggleFeature(adminID, id string) (*entity.News, error)
}

type newsUseCase struct {
	newsRepo    persistent.NewsRepository
	gate        authz.Gate
	recorder    audit.Recorder
	store       *cache.Store
	revalidator cache.Revalidator
	logger      *logger.Logger
	now         func() time.Time
}

func NewNewsUseCase(
	newsRepo persistent.NewsRepository,
	gate authz.Gate,
	recorder audit.Recorder,
	store *cache.Store,
	revalidator cache.Revalidator,
	logger *logger.Logger,
) NewsUseCase {
	return &newsUseCase{
		newsRepo:    newsRepo,
		gate:        gate,
		recorder:    recorder,
		store:       store,
		revalidator: revalidator,
		logger:      logger,
		now:         time.Now,
	}
}

// ListNews returns published articles, newest first. A store failure yields
// an empty page reported as degraded.
func (uc *newsUseCase) ListNews(filter entity.NewsFilter) ([]*entity.News, int64, bool) {
	filter.PublishedOnly = true
	filter.Limit, filter.Offset = NormalizePage(filter.Limit, filter.Offset)

	items, total, err := uc.newsRepo.List(filter)
	if err != nil {
		uc.logger.Error("Failed to list news: %v", err)
		return []*entity.News{}, 0, true
	}
	return items, total, false
}

func (uc *newsUseCase) GetNews(id string) (*entity.News, error) {
	news, err := uc.newsRepo.GetByID(id)
	if err != nil {
		return nil, storeErr(err, ErrNewsNotFound)
	}
	if !news.IsPublished {
		return nil, ErrNewsNotFound
	}
	return news, nil
}

func (uc *newsUseCase) RecordView(id, viewerKey string) (bool, error) {
	if !uc.store.FirstSeen(fmt.Sprintf("views:news:%s:%s", id, viewerKey), viewDedupTTL) {
		return false, nil
	}
	if err := uc.newsRepo.IncrementViews(id); err != nil {
		uc.logger.Error("Failed to increment views for news %s: %v", id, err)
		return false, apperr.Internal(err)
	}
	return true, nil
}

func (uc *newsUseCase) AdminListNews(adminID string, filter entity.NewsFilter) ([]*entity.News, int64, error) {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return nil, 0, err
	}
	filter.Limit, filter.Offset = NormalizePage(filter.Limit, filter.Offset)

	items, total, err := uc.newsRepo.List(filter)
	if err != nil {
		uc.logger.Error("Failed to list news: %v", err)
		return nil, 0, apperr.Internal(err)
	}
	return items, total, nil
}

func (uc *newsUseCase) AdminGetNews(adminID, id string) (*entity.News, error) {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return nil, err
	}
	news, err := uc.newsRepo.GetByID(id)
	if err != nil {
		return nil, storeErr(err, ErrNewsNotFound)
	}
	return news, nil
}

func (uc *newsUseCase) CreateNews(adminID string, input entity.NewsInput) (*entity.News, error) {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return nil, err
	}
	news := &entity.News{
		TitleAr:     strings.TrimSpace(input.TitleAr),
		TitleEn:     strings.TrimSpace(input.TitleEn),
		SummaryAr:   strings.TrimSpace(input.SummaryAr),
		SummaryEn:   strings.TrimSpace(input.SummaryEn),
		ContentAr:   input.ContentAr,
		ContentEn:   input.ContentEn,
		ImageURL:    strings.TrimSpace(input.ImageURL),
		Label:       strings.TrimSpace(input.Label),
		IsPublished: input.IsPublished,
		IsFeatured:  input.IsFeatured,
		AuthorID:    adminID,
	}
	if news.TitleAr == "" && news.TitleEn == "" {
		return nil, ErrNewsTitleRequired
	}
	if news.IsPublished {
		now := uc.now()
		news.PublishedAt = &now
	}

	if err := uc.newsRepo.Create(news); err != nil {
		uc.logger.Error("Failed to create news: %v", err)
		return nil, apperr.Internal(err)
	}

	uc.recorder.Record(audit.Entry{
		AdminID:      adminID,
		Action:       audit.ActionCreate,
		ResourceType: audit.ResourceNews,
		ResourceID:   news.ID,
		Details:      map[string]interface{}{"title": newsTitle(news), "is_published": news.IsPublished},
	})
	uc.revalidator.RevalidatePath(cache.PathNews)
	return news, nil
}

func (uc *newsUseCase) UpdateNews(adminID, id string, update entity.NewsUpdate) (*entity.News, error) {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return nil, err
	}

	news, err := uc.newsRepo.GetByID(id)
	if err != nil {
		return nil, storeErr(err, ErrNewsNotFound)
	}

	changed := applyNewsUpdate(news, update)
	if news.TitleAr == "" && news.TitleEn == "" {
		return nil, ErrNewsTitleRequired
	}
	if err := uc.newsRepo.Update(news, changed...); err != nil {
		return nil, uc.updateErr(id, err)
	}

	uc.recorder.Record(audit.Entry{
		AdminID:      adminID,
		Action:       audit.ActionUpdate,
		ResourceType: audit.ResourceNews,
		ResourceID:   id,
		Details:      map[string]interface{}{"fields": changed},
	})
	uc.revalidator.RevalidatePath(cache.PathNews)
	return news, nil
}

func (uc *newsUseCase) DeleteNews(adminID, id string) error {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return err
	}

	if err := uc.newsRepo.Delete(id); err != nil {
		err = storeErr(err, ErrNewsNotFound)
		if apperr.KindOf(err) == apperr.KindInternal {
			uc.logger.Error("Failed to delete news %s: %v", id, err)
		}
		return err
	}

	uc.recorder.Record(audit.Entry{
		AdminID:      adminID,
		Action:       audit.ActionDelete,
		ResourceType: audit.ResourceNews,
		ResourceID:   id,
	})
	uc.revalidator.RevalidatePath(cache.PathNews)
	return nil
}

// TogglePublish flips the published flag. published_at is set the first time
// an article goes out and kept afterwards.
func (uc *newsUseCase) TogglePublish(adminID, id string) (*entity.News, error) {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return nil, err
	}

	news, err := uc.newsRepo.GetByID(id)
	if err != nil {
		return nil, storeErr(err, ErrNewsNotFound)
	}
	news.IsPublished = !news.IsPublished
	if news.IsPublished && news.PublishedAt == nil {
		now := uc.now()
		news.PublishedAt = &now
	}
	if err := uc.newsRepo.Update(news, "is_published", "published_at"); err != nil {
		return nil, uc.updateErr(id, err)
	}

	action := audit.ActionUnpublish
	if news.IsPublished {
		action = audit.ActionPublish
	}
	uc.recorder.Record(audit.Entry{
		AdminID:      adminID,
		Action:       action,
		ResourceType: audit.ResourceNews,
		ResourceID:   id,
		Details:      map[string]interface{}{"title": newsTitle(news)},
	})
	uc.revalidator.RevalidatePath(cache.PathNews)
	return news, nil
}

func (uc *newsUseCase) ToggleFeature(adminID, id string) (*entity.News, error) {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return nil, err
	}

	news, err := uc.newsRepo.GetByID(id)
	if err != nil {
		return nil, storeErr(err, ErrNewsNotFound)
	}
	news.IsFeatured = !news.IsFeatured
	if err := uc.newsRepo.Update(news, "is_featured"); err != nil {
		return nil, uc.updateErr(id, err)
	}

	uc.recorder.Record(audit.Entry{
		AdminID:      adminID,
		Action:       audit.ActionFeature,
		ResourceType: audit.ResourceNews,
		ResourceID:   id,
		Details:      map[string]interface{}{"is_featured": news.IsFeatured},
	})
	uc.revalidator.RevalidatePath(cache.PathNews)
	return news, nil
}

func (uc *newsUseCase) updateErr(id string, err error) error {
	err = storeErr(err, ErrNewsNotFound)
	if apperr.KindOf(err) == apperr.KindInternal {
		uc.logger.Error("Failed to update news %s: %v", id, err)
	}
	return err
}

func applyNewsUpdate(n *entity.News, u entity.NewsUpdate) []string {
	var changed []string
	set := func(field string, dst *string, src *string, trim bool) {
		if src == nil {
			return
		}
		if trim {
			*dst = strings.TrimSpace(*src)
		} else {
			*dst = *src
		}
		changed = append(changed, field)
	}

	set("title_ar", &n.TitleAr, u.TitleAr, true)
	set("title_en", &n.TitleEn, u.TitleEn, true)
	set("summary_ar", &n.SummaryAr, u.SummaryAr, true)
	set("summary_en", &n.SummaryEn, u.SummaryEn, true)
	set("content_ar", &n.ContentAr, u.ContentAr, false)
	set("content_en", &n.ContentEn, u.ContentEn, false)
	set("image_url", &n.ImageURL, u.ImageURL, true)
	set("label", &n.Label, u.Label, true)
	return changed
}

func newsTitle(n *entity.News) string {
	if n.TitleAr != "" {
		return n.TitleAr
	}
	return n.TitleEn
}
