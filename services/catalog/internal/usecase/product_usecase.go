package usecase

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"time"

	"dalil/pkg/apperr"
	"dalil/pkg/audit"
	"dalil/pkg/authz"
	"dalil/pkg/cache"
	"dalil/pkg/logger"
	"dalil/pkg/media"
	"dalil/pkg/s3"
	"dalil/services/catalog/internal/entity"
	"dalil/services/catalog/internal/repo/persistent"
)

const (
	facetsKey    = "catalog:facets"
	viewDedupTTL = 24 * time.Hour

	DefaultPageSize = 20
	MaxPageSize     = 100
)

type ProductUseCase interface {
	ListProducts(filter entity.ProductFilter) (products []*entity.Product, total int64, degraded bool)
	GetProduct(id string) (*entity.ProductDetail, error)
	RecordView(id, viewerKey string) (bool, error)
	SubmitProduct(userID string, input entity.SubmitProductInput, logo *media.Candidate) (*entity.Product, error)
	GetFacets() (*entity.Facets, error)
	GetRating(productID string) (*entity.Rating, error)
	AdminListProducts(adminID string, filter entity.ProductFilter) ([]*entity.Product, int64, error)
	UpdateProduct(adminID, id string, update entity.ProductUpdate) (*entity.Product, error)
	SetFeatured(adminID, id string, featured bool) (*entity.Product, error)
	DeleteProduct(adminID, id string) error
}

type productUseCase struct {
	productRepo persistent.ProductRepository
	ratings     *RatingCalculator
	gate        authz.Gate
	recorder    audit.Recorder
	store       *cache.Store
	revalidator cache.Revalidator
	storage     s3.Storage
	facetsTTL   time.Duration
	logger      *logger.Logger
}

func NewProductUseCase(
	productRepo persistent.ProductRepository,
	ratings *RatingCalculator,
	gate authz.Gate,
	recorder audit.Recorder,
	store *cache.Store,
	revalidator cache.Revalidator,
	storage s3.Storage,
	facetsTTL time.Duration,
	logger *logger.Logger,
) ProductUseCase {
	return &productUseCase{
		productRepo: productRepo,
		ratings:     ratings,
		gate:        gate,
		recorder:    recorder,
		store:       store,
		revalidator: revalidator,
		storage:     storage,
		facetsTTL:   facetsTTL,
		logger:      logger,
	}
}

// NormalizePage applies the default page size and the upper bound.
func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// ListProducts returns approved products only. A store failure yields an
// empty page reported as degraded.
func (uc *productUseCase) ListProducts(filter entity.ProductFilter) ([]*entity.Product, int64, bool) {
	filter.Status = entity.StatusApproved
	filter.Limit, filter.Offset = NormalizePage(filter.Limit, filter.Offset)

	products, total, err := uc.productRepo.List(filter)
	if err != nil {
		uc.logger.Error("Failed to list products: %v", err)
		return []*entity.Product{}, 0, true
	}
	return products, total, false
}

func (uc *productUseCase) GetProduct(id string) (*entity.ProductDetail, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, storeErr(err, ErrProductNotFound)
	}
	if product.Status != entity.StatusApproved {
		return nil, ErrProductNotFound
	}

	detail := &entity.ProductDetail{Product: product}
	if rating, err := uc.ratings.Get(id); err == nil {
		detail.Rating = *rating
	} else {
		detail.RatingUnavailable = true
	}
	return detail, nil
}

// RecordView counts one view per viewer and product per day.
func (uc *productUseCase) RecordView(id, viewerKey string) (bool, error) {
	if !uc.store.FirstSeen(fmt.Sprintf("views:product:%s:%s", id, viewerKey), viewDedupTTL) {
		return false, nil
	}
	if err := uc.productRepo.IncrementViews(id); err != nil {
		uc.logger.Error("Failed to increment views for product %s: %v", id, err)
		return false, apperr.Internal(err)
	}
	return true, nil
}

func (uc *productUseCase) SubmitProduct(userID string, input entity.SubmitProductInput, logo *media.Candidate) (*entity.Product, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrNameRequired
	}
	if !validWebsite(input.WebsiteURL) {
		return nil, ErrInvalidURL
	}

	var logoKey, logoURL string
	if logo != nil {
		mimeType, err := media.Validate(media.BucketProductLogos, *logo)
		if err != nil {
			return nil, err
		}
		logoKey = media.StoredName(logo.Name, time.Now())
		logoURL, err = uc.storage.UploadFile(media.BucketProductLogos, logoKey, bytes.NewReader(logo.Content), mimeType)
		if err != nil {
			uc.logger.Error("Failed to upload logo %s: %v", logoKey, err)
			return nil, media.ErrUploadFailed
		}
	}

	product := &entity.Product{
		Name:          input.Name,
		NameAr:        strings.TrimSpace(input.NameAr),
		Description:   strings.TrimSpace(input.Description),
		DescriptionAr: strings.TrimSpace(input.DescriptionAr),
		Category:      strings.TrimSpace(input.Category),
		Label:         strings.TrimSpace(input.Label),
		Tags:          NormalizeTags(input.Tags),
		WebsiteURL:    strings.TrimSpace(input.WebsiteURL),
		LogoURL:       logoURL,
		Status:        entity.StatusPending,
		SubmittedBy:   userID,
	}

	if err := uc.productRepo.Create(product); err != nil {
		uc.logger.Error("Failed to create product: %v", err)
		if logoKey != "" {
			if derr := uc.storage.DeleteFile(media.BucketProductLogos, logoKey); derr != nil {
				uc.logger.Warn("Failed to remove orphaned logo %s: %v", logoKey, derr)
			}
		}
		return nil, apperr.Internal(err)
	}
	return product, nil
}

func (uc *productUseCase) GetFacets() (*entity.Facets, error) {
	facets, err := cache.Remember(uc.store, facetsKey, cache.TagFacets, uc.facetsTTL, uc.productRepo.Facets)
	if err != nil {
		uc.logger.Error("Failed to load facets: %v", err)
		return &entity.Facets{Categories: []string{}, Labels: []string{}, Tags: []string{}}, nil
	}
	return facets, nil
}

func (uc *productUseCase) GetRating(productID string) (*entity.Rating, error) {
	return uc.ratings.Get(productID)
}

func (uc *productUseCase) AdminListProducts(adminID string, filter entity.ProductFilter) ([]*entity.Product, int64, error) {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return nil, 0, err
	}
	filter.Limit, filter.Offset = NormalizePage(filter.Limit, filter.Offset)

	products, total, err := uc.productRepo.List(filter)
	if err != nil {
		uc.logger.Error("Failed to list products: %v", err)
		return nil, 0, apperr.Internal(err)
	}
	return products, total, nil
}

func (uc *productUseCase) UpdateProduct(adminID, id string, update entity.ProductUpdate) (*entity.Product, error) {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return nil, err
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, ErrNameRequired
	}
	if update.WebsiteURL != nil && !validWebsite(*update.WebsiteURL) {
		return nil, ErrInvalidURL
	}

	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, storeErr(err, ErrProductNotFound)
	}

	changed := applyUpdate(product, update)
	if err := uc.productRepo.Update(product, changed...); err != nil {
		return nil, uc.updateErr(id, err)
	}

	uc.recorder.Record(audit.Entry{
		AdminID:      adminID,
		Action:       audit.ActionUpdate,
		ResourceType: audit.ResourceProduct,
		ResourceID:   id,
		Details:      map[string]interface{}{"fields": changed},
	})
	uc.revalidator.RevalidatePath(cache.PathProducts, cache.PathFacets)
	uc.revalidator.RevalidateTag(cache.TagFacets)
	return product, nil
}

func (uc *productUseCase) SetFeatured(adminID, id string, featured bool) (*entity.Product, error) {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, storeErr(err, ErrProductNotFound)
	}
	product.IsFeatured = featured
	if err := uc.productRepo.Update(product, "is_featured"); err != nil {
		return nil, uc.updateErr(id, err)
	}

	uc.recorder.Record(audit.Entry{
		AdminID:      adminID,
		Action:       audit.ActionFeature,
		ResourceType: audit.ResourceProduct,
		ResourceID:   id,
		Details:      map[string]interface{}{"is_featured": featured},
	})
	uc.revalidator.RevalidatePath(cache.PathProducts)
	return product, nil
}

func (uc *productUseCase) DeleteProduct(adminID, id string) error {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return err
	}

	if err := uc.productRepo.Delete(id); err != nil {
		err = storeErr(err, ErrProductNotFound)
		if apperr.KindOf(err) == apperr.KindInternal {
			uc.logger.Error("Failed to delete product %s: %v", id, err)
		}
		return err
	}

	uc.recorder.Record(audit.Entry{
		AdminID:      adminID,
		Action:       audit.ActionDelete,
		ResourceType: audit.ResourceProduct,
		ResourceID:   id,
	})
	uc.revalidator.RevalidatePath(cache.PathProducts, cache.PathFacets)
	uc.revalidator.RevalidateTag(cache.TagFacets)
	return nil
}

func (uc *productUseCase) updateErr(id string, err error) error {
	err = storeErr(err, ErrProductNotFound)
	if apperr.KindOf(err) == apperr.KindInternal {
		uc.logger.Error("Failed to update product %s: %v", id, err)
	}
	return err
}

func applyUpdate(p *entity.Product, u entity.ProductUpdate) []string {
	var changed []string
	setString := func(field string, dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
			changed = append(changed, field)
		}
	}

	setString("name", &p.Name, u.Name)
	setString("name_ar", &p.NameAr, u.NameAr)
	setString("description", &p.Description, u.Description)
	setString("description_ar", &p.DescriptionAr, u.DescriptionAr)
	setString("category", &p.Category, u.Category)
	setString("label", &p.Label, u.Label)
	setString("website_url", &p.WebsiteURL, u.WebsiteURL)
	setString("logo_url", &p.LogoURL, u.LogoURL)
	if u.Tags != nil {
		p.Tags = NormalizeTags(*u.Tags)
		changed = append(changed, "tags")
	}
	if u.IsFeatured != nil {
		p.IsFeatured = *u.IsFeatured
		changed = append(changed, "is_featured")
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

// validWebsite accepts an empty value or an absolute http(s) URL.
func validWebsite(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return true
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
