package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_BeforeCreate(t *testing.T) {
	user := &User{
		Email:    "test@example.com",
		FullName: "Test User",
		Role:     RoleUser,
	}

	// BeforeCreate should set ID if empty
	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
}

func TestUser_BeforeCreate_WithID(t *testing.T) {
	existingID := "existing-id-123"
	user := &User{
		ID:    existingID,
		Email: "test@example.com",
	}

	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	// ID should remain unchanged if already set
	assert.Equal(t, existingID, user.ID)
}

func TestProduct_BeforeCreate(t *testing.T) {
	product := &Product{
		Name:   "ChatGPT",
		Status: StatusPending,
	}

	err := product.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, product.ID)
}

func TestBeforeCreate_AssignsIDs(t *testing.T) {
	review := &Review{ProductID: "p-1", UserID: "u-1", Rating: 5}
	anonymous := &ProductReview{ProductID: "p-1", ReviewerName: "Salma", Rating: 4}
	news := &News{TitleAr: "خبر"}
	tutorial := &Tutorial{TitleEn: "Prompting 101"}
	subscriber := &NewsletterSubscriber{Email: "a@example.com"}
	campaign := &EmailCampaign{Subject: "Weekly", Status: CampaignDraft}
	media := &MediaFile{Filename: "1-abc-logo.png", Bucket: "product-logos"}
	setting := &SiteSetting{Key: "hero"}

	assert.NoError(t, review.BeforeCreate(nil))
	assert.NoError(t, anonymous.BeforeCreate(nil))
	assert.NoError(t, news.BeforeCreate(nil))
	assert.NoError(t, tutorial.BeforeCreate(nil))
	assert.NoError(t, subscriber.BeforeCreate(nil))
	assert.NoError(t, campaign.BeforeCreate(nil))
	assert.NoError(t, media.BeforeCreate(nil))
	assert.NoError(t, setting.BeforeCreate(nil))

	for _, id := range []string{review.ID, anonymous.ID, news.ID, tutorial.ID, subscriber.ID, campaign.ID, media.ID, setting.ID} {
		assert.NotEmpty(t, id)
	}
}

func TestNews_TableName(t *testing.T) {
	assert.Equal(t, "news", News{}.TableName())
}
