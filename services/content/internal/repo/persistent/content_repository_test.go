package persistent

import (
	"testing"
	"time"

	"dalil/pkg/testutil"
	"dalil/services/content/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNewsUpdate_PublishLeavesViewsAlone(t *testing.T) {
	db, statements := testutil.DryRunDB(t)
	repo := NewNewsRepository(db)
	now := time.Now()

	err := repo.Update(&entity.News{ID: "n-1", TitleAr: "خبر", IsPublished: true, PublishedAt: &now, Views: 42}, "is_published", "published_at")

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.Len(t, *statements, 1)
	sql := (*statements)[0]
	assert.Contains(t, sql, `UPDATE "news" SET`)
	assert.Contains(t, sql, `"is_published"=`)
	assert.Contains(t, sql, `"published_at"=`)
	assert.NotContains(t, sql, `"views"`)
	assert.NotContains(t, sql, `"title_ar"`)
	assert.NotContains(t, sql, `"author_id"`)
}

func TestNewsUpdate_ViewsNotUpdatable(t *testing.T) {
	db, statements := testutil.DryRunDB(t)

	err := NewNewsRepository(db).Update(&entity.News{ID: "n-1"}, "views")

	assert.Error(t, err)
	assert.Empty(t, *statements)
}

func TestTutorialUpdate_WritesOnlyChangedColumns(t *testing.T) {
	db, statements := testutil.DryRunDB(t)
	repo := NewTutorialRepository(db)

	err := repo.Update(&entity.Tutorial{ID: "t-1", Category: "agents", Difficulty: entity.DifficultyAdvanced, Views: 7}, "category", "difficulty")

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.Len(t, *statements, 1)
	sql := (*statements)[0]
	assert.Contains(t, sql, `UPDATE "tutorials" SET`)
	assert.Contains(t, sql, `"category"=`)
	assert.Contains(t, sql, `"difficulty"=`)
	assert.NotContains(t, sql, `"views"`)
	assert.NotContains(t, sql, `"tags"`)
}
