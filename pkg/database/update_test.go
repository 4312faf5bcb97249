package database

import (
	"testing"
	"time"

	"dalil/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type widget struct {
	ID        string
	Name      string
	Status    string
	Views     int
	UpdatedAt time.Time
}

func TestUpdateFields_WritesOnlyNamedColumns(t *testing.T) {
	db, statements := testutil.DryRunDB(t)

	values := map[string]interface{}{"name": "new", "status": "approved"}
	err := UpdateFields(db, &widget{}, "w-1", values, []string{"name"})

	// a dry run never matches a row
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.Len(t, *statements, 1)
	sql := (*statements)[0]
	assert.Contains(t, sql, `"name"=`)
	assert.Contains(t, sql, `"updated_at"=`)
	assert.NotContains(t, sql, `"status"`)
	assert.NotContains(t, sql, `"views"`)
	assert.Contains(t, sql, "WHERE id = ")
}

func TestUpdateFields_RejectsUnmappedColumn(t *testing.T) {
	db, statements := testutil.DryRunDB(t)

	err := UpdateFields(db, &widget{}, "w-1", map[string]interface{}{"name": "x"}, []string{"views"})

	assert.EqualError(t, err, `column "views" is not updatable`)
	assert.Empty(t, *statements)
}

func TestUpdateFields_NothingToWrite(t *testing.T) {
	db, statements := testutil.DryRunDB(t)

	assert.NoError(t, UpdateFields(db, &widget{}, "w-1", map[string]interface{}{"name": "x"}, nil))
	assert.Empty(t, *statements)
}
