package repo

import (
	"Laniakea/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAssociationRepository_ReplaceForItem_ExactSet(t *testing.T) {
	db := newTestDB(t)
	items := NewItemRepository(db)
	themes := NewThemeRepository(db)
	assoc := NewAssociationRepository(db)
	ctx := context.Background()

	it := mkPhoto("images/a.jpg", "", time.Now())
	assert.NoError(t, items.Create(ctx, &it))

	aID, err := themes.GetOrCreate(ctx, "a")
	assert.NoError(t, err)
	bID, err := themes.GetOrCreate(ctx, "b")
	assert.NoError(t, err)

	// {a, b} → затем {b}: остаётся ровно одна связь
	assert.NoError(t, assoc.ReplaceForItem(ctx, it.ID, []int64{aID, bID}))
	assert.NoError(t, assoc.ReplaceForItem(ctx, it.ID, []int64{bID}))

	var links []model.ItemTheme
	assert.NoError(t, db.Where("data_id = ?", it.ID).Find(&links).Error)
	if assert.Len(t, links, 1) {
		assert.Equal(t, bID, links[0].ThemeID)
	}
}

func TestAssociationRepository_ReplaceForItem_EmptyAndDuplicates(t *testing.T) {
	db := newTestDB(t)
	items := NewItemRepository(db)
	themes := NewThemeRepository(db)
	assoc := NewAssociationRepository(db)
	ctx := context.Background()

	it := mkPhoto("images/a.jpg", "", time.Now())
	assert.NoError(t, items.Create(ctx, &it))

	aID, err := themes.GetOrCreate(ctx, "a")
	assert.NoError(t, err)

	// дубли во входе схлопываются вставкой, а не ошибкой
	assert.NoError(t, assoc.ReplaceForItem(ctx, it.ID, []int64{aID, aID, aID}))
	var links []model.ItemTheme
	assert.NoError(t, db.Where("data_id = ?", it.ID).Find(&links).Error)
	assert.Len(t, links, 1)

	// пустой вход снимает все связи
	assert.NoError(t, assoc.ReplaceForItem(ctx, it.ID, nil))
	links = nil
	assert.NoError(t, db.Where("data_id = ?", it.ID).Find(&links).Error)
	assert.Len(t, links, 0)
}

func TestAssociationRepository_DeleteAllForItem(t *testing.T) {
	db := newTestDB(t)
	items := NewItemRepository(db)
	themes := NewThemeRepository(db)
	assoc := NewAssociationRepository(db)
	ctx := context.Background()

	it := mkPhoto("images/a.jpg", "", time.Now())
	assert.NoError(t, items.Create(ctx, &it))
	aID, err := themes.GetOrCreate(ctx, "a")
	assert.NoError(t, err)
	assert.NoError(t, assoc.ReplaceForItem(ctx, it.ID, []int64{aID}))

	assert.NoError(t, assoc.DeleteAllForItem(ctx, it.ID))
	var links []model.ItemTheme
	assert.NoError(t, db.Where("data_id = ?", it.ID).Find(&links).Error)
	assert.Len(t, links, 0)

	// тема при этом переживает элемент (словарь тем не чистится)
	n, err := themes.CountAll(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// повторный вызов по пустому набору — no-op, не ошибка
	assert.NoError(t, assoc.DeleteAllForItem(ctx, it.ID))
}

func TestAssociationRepository_ListItemsForTheme(t *testing.T) {
	db := newTestDB(t)
	items := NewItemRepository(db)
	themes := NewThemeRepository(db)
	assoc := NewAssociationRepository(db)
	ctx := context.Background()

	older := mkPhoto("images/1.jpg", "older", time.Now().UTC().Add(-2*time.Hour))
	newer := mkPhoto("images/2.jpg", "newer", time.Now().UTC().Add(-time.Hour))
	assert.NoError(t, items.Create(ctx, &older))
	assert.NoError(t, items.Create(ctx, &newer))

	hID, err := themes.GetOrCreate(ctx, "home")
	assert.NoError(t, err)
	assert.NoError(t, assoc.ReplaceForItem(ctx, older.ID, []int64{hID}))
	assert.NoError(t, assoc.ReplaceForItem(ctx, newer.ID, []int64{hID}))

	got, err := assoc.ListItemsForTheme(ctx, "home")
	assert.NoError(t, err)
	if assert.Len(t, got, 2) {
		// свежие первыми
		assert.Equal(t, newer.ID, got[0].ID)
		assert.Equal(t, older.ID, got[1].ID)
	}

	// неизвестная тема — пустой список, не ошибка
	none, err := assoc.ListItemsForTheme(ctx, "unknown")
	assert.NoError(t, err)
	assert.Empty(t, none)
}
