package repo

import (
	"Laniakea/internal/model"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// хелпер для создания базового фото-элемента
func mkPhoto(path, note string, created time.Time) model.Item {
	it := model.Item{
		Kind:        model.KindPhoto,
		StoragePath: strPtr(path),
		CreatedAt:   created.UTC(),
	}
	if note != "" {
		it.Note = strPtr(note)
	}
	return it
}

func TestItemRepository_Create_ValidatesKindInvariant(t *testing.T) {
	db := newTestDB(t)
	r := NewItemRepository(db)
	ctx := context.Background()

	// фото без пути — отказ до записи
	bad := model.Item{Kind: model.KindPhoto}
	err := r.Create(ctx, &bad)
	var ve *model.ValidationError
	assert.True(t, errors.As(err, &ve))

	// текст без контента — отказ
	badText := model.Item{Kind: model.KindText}
	err = r.Create(ctx, &badText)
	assert.True(t, errors.As(err, &ve))

	// неизвестный тип — отказ
	unknown := model.Item{Kind: "gif", StoragePath: strPtr("x")}
	err = r.Create(ctx, &unknown)
	assert.True(t, errors.As(err, &ve))

	// у фото не бывает inline-контента
	mixed := model.Item{Kind: model.KindPhoto, StoragePath: strPtr("images/a.jpg"), Content: strPtr("oops")}
	err = r.Create(ctx, &mixed)
	assert.True(t, errors.As(err, &ve))

	n, err := r.CountAll(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestItemRepository_Create_GetByID(t *testing.T) {
	db := newTestDB(t)
	r := NewItemRepository(db)
	ctx := context.Background()

	it := mkPhoto("images/a.jpg", "caption", time.Now().Add(-time.Minute))
	assert.NoError(t, r.Create(ctx, &it))
	assert.NotZero(t, it.ID) // id присвоен при создании

	got, err := r.GetByID(ctx, it.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.KindPhoto, got.Kind)
	assert.Equal(t, "images/a.jpg", *got.StoragePath)
	assert.Equal(t, "caption", *got.Note)

	// несуществующий id
	got, err = r.GetByID(ctx, 9999)
	assert.Nil(t, got)
	assert.Equal(t, gorm.ErrRecordNotFound, err)
}

func TestItemRepository_ListAllWithThemes_OrderAndJoin(t *testing.T) {
	db := newTestDB(t)
	items := NewItemRepository(db)
	themes := NewThemeRepository(db)
	assoc := NewAssociationRepository(db)
	ctx := context.Background()

	t1 := time.Now().UTC().Add(-3 * time.Hour)
	t2 := time.Now().UTC().Add(-2 * time.Hour)
	t3 := time.Now().UTC().Add(-1 * time.Hour)

	old := mkPhoto("images/old.jpg", "old", t1)
	mid := mkPhoto("images/mid.jpg", "mid", t2)
	fresh := mkPhoto("images/new.jpg", "new", t3)
	for _, it := range []*model.Item{&old, &mid, &fresh} {
		assert.NoError(t, items.Create(ctx, it))
	}

	// среднему элементу — две темы, свежему — одну
	zID, err := themes.GetOrCreate(ctx, "zebra")
	assert.NoError(t, err)
	aID, err := themes.GetOrCreate(ctx, "attic")
	assert.NoError(t, err)
	assert.NoError(t, assoc.ReplaceForItem(ctx, mid.ID, []int64{zID, aID}))
	assert.NoError(t, assoc.ReplaceForItem(ctx, fresh.ID, []int64{aID}))

	rows, err := items.ListAllWithThemes(ctx)
	assert.NoError(t, err)
	if assert.Len(t, rows, 3) {
		// свежие первыми
		assert.Equal(t, fresh.ID, rows[0].ID)
		assert.Equal(t, mid.ID, rows[1].ID)
		assert.Equal(t, old.ID, rows[2].ID)
		// склейка тем: по алфавиту, через ", "; без тем — пустая строка
		assert.Equal(t, "attic", rows[0].Themes)
		assert.Equal(t, "attic, zebra", rows[1].Themes)
		assert.Equal(t, "", rows[2].Themes)
	}
}

func TestItemRepository_UpdateNote(t *testing.T) {
	db := newTestDB(t)
	r := NewItemRepository(db)
	ctx := context.Background()

	it := mkPhoto("images/a.jpg", "before", time.Now())
	assert.NoError(t, r.Create(ctx, &it))

	assert.NoError(t, r.UpdateNote(ctx, it.ID, "after"))
	got, err := r.GetByID(ctx, it.ID)
	assert.NoError(t, err)
	assert.Equal(t, "after", *got.Note)

	// несуществующий id — not found, не авария
	assert.Equal(t, gorm.ErrRecordNotFound, r.UpdateNote(ctx, 9999, "x"))
}

func TestItemRepository_Delete_And_CountAll(t *testing.T) {
	db := newTestDB(t)
	r := NewItemRepository(db)
	ctx := context.Background()

	it := mkPhoto("images/a.jpg", "", time.Now())
	assert.NoError(t, r.Create(ctx, &it))

	n, err := r.CountAll(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.NoError(t, r.Delete(ctx, it.ID))
	n, err = r.CountAll(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)

	// повторное удаление — not found
	assert.Equal(t, gorm.ErrRecordNotFound, r.Delete(ctx, it.ID))
}
