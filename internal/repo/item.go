package repo

import (
	"Laniakea/internal/model"
	"context"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// ItemWithThemes — строка листинга: элемент плюс склеенная строка его тем.
// Склейка через ", " — исторический транспортный контракт веб-интерфейса.
type ItemWithThemes struct {
	model.Item
	Themes string
}

// ThemeJoinSeparator — разделитель склейки имён тем в листинге.
const ThemeJoinSeparator = ", "

// ItemRepository определяет контракт доступа к Item для слоя сервиса.
type ItemRepository interface {
	// Create валидирует инвариант полей и создаёт запись, присваивая ID и CreatedAt.
	Create(ctx context.Context, it *model.Item) error

	// GetByID возвращает элемент или gorm.ErrRecordNotFound.
	GetByID(ctx context.Context, id int64) (*model.Item, error)

	// ListAllWithThemes возвращает все элементы по убыванию created_at,
	// каждый со склеенной строкой имён его тем (имена внутри элемента — по алфавиту).
	ListAllWithThemes(ctx context.Context) ([]ItemWithThemes, error)

	// UpdateNote меняет заметку. gorm.ErrRecordNotFound, если элемента нет.
	UpdateNote(ctx context.Context, id int64, note string) error

	// Delete удаляет только строку элемента; связи и файл — забота вызывающего.
	// gorm.ErrRecordNotFound, если элемента нет.
	Delete(ctx context.Context, id int64) error

	// CountAll возвращает общее число элементов.
	CountAll(ctx context.Context) (int64, error)
}

type itemRepo struct {
	db *gorm.DB
}

// NewItemRepository создаёт реализацию репозитория для Item.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) Create(ctx context.Context, it *model.Item) error {
	if err := it.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *itemRepo) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	var it model.Item
	if err := r.db.WithContext(ctx).First(&it, id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) ListAllWithThemes(ctx context.Context) ([]ItemWithThemes, error) {
	var items []model.Item
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	// Имена тем выбираем одним join-запросом и раскладываем по элементам в Go:
	// GROUP_CONCAT/string_agg различаются между SQLite и Postgres.
	type linkRow struct {
		ItemID int64
		Name   string
	}
	var links []linkRow
	if err := r.db.WithContext(ctx).
		Table("data_themes").
		Select("data_themes.data_id AS item_id, themes.name AS name").
		Joins("JOIN themes ON themes.id = data_themes.theme_id").
		Scan(&links).Error; err != nil {
		return nil, err
	}

	byItem := make(map[int64][]string, len(items))
	for _, l := range links {
		byItem[l.ItemID] = append(byItem[l.ItemID], l.Name)
	}

	res := make([]ItemWithThemes, 0, len(items))
	for _, it := range items {
		names := byItem[it.ID]
		sort.Strings(names)
		res = append(res, ItemWithThemes{Item: it, Themes: strings.Join(names, ThemeJoinSeparator)})
	}
	return res, nil
}

func (r *itemRepo) UpdateNote(ctx context.Context, id int64, note string) error {
	tx := r.db.WithContext(ctx).Model(&model.Item{}).Where("id = ?", id).Update("note", note)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *itemRepo) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&model.Item{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *itemRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Item{}).Count(&n).Error
	return n, err
}
