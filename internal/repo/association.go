package repo

import (
	"Laniakea/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssociationRepository владеет рёбрами связи элемент↔тема.
type AssociationRepository interface {
	// ReplaceForItem заменяет набор связей элемента на переданный:
	// удаление всех существующих и вставка новых в одной транзакции,
	// чтобы читатель не увидел наполовину записанный набор. Пустой вход
	// оставляет элемент без тем. Дубли во входе схлопываются вставкой
	// с OnConflict DoNothing. Первая же ошибка откатывает замену целиком.
	ReplaceForItem(ctx context.Context, itemID int64, themeIDs []int64) error

	// DeleteAllForItem удаляет все связи элемента; зовётся перед удалением элемента.
	DeleteAllForItem(ctx context.Context, itemID int64) error

	// ListItemsForTheme возвращает элементы темы по точному нормализованному
	// имени, по убыванию created_at. Неизвестная тема — пустой список, не ошибка.
	ListItemsForTheme(ctx context.Context, themeName string) ([]model.Item, error)
}

type assocRepo struct {
	db *gorm.DB
}

// NewAssociationRepository создаёт реализацию репозитория связей.
func NewAssociationRepository(db *gorm.DB) AssociationRepository {
	return &assocRepo{db: db}
}

func (r *assocRepo) ReplaceForItem(ctx context.Context, itemID int64, themeIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("data_id = ?", itemID).Delete(&model.ItemTheme{}).Error; err != nil {
			return err
		}
		for _, tid := range themeIDs {
			link := model.ItemTheme{ItemID: itemID, ThemeID: tid}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *assocRepo) DeleteAllForItem(ctx context.Context, itemID int64) error {
	return r.db.WithContext(ctx).Where("data_id = ?", itemID).Delete(&model.ItemTheme{}).Error
}

func (r *assocRepo) ListItemsForTheme(ctx context.Context, themeName string) ([]model.Item, error) {
	items := make([]model.Item, 0)
	err := r.db.WithContext(ctx).
		Joins("JOIN data_themes ON data_themes.data_id = data.id").
		Joins("JOIN themes ON themes.id = data_themes.theme_id").
		Where("themes.name = ?", themeName).
		Order("data.created_at DESC, data.id DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
