package repo

import (
	"Laniakea/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ThemeCount — тема с числом различных элементов, к которым она привязана.
type ThemeCount struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// ThemeRepository определяет контракт доступа к словарю тем.
type ThemeRepository interface {
	// GetOrCreate возвращает id темы с данным нормализованным именем,
	// создавая её при первом использовании. Идемпотентна: конкурентные
	// вызовы с одним именем разрешаются в один и тот же id.
	GetOrCreate(ctx context.Context, name string) (int64, error)

	// ListWithCounts возвращает все темы с числом привязанных элементов,
	// по убыванию счётчика, при равенстве — по имени.
	ListWithCounts(ctx context.Context) ([]ThemeCount, error)

	// CountAll возвращает общее число тем (включая темы без элементов).
	CountAll(ctx context.Context) (int64, error)
}

type themeRepo struct {
	db *gorm.DB
}

// NewThemeRepository создаёт реализацию репозитория для Theme.
func NewThemeRepository(db *gorm.DB) ThemeRepository {
	return &themeRepo{db: db}
}

// GetOrCreate: insert-if-absent плюс чтение. Гонка двух первых использований
// допустима: одна вставка выигрывает, обе стороны дочитывают её id.
func (r *themeRepo) GetOrCreate(ctx context.Context, name string) (int64, error) {
	t := &model.Theme{Name: name}
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(t)
	if tx.Error != nil {
		return 0, tx.Error
	}
	if tx.RowsAffected > 0 && t.ID != 0 {
		return t.ID, nil
	}
	// вставка не прошла — тема уже существует, читаем победителя
	var got model.Theme
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&got).Error; err != nil {
		return 0, err
	}
	return got.ID, nil
}

func (r *themeRepo) ListWithCounts(ctx context.Context) ([]ThemeCount, error) {
	var res []ThemeCount
	err := r.db.WithContext(ctx).
		Table("themes").
		Select("themes.id AS id, themes.name AS name, COUNT(data_themes.data_id) AS count").
		Joins("LEFT JOIN data_themes ON themes.id = data_themes.theme_id").
		Group("themes.id, themes.name").
		Order("count DESC, themes.name ASC").
		Scan(&res).Error
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *themeRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Theme{}).Count(&n).Error
	return n, err
}
