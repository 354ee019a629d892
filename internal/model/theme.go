package model

// Theme — нормализованный тег (тема). Имена уникальны, хранятся в нижнем регистре.
type Theme struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

func (Theme) TableName() string { return "themes" }

// ItemTheme — ребро связи many-to-many между Item и Theme.
// Составной первичный ключ исключает дубли связей.
type ItemTheme struct {
	ItemID  int64 `gorm:"column:data_id;primaryKey"`
	ThemeID int64 `gorm:"column:theme_id;primaryKey"`
}

func (ItemTheme) TableName() string { return "data_themes" }
