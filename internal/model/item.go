package model

import "time"

// Kind — тип элемента хранилища.
type Kind string

const (
	KindPhoto Kind = "photo"
	KindText  Kind = "text"
	KindVideo Kind = "video"
)

// Valid сообщает, известен ли такой тип.
func (k Kind) Valid() bool {
	switch k {
	case KindPhoto, KindText, KindVideo:
		return true
	}
	return false
}

// NeedsFile — элементы этого типа обязаны иметь файл в медиахранилище.
func (k Kind) NeedsFile() bool {
	return k == KindPhoto || k == KindVideo
}

// Item — одна единица хранилища: фото, текст или видео.
// Имена таблицы и колонок сохраняют историческую схему (data/file_path),
// чтобы существующая база открывалась без конвертации.
type Item struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Kind        Kind      `gorm:"column:type;not null" json:"type"`
	StoragePath *string   `gorm:"column:file_path" json:"file_path"`
	Content     *string   `json:"content"`
	Note        *string   `json:"note"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Item) TableName() string { return "data" }

// ValidationError — нарушение инварианта полей элемента.
// Отклоняется до какой-либо записи в хранилище.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "validation: " + e.Reason }

// Validate проверяет инвариант «поле зависит от типа»:
// photo/video обязаны иметь StoragePath и не имеют inline-контента,
// text обязан иметь Content (StoragePath у текста допускается — тело
// дублируется блобом в медиахранилище).
func (it *Item) Validate() error {
	if !it.Kind.Valid() {
		return &ValidationError{Reason: "unknown kind " + string(it.Kind)}
	}
	if it.Kind.NeedsFile() {
		if it.StoragePath == nil || *it.StoragePath == "" {
			return &ValidationError{Reason: string(it.Kind) + " item requires a storage path"}
		}
		if it.Content != nil {
			return &ValidationError{Reason: string(it.Kind) + " item must not carry inline content"}
		}
		return nil
	}
	if it.Content == nil || *it.Content == "" {
		return &ValidationError{Reason: "text item requires inline content"}
	}
	return nil
}
