// Package storage — файловое хранилище бинарного содержимого (медиа).
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Подкаталоги медиахранилища; создаются заранее при старте.
var mediaSubdirs = []string{"images", "videos", "texts"}

// FileStorage кладёт блобы под корневым каталогом и оперирует
// относительными путями — ровно в том виде, в каком они попадают в БД.
type FileStorage struct {
	root string
}

// NewFileStorage создаёт хранилище и гарантирует наличие подкаталогов.
func NewFileStorage(root string) (*FileStorage, error) {
	if root == "" {
		return nil, errors.New("empty media root")
	}
	for _, d := range mediaSubdirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			return nil, err
		}
	}
	return &FileStorage{root: root}, nil
}

// Root возвращает корневой каталог хранилища.
func (s *FileStorage) Root() string { return s.root }

// Store записывает данные под предложенным относительным именем и
// возвращает относительный путь сохранённого файла.
func (s *FileStorage) Store(data []byte, suggestedName string) (string, error) {
	rel := filepath.ToSlash(filepath.Clean(suggestedName))
	if rel == "" || rel == "." || rel == ".." || strings.HasPrefix(rel, "../") || filepath.IsAbs(suggestedName) {
		return "", fmt.Errorf("invalid media name: %q", suggestedName)
	}
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", err
	}
	return rel, nil
}

// Remove удаляет файл по относительному пути.
// Отсутствие файла не считается ошибкой; пустой путь — no-op.
func (s *FileStorage) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
