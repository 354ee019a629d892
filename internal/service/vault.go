package service

import (
	"Laniakea/internal/hashtag"
	"Laniakea/internal/model"
	"Laniakea/internal/repo"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlobStore — коллаборатор бинарного хранилища.
// Store возвращает относительный путь, под которым сохранены данные;
// Remove — best-effort, отсутствие файла не ошибка.
type BlobStore interface {
	Store(data []byte, suggestedName string) (string, error)
	Remove(rel string) error
}

// VaultService собирает хранилища в операции, которые зовут бот и веб-слой.
// Многошаговые записи — best-effort последовательность, не транзакция:
// первая ошибка прерывает операцию, уже выполненные шаги не компенсируются
// (осиротевший файл в медиа при упавшей записи в БД — принятый осадок).
type VaultService struct {
	items  repo.ItemRepository
	themes repo.ThemeRepository
	assoc  repo.AssociationRepository
	blobs  BlobStore
}

// NewVaultService создаёт оркестратор хранилища.
func NewVaultService(
	items repo.ItemRepository,
	themes repo.ThemeRepository,
	assoc repo.AssociationRepository,
	blobs BlobStore,
) *VaultService {
	return &VaultService{items: items, themes: themes, assoc: assoc, blobs: blobs}
}

// Stats — сводные счётчики хранилища.
type Stats struct {
	Items  int64
	Themes int64
}

// TextBlobName возвращает имя блоба для нового текстового элемента.
func TextBlobName() string { return "texts/text_" + uuid.NewString() + ".md" }

// PhotoBlobName возвращает имя файла для нового фото.
func PhotoBlobName() string { return "images/img_" + uuid.NewString() + ".jpg" }

// IngestPhoto создаёт фото-элемент. Бинарь уже сохранён транспортным слоем,
// storagePath — относительный путь к нему. Темы извлекаются из подписи.
// Возвращает созданный элемент и список его тем.
func (s *VaultService) IngestPhoto(ctx context.Context, storagePath, caption string) (*model.Item, []string, error) {
	tags := hashtag.Extract(caption)
	it := &model.Item{Kind: model.KindPhoto, StoragePath: &storagePath}
	if caption != "" {
		it.Note = &caption
	}
	if err := s.items.Create(ctx, it); err != nil {
		return nil, nil, fmt.Errorf("create photo item: %w", err)
	}
	if err := s.replaceTags(ctx, it.ID, tags); err != nil {
		return nil, nil, fmt.Errorf("associate themes: %w", err)
	}
	return it, tags, nil
}

// IngestText создаёт текстовый элемент: тело уходит блобом в медиахранилище
// и дублируется inline-контентом. Темы извлекаются из самого текста.
func (s *VaultService) IngestText(ctx context.Context, body string) (*model.Item, []string, error) {
	if strings.TrimSpace(body) == "" {
		return nil, nil, &model.ValidationError{Reason: "empty text body"}
	}
	tags := hashtag.Extract(body)
	rel, err := s.blobs.Store([]byte(body), TextBlobName())
	if err != nil {
		return nil, nil, fmt.Errorf("store text blob: %w", err)
	}
	it := &model.Item{Kind: model.KindText, StoragePath: &rel, Content: &body}
	if err := s.items.Create(ctx, it); err != nil {
		return nil, nil, fmt.Errorf("create text item: %w", err)
	}
	if err := s.replaceTags(ctx, it.ID, tags); err != nil {
		return nil, nil, fmt.Errorf("associate themes: %w", err)
	}
	return it, tags, nil
}

// EditItem обновляет заметку и заменяет набор тем элемента.
// Сырые теги нормализуются защитно: веб-слой может прислать их
// как с '#', так и уже очищенными. ErrNotFound, если элемента нет.
func (s *VaultService) EditItem(ctx context.Context, id int64, note string, rawTags []string) error {
	tags := hashtag.NormalizeAll(rawTags)
	if err := s.items.UpdateNote(ctx, id, note); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("update note: %w", err)
	}
	if err := s.replaceTags(ctx, id, tags); err != nil {
		return fmt.Errorf("replace themes: %w", err)
	}
	return nil
}

// DeleteItem удаляет элемент: файл в медиа (best-effort), связи, строку.
// ErrNotFound, если элемента никогда не было; файл тогда не трогается.
func (s *VaultService) DeleteItem(ctx context.Context, id int64) error {
	it, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load item: %w", err)
	}
	if it.StoragePath != nil {
		if err := s.blobs.Remove(*it.StoragePath); err != nil {
			return fmt.Errorf("remove media file: %w", err)
		}
	}
	if err := s.assoc.DeleteAllForItem(ctx, id); err != nil {
		return fmt.Errorf("delete associations: %w", err)
	}
	if err := s.items.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// QueryAll возвращает полный листинг с темами, свежие первыми.
func (s *VaultService) QueryAll(ctx context.Context) ([]repo.ItemWithThemes, error) {
	return s.items.ListAllWithThemes(ctx)
}

// QueryByTheme возвращает элементы темы. Имя нормализуется защитно;
// неизвестная тема — пустой список, не ошибка.
func (s *VaultService) QueryByTheme(ctx context.Context, name string) ([]model.Item, error) {
	norm := hashtag.Normalize(name)
	if norm == "" {
		return []model.Item{}, nil
	}
	return s.assoc.ListItemsForTheme(ctx, norm)
}

// Filter материализует полный листинг и отбирает элементы по
// регистронезависимому вхождению подстроки в заметку, inline-текст
// или склеенную строку тем; точное совпадение с именем типа тоже матчит.
// Пустой запрос возвращает всё.
func (s *VaultService) Filter(ctx context.Context, query string) ([]repo.ItemWithThemes, error) {
	all, err := s.items.ListAllWithThemes(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all, nil
	}
	res := make([]repo.ItemWithThemes, 0, len(all))
	for _, it := range all {
		if matchesQuery(it, q) {
			res = append(res, it)
		}
	}
	return res, nil
}

func matchesQuery(it repo.ItemWithThemes, q string) bool {
	if it.Note != nil && strings.Contains(strings.ToLower(*it.Note), q) {
		return true
	}
	if it.Content != nil && strings.Contains(strings.ToLower(*it.Content), q) {
		return true
	}
	if strings.Contains(strings.ToLower(it.Themes), q) {
		return true
	}
	return string(it.Kind) == q
}

// Themes возвращает все темы со счётчиками использования.
func (s *VaultService) Themes(ctx context.Context) ([]repo.ThemeCount, error) {
	return s.themes.ListWithCounts(ctx)
}

// GetItem возвращает элемент по id или ErrNotFound.
func (s *VaultService) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	it, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return it, nil
}

// Stats возвращает счётчики элементов и тем.
func (s *VaultService) Stats(ctx context.Context) (Stats, error) {
	items, err := s.items.CountAll(ctx)
	if err != nil {
		return Stats{}, err
	}
	themes, err := s.themes.CountAll(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{Items: items, Themes: themes}, nil
}

// replaceTags резолвит имена тем через get-or-create и заменяет набор связей.
func (s *VaultService) replaceTags(ctx context.Context, itemID int64, names []string) error {
	ids := make([]int64, 0, len(names))
	for _, n := range names {
		id, err := s.themes.GetOrCreate(ctx, n)
		if err != nil {
			return fmt.Errorf("get or create theme %q: %w", n, err)
		}
		ids = append(ids, id)
	}
	return s.assoc.ReplaceForItem(ctx, itemID, ids)
}
