// Package bot — telegram-фронтенд хранилища: приём фото и текста,
// команды просмотра. Тонкая оболочка над VaultService.
package bot

import (
	"Laniakea/internal/auth"
	"Laniakea/internal/service"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	vault  *service.VaultService
	blobs  service.BlobStore
	guard  *auth.Guard
	logger *zap.SugaredLogger
	client *http.Client
}

// New подключается к Telegram Bot API и собирает бота.
func New(token string, vault *service.VaultService, blobs service.BlobStore, guard *auth.Guard, logger *zap.SugaredLogger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect telegram: %w", err)
	}
	return &Bot{
		api:    api,
		vault:  vault,
		blobs:  blobs,
		guard:  guard,
		logger: logger,
		client: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// Run обрабатывает обновления long polling до отмены контекста.
func (b *Bot) Run(ctx context.Context) {
	b.logger.Infow("telegram bot started", "username", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case upd, ok := <-updates:
			if !ok {
				return
			}
			if upd.Message == nil {
				continue
			}
			b.handleMessage(ctx, upd.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	// проверка личности — до любого обращения к хранилищу
	if msg.From == nil || !b.guard.IsAuthorized(msg.From.ID) {
		b.reply(msg.Chat.ID, accessDeniedMessage)
		return
	}

	switch {
	case msg.IsCommand():
		b.handleCommand(ctx, msg)
	case len(msg.Photo) > 0:
		b.handlePhoto(ctx, msg)
	case msg.Text != "":
		b.handleText(ctx, msg)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.reply(msg.Chat.ID, helpMessage)
	case "list":
		rows, err := b.vault.QueryAll(ctx)
		if err != nil {
			b.logger.Errorw("list command failed", "error", err)
			b.reply(msg.Chat.ID, storageErrorMessage)
			return
		}
		b.reply(msg.Chat.ID, formatItemList(rows, listLimit))
	case "themes":
		rows, err := b.vault.Themes(ctx)
		if err != nil {
			b.logger.Errorw("themes command failed", "error", err)
			b.reply(msg.Chat.ID, storageErrorMessage)
			return
		}
		b.reply(msg.Chat.ID, formatThemes(rows))
	case "theme":
		name := msg.CommandArguments()
		items, err := b.vault.QueryByTheme(ctx, name)
		if err != nil {
			b.logger.Errorw("theme command failed", "theme", name, "error", err)
			b.reply(msg.Chat.ID, storageErrorMessage)
			return
		}
		b.reply(msg.Chat.ID, formatThemeItems(name, items, themeLimit))
	case "stats":
		st, err := b.vault.Stats(ctx)
		if err != nil {
			b.logger.Errorw("stats command failed", "error", err)
			b.reply(msg.Chat.ID, storageErrorMessage)
			return
		}
		b.reply(msg.Chat.ID, formatStats(st))
	}
}

// handlePhoto скачивает самый крупный вариант фото, кладёт его в медиа
// и только после этого запускает ингест — упавшая запись в БД оставит
// осиротевший файл, это принятый осадок.
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	photo := msg.Photo[len(msg.Photo)-1]

	url, err := b.api.GetFileDirectURL(photo.FileID)
	if err != nil {
		b.logger.Errorw("photo: resolve file url failed", "error", err)
		b.reply(msg.Chat.ID, downloadErrorMessage)
		return
	}
	data, err := b.download(ctx, url)
	if err != nil {
		b.logger.Errorw("photo: download failed", "error", err)
		b.reply(msg.Chat.ID, downloadErrorMessage)
		return
	}
	rel, err := b.blobs.Store(data, service.PhotoBlobName())
	if err != nil {
		b.logger.Errorw("photo: store failed", "error", err)
		b.reply(msg.Chat.ID, storageErrorMessage)
		return
	}

	it, tags, err := b.vault.IngestPhoto(ctx, rel, msg.Caption)
	if err != nil {
		b.logger.Errorw("photo: ingest failed", "error", err)
		b.reply(msg.Chat.ID, storageErrorMessage)
		return
	}
	b.reply(msg.Chat.ID, formatPhotoSaved(it, tags))
}

func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	it, tags, err := b.vault.IngestText(ctx, msg.Text)
	if err != nil {
		b.logger.Errorw("text: ingest failed", "error", err)
		b.reply(msg.Chat.ID, storageErrorMessage)
		return
	}
	b.reply(msg.Chat.ID, formatTextSaved(it, tags))
}

func (b *Bot) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download: unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Errorw("send message failed", "chat_id", chatID, "error", err)
	}
}
