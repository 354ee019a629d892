package bot

import (
	"Laniakea/internal/model"
	"Laniakea/internal/repo"
	"Laniakea/internal/service"
	"fmt"
	"strings"
)

const (
	// listLimit — сколько элементов показывает /list.
	listLimit = 5
	// themeLimit — сколько элементов показывает /theme до свёртки остатка.
	themeLimit = 10

	previewLen = 100

	accessDeniedMessage  = "You are not allowed to use this vault."
	storageErrorMessage  = "Failed to save, try again later."
	downloadErrorMessage = "Failed to download the photo."

	helpMessage = `Laniakea Vault

Send me:
- a photo — saved to the gallery
- a text — saved as a note

Hashtags become themes:
#bathroom #storage Jars for the bathroom

Commands:
/list — last 5 items
/themes — all themes
/theme <name> — items for a theme
/stats — vault statistics`
)

func kindIcon(k model.Kind) string {
	switch k {
	case model.KindPhoto:
		return "📷"
	case model.KindVideo:
		return "🎬"
	default:
		return "📝"
	}
}

// preview — короткое описание элемента: заметка, иначе начало текста.
func preview(it *model.Item, n int) string {
	s := ""
	if it.Note != nil && *it.Note != "" {
		s = *it.Note
	} else if it.Content != nil {
		s = *it.Content
	}
	if s == "" {
		return "no description"
	}
	r := []rune(s)
	if len(r) > n {
		return string(r[:n]) + "..."
	}
	return s
}

func formatTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return "\nThemes: " + strings.Join(tags, ", ")
}

func formatPhotoSaved(it *model.Item, tags []string) string {
	return fmt.Sprintf("Saved!\n\n📷 ID: %d\n%s%s", it.ID, preview(it, previewLen), formatTags(tags))
}

func formatTextSaved(it *model.Item, tags []string) string {
	return fmt.Sprintf("Text saved!\n\n📝 ID: %d\n\n%s%s", it.ID, preview(it, previewLen), formatTags(tags))
}

func formatItemList(rows []repo.ItemWithThemes, limit int) string {
	if len(rows) == 0 {
		return "Nothing saved yet."
	}
	var sb strings.Builder
	sb.WriteString("Recent items:\n\n")
	for i, row := range rows {
		if i == limit {
			break
		}
		it := row.Item
		fmt.Fprintf(&sb, "%s ID %d: %s\n", kindIcon(it.Kind), it.ID, preview(&it, 50))
		fmt.Fprintf(&sb, "   %s\n\n", it.CreatedAt.Format("2006-01-02 15:04"))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatThemes(rows []repo.ThemeCount) string {
	if len(rows) == 0 {
		return "No themes yet."
	}
	var sb strings.Builder
	sb.WriteString("All themes:\n\n")
	for _, t := range rows {
		fmt.Fprintf(&sb, "#%s (%d)\n", t.Name, t.Count)
	}
	sb.WriteString("\nUse: /theme <name>")
	return sb.String()
}

func formatThemeItems(name string, items []model.Item, limit int) string {
	clean := strings.TrimPrefix(strings.TrimSpace(name), "#")
	if len(items) == 0 {
		return fmt.Sprintf("No items with theme #%s", clean)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Theme: #%s\n\nFound: %d\n\n", clean, len(items))
	for i := range items {
		if i == limit {
			break
		}
		it := items[i]
		fmt.Fprintf(&sb, "%s ID %d: %s\n", kindIcon(it.Kind), it.ID, preview(&it, 50))
	}
	if len(items) > limit {
		fmt.Fprintf(&sb, "\n... and %d more", len(items)-limit)
	}
	return sb.String()
}

func formatStats(st service.Stats) string {
	return fmt.Sprintf("Statistics\n\nItems: %d\nThemes: %d", st.Items, st.Themes)
}
