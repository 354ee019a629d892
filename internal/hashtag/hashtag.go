// Package hashtag — чистое извлечение и нормализация хештегов.
// Темы — это слова из латиницы, кириллицы, цифр и подчёркивания,
// в нижнем регистре и без ведущего '#'.
package hashtag

import (
	"regexp"
	"strings"
)

var (
	tagRe  = regexp.MustCompile(`#[a-zA-Zа-яА-ЯёЁ0-9_]+`)
	nameRe = regexp.MustCompile(`^[a-zа-яё0-9_]+$`)
)

// Extract возвращает нормализованные имена тем из текста в порядке появления.
// Дубли внутри одного текста не схлопываются: вставка связи идемпотентна.
// Пустой текст даёт пустой список; функция не ошибается никогда.
func Extract(text string) []string {
	if text == "" {
		return []string{}
	}
	matches := tagRe.FindAllString(text, -1)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, strings.ToLower(m[1:]))
	}
	return tags
}

// Normalize приводит сырой тег к каноничному виду: обрезает пробелы,
// снимает ведущий '#', опускает регистр (юникодно, кириллица включительно).
// Возвращает пустую строку, если после чистки имя невалидно.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "#")
	s = strings.ToLower(s)
	if !nameRe.MatchString(s) {
		return ""
	}
	return s
}

// NormalizeAll нормализует список сырых тегов, отбрасывая невалидные.
// Вход может быть как уже очищенным, так и сырыми токенами с '#'.
func NormalizeAll(raw []string) []string {
	tags := make([]string, 0, len(raw))
	for _, r := range raw {
		if n := Normalize(r); n != "" {
			tags = append(tags, n)
		}
	}
	return tags
}
