package service

import "errors"

// ErrNotFound — операция адресует несуществующий элемент.
// Это штатный исход, а не авария: слои выше переводят его в 404 / ответ бота.
var ErrNotFound = errors.New("item not found")

// ErrUnauthorized — вызывающий не прошёл проверку личности.
var ErrUnauthorized = errors.New("unauthorized")
