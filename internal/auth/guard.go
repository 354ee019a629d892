// Package auth — проверка единственной разрешённой личности.
package auth

// Guard сверяет личность вызывающего с единственным разрешённым id.
// Явная зависимость вместо глобального списка доступа: внедряется
// в бот и веб-слой при сборке процесса.
type Guard struct {
	allowed int64
}

// NewGuard создаёт проверку для разрешённого telegram user id.
func NewGuard(allowedID int64) *Guard {
	return &Guard{allowed: allowedID}
}

// IsAuthorized сообщает, разрешён ли доступ вызывающему.
// Ноль в конфигурации означает «никому»: пустая настройка не открывает дверь.
func (g *Guard) IsAuthorized(callerID int64) bool {
	return g.allowed != 0 && callerID == g.allowed
}
