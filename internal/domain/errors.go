package domain

import "errors"

// ErrConfiguration некорректная статическая конфигурация (каталог слотов, таблица схем).
// Фатальна для конкретного вычисления, но не влияет на другие вызовы.
var ErrConfiguration = errors.New("configuration error")
