package service

import "errors"

// Типизированные ошибки ядра. Сервисы оборачивают их контекстом
// (филиал, месяц, день) через fmt.Errorf с %w.
var (
	// ErrNoSourceData — месяц-источник пуст, копировать нечего
	ErrNoSourceData = errors.New("no source data")

	// ErrNotFound — запрошенная сущность отсутствует
	ErrNotFound = errors.New("not found")

	// ErrBackupCaptureFailed — снапшот не снят, сброс прерван до удаления
	ErrBackupCaptureFailed = errors.New("backup capture failed")

	// ErrValidation — некорректное занятие на границе генератора/редактора
	ErrValidation = errors.New("validation failed")
)
