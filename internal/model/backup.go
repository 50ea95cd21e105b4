package model

import (
	"time"

	"github.com/google/uuid"
)

// BackupRingDepth максимальное число снапшотов на (филиал, год, месяц).
// Вставка сверх лимита вытесняет самый старый снапшот.
const BackupRingDepth = 2

// BackupSnapshot представляет снимок всех дневных расписаний месяца,
// сделанный непосредственно перед сбросом месяца. После создания
// не изменяется; restore читает его, не потребляя.
type BackupSnapshot struct {
	ID        uuid.UUID                  `json:"id"`
	BranchID  string                     `json:"branch_id"`
	Year      int                        `json:"year"`
	Month     int                        `json:"month"`
	CreatedAt time.Time                  `json:"created_at"`
	Days      map[string][]ClassInstance `json:"days"` // дата (DateLayout) -> занятия
}
