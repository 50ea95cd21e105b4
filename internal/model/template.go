package model

import "time"

// TemplateEntry представляет одну строку недельного шаблона:
// занятие, повторяющееся в определённый день недели
type TemplateEntry struct {
	Weekday    time.Weekday `json:"weekday"`    // 0 = Sunday, 6 = Saturday
	StartTime  string       `json:"start_time"` // "HH:MM"
	Title      string       `json:"title"`
	Instructor string       `json:"instructor"`
	Duration   int          `json:"duration"` // длительность в минутах
	Level      string       `json:"level,omitempty"`
}

// ClassInstance строит занятие из строки шаблона.
// Статус всегда normal — статусы никогда не наследуются из шаблона.
func (e *TemplateEntry) ClassInstance() ClassInstance {
	duration := e.Duration
	if duration <= 0 {
		duration = DefaultClassDuration
	}

	return ClassInstance{
		Time:       e.StartTime,
		Title:      e.Title,
		Instructor: e.Instructor,
		Duration:   duration,
		Level:      e.Level,
		Status:     ClassStatusNormal,
	}
}

// WeeklyTemplate представляет недельный шаблон расписания филиала
type WeeklyTemplate struct {
	BranchID  string          `json:"branch_id"`
	Entries   []TemplateEntry `json:"entries"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ByWeekday группирует строки шаблона по дням недели.
// Несколько строк могут приходиться на один день.
func (t *WeeklyTemplate) ByWeekday() map[time.Weekday][]ClassInstance {
	result := make(map[time.Weekday][]ClassInstance)
	for i := range t.Entries {
		entry := &t.Entries[i]
		result[entry.Weekday] = append(result[entry.Weekday], entry.ClassInstance())
	}
	return result
}
