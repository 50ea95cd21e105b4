// Package schedule содержит чистую логику сопоставления момента времени
// с занятием дневного расписания. Все времена — минуты от полуночи
// локального времени филиала; пакет не выполняет конвертаций таймзон.
package schedule

import (
	"sort"
	"strings"

	"github.com/haneulsoft/studio-scheduler/internal/model"
)

// Временные окна правил сопоставления, в минутах
const (
	PreClassWindow  = 30 // зона ожидания перед началом занятия
	EarlyBirdWindow = 60 // ранний приход, от -60 до -30 минут
	GraceWindow     = 30 // льготное окно после окончания занятия
)

// MatchReason объясняет, по какому правилу выбрано занятие
type MatchReason string

const (
	ReasonUpcoming      MatchReason = "upcoming"       // правило 1: зона перед началом
	ReasonOngoing       MatchReason = "ongoing"        // правило 2: занятие идёт
	ReasonNextPreferred MatchReason = "next_preferred" // правило 2: приоритет следующего занятия
	ReasonEarlyBird     MatchReason = "early_bird"     // правило 3: ранний приход
	ReasonJustEnded     MatchReason = "just_ended"     // правило 4: занятие только что закончилось
)

// Match результат сопоставления: выбранное занятие и причина выбора
type Match struct {
	Class  model.ClassInstance
	Reason MatchReason
}

// TimeWindow полуинтервал [Start, End) в минутах от полуночи.
// Все четыре правила сопоставления выражены через него, чтобы
// граничная арифметика жила в одном месте.
type TimeWindow struct {
	Start int
	End   int
}

// Contains проверяет попадание момента в полуинтервал [Start, End)
func (w TimeWindow) Contains(minute int) bool {
	return minute >= w.Start && minute < w.End
}

// ContainsInclusive проверяет попадание момента в отрезок [Start, End]
func (w TimeWindow) ContainsInclusive(minute int) bool {
	return minute >= w.Start && minute <= w.End
}

// MatchClass выбирает не более одного занятия, которому принадлежит момент
// nowMinutes. Отменённые занятия не участвуют; при непустом instructor
// рассматриваются только занятия этого преподавателя. Правила проверяются
// строго по приоритету, первый успех останавливает сканирование:
//
//  1. зона перед началом: start-30 <= now < start;
//  2. занятие идёт: start <= now < end, но если следующее занятие уже
//     претендует на now по правилу 1 — выбирается следующее (пришедшие в
//     окне пересечения почти всегда идут на следующее занятие, а не
//     опаздывают на затянувшееся текущее);
//  3. ранний приход: start-60 <= now < start-30, если предыдущее занятие
//     уже закончилось;
//  4. только после всего — обратный проход: последнее занятие, у которого
//     now в пределах 30 минут после окончания.
//
// Отсутствие совпадения — валидный результат (самостоятельная практика),
// а не ошибка.
func MatchClass(classes []model.ClassInstance, nowMinutes int, instructor string) *Match {
	candidates := filterClasses(classes, instructor)
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].StartMinutes() < candidates[j].StartMinutes()
	})

	for i := range candidates {
		cls := candidates[i]
		start := cls.StartMinutes()
		end := start + cls.DurationOrDefault()

		preZone := TimeWindow{Start: start - PreClassWindow, End: start}
		if preZone.Contains(nowMinutes) {
			return &Match{Class: cls, Reason: ReasonUpcoming}
		}

		ongoing := TimeWindow{Start: start, End: end}
		if ongoing.Contains(nowMinutes) {
			if i+1 < len(candidates) {
				next := candidates[i+1]
				// следующее занятие уже претендует на now по правилу 1
				if nowMinutes >= next.StartMinutes()-PreClassWindow {
					return &Match{Class: next, Reason: ReasonNextPreferred}
				}
			}
			return &Match{Class: cls, Reason: ReasonOngoing}
		}

		earlyBird := TimeWindow{Start: start - EarlyBirdWindow, End: start - PreClassWindow}
		if earlyBird.Contains(nowMinutes) {
			blocked := false
			if i > 0 {
				prev := candidates[i-1]
				if nowMinutes < prev.StartMinutes()+prev.DurationOrDefault() {
					blocked = true
				}
			}
			if !blocked {
				return &Match{Class: cls, Reason: ReasonEarlyBird}
			}
		}
	}

	// Правило 4: обратный проход, самое позднее из недавно закончившихся
	for i := len(candidates) - 1; i >= 0; i-- {
		cls := candidates[i]
		end := cls.StartMinutes() + cls.DurationOrDefault()

		grace := TimeWindow{Start: end, End: end + GraceWindow}
		if grace.ContainsInclusive(nowMinutes) {
			return &Match{Class: cls, Reason: ReasonJustEnded}
		}
	}

	return nil
}

// filterClasses отбрасывает отменённые занятия и применяет фильтр
// по преподавателю до сканирования правил
func filterClasses(classes []model.ClassInstance, instructor string) []model.ClassInstance {
	result := make([]model.ClassInstance, 0, len(classes))
	for _, cls := range classes {
		if cls.Status == model.ClassStatusCancelled {
			continue
		}
		if !matchesInstructor(cls.Instructor, instructor) {
			continue
		}
		result = append(result, cls)
	}
	return result
}

// matchesInstructor сравнивает имя преподавателя с фильтром:
// точное совпадение, иначе вхождение подстроки в любую сторону
func matchesInstructor(name, filter string) bool {
	if filter == "" {
		return true
	}
	if name == filter {
		return true
	}
	return strings.Contains(name, filter) || strings.Contains(filter, name)
}
