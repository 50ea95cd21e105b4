package service

import (
	"sort"
	"time"

	"github.com/haneulsoft/studio-scheduler/internal/model"
)

// monthPattern — паттерн, выведенный из фактических дневных расписаний
// месяца-источника: недельный шаблон по будням плюс отдельная
// последовательность суббот. Субботы у студии повторяются с меньшей
// регулярностью, поэтому в недельный шаблон не сводятся — применяются
// к целевому месяцу по кругу.
type monthPattern struct {
	byWeekday map[time.Weekday][]model.ClassInstance
	saturdays [][]model.ClassInstance
	bestWeek  int
}

// extractMonthPattern восстанавливает паттерн месяца-источника.
// Возвращает nil если в месяце нет ни одного непустого дня.
//
// Недели нарезаются как ceil(день/7), без привязки к ISO-неделям —
// так же считает и календарная сетка админки. Канонической становится
// неделя с максимальной суммой занятий по будням: одна укороченная
// или отменённая неделя не должна испортить шаблон, а самая полная
// неделя вероятнее всего отражает реальный замысел студии. При
// равенстве выигрывает более ранняя неделя.
func extractMonthPattern(days []*model.DailySchedule) *monthPattern {
	validDays := make([]*model.DailySchedule, 0, len(days))
	for _, day := range days {
		if len(day.Classes) > 0 {
			validDays = append(validDays, day)
		}
	}
	sort.Slice(validDays, func(i, j int) bool {
		return validDays[i].Date.Before(validDays[j].Date)
	})

	if len(validDays) == 0 {
		return nil
	}

	// Будние дни по неделям; выходные в скоринге не участвуют
	weeks := make(map[int][]*model.DailySchedule)
	for _, day := range validDays {
		wd := day.Date.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			continue
		}

		weekNum := (day.Date.Day() + 6) / 7
		weeks[weekNum] = append(weeks[weekNum], day)
	}

	bestWeek := 0
	maxScore := -1

	weekNums := make([]int, 0, len(weeks))
	for num := range weeks {
		weekNums = append(weekNums, num)
	}
	sort.Ints(weekNums)

	for _, num := range weekNums {
		score := 0
		for _, day := range weeks[num] {
			score += len(day.Classes)
		}
		// строго больше: при равном счёте остаётся более ранняя неделя
		if score > maxScore {
			maxScore = score
			bestWeek = num
		}
	}

	byWeekday := make(map[time.Weekday][]model.ClassInstance)
	for _, day := range weeks[bestWeek] {
		byWeekday[day.Date.Weekday()] = day.Classes
	}

	// Дни недели, которых не оказалось в лучшей неделе, добираются из
	// первого непустого вхождения в любом месте месяца. Воскресенья
	// попадают в шаблон только этим путём.
	for _, day := range validDays {
		wd := day.Date.Weekday()
		if wd == time.Saturday {
			continue
		}
		if _, ok := byWeekday[wd]; !ok {
			byWeekday[wd] = day.Classes
		}
	}

	var saturdays [][]model.ClassInstance
	for _, day := range validDays {
		if day.Date.Weekday() == time.Saturday {
			saturdays = append(saturdays, day.Classes)
		}
	}

	return &monthPattern{
		byWeekday: byWeekday,
		saturdays: saturdays,
		bestWeek:  bestWeek,
	}
}

// applyPattern строит дневные расписания целевого месяца из паттерна.
// Субботы получают списки из saturdays по кругу в порядке возрастания
// числа месяца; остальные дни — запись шаблона своего дня недели или
// пустой день.
func (p *monthPattern) applyPattern(branchID string, year, month int) ([]*model.DailySchedule, int) {
	saturdayIndex := 0

	return buildMonth(branchID, year, month, func(date time.Time) []model.ClassInstance {
		if date.Weekday() == time.Saturday {
			if len(p.saturdays) == 0 {
				return nil
			}
			classes := p.saturdays[saturdayIndex%len(p.saturdays)]
			saturdayIndex++
			return classes
		}

		return p.byWeekday[date.Weekday()]
	})
}
