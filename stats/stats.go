// Package stats aggregates recorded sessions by category and by day
package stats

import (
	"cmp"
	"slices"
	"time"

	"github.com/ayoisaiah/tempo/internal/models"
	"github.com/ayoisaiah/tempo/internal/timeutil"
)

// Uncategorized is the category of tasks without one.
const Uncategorized = "uncategorized"

// CategoryTotal is the time recorded against one category.
type CategoryTotal struct {
	Category string
	Total    time.Duration
	Sessions int
}

// DayTotal is the time recorded on one calendar day.
type DayTotal struct {
	Day   time.Time
	Total time.Duration
}

func categoryOf(t *models.Task) string {
	if t.Category == "" {
		return Uncategorized
	}

	return t.Category
}

// finished returns the sessions that count towards aggregates along with the
// category of each. Running sessions and sessions of unknown tasks are
// skipped.
func finished(
	sessions []models.Session,
	tasks []models.Task,
) ([]models.Session, []string) {
	categories := make(map[string]string, len(tasks))
	for i := range tasks {
		categories[tasks[i].ID] = categoryOf(&tasks[i])
	}

	var (
		out   []models.Session
		names []string
	)

	for i := range sessions {
		s := sessions[i]

		if s.Running() {
			continue
		}

		category, ok := categories[s.TaskID]
		if !ok {
			continue
		}

		out = append(out, s)
		names = append(names, category)
	}

	return out, names
}

// ByCategory sums finished sessions per task category. Archived tasks are
// included. Categories without recorded time are left out.
func ByCategory(
	sessions []models.Session,
	tasks []models.Task,
) map[string]time.Duration {
	totals := make(map[string]time.Duration)

	for _, c := range Categories(sessions, tasks) {
		totals[c.Category] = c.Total
	}

	return totals
}

// Categories returns the per-category totals ordered by total time, longest
// first.
func Categories(
	sessions []models.Session,
	tasks []models.Task,
) []CategoryTotal {
	done, names := finished(sessions, tasks)

	index := make(map[string]int)

	var out []CategoryTotal

	for i := range done {
		j, ok := index[names[i]]
		if !ok {
			j = len(out)
			index[names[i]] = j

			out = append(out, CategoryTotal{Category: names[i]})
		}

		out[j].Total += done[i].Duration
		out[j].Sessions++
	}

	out = slices.DeleteFunc(out, func(c CategoryTotal) bool {
		return c.Total <= 0
	})

	slices.SortStableFunc(out, func(a, b CategoryTotal) int {
		if n := cmp.Compare(b.Total, a.Total); n != 0 {
			return n
		}

		return cmp.Compare(a.Category, b.Category)
	})

	return out
}

// ByDay sums finished sessions per calendar day in loc, ordered by day.
// Sessions that cross midnight are split between the days they cover.
func ByDay(sessions []models.Session, loc *time.Location) []DayTotal {
	if loc == nil {
		loc = time.Local
	}

	totals := make(map[time.Time]time.Duration)

	for i := range sessions {
		s := sessions[i]

		if s.Running() || s.Duration <= 0 {
			continue
		}

		start := s.StartTime.In(loc)
		end := start.Add(s.Duration)

		for cursor := start; cursor.Before(end); {
			day := timeutil.RoundToStart(cursor)

			next := day.AddDate(0, 0, 1)
			if next.After(end) {
				next = end
			}

			totals[day] += next.Sub(cursor)
			cursor = next
		}
	}

	out := make([]DayTotal, 0, len(totals))
	for day, total := range totals {
		out = append(out, DayTotal{Day: day, Total: total})
	}

	slices.SortFunc(out, func(a, b DayTotal) int {
		return a.Day.Compare(b.Day)
	})

	return out
}

// Filter returns the sessions that started within [start, end]. A zero bound
// is open.
func Filter(sessions []models.Session, start, end time.Time) []models.Session {
	var out []models.Session

	for i := range sessions {
		s := sessions[i]

		if !start.IsZero() && s.StartTime.Before(start) {
			continue
		}

		if !end.IsZero() && s.StartTime.After(end) {
			continue
		}

		out = append(out, s)
	}

	return out
}
