package mood

import (
	"sort"
	"time"

	"github.com/calmharbor/counsel-api/internal/models"
)

// ===============================
// Windows
// ===============================

type Window string

const (
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowYear  Window = "year"
)

func ValidWindow(w string) bool {
	switch Window(w) {
	case WindowWeek, WindowMonth, WindowYear:
		return true
	}
	return false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SelectWindow recorta a série pelo período ativo. ref aponta o mês em
// navegação (só usado por month); week são os 7 dias corridos terminando
// hoje; year devolve a série inteira. A entrada não é alterada.
func SelectWindow(entries []models.MoodEntry, w Window, ref time.Time, now time.Time) []models.MoodEntry {
	if w == WindowYear {
		out := make([]models.MoodEntry, len(entries))
		copy(out, entries)
		return out
	}

	var inWindow func(d time.Time) bool

	switch w {
	case WindowMonth:
		inWindow = func(d time.Time) bool {
			return d.Year() == ref.Year() && d.Month() == ref.Month()
		}
	case WindowWeek:
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		floor := today.AddDate(0, 0, -6)
		ceil := today.AddDate(0, 0, 1)
		inWindow = func(d time.Time) bool {
			day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
			return !day.Before(floor) && day.Before(ceil)
		}
	default:
		return []models.MoodEntry{}
	}

	out := make([]models.MoodEntry, 0, len(entries))
	for _, e := range entries {
		if inWindow(e.EntryDate) {
			out = append(out, e)
		}
	}
	return out
}

// ===============================
// Statistics
// ===============================

type Stats struct {
	AverageMood        float64            `json:"average_mood"`
	MoodTrend          int                `json:"mood_trend"`
	WeatherCorrelation map[string]float64 `json:"weather_correlation"`
	BestDay            *models.MoodEntry  `json:"best_day,omitempty"`
	StreakDays         int                `json:"streak_days"`
}

// ComputeStats calcula as estatísticas sobre o recorte recebido,
// considerando apenas dias efetivamente registrados (HasEntry). Janela
// vazia degrada para zeros, nunca erro.
func ComputeStats(entries []models.MoodEntry, now time.Time) Stats {
	qualified := make([]models.MoodEntry, 0, len(entries))
	for _, e := range entries {
		if e.HasEntry {
			qualified = append(qualified, e)
		}
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].EntryDate.Before(qualified[j].EntryDate)
	})

	stats := Stats{
		WeatherCorrelation: map[string]float64{},
		StreakDays:         StreakDays(entries, now),
	}

	if len(qualified) == 0 {
		return stats
	}

	sum := 0
	weatherSum := map[string]int{}
	weatherCount := map[string]int{}
	best := 0

	for i, e := range qualified {
		sum += e.Mood

		if e.Weather != "" {
			weatherSum[e.Weather] += e.Mood
			weatherCount[e.Weather]++
		}

		// primeiro máximo vence em empate
		if e.Mood > qualified[best].Mood {
			best = i
		}
	}

	stats.AverageMood = float64(sum) / float64(len(qualified))

	if len(qualified) >= 2 {
		stats.MoodTrend = qualified[len(qualified)-1].Mood - qualified[0].Mood
	}

	for w, s := range weatherSum {
		stats.WeatherCorrelation[w] = float64(s) / float64(weatherCount[w])
	}

	bestDay := qualified[best]
	stats.BestDay = &bestDay

	return stats
}

// StreakDays conta dias de calendário consecutivos com registro, andando
// para trás a partir de hoje; para no primeiro buraco.
func StreakDays(entries []models.MoodEntry, now time.Time) int {
	days := make(map[[3]int]bool, len(entries))
	for _, e := range entries {
		if !e.HasEntry {
			continue
		}
		y, m, d := e.EntryDate.Date()
		days[[3]int{y, int(m), d}] = true
	}

	streak := 0
	for {
		day := now.AddDate(0, 0, -streak)
		y, m, d := day.Date()
		if !days[[3]int{y, int(m), d}] {
			break
		}
		streak++
	}
	return streak
}
