package mood

import (
	"math"
	"testing"
	"time"

	"github.com/calmharbor/counsel-api/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func entry(d time.Time, mood int, weather string) models.MoodEntry {
	return models.MoodEntry{
		EntryDate: d,
		HasEntry:  true,
		Mood:      mood,
		Weather:   weather,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// ===============================
// SelectWindow
// ===============================

func TestSelectWindowMonth(t *testing.T) {
	now := day(2026, 3, 15)
	entries := []models.MoodEntry{
		entry(day(2026, 2, 28), 3, ""),
		entry(day(2026, 3, 1), 4, ""),
		entry(day(2026, 3, 31), 2, ""),
		entry(day(2026, 4, 1), 5, ""),
	}

	got := SelectWindow(entries, WindowMonth, day(2026, 3, 1), now)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}

	// navegação para um mês anterior
	got = SelectWindow(entries, WindowMonth, day(2026, 2, 1), now)
	if len(got) != 1 || !got[0].EntryDate.Equal(day(2026, 2, 28)) {
		t.Fatalf("february: %v", got)
	}
}

func TestSelectWindowWeekTrailing(t *testing.T) {
	now := time.Date(2026, 3, 15, 18, 30, 0, 0, time.UTC)
	entries := []models.MoodEntry{
		entry(day(2026, 3, 8), 3, ""),  // 7 dias atrás: fora
		entry(day(2026, 3, 9), 4, ""),  // limite inferior
		entry(day(2026, 3, 15), 5, ""), // hoje
		entry(day(2026, 3, 16), 2, ""), // amanhã: fora
	}

	got := SelectWindow(entries, WindowWeek, now, now)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if !got[0].EntryDate.Equal(day(2026, 3, 9)) || !got[1].EntryDate.Equal(day(2026, 3, 15)) {
		t.Errorf("window: %v %v", got[0].EntryDate, got[1].EntryDate)
	}
}

func TestSelectWindowYearCopiesAll(t *testing.T) {
	now := day(2026, 3, 15)
	entries := []models.MoodEntry{
		entry(day(2025, 12, 31), 3, ""),
		entry(day(2026, 1, 1), 4, ""),
	}

	got := SelectWindow(entries, WindowYear, now, now)
	if len(got) != len(entries) {
		t.Fatalf("len = %d, want %d", len(got), len(entries))
	}

	got[0].Mood = 1
	if entries[0].Mood != 3 {
		t.Error("year window must copy, not alias")
	}
}

// ===============================
// ComputeStats
// ===============================

func TestComputeStatsEmptyWindow(t *testing.T) {
	now := day(2026, 3, 15)

	stats := ComputeStats(nil, now)
	if stats.AverageMood != 0 || stats.MoodTrend != 0 || stats.StreakDays != 0 {
		t.Errorf("empty stats = %+v, want zeros", stats)
	}
	if stats.BestDay != nil {
		t.Error("BestDay must be nil on empty window")
	}
	if stats.WeatherCorrelation == nil || len(stats.WeatherCorrelation) != 0 {
		t.Errorf("WeatherCorrelation = %v, want empty map", stats.WeatherCorrelation)
	}
}

func TestComputeStatsAverageAndTrend(t *testing.T) {
	now := day(2026, 3, 15)
	entries := []models.MoodEntry{
		entry(day(2026, 3, 1), 2, ""),
		entry(day(2026, 3, 5), 3, ""),
		entry(day(2026, 3, 10), 5, ""),
	}

	stats := ComputeStats(entries, now)
	if !almostEqual(stats.AverageMood, 10.0/3.0) {
		t.Errorf("AverageMood = %v", stats.AverageMood)
	}
	// último menos primeiro em ordem cronológica
	if stats.MoodTrend != 3 {
		t.Errorf("MoodTrend = %d, want 3", stats.MoodTrend)
	}
}

func TestComputeStatsIgnoresPlaceholders(t *testing.T) {
	now := day(2026, 3, 15)
	placeholder := models.MoodEntry{EntryDate: day(2026, 3, 2), HasEntry: false, Mood: 0}

	entries := []models.MoodEntry{
		entry(day(2026, 3, 1), 4, ""),
		placeholder,
		entry(day(2026, 3, 3), 4, ""),
	}

	stats := ComputeStats(entries, now)
	if !almostEqual(stats.AverageMood, 4.0) {
		t.Errorf("AverageMood = %v, placeholder leaked into average", stats.AverageMood)
	}
}

func TestComputeStatsWeatherCorrelation(t *testing.T) {
	now := day(2026, 3, 15)
	entries := []models.MoodEntry{
		entry(day(2026, 3, 1), 4, "sunny"),
		entry(day(2026, 3, 2), 5, "sunny"),
		entry(day(2026, 3, 3), 2, "rainy"),
		entry(day(2026, 3, 4), 3, ""),
	}

	stats := ComputeStats(entries, now)
	if !almostEqual(stats.WeatherCorrelation["sunny"], 4.5) {
		t.Errorf("sunny = %v, want 4.5", stats.WeatherCorrelation["sunny"])
	}
	if !almostEqual(stats.WeatherCorrelation["rainy"], 2.0) {
		t.Errorf("rainy = %v, want 2.0", stats.WeatherCorrelation["rainy"])
	}
	if _, ok := stats.WeatherCorrelation[""]; ok {
		t.Error("empty weather must not produce a category")
	}
}

func TestComputeStatsBestDayFirstMaxWins(t *testing.T) {
	now := day(2026, 3, 15)
	entries := []models.MoodEntry{
		entry(day(2026, 3, 3), 5, ""),
		entry(day(2026, 3, 1), 3, ""),
		entry(day(2026, 3, 8), 5, ""),
	}

	stats := ComputeStats(entries, now)
	if stats.BestDay == nil {
		t.Fatal("BestDay nil")
	}
	// empate resolvido pelo primeiro em ordem cronológica
	if !stats.BestDay.EntryDate.Equal(day(2026, 3, 3)) {
		t.Errorf("BestDay = %v, want 2026-03-03", stats.BestDay.EntryDate)
	}
}

// ===============================
// StreakDays
// ===============================

func TestStreakDaysWalksBackFromToday(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	entries := []models.MoodEntry{
		entry(day(2026, 3, 15), 4, ""),
		entry(day(2026, 3, 14), 3, ""),
		entry(day(2026, 3, 13), 5, ""),
		// buraco em 12
		entry(day(2026, 3, 11), 2, ""),
	}

	if got := StreakDays(entries, now); got != 3 {
		t.Errorf("streak = %d, want 3", got)
	}
}

func TestStreakDaysZeroWhenTodayMissing(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	entries := []models.MoodEntry{
		entry(day(2026, 3, 14), 4, ""),
		entry(day(2026, 3, 13), 4, ""),
	}

	if got := StreakDays(entries, now); got != 0 {
		t.Errorf("streak = %d, want 0 (hoje sem registro)", got)
	}
}

func TestStreakDaysIgnoresPlaceholders(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	entries := []models.MoodEntry{
		entry(day(2026, 3, 15), 4, ""),
		{EntryDate: day(2026, 3, 14), HasEntry: false},
		entry(day(2026, 3, 13), 4, ""),
	}

	if got := StreakDays(entries, now); got != 1 {
		t.Errorf("streak = %d, want 1", got)
	}
}
