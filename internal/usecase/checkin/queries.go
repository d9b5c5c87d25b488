package checkin

import (
	"context"
	"time"

	"github.com/calmharbor/counsel-api/internal/domain/mood"
	"github.com/calmharbor/counsel-api/internal/timezone"
)

// Consultas derivadas do check-in: já registrou hoje, streak e analytics.
// Hoje e streak passam pelo cache; o banco resolve o cache miss.
type CheckinQueries struct {
	repo    mood.Repository
	centers CenterGetter
	cache   DayCache
}

func NewCheckinQueries(
	repo mood.Repository,
	centers CenterGetter,
	cache DayCache,
) *CheckinQueries {
	return &CheckinQueries{
		repo:    repo,
		centers: centers,
		cache:   cache,
	}
}

func (uc *CheckinQueries) HasCheckedInToday(
	ctx context.Context,
	centerID uint,
	userID uint,
) (bool, error) {

	center, err := uc.centers.GetCenterByID(ctx, centerID)
	if err != nil {
		return false, err
	}

	now := timezone.NowIn(center.Timezone)

	if hit, found := uc.cache.HasCheckedIn(ctx, userID, now); found {
		return hit, nil
	}

	if _, err := uc.repo.GetEntryForDay(ctx, userID, now); err != nil {
		return false, nil
	}

	uc.cache.MarkCheckedIn(ctx, userID, now)
	return true, nil
}

func (uc *CheckinQueries) Streak(
	ctx context.Context,
	centerID uint,
	userID uint,
) (int, error) {

	center, err := uc.centers.GetCenterByID(ctx, centerID)
	if err != nil {
		return 0, err
	}

	now := timezone.NowIn(center.Timezone)

	if streak, found := uc.cache.GetStreak(ctx, userID); found {
		return streak, nil
	}

	// um ano de histórico cobre qualquer streak plausível
	entries, err := uc.repo.ListEntriesSince(ctx, userID, now.AddDate(-1, 0, 0))
	if err != nil {
		return 0, err
	}

	streak := mood.StreakDays(entries, now)
	uc.cache.SetStreak(ctx, userID, streak, now)

	return streak, nil
}

// Analytics devolve também o período efetivo, já saneado; o handler
// apenas repete o valor na resposta
func (uc *CheckinQueries) Analytics(
	ctx context.Context,
	centerID uint,
	userID uint,
	days int,
) (mood.Stats, int, error) {

	center, err := uc.centers.GetCenterByID(ctx, centerID)
	if err != nil {
		return mood.Stats{}, 0, err
	}

	if days <= 0 || days > 365 {
		days = 30
	}

	now := timezone.NowIn(center.Timezone)
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(days - 1))

	entries, err := uc.repo.ListEntriesSince(ctx, userID, since)
	if err != nil {
		return mood.Stats{}, 0, err
	}

	return mood.ComputeStats(entries, now), days, nil
}
