package appointment

import (
	"sort"
	"strings"
	"time"

	"github.com/calmharbor/counsel-api/internal/models"
)

// ===============================
// View Filter
// ===============================

type View string

const (
	ViewToday     View = "today"
	ViewUpcoming  View = "upcoming"
	ViewPending   View = "pending"
	ViewCompleted View = "completed"
)

func ValidView(v string) bool {
	switch View(v) {
	case ViewToday, ViewUpcoming, ViewPending, ViewCompleted:
		return true
	}
	return false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// FilterView deriva o subconjunto de uma visão sobre um snapshot da coleção.
// A comparação de "hoje" e do limite de 7 dias é por dia de calendário no
// fuso de now, nunca por janela móvel de 24h. O slice de entrada não é
// alterado; a saída sai ordenada por horário de início (sort estável).
func FilterView(aps []models.Appointment, view View, query string, now time.Time) []models.Appointment {
	out := make([]models.Appointment, 0, len(aps))

	// fim do dia de calendário now+7 (limite superior inclusivo de upcoming)
	horizon := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, 8)

	for _, ap := range aps {
		start := ap.StartTime.In(now.Location())

		switch view {
		case ViewToday:
			if !sameDay(start, now) {
				continue
			}
		case ViewUpcoming:
			if !start.After(now) || !start.Before(horizon) {
				continue
			}
		case ViewPending:
			if Status(ap.Status) != StatusPending {
				continue
			}
		case ViewCompleted:
			if Status(ap.Status) != StatusCompleted {
				continue
			}
		default:
			continue
		}

		out = append(out, ap)
	}

	if q := strings.ToLower(strings.TrimSpace(query)); q != "" {
		matched := out[:0]
		for _, ap := range out {
			if strings.Contains(strings.ToLower(ap.Student.Name), q) ||
				strings.Contains(strings.ToLower(ap.Reason), q) {
				matched = append(matched, ap)
			}
		}
		out = matched
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})

	return out
}
