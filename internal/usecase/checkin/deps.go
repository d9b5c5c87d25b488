package checkin

import (
	"context"
	"time"

	"github.com/calmharbor/counsel-api/internal/models"
)

// Dependências estreitas para manter o caso de uso testável sem redis/s3

type CenterGetter interface {
	GetCenterByID(ctx context.Context, id uint) (*models.Center, error)
}

type DayCache interface {
	MarkCheckedIn(ctx context.Context, userID uint, day time.Time)
	HasCheckedIn(ctx context.Context, userID uint, day time.Time) (bool, bool)
	GetStreak(ctx context.Context, userID uint) (int, bool)
	SetStreak(ctx context.Context, userID uint, streak int, day time.Time)
}

type PhotoUploader interface {
	UploadCheckinPhoto(
		ctx context.Context,
		userID uint,
		day time.Time,
		data []byte,
		contentType string,
	) (photoKey string, thumbKey string, err error)
}
