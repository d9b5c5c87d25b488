package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Cache das consultas derivadas de check-in (já registrou hoje / streak atual).
// O Postgres é sempre a fonte de verdade; as chaves expiram na meia-noite local
// para que o "hoje" vire automaticamente.
type CheckinCache struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewCheckinCache(rdb *redis.Client, log *zap.Logger) *CheckinCache {
	return &CheckinCache{rdb: rdb, log: log}
}

func dayKey(userID uint, day time.Time) string {
	return fmt.Sprintf("checkin:today:%d:%s", userID, day.Format("2006-01-02"))
}

func streakKey(userID uint) string {
	return fmt.Sprintf("checkin:streak:%d", userID)
}

func untilMidnight(day time.Time) time.Duration {
	midnight := time.Date(day.Year(), day.Month(), day.Day()+1, 0, 0, 0, 0, day.Location())
	d := midnight.Sub(day)
	if d <= 0 {
		d = time.Minute
	}
	return d
}

func (c *CheckinCache) MarkCheckedIn(ctx context.Context, userID uint, day time.Time) {
	if err := c.rdb.Set(ctx, dayKey(userID, day), "1", untilMidnight(day)).Err(); err != nil {
		c.log.Warn("checkin cache set failed", zap.Error(err))
	}
	// o streak muda com o novo registro; recalculado no próximo acesso
	if err := c.rdb.Del(ctx, streakKey(userID)).Err(); err != nil {
		c.log.Warn("checkin cache del failed", zap.Error(err))
	}
}

// HasCheckedIn retorna (valor, achou-no-cache)
func (c *CheckinCache) HasCheckedIn(ctx context.Context, userID uint, day time.Time) (bool, bool) {
	v, err := c.rdb.Get(ctx, dayKey(userID, day)).Result()
	if err == redis.Nil {
		return false, false
	}
	if err != nil {
		c.log.Warn("checkin cache get failed", zap.Error(err))
		return false, false
	}
	return v == "1", true
}

func (c *CheckinCache) GetStreak(ctx context.Context, userID uint) (int, bool) {
	v, err := c.rdb.Get(ctx, streakKey(userID)).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("streak cache get failed", zap.Error(err))
		}
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *CheckinCache) SetStreak(ctx context.Context, userID uint, streak int, day time.Time) {
	if err := c.rdb.Set(ctx, streakKey(userID), strconv.Itoa(streak), untilMidnight(day)).Err(); err != nil {
		c.log.Warn("streak cache set failed", zap.Error(err))
	}
}
