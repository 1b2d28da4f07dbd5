package slotRepo

import (
	"context"

	"inkbook/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// toggleScript flips membership in one server-side step so concurrent
// togglers are serialized by Redis.
var toggleScript = redis.NewScript(`
if redis.call('SISMEMBER', KEYS[1], ARGV[1]) == 1 then
	redis.call('SREM', KEYS[1], ARGV[1])
	return 0
end
redis.call('SADD', KEYS[1], ARGV[1])
return 1
`)

type redisSlotRepo struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

// NewRedisSlotRepo stores booked slots as members of the Redis set at key.
func NewRedisSlotRepo(client *redis.Client, key string, logger *zap.Logger) SlotRepository {
	if key == "" {
		key = "bookings"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &redisSlotRepo{client: client, key: key, logger: logger}
}

func (r *redisSlotRepo) List(ctx context.Context) ([]models.Booking, error) {
	members, err := r.client.SMembers(ctx, r.key).Result()
	if err != nil {
		return nil, unavailable("redis", "list", err)
	}
	return decodeMembers(members, func(m string, err error) {
		r.logger.Debug("skipping unreadable slot member", zap.String("member", m), zap.Error(err))
	}), nil
}

func (r *redisSlotRepo) IsBooked(ctx context.Context, date, time string) (bool, error) {
	key, err := models.EncodeSlotKey(date, time)
	if err != nil {
		return false, err
	}
	ok, err := r.client.SIsMember(ctx, r.key, string(key)).Result()
	if err != nil {
		return false, unavailable("redis", "isBooked", err)
	}
	return ok, nil
}

func (r *redisSlotRepo) Toggle(ctx context.Context, date, time string) (bool, error) {
	key, err := models.EncodeSlotKey(date, time)
	if err != nil {
		return false, err
	}
	booked, err := toggleScript.Run(ctx, r.client, []string{r.key}, string(key)).Int()
	if err != nil {
		return false, unavailable("redis", "toggle", err)
	}
	return booked == 1, nil
}

func (r *redisSlotRepo) Add(ctx context.Context, date, time string) error {
	key, err := models.EncodeSlotKey(date, time)
	if err != nil {
		return err
	}
	if err := r.client.SAdd(ctx, r.key, string(key)).Err(); err != nil {
		return unavailable("redis", "add", err)
	}
	return nil
}

func (r *redisSlotRepo) Remove(ctx context.Context, date, time string) error {
	key, err := models.EncodeSlotKey(date, time)
	if err != nil {
		return err
	}
	if err := r.client.SRem(ctx, r.key, string(key)).Err(); err != nil {
		return unavailable("redis", "remove", err)
	}
	return nil
}

func (r *redisSlotRepo) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return unavailable("redis", "ping", err)
	}
	return nil
}

func (r *redisSlotRepo) Backend() string { return "redis" }

func (r *redisSlotRepo) Shared() bool { return true }
