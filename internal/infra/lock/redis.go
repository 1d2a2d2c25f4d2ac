package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockTimeout возвращается, если блокировку не удалось получить за время ожидания
var ErrLockTimeout = errors.New("lock: wait timeout exceeded")

// unlockScript удаляет ключ, только если он принадлежит владельцу токена
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ReleaseFunc снимает полученную блокировку
type ReleaseFunc func(ctx context.Context) error

// Options параметры блокировки
type Options struct {
	TTL           time.Duration // Время жизни ключа, защищает от зависшего владельца
	WaitTimeout   time.Duration // Сколько ждать освобождения
	RetryInterval time.Duration // Пауза между попытками
}

// RedisLock распределенная блокировка на SET NX
type RedisLock struct {
	client *redis.Client
	opts   Options
}

// NewRedisLock подключается к Redis и проверяет соединение
func NewRedisLock(ctx context.Context, addr, password string, db int, opts Options) (*RedisLock, error) {
	const op = "lock.NewRedisLock"

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &RedisLock{client: client, opts: opts}, nil
}

// Acquire ждет блокировку по ключу не дольше WaitTimeout
func (r *RedisLock) Acquire(ctx context.Context, key string) (ReleaseFunc, error) {
	const op = "lock.RedisLock.Acquire"

	lockKey := fmt.Sprintf("lock:%s", key)
	token := uuid.NewString()

	waitCtx, cancel := context.WithTimeout(ctx, r.opts.WaitTimeout)
	defer cancel()

	ticker := time.NewTicker(r.opts.RetryInterval)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(waitCtx, lockKey, token, r.opts.TTL).Result()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if ok {
			return func(ctx context.Context) error {
				if err := unlockScript.Run(ctx, r.client, []string{lockKey}, token).Err(); err != nil {
					return fmt.Errorf("lock.RedisLock.Release: %w", err)
				}
				return nil
			}, nil
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
		case <-ticker.C:
		}
	}
}

func (r *RedisLock) Close() error {
	return r.client.Close()
}

// NoopLock блокировка-заглушка, когда Redis выключен
type NoopLock struct{}

func (NoopLock) Acquire(context.Context, string) (ReleaseFunc, error) {
	return func(context.Context) error { return nil }, nil
}
