package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"offerdesk/internal/database"
	"offerdesk/internal/logger"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

const (
	OperationGenerate = "generate"
	OperationSubmit   = "submit"

	guardKeyPrefix = "inflight"
	releaseTimeout = 5 * time.Second
)

// ErrBusy means the same operation is already running for the same form.
var ErrBusy = errors.New("operation already in progress")

// InFlightGuard keeps two runs of one operation on one form from
// overlapping. It does not order different operations or different forms.
type InFlightGuard interface {
	Acquire(ctx context.Context, operation, formID string) (release func(), ok bool, err error)
}

type MemoryGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{active: make(map[string]struct{})}
}

func guardKey(operation, formID string) string {
	return fmt.Sprintf("%s:%s:%s", guardKeyPrefix, operation, formID)
}

func (g *MemoryGuard) Acquire(_ context.Context, operation, formID string) (func(), bool, error) {
	key := guardKey(operation, formID)

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.active[key]; busy {
		return func() {}, false, nil
	}
	g.active[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.active, key)
			g.mu.Unlock()
		})
	}, true, nil
}

// CacheGuard shares the guard between server instances through valkey. The
// TTL bounds how long a crashed holder can block a form.
type CacheGuard struct {
	client database.CacheClient
	ttl    time.Duration
	log    logger.Logger
}

func NewCacheGuard(client database.CacheClient, ttl time.Duration) *CacheGuard {
	return &CacheGuard{
		client: client,
		ttl:    ttl,
		log:    logger.New("CacheGuard"),
	}
}

func (g *CacheGuard) Acquire(ctx context.Context, operation, formID string) (func(), bool, error) {
	log := g.log.Function("Acquire")
	key := guardKey(operation, formID)
	token := uuid.NewString()

	cmd := g.client.B().Set().Key(key).Value(token).Nx().PxMilliseconds(g.ttl.Milliseconds()).Build()
	if err := g.client.Do(ctx, cmd).Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return func() {}, false, nil
		}
		return func() {}, false, log.Err("failed to acquire in-flight guard", err, "key", key)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.release(key, token)
		})
	}, true, nil
}

// releaseScript deletes the key only while it still holds the caller's
// token, in one round trip.
var releaseScript = valkey.NewLuaScript(
	`if redis.call("GET",KEYS[1])==ARGV[1] then return redis.call("DEL",KEYS[1]) end return 0`,
)

// release leaves an expired and re-acquired guard alone.
func (g *CacheGuard) release(key, token string) {
	log := g.log.Function("release")
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()

	released, err := releaseScript.Exec(ctx, g.client, []string{key}, []string{token}).AsInt64()
	if err != nil {
		log.Warn("failed to release in-flight guard", "key", key, "error", err)
		return
	}
	if released == 0 {
		log.Debug("in-flight guard expired before release", "key", key)
	}
}

// Run acquires the guard, runs fn and releases. It returns ErrBusy without
// calling fn when another run holds the guard. Calls without a form id are
// not tied to any browser form and run unguarded.
func Run(ctx context.Context, guard InFlightGuard, operation, formID string, fn func() error) error {
	if formID == "" || guard == nil {
		return fn()
	}
	release, ok, err := guard.Acquire(ctx, operation, formID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrBusy
	}
	defer release()
	return fn()
}
