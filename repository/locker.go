package repository

import (
	"context"
	"sync"

	"gorm.io/gorm"
)

// RoomLocker serializes check-then-write sequences on one room.
type RoomLocker interface {
	WithRoomLock(ctx context.Context, tenantID, roomID string, fn func(ctx context.Context) error) error
}

func lockKey(tenantID, roomID string) string {
	return "room:" + tenantID + ":" + roomID
}

// PostgresRoomLocker opens a transaction, takes a transaction scoped
// advisory lock on the room and runs fn with the transaction in ctx.
// Returning an error from fn rolls everything back.
type PostgresRoomLocker struct {
	db *gorm.DB
}

func NewPostgresRoomLocker(db *gorm.DB) *PostgresRoomLocker {
	return &PostgresRoomLocker{db: db}
}

func (l *PostgresRoomLocker) WithRoomLock(ctx context.Context, tenantID, roomID string, fn func(ctx context.Context) error) error {
	return conn(ctx, l.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", lockKey(tenantID, roomID)).Error; err != nil {
			return translate(err, nil)
		}
		return fn(WithTx(ctx, tx))
	})
}

// LocalRoomLocker is a keyed mutex for single process deployments.
// It is not reentrant.
type LocalRoomLocker struct {
	mu    sync.Mutex
	locks map[string]*roomMutex
}

type roomMutex struct {
	sync.Mutex
	refs int
}

func NewLocalRoomLocker() *LocalRoomLocker {
	return &LocalRoomLocker{locks: make(map[string]*roomMutex)}
}

func (l *LocalRoomLocker) WithRoomLock(ctx context.Context, tenantID, roomID string, fn func(ctx context.Context) error) error {
	key := lockKey(tenantID, roomID)

	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &roomMutex{}
		l.locks[key] = m
	}
	m.refs++
	l.mu.Unlock()

	m.Lock()
	defer func() {
		m.Unlock()
		l.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}
