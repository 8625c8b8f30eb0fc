package contracts

import (
	"context"
	"time"
)

// LockerService is a redis-backed mutex. TryLock returns the opaque lock
// value the caller must hand back to Unlock; Unlock releases only when the
// stored value still matches, so an expired lock never releases a successor.
type LockerService interface {
	TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error)
	Unlock(ctx context.Context, key, lockValue string) error
}
