package locker

import (
	"context"
	"sync"
	"testing"
	"time"

	"medipoint-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeRedisRepo mirrors the JSON-marshalling behaviour of the production
// redis repository, so stored lock values carry quotes.
type fakeRedisRepo struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeRedisRepo() *fakeRedisRepo {
	return &fakeRedisRepo{values: make(map[string]string)}
}

func (r *fakeRedisRepo) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.values[key] = string(data)
	return nil
}

func (r *fakeRedisRepo) Get(ctx context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.values[key], nil
}

func (r *fakeRedisRepo) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, key)
	return nil
}

func (r *fakeRedisRepo) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.values[key]; exists {
		return false, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	r.values[key] = string(data)
	return true, nil
}

func TestLockService(t *testing.T) {
	ctx := context.Background()

	t.Run("second locker does not acquire a held key", func(t *testing.T) {
		service := &lockService{redisRepo: newFakeRedisRepo(), Log: zap.NewNop()}

		acquired, value, err := service.TryLock(ctx, "lock:doctor-slots:abc", time.Minute)
		assert.NoError(t, err)
		assert.True(t, acquired)
		assert.NotEmpty(t, value)

		acquired, _, err = service.TryLock(ctx, "lock:doctor-slots:abc", time.Minute)
		assert.NoError(t, err)
		assert.False(t, acquired)
	})

	t.Run("unlock releases for the owner only", func(t *testing.T) {
		repo := newFakeRedisRepo()
		service := &lockService{redisRepo: repo, Log: zap.NewNop()}

		_, value, err := service.TryLock(ctx, "lock:appointment:xyz", time.Minute)
		assert.NoError(t, err)

		err = service.Unlock(ctx, "lock:appointment:xyz", "some-other-value")
		assert.Error(t, err)
		customErr, ok := err.(*exceptions.CustomError)
		assert.True(t, ok)
		assert.NotNil(t, customErr)

		assert.NoError(t, service.Unlock(ctx, "lock:appointment:xyz", value))

		acquired, _, err := service.TryLock(ctx, "lock:appointment:xyz", time.Minute)
		assert.NoError(t, err)
		assert.True(t, acquired)
	})

	t.Run("unlock of an expired lock is a no-op", func(t *testing.T) {
		service := &lockService{redisRepo: newFakeRedisRepo(), Log: zap.NewNop()}
		assert.NoError(t, service.Unlock(ctx, "lock:appointment:gone", "whatever"))
	})

	t.Run("concurrent lockers admit exactly one holder", func(t *testing.T) {
		service := &lockService{redisRepo: newFakeRedisRepo(), Log: zap.NewNop()}

		const workers = 20
		var wg sync.WaitGroup
		acquisitions := make([]bool, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				acquired, _, err := service.TryLock(ctx, "lock:doctor-slots:contended", time.Minute)
				assert.NoError(t, err)
				acquisitions[i] = acquired
			}(i)
		}
		wg.Wait()

		holders := 0
		for _, acquired := range acquisitions {
			if acquired {
				holders++
			}
		}
		assert.Equal(t, 1, holders)
	})
}
