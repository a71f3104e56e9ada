package directorycache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
)

var errNotFound = errors.New("not found")

type fakeDirectory struct {
	capsterCalls int
	serviceCalls int
	capsters     map[string]*domain.Capster
}

func (f *fakeDirectory) GetActiveService(_ context.Context, serviceID string) (*domain.Service, error) {
	f.serviceCalls++
	return &domain.Service{ID: serviceID, Tier: "standard", IsActive: true}, nil
}

func (f *fakeDirectory) GetCapsterByUserID(_ context.Context, userID string) (*domain.Capster, error) {
	f.capsterCalls++
	c, ok := f.capsters[userID]
	if !ok {
		return nil, errNotFound
	}
	return c, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestCache_WithoutClientIsPassthrough(t *testing.T) {
	src := &fakeDirectory{capsters: map[string]*domain.Capster{"u1": {ID: "cap-1", UserID: "u1"}}}
	c := New(src, nil, time.Minute, nopLogger{})

	capster, err := c.GetCapsterByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "cap-1", capster.ID)

	_, err = c.GetCapsterByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, src.capsterCalls)

	_, err = c.GetCapsterByUserID(context.Background(), "missing")
	assert.ErrorIs(t, err, errNotFound)
}

func TestCache_ServiceLookupsAreNeverCached(t *testing.T) {
	src := &fakeDirectory{}
	c := New(src, nil, time.Minute, nopLogger{})

	for i := 0; i < 3; i++ {
		svc, err := c.GetActiveService(context.Background(), "svc1")
		require.NoError(t, err)
		assert.Equal(t, "standard", svc.Tier)
	}
	assert.Equal(t, 3, src.serviceCalls)
}

func TestCache_UnreachableRedisFallsBackToSource(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	src := &fakeDirectory{capsters: map[string]*domain.Capster{"u1": {ID: "cap-1", UserID: "u1"}}}
	c := New(src, client, time.Minute, nopLogger{})

	capster, err := c.GetCapsterByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "cap-1", capster.ID)
	assert.Equal(t, 1, src.capsterCalls)
}

func newMiniredisCache(t *testing.T, src Directory) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return New(src, client, time.Minute, nopLogger{}), mr
}

func TestCache_HitIsServedFromRedis(t *testing.T) {
	branch := "b1"
	want := &domain.Capster{ID: "cap-1", UserID: "u1", DisplayName: "Andi", BranchID: &branch}
	src := &fakeDirectory{capsters: map[string]*domain.Capster{"u1": want}}
	c, mr := newMiniredisCache(t, src)

	first, err := c.GetCapsterByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, want, first)
	assert.True(t, mr.Exists(defaultKeyPrefix+"u1"))
	assert.Equal(t, time.Minute, mr.TTL(defaultKeyPrefix+"u1"))

	second, err := c.GetCapsterByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, want, second)
	assert.NotSame(t, want, second)
	assert.Equal(t, 1, src.capsterCalls)
}

func TestCache_NotFoundIsNeverCached(t *testing.T) {
	src := &fakeDirectory{capsters: map[string]*domain.Capster{}}
	c, mr := newMiniredisCache(t, src)

	for i := 0; i < 2; i++ {
		_, err := c.GetCapsterByUserID(context.Background(), "u-new")
		assert.ErrorIs(t, err, errNotFound)
	}
	assert.Equal(t, 2, src.capsterCalls)
	assert.False(t, mr.Exists(defaultKeyPrefix+"u-new"))

	// мастер появился в справочнике, кеш не мешает его увидеть
	src.capsters["u-new"] = &domain.Capster{ID: "cap-9", UserID: "u-new"}
	capster, err := c.GetCapsterByUserID(context.Background(), "u-new")
	require.NoError(t, err)
	assert.Equal(t, "cap-9", capster.ID)
}

func TestCache_CorruptedEntryIsRefetched(t *testing.T) {
	src := &fakeDirectory{capsters: map[string]*domain.Capster{"u1": {ID: "cap-1", UserID: "u1"}}}
	c, mr := newMiniredisCache(t, src)

	require.NoError(t, mr.Set(defaultKeyPrefix+"u1", "{not json"))

	capster, err := c.GetCapsterByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "cap-1", capster.ID)
	assert.Equal(t, 1, src.capsterCalls)

	raw, err := mr.Get(defaultKeyPrefix + "u1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ID":"cap-1","UserID":"u1","DisplayName":"","BranchID":null}`, raw)
}
