package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/classconnect/classconnect-api/pkg/errors"
)

type mapCacheRepo struct {
	values  map[string]interface{}
	deleted []string
}

func (m *mapCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	value, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	*dest.(*string) = value.(string)
	return nil
}

func (m *mapCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.values == nil {
		m.values = map[string]interface{}{}
	}
	m.values[key] = value
	return nil
}

func (m *mapCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.deleted = append(m.deleted, pattern)
	return nil
}

func TestNilCacheServiceIsSafe(t *testing.T) {
	var svc *CacheService

	assert.False(t, svc.Enabled())

	var dest string
	hit, err := svc.Get(context.Background(), "key", &dest)
	require.NoError(t, err)
	assert.False(t, hit)

	assert.NoError(t, svc.Set(context.Background(), "key", "value", 0))
	assert.NoError(t, svc.Invalidate(context.Background(), "key"))
}

func TestCacheRoundTrip(t *testing.T) {
	repo := &mapCacheRepo{}
	svc := NewCacheService(repo, nil, time.Minute, nil, true)

	var dest string
	hit, err := svc.Get(context.Background(), "k", &dest)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, svc.Set(context.Background(), "k", "v", 0))

	hit, err = svc.Get(context.Background(), "k", &dest)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "v", dest)
}

func TestCacheInvalidate(t *testing.T) {
	repo := &mapCacheRepo{}
	svc := NewCacheService(repo, nil, time.Minute, nil, true)

	require.NoError(t, svc.Invalidate(context.Background(), "assignments:*"))
	assert.Equal(t, []string{"assignments:*"}, repo.deleted)
}

func TestDisabledCacheSkipsRepo(t *testing.T) {
	repo := &mapCacheRepo{values: map[string]interface{}{"k": "v"}}
	svc := NewCacheService(repo, nil, time.Minute, nil, false)

	var dest string
	hit, err := svc.Get(context.Background(), "k", &dest)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Empty(t, dest)
}
