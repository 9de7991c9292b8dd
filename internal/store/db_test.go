package store_test

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/akashmaji946/resp-kv/internal/store"
)

func TestSetAndGet(t *testing.T) {
	db := store.NewDB()
	db.Set("foo", "bar", time.Time{})

	v, ok := db.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, "bar", v)
}

func TestGetMissingKey(t *testing.T) {
	db := store.NewDB()
	_, ok := db.Get("missing")
	assert.False(t, ok)
}

func TestOverwriteKey(t *testing.T) {
	db := store.NewDB()
	db.Set("key", "value1", time.Time{})
	db.Set("key", "value2", time.Time{})

	v, ok := db.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "value2", v)
}

func TestGetWithFutureExpiryIsAlive(t *testing.T) {
	db := store.NewDB()
	db.Set("key", "value", time.Now().Add(10*time.Second))

	v, ok := db.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "value", v)
}

func TestGetWithPastExpiryIsMasked(t *testing.T) {
	db := store.NewDB()
	db.Set("key", "value", time.Now().Add(-1*time.Second))

	_, ok := db.Get("key")
	assert.False(t, ok)
}

func TestGetWithExpiryJustOverBoundary(t *testing.T) {
	db := store.NewDB()
	db.Set("key", "value", time.Now().Add(10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	_, ok := db.Get("key")
	assert.False(t, ok)
}

func TestKeysGlobStar(t *testing.T) {
	db := store.NewDB()
	db.Set("foo", "1", time.Time{})
	db.Set("bar", "2", time.Time{})
	db.Set("cat", "3", time.Time{})

	result := db.Keys("*")
	sort.Strings(result)
	assert.Equal(t, []string{"bar", "cat", "foo"}, result)
}

func TestKeysGlobPrefix(t *testing.T) {
	db := store.NewDB()
	db.Set("foo", "1", time.Time{})
	db.Set("bar", "2", time.Time{})

	result := db.Keys("f*")
	assert.Equal(t, []string{"foo"}, result)
}

func TestKeysGlobCharacterClass(t *testing.T) {
	db := store.NewDB()
	db.Set("cat", "1", time.Time{})
	db.Set("car", "2", time.Time{})
	db.Set("cap", "3", time.Time{})

	result := db.Keys("ca[tr]")
	sort.Strings(result)
	assert.Equal(t, []string{"car", "cat"}, result)
}

func TestKeysGlobQuestionMark(t *testing.T) {
	db := store.NewDB()
	db.Set("ab", "1", time.Time{})
	db.Set("abc", "2", time.Time{})

	result := db.Keys("a?")
	assert.Equal(t, []string{"ab"}, result)
}

func TestKeysIncludesExpiredButUnreaped(t *testing.T) {
	db := store.NewDB()
	db.Set("expired", "v", time.Now().Add(-1*time.Second))

	result := db.Keys("*")
	assert.Equal(t, []string{"expired"}, result)
}

func TestKeysUnparseablePatternReturnsEmpty(t *testing.T) {
	db := store.NewDB()
	db.Set("foo", "1", time.Time{})

	result := db.Keys("[")
	assert.Empty(t, result)
}

func TestConfigAccessors(t *testing.T) {
	cfg := store.NewConfig("/data", "dump.rdb", "", 6379)
	assert.Equal(t, "/data", cfg.Dir())
	assert.Equal(t, "dump.rdb", cfg.DbFileName())
	assert.Equal(t, "", cfg.ReplicaOf())
	assert.True(t, cfg.IsMaster())
}

func TestConfigReplicaRole(t *testing.T) {
	cfg := store.NewConfig("", "", "127.0.0.1:6380", 6379)
	assert.False(t, cfg.IsMaster())
}
