package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackends(t *testing.T) map[string]KV {
	t.Helper()

	sqliteKV, err := OpenSQLite(t.Context(), filepath.Join(t.TempDir(), "nested", "teamcal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteKV.Close() })

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	redisKV := NewRedisKV(client, "teamcal:")
	t.Cleanup(func() { _ = redisKV.Close() })

	fileKV, err := NewFileKV(filepath.Join(t.TempDir(), "state", "teamcal.json"))
	require.NoError(t, err)

	return map[string]KV{
		"sqlite": sqliteKV,
		"redis":  redisKV,
		"file":   fileKV,
		"memory": NewMemoryKV(),
	}
}

func TestKVContract(t *testing.T) {
	for name, kv := range newBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()

			_, err := kv.Get(ctx, "missing")
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, kv.Set(ctx, "a", []byte("first")))
			require.NoError(t, kv.Set(ctx, "a", []byte("second")))
			require.NoError(t, kv.Set(ctx, "b", []byte{}))

			got, err := kv.Get(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, "second", string(got))

			got, err = kv.Get(ctx, "b")
			require.NoError(t, err)
			assert.Empty(t, got)

			require.NoError(t, kv.Delete(ctx, "a", "b", "never-set"))
			_, err = kv.Get(ctx, "a")
			assert.ErrorIs(t, err, ErrNotFound)
			_, err = kv.Get(ctx, "b")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, kv.Delete(ctx))
		})
	}
}

func TestRedisKVUsesPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	kv := NewRedisKV(client, "team:")
	defer kv.Close()

	require.NoError(t, kv.Set(t.Context(), TasksKey, []byte("[]")))
	stored, err := mr.Get("team:" + TasksKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", stored)
	assert.False(t, mr.Exists(TasksKey))
}

func TestOpenRedisPingsServer(t *testing.T) {
	mr := miniredis.RunT(t)

	kv, err := OpenRedis(t.Context(), "redis://"+mr.Addr(), "")
	require.NoError(t, err)
	require.NoError(t, kv.Close())

	kv, err = OpenRedis(t.Context(), mr.Addr()+",password=", "")
	require.NoError(t, err)
	require.NoError(t, kv.Close())

	_, err = OpenRedis(t.Context(), "", "")
	require.Error(t, err)
}

func TestFileKVSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.json")
	first, err := NewFileKV(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(t.Context(), "k", []byte(`{"x":1}`)))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")

	second, err := NewFileKV(path)
	require.NoError(t, err)
	got, err := second.Get(t.Context(), "k")
	require.NoError(t, err)
	assert.Equal(t, `{"x":1}`, string(got))
}

func TestFileKVRejectsCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	kv, err := NewFileKV(path)
	require.NoError(t, err)
	_, err = kv.Get(t.Context(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()
	logger := log.New()

	kv, err := Open(ctx, Options{Backend: BackendMemory}, logger)
	require.NoError(t, err)
	assert.IsType(t, &MemoryKV{}, kv)

	kv, err = Open(ctx, Options{Backend: "FILE", FilePath: filepath.Join(t.TempDir(), "f.json")}, logger)
	require.NoError(t, err)
	assert.IsType(t, &FileKV{}, kv)

	kv, err = Open(ctx, Options{SQLitePath: filepath.Join(t.TempDir(), "s.db")}, logger)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteKV{}, kv)
	require.NoError(t, kv.Close())

	_, err = Open(ctx, Options{Backend: "etcd"}, logger)
	require.Error(t, err)
}
