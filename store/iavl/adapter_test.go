package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest/assert"
)

func makeCommitStore(t testing.TB) (CommitStore, func()) {
	tmpDir, err := ioutil.TempDir("", "iavl-adapter-")
	assert.Nil(t, err)
	return NewCommitStore(tmpDir, "base"), func() { os.RemoveAll(tmpDir) }
}

func TestCommitAndReload(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "iavl-reload-")
	assert.Nil(t, err)
	defer os.RemoveAll(tmpDir)

	commit := NewCommitStore(tmpDir, "vault")
	assert.Nil(t, commit.LoadLatestVersion())

	cache := commit.CacheWrap()
	assert.Nil(t, cache.Set([]byte("lock:1"), []byte("100")))
	assert.Nil(t, cache.Write())

	// not visible until committed
	val, err := commit.Get([]byte("lock:1"))
	assert.Nil(t, err)
	assert.Nil(t, val)

	id, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)

	val, err = commit.Get([]byte("lock:1"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("100"), val)
}

func TestAdapterIterator(t *testing.T) {
	commit, cleanup := makeCommitStore(t)
	defer cleanup()

	base := commit.Adapter()
	for _, k := range []string{"a", "b", "c"} {
		assert.Nil(t, base.Set([]byte(k), []byte(k)))
	}
	cache := base.CacheWrap()
	assert.Nil(t, cache.Delete([]byte("b")))

	it, err := cache.Iterator(nil, nil)
	assert.Nil(t, err)
	defer it.Release()

	var keys []string
	for {
		k, _, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		assert.Nil(t, err)
		keys = append(keys, string(k))
	}
	assert.Equal(t, []string{"a", "c"}, keys)
}

func TestMemCommitStoreVersions(t *testing.T) {
	commit := NewMemCommitStore()
	var kv store.CommitKVStore = commit

	for i := 1; i <= 3; i++ {
		c := kv.CacheWrap()
		assert.Nil(t, c.Set([]byte("counter"), []byte{byte(i)}))
		assert.Nil(t, c.Write())
		id, err := kv.Commit()
		assert.Nil(t, err)
		assert.Equal(t, int64(i), id.Version)
	}
	latest, err := kv.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, int64(3), latest.Version)
}
