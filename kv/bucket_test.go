// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/kv"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/lvldb"
)

func TestBucket(t *testing.T) {
	db, _ := lvldb.NewMem()

	b1 := kv.Bucket("b1").NewStore(db)
	b2 := kv.Bucket("b2").NewStore(db)

	assert.NoError(t, b1.Put([]byte("key"), []byte("v1")))
	assert.NoError(t, b2.Put([]byte("key"), []byte("v2")))

	v, err := b1.Get([]byte("key"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("v1"), v)

	v, err = b2.Get([]byte("key"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("v2"), v)

	// deleting in one bucket leaves the other untouched
	assert.NoError(t, b1.Delete([]byte("key")))
	has, err := b1.Has([]byte("key"))
	assert.NoError(t, err)
	assert.False(t, has)
	has, _ = b2.Has([]byte("key"))
	assert.True(t, has)

	_, err = b1.Get([]byte("key"))
	assert.True(t, b1.IsNotFound(err))
}

func TestBucketIterator(t *testing.T) {
	db, _ := lvldb.NewMem()

	b := kv.Bucket("b").NewStore(db)
	assert.NoError(t, db.Put([]byte("a-outside"), []byte("x")))
	assert.NoError(t, b.Put([]byte("k1"), []byte("v1")))
	assert.NoError(t, b.Put([]byte("k2"), []byte("v2")))
	assert.NoError(t, db.Put([]byte("c-outside"), []byte("y")))

	iter := b.NewIterator(kv.Range{})
	defer iter.Release()

	var keys []string
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	assert.NoError(t, iter.Error())
	assert.Equal(t, []string{"k1", "k2"}, keys)
}

func TestBucketBatch(t *testing.T) {
	db, _ := lvldb.NewMem()
	b := kv.Bucket("b").NewStore(db)

	batch := b.NewBatch()
	assert.NoError(t, batch.Put([]byte("k1"), []byte("v1")))
	assert.NoError(t, batch.Put([]byte("k2"), []byte("v2")))
	assert.NoError(t, batch.Write())

	v, err := b.Get([]byte("k2"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("v2"), v)
}
