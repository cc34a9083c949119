// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/farm"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/lvldb"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/state"
)

func TestStorage(t *testing.T) {
	kv, _ := lvldb.NewMem()
	st := state.New(kv)

	addr := farm.BytesToAddress([]byte("farm"))
	key := farm.Blake2b([]byte("key"))
	value := farm.Blake2b([]byte("value"))

	got, err := st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, farm.Bytes32{}, got)

	st.SetStorage(addr, key, value)
	got, err = st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, value, got)

	// zero value clears the entry
	st.SetStorage(addr, key, farm.Bytes32{})
	raw, err := st.GetRawStorage(addr, key)
	assert.NoError(t, err)
	assert.Zero(t, len(raw))
}

func TestStructuredStorage(t *testing.T) {
	kv, _ := lvldb.NewMem()
	st := state.New(kv)

	addr := farm.BytesToAddress([]byte("farm"))
	key := farm.Blake2b([]byte("key"))

	type payload struct {
		A uint64
		B *big.Int
	}
	in := payload{42, big.NewInt(1e9)}
	assert.NoError(t, st.SetStructuredStorage(addr, key, &in))

	var out payload
	assert.NoError(t, st.GetStructuredStorage(addr, key, &out))
	assert.Equal(t, in, out)
}

func TestRevert(t *testing.T) {
	kv, _ := lvldb.NewMem()
	st := state.New(kv)

	addr := farm.BytesToAddress([]byte("farm"))
	key := farm.Blake2b([]byte("key"))

	values := []farm.Bytes32{
		farm.Blake2b([]byte("v1")),
		farm.Blake2b([]byte("v2")),
		farm.Blake2b([]byte("v3")),
	}

	var chk int
	for _, v := range values {
		chk = st.NewCheckpoint()
		st.SetStorage(addr, key, v)
	}

	for i := range values {
		got, err := st.GetStorage(addr, key)
		assert.NoError(t, err)
		assert.Equal(t, values[len(values)-i-1], got)
		st.RevertTo(chk)
		chk--
	}

	got, err := st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, farm.Bytes32{}, got)
}

func TestCommitPersists(t *testing.T) {
	kv, _ := lvldb.NewMem()
	st := state.New(kv)

	addr := farm.BytesToAddress([]byte("farm"))
	key := farm.Blake2b([]byte("key"))
	value := farm.Blake2b([]byte("value"))

	st.SetStorage(addr, key, value)
	assert.NoError(t, st.Commit())

	// a fresh state over the same store sees the committed value
	st2 := state.New(kv)
	got, err := st2.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestRevertedWritesNotCommitted(t *testing.T) {
	kv, _ := lvldb.NewMem()
	st := state.New(kv)

	addr := farm.BytesToAddress([]byte("farm"))
	kept := farm.Blake2b([]byte("kept"))
	dropped := farm.Blake2b([]byte("dropped"))

	st.SetStorage(addr, kept, farm.Blake2b([]byte("a")))
	chk := st.NewCheckpoint()
	st.SetStorage(addr, dropped, farm.Blake2b([]byte("b")))
	st.RevertTo(chk)
	assert.NoError(t, st.Commit())

	st2 := state.New(kv)
	got, _ := st2.GetStorage(addr, kept)
	assert.Equal(t, farm.Blake2b([]byte("a")), got)
	got, _ = st2.GetStorage(addr, dropped)
	assert.Equal(t, farm.Bytes32{}, got)
}
