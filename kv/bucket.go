// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"bytes"
	"sync"
)

// Bucket provides logical bucket for a kv store, by prefixing all keys.
type Bucket string

// NewGetter creates a bucket getter from the source getter.
func (b Bucket) NewGetter(src Getter) Getter {
	return &struct {
		GetFunc
		HasFunc
		IsNotFoundFunc
		NewIteratorFunc
	}{
		func(key []byte) ([]byte, error) {
			buf := bufPool.Get().(*buf)
			defer bufPool.Put(buf)
			buf.k = append(append(buf.k[:0], b...), key...)

			return src.Get(buf.k)
		},
		func(key []byte) (bool, error) {
			buf := bufPool.Get().(*buf)
			defer bufPool.Put(buf)
			buf.k = append(append(buf.k[:0], b...), key...)

			return src.Has(buf.k)
		},
		src.IsNotFound,
		func(r Range) Iterator {
			from := append([]byte(b), r.From...)
			var to []byte
			if len(r.To) > 0 {
				to = append([]byte(b), r.To...)
			} else {
				to = bucketUpperBound([]byte(b))
			}
			iter := src.NewIterator(Range{From: from, To: to})
			return &bucketIterator{iter, len(b)}
		},
	}
}

// NewPutter creates a bucket putter from the source putter.
func (b Bucket) NewPutter(src Putter) Putter {
	return &struct {
		PutFunc
		DeleteFunc
		NewBatchFunc
	}{
		func(key, val []byte) error {
			buf := bufPool.Get().(*buf)
			defer bufPool.Put(buf)
			buf.k = append(append(buf.k[:0], b...), key...)

			return src.Put(buf.k, val)
		},
		func(key []byte) error {
			buf := bufPool.Get().(*buf)
			defer bufPool.Put(buf)
			buf.k = append(append(buf.k[:0], b...), key...)

			return src.Delete(buf.k)
		},
		func() Batch {
			batch := src.NewBatch()
			return &bucketBatch{b.NewPutter(batch), batch}
		},
	}
}

// NewStore creates a bucket store from the source store.
func (b Bucket) NewStore(src GetPutter) GetPutter {
	return &struct {
		Getter
		Putter
	}{
		b.NewGetter(src),
		b.NewPutter(src),
	}
}

type bucketBatch struct {
	Putter
	src Batch
}

func (bb *bucketBatch) Len() int { return bb.src.Len() }

func (bb *bucketBatch) Write() error { return bb.src.Write() }

type bucketIterator struct {
	Iterator
	prefixLen int
}

// Key returns the key with the bucket prefix stripped.
func (i *bucketIterator) Key() []byte {
	return i.Iterator.Key()[i.prefixLen:]
}

// bucketUpperBound returns the smallest key greater than all keys prefixed
// with b, or nil if no such key exists.
func bucketUpperBound(b []byte) []byte {
	limit := bytes.Clone(b)
	for i := len(limit) - 1; i >= 0; i-- {
		if limit[i] < 0xff {
			limit[i]++
			return limit[:i+1]
		}
	}
	return nil
}

type buf struct {
	k []byte
}

var bufPool = sync.Pool{
	New: func() any {
		return &buf{}
	},
}
