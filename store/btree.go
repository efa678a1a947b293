package store

import (
	"bytes"

	"github.com/google/btree"

	"github.com/iov-one/poolshare"
	"github.com/iov-one/poolshare/errors"
)

// freeListSize is the size we hold for free nodes in the btree.
const freeListSize = btree.DefaultFreeListSize

// MemStore returns a btree-backed store useful for tests and reference
// implementations. There is no persistence here.
func MemStore() poolshare.CacheableKVStore {
	return &BTreeStore{
		bt: btree.NewWithFreeList(2, btree.NewFreeList(freeListSize)),
	}
}

// BTreeStore is an in-memory KVStore build on a btree. It supports cache
// wrapping, so a set of writes can be applied or discarded together.
type BTreeStore struct {
	bt *btree.BTree
}

var _ poolshare.CacheableKVStore = (*BTreeStore)(nil)

// Get reads the value stored under the key, nil if missing.
func (s *BTreeStore) Get(key []byte) ([]byte, error) {
	assertValidKey(key)
	res := s.bt.Get(bkey{key})
	if res == nil {
		return nil, nil
	}
	return res.(setItem).value, nil
}

// Has checks if the key exists in the store.
func (s *BTreeStore) Has(key []byte) (bool, error) {
	assertValidKey(key)
	return s.bt.Has(bkey{key}), nil
}

// Set writes the value under the key.
func (s *BTreeStore) Set(key, value []byte) error {
	assertValidKey(key)
	s.bt.ReplaceOrInsert(newSetItem(key, value))
	return nil
}

// Delete removes the key from the store.
func (s *BTreeStore) Delete(key []byte) error {
	assertValidKey(key)
	s.bt.Delete(bkey{key})
	return nil
}

// CacheWrap returns a cache layer on top of this store that can be later
// written to this store, or rolled back.
func (s *BTreeStore) CacheWrap() poolshare.KVCacheWrap {
	return NewBTreeCacheWrap(s)
}

// BTreeCacheWrap places a btree cache over a KVStore. Reads fall through
// to the backing store, writes are held in the cache until Write or
// Discard is called.
type BTreeCacheWrap struct {
	bt   *btree.BTree
	back poolshare.KVStore
}

var _ poolshare.KVCacheWrap = (*BTreeCacheWrap)(nil)

// NewBTreeCacheWrap initializes a BTree to cache around this kv store.
func NewBTreeCacheWrap(kv poolshare.KVStore) *BTreeCacheWrap {
	return &BTreeCacheWrap{
		bt:   btree.NewWithFreeList(2, btree.NewFreeList(freeListSize)),
		back: kv,
	}
}

// CacheWrap layers another BTree on top of this one.
// Don't change horses in mid-stream....
func (c *BTreeCacheWrap) CacheWrap() poolshare.KVCacheWrap {
	return NewBTreeCacheWrap(c)
}

// Write syncs all cached operations with the underlying store.
// And then cleans up.
func (c *BTreeCacheWrap) Write() error {
	var err error
	c.bt.Ascend(func(item btree.Item) bool {
		switch t := item.(type) {
		case setItem:
			err = c.back.Set(t.key, t.value)
		case deletedItem:
			err = c.back.Delete(t.key)
		default:
			err = errors.ErrDatabase.Newf("unknown item in btree: %#v", item)
		}
		return err == nil
	})
	c.Discard()
	return err
}

// Discard invalidates this CacheWrap and releases all data.
func (c *BTreeCacheWrap) Discard() {
	for stop := false; !stop; {
		rem := c.bt.DeleteMin()
		stop = rem == nil
	}
}

// Get reads from the cache if there, else the backing store.
func (c *BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	assertValidKey(key)
	if res := c.bt.Get(bkey{key}); res != nil {
		switch t := res.(type) {
		case setItem:
			return t.value, nil
		case deletedItem:
			return nil, nil
		default:
			return nil, errors.ErrDatabase.Newf("unknown item in btree: %#v", res)
		}
	}
	return c.back.Get(key)
}

// Has reads from the cache if there, else the backing store.
func (c *BTreeCacheWrap) Has(key []byte) (bool, error) {
	assertValidKey(key)
	if res := c.bt.Get(bkey{key}); res != nil {
		switch res.(type) {
		case setItem:
			return true, nil
		case deletedItem:
			return false, nil
		default:
			return false, errors.ErrDatabase.Newf("unknown item in btree: %#v", res)
		}
	}
	return c.back.Has(key)
}

// Set writes to the cache.
func (c *BTreeCacheWrap) Set(key, value []byte) error {
	assertValidKey(key)
	c.bt.ReplaceOrInsert(newSetItem(key, value))
	return nil
}

// Delete marks the key as deleted in the cache.
func (c *BTreeCacheWrap) Delete(key []byte) error {
	assertValidKey(key)
	c.bt.ReplaceOrInsert(newDeletedItem(key))
	return nil
}

func assertValidKey(key []byte) {
	if key == nil {
		panic("nil key is not allowed")
	}
}

/////////////////////////////////////////////////////////
// Items to write to btree

// we enforce all data in our btree implements keyer so we
// can compare nicely
type keyer interface {
	Key() []byte
}

// bkey implements keyer and btree.Item
// and may be used for queries or embedded in data to store
type bkey struct {
	key []byte
}

var _ keyer = bkey{}
var _ btree.Item = bkey{}

func (k bkey) Key() []byte {
	return k.key
}

// Less returns true iff second argument is greater than first
//
// panics if the item to compare doesn't implement keyer.
func (k bkey) Less(item btree.Item) bool {
	cmp := item.(keyer).Key()
	return bytes.Compare(k.key, cmp) < 0
}

type deletedItem struct {
	bkey
}

func newDeletedItem(key []byte) deletedItem {
	return deletedItem{bkey{key}}
}

type setItem struct {
	bkey
	value []byte
}

func newSetItem(key, value []byte) setItem {
	return setItem{bkey{key}, value}
}
