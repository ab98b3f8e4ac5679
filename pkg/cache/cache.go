// Package cache provides an LRU cache for extraction results with msgpack
// disk persistence. Entries are keyed by file path and invalidated by
// modification time, so unchanged files skip re-parsing across runs.
package cache

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/l3aro/go-graph-query/pkg/syntax"
)

// ErrNotFound is returned when a key is not cached.
var ErrNotFound = errors.New("key not found")

// Entry is one cached extraction result.
type Entry struct {
	Key     string           `msgpack:"key"`
	ModTime int64            `msgpack:"mod_time"`
	Tree    *syntax.FileTree `msgpack:"tree"`
}

// TreeCache is an in-memory LRU cache of file trees with optional disk
// persistence. It is safe for concurrent use.
type TreeCache struct {
	mu      sync.RWMutex
	items   map[string]*listItem
	lru     *list
	maxSize int
}

// listItem is an item in the doubly-linked list.
type listItem struct {
	Entry
	prev *listItem
	next *listItem
}

// list is a doubly-linked list with the most recently used entry at the
// front.
type list struct {
	head *listItem
	tail *listItem
	len  int
}

func (l *list) moveToFront(item *listItem) {
	if item == l.head {
		return
	}
	if item.prev != nil {
		item.prev.next = item.next
	}
	if item.next != nil {
		item.next.prev = item.prev
	}
	if item == l.tail {
		l.tail = item.prev
	}
	item.prev = nil
	item.next = l.head
	if l.head != nil {
		l.head.prev = item
	}
	l.head = item
	if l.tail == nil {
		l.tail = item
	}
}

func (l *list) pushFront(item *listItem) {
	item.next = l.head
	item.prev = nil
	if l.head != nil {
		l.head.prev = item
	}
	l.head = item
	if l.tail == nil {
		l.tail = item
	}
	l.len++
}

func (l *list) removeBack() *listItem {
	if l.tail == nil {
		return nil
	}
	item := l.tail
	l.tail = item.prev
	if l.tail != nil {
		l.tail.next = nil
	} else {
		l.head = nil
	}
	l.len--
	return item
}

func (l *list) remove(item *listItem) {
	if item.prev != nil {
		item.prev.next = item.next
	} else {
		l.head = item.next
	}
	if item.next != nil {
		item.next.prev = item.prev
	} else {
		l.tail = item.prev
	}
	l.len--
}

// New creates a cache holding at most maxSize entries.
func New(maxSize int) *TreeCache {
	if maxSize < 1 {
		maxSize = 1
	}
	return &TreeCache{
		items:   make(map[string]*listItem),
		lru:     &list{},
		maxSize: maxSize,
	}
}

// Get returns the cached tree for a path when the stored modification time
// matches. A stale entry is dropped and reported as a miss.
func (c *TreeCache) Get(path string, modTime time.Time) (*syntax.FileTree, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[path]
	if !ok {
		return nil, false
	}
	if item.ModTime != modTime.UnixNano() {
		c.lru.remove(item)
		delete(c.items, path)
		return nil, false
	}
	c.lru.moveToFront(item)
	return item.Tree, true
}

// Set stores a tree for a path, evicting the least recently used entry when
// full.
func (c *TreeCache) Set(path string, modTime time.Time, tree *syntax.FileTree) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if item, ok := c.items[path]; ok {
		item.ModTime = modTime.UnixNano()
		item.Tree = tree
		c.lru.moveToFront(item)
		return
	}

	item := &listItem{Entry: Entry{Key: path, ModTime: modTime.UnixNano(), Tree: tree}}
	c.items[path] = item
	c.lru.pushFront(item)

	for c.lru.len > c.maxSize {
		if evicted := c.lru.removeBack(); evicted != nil {
			delete(c.items, evicted.Key)
		}
	}
}

// Len returns the number of cached entries.
func (c *TreeCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lru.len
}

// Save writes the cache contents in LRU order.
func (c *TreeCache) Save(w io.Writer) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := make([]Entry, 0, c.lru.len)
	for item := c.lru.head; item != nil; item = item.next {
		entries = append(entries, item.Entry)
	}
	if err := msgpack.NewEncoder(w).Encode(entries); err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}
	return nil
}

// Load restores previously saved entries. Existing entries with the same key
// are overwritten.
func (c *TreeCache) Load(r io.Reader) error {
	var entries []Entry
	if err := msgpack.NewDecoder(r).Decode(&entries); err != nil {
		return fmt.Errorf("decoding cache: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Decode order is most recent first; insert back to front so the LRU
	// order survives the round trip.
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if item, ok := c.items[e.Key]; ok {
			c.lru.remove(item)
			delete(c.items, e.Key)
		}
		item := &listItem{Entry: e}
		c.items[e.Key] = item
		c.lru.pushFront(item)
	}
	for c.lru.len > c.maxSize {
		if evicted := c.lru.removeBack(); evicted != nil {
			delete(c.items, evicted.Key)
		}
	}
	return nil
}

// SaveFile persists the cache to a file, creating parent directories.
func (c *TreeCache) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating cache file: %w", err)
	}
	defer f.Close()
	return c.Save(f)
}

// LoadFile restores the cache from a file. A missing file is not an error.
func (c *TreeCache) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening cache file: %w", err)
	}
	defer f.Close()
	return c.Load(f)
}
