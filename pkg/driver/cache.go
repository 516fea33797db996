package driver

import (
	"sync"

	"github.com/edwingeng/deque"
	"github.com/zeebo/blake3"

	"manipula/interpreter-go/pkg/ast"
)

// parseCache keeps successfully compiled programs keyed by the BLAKE3 digest
// of their source text. When full, the oldest entry is evicted first. Cached
// programs are shared between runs; evaluation never mutates the AST.
type parseCache struct {
	mu      sync.Mutex
	size    int
	entries map[string]*ast.Program
	order   deque.Deque // keys, oldest at the front
}

func newParseCache(size int) *parseCache {
	return &parseCache{
		size:    size,
		entries: make(map[string]*ast.Program),
		order:   deque.NewDeque(),
	}
}

func cacheKey(src string) string {
	h := blake3.New()
	_, _ = h.Write([]byte(src))
	return string(h.Sum(nil))
}

func (c *parseCache) get(key string) (*ast.Program, bool) {
	if c == nil || c.size == 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	program, ok := c.entries[key]
	return program, ok
}

func (c *parseCache) put(key string, program *ast.Program) {
	if c == nil || c.size == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		c.entries[key] = program
		return
	}
	c.entries[key] = program
	c.order.PushBack(key)
	for c.order.Len() > c.size {
		oldest := c.order.Front().(string)
		c.order.PopFront()
		delete(c.entries, oldest)
	}
}

func (c *parseCache) len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
