package cache

import (
	"container/list"
	"sync"

	"github.com/skumalo0115-commits/SmartRecs-AI-Movies/core"
)

// DefaultCapacity 是未指定容量时的 LRU 上限。
const DefaultCapacity = 256

// Cache 是推荐结果的进程内缓存。
//
// 条目按 (userID, fingerprint) 索引；指纹不匹配一律视为 miss，
// 不存在"命中旧指纹"的路径。容量超限时按 LRU 淘汰。
//
// 读、写、失效共用一把互斥锁（只锁缓存，不锁整个引擎）：
// 不同用户的推荐计算可以安全并发，计算本身发生在锁外。
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[key]*list.Element
	order    *list.List // Front = 最近使用
}

type key struct {
	userID      int64
	fingerprint string
}

type cacheEntry struct {
	key   key
	items []*core.Item
}

// New 创建容量为 capacity 的缓存；capacity <= 0 时使用 DefaultCapacity。
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[key]*list.Element),
		order:    list.New(),
	}
}

// GetOrCompute 按 (userID, fingerprint) 查缓存；命中直接返回，不调用 compute。
// miss 时在锁外执行 compute，成功后写入缓存并按需淘汰 LRU 条目。
// 无论命中与否，返回的都是独立副本：调用方改动 Score/Labels 不会污染缓存条目。
func (c *Cache) GetOrCompute(
	userID int64,
	fingerprint string,
	compute func() ([]*core.Item, error),
) ([]*core.Item, error) {
	k := key{userID: userID, fingerprint: fingerprint}

	c.mu.Lock()
	if el, ok := c.entries[k]; ok {
		c.order.MoveToFront(el)
		items := el.Value.(*cacheEntry).items
		c.mu.Unlock()
		return snapshot(items), nil
	}
	c.mu.Unlock()

	// 计算在锁外进行，不阻塞其他用户的缓存访问。
	// 同指纹的并发 miss 可能重复计算一次，结果相同（计算是纯函数），后写覆盖先写。
	items, err := compute()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[k]; ok {
		c.order.MoveToFront(el)
		el.Value.(*cacheEntry).items = items
		return snapshot(items), nil
	}

	el := c.order.PushFront(&cacheEntry{key: k, items: items})
	c.entries[k] = el

	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
	return snapshot(items), nil
}

// snapshot 复制条目内容：缓存内部持有的 Item 不外泄。
func snapshot(items []*core.Item) []*core.Item {
	out := make([]*core.Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

// Invalidate 删除某个用户的全部缓存条目。
// 该用户的任何评分变更（新增/修改/删除）后必须调用，保证用户看不到过期推荐。
func (c *Cache) Invalidate(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for el := c.order.Front(); el != nil; {
		next := el.Next()
		e := el.Value.(*cacheEntry)
		if e.key.userID == userID {
			c.order.Remove(el)
			delete(c.entries, e.key)
		}
		el = next
	}
}

// InvalidateAll 清空整个缓存（更粗粒度的兜底策略）。
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[key]*list.Element)
	c.order.Init()
}

// Len 返回当前缓存条目数。
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
