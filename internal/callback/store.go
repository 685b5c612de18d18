package callback

import (
	"context"
	"sync"
)

// NotificationStore 幂等存储：业务单号 -> 处理状态
// 状态机只有 UNSEEN -> PROCESSED 一条终态迁移，记录在保留窗口内不删除
type NotificationStore interface {
	// MarkProcessed 原子置位，first 为 true 表示本次调用完成了首次迁移
	MarkProcessed(ctx context.Context, bizID string) (first bool, err error)
	// Processed 查询是否已处理
	Processed(ctx context.Context, bizID string) (bool, error)
}

// MemoryStore 进程内幂等存储，单实例部署与测试使用
type MemoryStore struct {
	mu   sync.Mutex
	done map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{done: make(map[string]struct{})}
}

func (s *MemoryStore) MarkProcessed(_ context.Context, bizID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.done[bizID]; ok {
		return false, nil
	}
	s.done[bizID] = struct{}{}
	return true, nil
}

func (s *MemoryStore) Processed(_ context.Context, bizID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.done[bizID]
	return ok, nil
}

// keyedMutex 按业务单号互斥，避免同一单号并发重入
// 引用计数归零即回收条目，互斥表不随历史单号增长
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyLock)}
}

func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
