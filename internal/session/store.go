package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Store remembers which student profile a parent last selected, so the app
// can restore it across visits. Absence is not an error: callers fall back
// to the family's first student.
type Store interface {
	SelectedStudent(ctx context.Context, parentID uint) (string, error)
	SetSelectedStudent(ctx context.Context, parentID uint, studentID string) error
	ClearSelectedStudent(ctx context.Context, parentID uint) error
}

const selectedStudentTTL = 30 * 24 * time.Hour

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func selectedStudentKey(parentID uint) string {
	return fmt.Sprintf("session:parent:%d:selected_student", parentID)
}

func (s *RedisStore) SelectedStudent(ctx context.Context, parentID uint) (string, error) {
	val, err := s.client.Get(ctx, selectedStudentKey(parentID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *RedisStore) SetSelectedStudent(ctx context.Context, parentID uint, studentID string) error {
	return s.client.Set(ctx, selectedStudentKey(parentID), studentID, selectedStudentTTL).Err()
}

func (s *RedisStore) ClearSelectedStudent(ctx context.Context, parentID uint) error {
	return s.client.Del(ctx, selectedStudentKey(parentID)).Err()
}

// MemoryStore backs tests and redis-less local runs.
type MemoryStore struct {
	mu       sync.RWMutex
	selected map[uint]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{selected: make(map[uint]string)}
}

func (s *MemoryStore) SelectedStudent(_ context.Context, parentID uint) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected[parentID], nil
}

func (s *MemoryStore) SetSelectedStudent(_ context.Context, parentID uint, studentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected[parentID] = studentID
	return nil
}

func (s *MemoryStore) ClearSelectedStudent(_ context.Context, parentID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selected, parentID)
	return nil
}
