package cache

import (
	"context"
	"sync"

	"github.com/DanRulev/flashbot.git/internal/models"
)

type Cache struct {
	mu       sync.Mutex
	sessions map[int64]models.Session
}

func NewCache() *Cache {
	return &Cache{
		sessions: make(map[int64]models.Session),
	}
}

func (c *Cache) SetSession(_ context.Context, userID int64, session models.Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[userID] = session
	return nil
}

func (c *Cache) Session(_ context.Context, userID int64) (models.Session, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	session, exists := c.sessions[userID]
	return session, exists, nil
}

func (c *Cache) DeleteSession(_ context.Context, userID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, userID)
	return nil
}
