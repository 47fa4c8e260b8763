package repository

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"go-assistant-api/core/logger"
	"go-assistant-api/core/persistence"
	"go-assistant-api/modules/notification/entity"
)

// NotificationRepository keeps notifications in memory, snapshot-persisted
// on every mutation.
type NotificationRepository struct {
	mu            sync.RWMutex
	notifications map[string]entity.Notification

	store persistence.Store
	key   string
}

func NewNotificationRepository(store persistence.Store, key string) *NotificationRepository {
	r := &NotificationRepository{
		notifications: make(map[string]entity.Notification),
		store:         store,
		key:           key,
	}
	r.load()
	return r
}

func (r *NotificationRepository) Create(ctx context.Context, n entity.Notification) {
	r.mu.Lock()
	r.notifications[n.ID] = n
	r.mu.Unlock()
	r.persist(ctx)
}

// List returns all notifications, newest first.
func (r *NotificationRepository) List() []entity.Notification {
	r.mu.RLock()
	out := make([]entity.Notification, 0, len(r.notifications))
	for _, n := range r.notifications {
		out = append(out, n)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *NotificationRepository) CountUnread() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, n := range r.notifications {
		if !n.IsRead {
			count++
		}
	}
	return count
}

// MarkAsRead flags the given ids; unknown ids are ignored.
func (r *NotificationRepository) MarkAsRead(ctx context.Context, ids []string) {
	r.mu.Lock()
	changed := false
	for _, id := range ids {
		if n, ok := r.notifications[id]; ok && !n.IsRead {
			n.IsRead = true
			r.notifications[id] = n
			changed = true
		}
	}
	r.mu.Unlock()
	if changed {
		r.persist(ctx)
	}
}

func (r *NotificationRepository) persist(ctx context.Context) {
	if r.store == nil {
		return
	}
	data, err := json.Marshal(r.List())
	if err != nil {
		logger.Error("NotificationRepository:persist:Marshal:Error", "error", err)
		return
	}
	if err := r.store.Save(ctx, r.key, data); err != nil {
		logger.Warn("NotificationRepository:persist:Save:Error", "error", err, "key", r.key)
	}
}

func (r *NotificationRepository) load() {
	if r.store == nil {
		return
	}
	data, err := r.store.Load(context.Background(), r.key)
	if err == persistence.ErrNotFound {
		return
	}
	if err != nil {
		logger.Warn("NotificationRepository:load:Error", "error", err, "key", r.key)
		return
	}

	var notifications []entity.Notification
	if err := json.Unmarshal(data, &notifications); err != nil {
		logger.Warn("NotificationRepository:load:Unmarshal:Error", "error", err, "key", r.key)
		return
	}
	for _, n := range notifications {
		r.notifications[n.ID] = n
	}
}
