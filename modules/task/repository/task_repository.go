package repository

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"go-assistant-api/core/logger"
	"go-assistant-api/core/persistence"
	"go-assistant-api/modules/task/entity"
)

// TaskRepository keeps the to-do list in memory, snapshot-persisted on every
// mutation like the event store.
type TaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]entity.Task

	store persistence.Store
	key   string
}

func NewTaskRepository(store persistence.Store, key string) *TaskRepository {
	r := &TaskRepository{
		tasks: make(map[string]entity.Task),
		store: store,
		key:   key,
	}
	r.load()
	return r
}

func (r *TaskRepository) Upsert(ctx context.Context, task entity.Task) {
	r.mu.Lock()
	r.tasks[task.ID] = task
	r.mu.Unlock()
	r.persist(ctx)
}

func (r *TaskRepository) Remove(ctx context.Context, id string) {
	r.mu.Lock()
	_, ok := r.tasks[id]
	delete(r.tasks, id)
	r.mu.Unlock()
	if ok {
		r.persist(ctx)
	}
}

func (r *TaskRepository) Get(id string) (entity.Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	task, ok := r.tasks[id]
	return task, ok
}

// List returns all tasks, newest first.
func (r *TaskRepository) List() []entity.Task {
	r.mu.RLock()
	tasks := make([]entity.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		tasks = append(tasks, t)
	}
	r.mu.RUnlock()

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks
}

func (r *TaskRepository) persist(ctx context.Context) {
	if r.store == nil {
		return
	}
	data, err := json.Marshal(r.List())
	if err != nil {
		logger.Error("TaskRepository:persist:Marshal:Error", "error", err)
		return
	}
	if err := r.store.Save(ctx, r.key, data); err != nil {
		logger.Warn("TaskRepository:persist:Save:Error", "error", err, "key", r.key)
	}
}

func (r *TaskRepository) load() {
	if r.store == nil {
		return
	}
	data, err := r.store.Load(context.Background(), r.key)
	if err == persistence.ErrNotFound {
		return
	}
	if err != nil {
		logger.Warn("TaskRepository:load:Error", "error", err, "key", r.key)
		return
	}

	var tasks []entity.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		logger.Warn("TaskRepository:load:Unmarshal:Error", "error", err, "key", r.key)
		return
	}
	for _, t := range tasks {
		r.tasks[t.ID] = t
	}
}
