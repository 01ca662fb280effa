package taskqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	redisc "github.com/typeless-cms/core/internal/pkg/redis"
	"go.uber.org/zap"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskRunning   TaskStatus = "running"
	TaskCompleted TaskStatus = "completed"
	TaskFailed    TaskStatus = "failed"
)

// Task is a unit of background work stored in Redis. Tasks are executed
// exactly once; a failed task stays failed (no retry anywhere in this
// system).
type Task struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Status    TaskStatus      `json:"status"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

const (
	keyPrefix  = "tl:task:"
	keyPending = "tl:tasks:pending" // list: task ids awaiting execution
	taskTTL    = 7 * 24 * time.Hour
)

// Handler executes one task type.
type Handler func(ctx context.Context, payload json.RawMessage) error

// Service manages the Redis-backed task queue.
type Service struct {
	rc       *redisc.Client
	logger   *zap.Logger
	handlers map[string]Handler
}

func NewService(rc *redisc.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{rc: rc, logger: logger, handlers: map[string]Handler{}}
}

// Register binds a handler to a task type. Call before Run.
func (s *Service) Register(taskType string, h Handler) {
	s.handlers[taskType] = h
}

func (s *Service) taskKey(id string) string { return keyPrefix + id }

// Enqueue stores a new task and pushes it onto the pending list.
func (s *Service) Enqueue(ctx context.Context, taskType string, payload interface{}) (*Task, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	task := &Task{
		ID:        uuid.New().String(),
		Type:      taskType,
		Payload:   payloadBytes,
		Status:    TaskPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	data, err := json.Marshal(task)
	if err != nil {
		return nil, err
	}

	pipe := s.rc.Raw().TxPipeline()
	pipe.Set(ctx, s.taskKey(task.ID), data, taskTTL)
	pipe.LPush(ctx, keyPending, task.ID)
	_, err = pipe.Exec(ctx)
	return task, err
}

// GetByID retrieves a task by its ID.
func (s *Service) GetByID(ctx context.Context, id string) (*Task, error) {
	data, err := s.rc.Raw().Get(ctx, s.taskKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var task Task
	return &task, json.Unmarshal(data, &task)
}

// Run consumes the pending list until ctx is cancelled. Handler errors
// mark the task failed and are otherwise swallowed here; this queue
// only carries work whose failure the primary path already survived.
func (s *Service) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := s.rc.Raw().BRPop(ctx, 5*time.Second, keyPending).Result()
		if err != nil {
			if err == redis.Nil || ctx.Err() != nil {
				continue
			}
			s.logger.Warn("task queue pop failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		if len(res) < 2 {
			continue
		}
		s.execute(ctx, res[1])
	}
}

func (s *Service) execute(ctx context.Context, id string) {
	task, err := s.GetByID(ctx, id)
	if err != nil || task == nil {
		return
	}

	handler, ok := s.handlers[task.Type]
	if !ok {
		s.setStatus(ctx, task, TaskFailed, fmt.Sprintf("no handler for task type %q", task.Type))
		return
	}

	s.setStatus(ctx, task, TaskRunning, "")
	if err := handler(ctx, task.Payload); err != nil {
		s.logger.Warn("task failed",
			zap.String("task_id", task.ID),
			zap.String("type", task.Type),
			zap.Error(err),
		)
		s.setStatus(ctx, task, TaskFailed, err.Error())
		return
	}
	s.setStatus(ctx, task, TaskCompleted, "")
}

func (s *Service) setStatus(ctx context.Context, task *Task, status TaskStatus, errMsg string) {
	task.Status = status
	task.Error = errMsg
	task.UpdatedAt = time.Now()
	if data, err := json.Marshal(task); err == nil {
		_ = s.rc.Raw().Set(ctx, s.taskKey(task.ID), data, taskTTL).Err()
	}
}
