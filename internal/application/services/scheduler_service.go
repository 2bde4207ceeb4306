package services

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/easayliu/media-gallery/internal/application/contracts"
	"github.com/easayliu/media-gallery/internal/infrastructure/config"
	"github.com/easayliu/media-gallery/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CacheInvalidator 调度任务只需要失效能力
type CacheInvalidator interface {
	Invalidate(target contracts.InvalidationTarget) error
}

// ScheduledJob 已注册任务的运行状态
type ScheduledJob struct {
	Name    string    `json:"name"`
	Cron    string    `json:"cron"`
	Target  string    `json:"target"`
	NextRun time.Time `json:"next_run"`
	LastRun time.Time `json:"last_run,omitempty"`
}

type SchedulerService struct {
	cron        *cron.Cron
	invalidator CacheInvalidator
	tasks       []config.InvalidationTask
	jobs        map[string]cron.EntryID
	lastRun     map[string]time.Time
	mu          sync.RWMutex
	running     bool
}

func NewSchedulerService(invalidator CacheInvalidator, tasks []config.InvalidationTask) *SchedulerService {
	return &SchedulerService{
		cron:        cron.New(), // 使用标准5字段格式（分 时 日 月 周）
		invalidator: invalidator,
		tasks:       tasks,
		jobs:        make(map[string]cron.EntryID),
		lastRun:     make(map[string]time.Time),
	}
}

// Start 启动调度器
// 任一启用任务的cron表达式无效时返回错误,不启动
func (s *SchedulerService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	for _, task := range s.tasks {
		if !task.Enabled {
			continue
		}
		if err := s.scheduleTask(task); err != nil {
			s.removeAll()
			return fmt.Errorf("failed to schedule task %s: %w", task.Name, err)
		}
	}

	s.cron.Start()
	s.running = true
	logger.Info("Scheduler service started", "jobs", len(s.jobs))

	return nil
}

// Stop 停止调度器,等待正在执行的任务结束
func (s *SchedulerService) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.removeAll()
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	logger.Info("Scheduler service stopped")
}

// IsRunning 调度器是否在运行
func (s *SchedulerService) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Jobs 已注册的任务,按名称排序
func (s *SchedulerService) Jobs() []ScheduledJob {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]ScheduledJob, 0, len(s.jobs))
	for _, task := range s.tasks {
		entryID, ok := s.jobs[task.Name]
		if !ok {
			continue
		}
		jobs = append(jobs, ScheduledJob{
			Name:    task.Name,
			Cron:    task.Cron,
			Target:  task.Target,
			NextRun: s.cron.Entry(entryID).Next,
			LastRun: s.lastRun[task.Name],
		})
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Name < jobs[j].Name })
	return jobs
}

// RunTaskNow 立即执行指定任务,不影响其调度
func (s *SchedulerService) RunTaskNow(name string) error {
	for _, task := range s.tasks {
		if task.Name == name {
			s.executeTask(task)
			return nil
		}
	}
	return fmt.Errorf("task not found: %s", name)
}

// scheduleTask 调度单个任务（内部方法，需要加锁）
func (s *SchedulerService) scheduleTask(task config.InvalidationTask) error {
	if _, exists := s.jobs[task.Name]; exists {
		return fmt.Errorf("duplicate task name")
	}

	entryID, err := s.cron.AddFunc(task.Cron, func() {
		s.executeTask(task)
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", task.Cron, err)
	}

	s.jobs[task.Name] = entryID
	logger.Debug("Scheduled invalidation task", "name", task.Name, "cron", task.Cron, "target", task.Target)
	return nil
}

// removeAll 移除所有调度（内部方法，需要加锁）
func (s *SchedulerService) removeAll() {
	for name, entryID := range s.jobs {
		s.cron.Remove(entryID)
		delete(s.jobs, name)
	}
}

// executeTask 执行任务
func (s *SchedulerService) executeTask(task config.InvalidationTask) {
	logger.Info("Executing scheduled invalidation", "name", task.Name, "target", task.Target)

	s.mu.Lock()
	s.lastRun[task.Name] = time.Now()
	s.mu.Unlock()

	if err := s.invalidator.Invalidate(contracts.InvalidationTarget(task.Target)); err != nil {
		logger.Error("Scheduled invalidation failed", "name", task.Name, "error", err)
	}
}
