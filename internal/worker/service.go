package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/shopease-next/internal/config"
	"github.com/shopease-next/internal/logger"
	"github.com/shopease-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 订单状态任务消费服务，生命周期由 app.Runner 管理
type Service struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	queues   map[string]int
	stopOnce sync.Once
	stopped  chan struct{}
}

// NewService 创建消费服务，队列未启用时返回错误
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		server:  asynq.NewServer(opt, serverCfg),
		mux:     mux,
		queues:  serverCfg.Queues,
		stopped: make(chan struct{}),
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	return "order-worker"
}

// Start 启动消费并阻塞到 ctx 结束。
// 使用 Start 而非 Run，信号由 Runner 统一处理。
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if err := s.server.Start(s.mux); err != nil {
		return err
	}
	logger.Infow("order_worker_started", "queues", s.queues)
	<-ctx.Done()
	return ctx.Err()
}

// Stop 等待进行中的任务结束后关闭
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	s.stopOnce.Do(func() {
		go func() {
			s.server.Shutdown()
			close(s.stopped)
		}()
	})
	select {
	case <-s.stopped:
		logger.Infow("order_worker_stopped")
	case <-ctx.Done():
		logger.Warnw("order_worker_stop_timeout", "error", ctx.Err())
		return ctx.Err()
	}
	return nil
}
