package provider

import (
	"github.com/shopease-next/internal/authz"
	"github.com/shopease-next/internal/cache"
	"github.com/shopease-next/internal/config"
	"github.com/shopease-next/internal/events"
	"github.com/shopease-next/internal/logger"
	"github.com/shopease-next/internal/models"
	"github.com/shopease-next/internal/queue"
	"github.com/shopease-next/internal/repository"
	"github.com/shopease-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config         *config.Config
	QueueClient    *queue.Client
	EventPublisher events.Publisher

	// Repositories
	UserRepo     repository.UserRepository
	CategoryRepo repository.CategoryRepository
	ProductRepo  repository.ProductRepository
	CartRepo     repository.CartRepository
	OrderRepo    repository.OrderRepository
	ReviewRepo   repository.ReviewRepository

	// Services
	AuthzService    *authz.Service
	UserAuthService *service.UserAuthService
	ProductService  *service.ProductService
	CategoryService *service.CategoryService
	CartService     *service.CartService
	OrderService    *service.OrderService
	CheckoutService *service.CheckoutService
	ReviewService   *service.ReviewService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端，未启用时状态变更在请求内同步处理
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	publisher, err := events.NewPublisher(&cfg.Events)
	if err != nil {
		logger.Warnw("provider_init_event_publisher_failed", "error", err)
		publisher = events.NopPublisher{}
	}

	c := &Container{
		Config:         cfg,
		QueueClient:    queueClient,
		EventPublisher: publisher,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, nil)
	c.ProductService = service.NewProductService(c.ProductRepo, c.Config.Catalog.CacheTTL())
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductService)

	var notifier service.OrderStatusNotifier
	if c.QueueClient != nil {
		notifier = c.QueueClient
	}
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, notifier)
	c.OrderService.SetEventPublisher(c.EventPublisher)
	c.CheckoutService = service.NewCheckoutService(c.CartRepo, c.OrderRepo, c.OrderService)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ProductService)
}

// Close 释放外部连接
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("provider_close_queue_client_failed", "error", err)
		}
	}
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			logger.Warnw("provider_close_event_publisher_failed", "error", err)
		}
	}
	if err := cache.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
}
