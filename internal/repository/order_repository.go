package repository

import (
	"context"
	"errors"

	"github.com/shopease-next/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order, items []models.OrderItem) error
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	GetByIDAndUser(ctx context.Context, id uint, userID uint) (*models.Order, error)
	ListByUser(ctx context.Context, filter OrderListFilter) ([]models.Order, int64, error)
	ListAdmin(ctx context.Context, filter OrderListFilter) ([]models.Order, int64, error)
	UpdateStatusFrom(ctx context.Context, id uint, fromStatus, toStatus string, updates map[string]interface{}) (int64, error)
	CreateStatusLog(ctx context.Context, log *models.OrderStatusLog) error
	ListStatusLogs(ctx context.Context, orderID uint) ([]models.OrderStatusLog, error)
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) OrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Transaction 执行事务
func (r *GormOrderRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(fn)
}

func withItems(query *gorm.DB) *gorm.DB {
	return query.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
}

// Create 创建订单与订单项
func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit("Items").Create(order).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := db.Create(&items).Error; err != nil {
			return err
		}
	}
	order.Items = items
	return nil
}

// GetByID 根据 ID 获取订单
func (r *GormOrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := withItems(r.db.WithContext(ctx)).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDAndUser 获取用户订单详情
func (r *GormOrderRepository) GetByIDAndUser(ctx context.Context, id uint, userID uint) (*models.Order, error) {
	var order models.Order
	if err := withItems(r.db.WithContext(ctx)).Where("id = ? AND user_id = ?", id, userID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func applyOrderFilter(query *gorm.DB, filter OrderListFilter) *gorm.DB {
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OrderNo != "" {
		query = query.Where("order_no = ?", filter.OrderNo)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}
	return query
}

// ListByUser 获取用户订单列表
func (r *GormOrderRepository) ListByUser(ctx context.Context, filter OrderListFilter) ([]models.Order, int64, error) {
	if filter.UserID == 0 {
		return []models.Order{}, 0, nil
	}
	return r.list(ctx, filter)
}

// ListAdmin 管理端订单列表
func (r *GormOrderRepository) ListAdmin(ctx context.Context, filter OrderListFilter) ([]models.Order, int64, error) {
	return r.list(ctx, filter)
}

func (r *GormOrderRepository) list(ctx context.Context, filter OrderListFilter) ([]models.Order, int64, error) {
	query := applyOrderFilter(r.db.WithContext(ctx).Model(&models.Order{}), filter)
	query, total, err := countThenPage(query, filter.Page, filter.PageSize)
	if err != nil {
		return nil, 0, err
	}
	var orders []models.Order
	if err := withItems(query).Order("id DESC").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatusFrom 条件更新订单状态：仅当当前状态为 fromStatus 时生效，返回影响行数
func (r *GormOrderRepository) UpdateStatusFrom(ctx context.Context, id uint, fromStatus, toStatus string, updates map[string]interface{}) (int64, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = toStatus
	result := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// CreateStatusLog 写入订单状态变更记录
func (r *GormOrderRepository) CreateStatusLog(ctx context.Context, log *models.OrderStatusLog) error {
	if log == nil {
		return nil
	}
	return r.db.WithContext(ctx).Create(log).Error
}

// ListStatusLogs 获取订单状态变更记录（按时间正序）
func (r *GormOrderRepository) ListStatusLogs(ctx context.Context, orderID uint) ([]models.OrderStatusLog, error) {
	var logs []models.OrderStatusLog
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("changed_at ASC, id ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
