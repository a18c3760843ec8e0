package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopease-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetByUser(ctx context.Context, userID uint) (*models.Cart, error)
	GetOrCreateByUser(ctx context.Context, userID uint) (*models.Cart, error)
	MergeItem(ctx context.Context, cartID, productID uint, quantity, maxQuantity int) (bool, error)
	UpdateItemQuantity(ctx context.Context, cartID, itemID uint, quantity int) (int64, error)
	DeleteItem(ctx context.Context, cartID, itemID uint) (int64, error)
	ClearItems(ctx context.Context, cartID uint) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

func preloadCartItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
}

// GetByUser 获取用户购物车（含购物车项），不存在时返回 nil
func (r *GormCartRepository) GetByUser(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := preloadCartItems(r.db.WithContext(ctx)).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// GetOrCreateByUser 获取用户购物车，不存在时创建
func (r *GormCartRepository) GetOrCreateByUser(ctx context.Context, userID uint) (*models.Cart, error) {
	cart, err := r.GetByUser(ctx, userID)
	if err != nil || cart != nil {
		return cart, err
	}
	created := &models.Cart{UserID: userID}
	createErr := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(created).Error
	if createErr != nil {
		return nil, createErr
	}
	// 并发创建时以数据库中的记录为准
	return r.GetByUser(ctx, userID)
}

// MergeItem 按商品合并购物车项：已存在则累加数量，否则新增。
// 合并后数量超过 maxQuantity 时不写入并返回 false。
func (r *GormCartRepository) MergeItem(ctx context.Context, cartID, productID uint, quantity, maxQuantity int) (bool, error) {
	if quantity > maxQuantity {
		return false, nil
	}
	now := time.Now()
	item := &models.CartItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + ?", quantity),
			"updated_at": now,
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			gorm.Expr("cart_items.quantity + ? <= ?", quantity, maxQuantity),
		}},
	}).Create(item)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateItemQuantity 覆盖购物车项数量，返回影响行数
func (r *GormCartRepository) UpdateItemQuantity(ctx context.Context, cartID, itemID uint, quantity int) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

// DeleteItem 删除购物车项，返回影响行数
func (r *GormCartRepository) DeleteItem(ctx context.Context, cartID, itemID uint) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ? AND cart_id = ?", itemID, cartID).Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

// ClearItems 清空购物车项（保留购物车记录）
func (r *GormCartRepository) ClearItems(ctx context.Context, cartID uint) error {
	return r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
