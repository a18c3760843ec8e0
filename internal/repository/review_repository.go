package repository

import (
	"context"
	"errors"

	"github.com/shopease-next/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository 评价数据访问接口
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
	List(ctx context.Context, filter ReviewListFilter) ([]models.Review, int64, error)
}

// GormReviewRepository GORM 实现
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓库
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Create 创建评价
func (r *GormReviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Omit("User").Create(review).Error
}

// preloadReviewAuthor 只加载作者的公开字段
func preloadReviewAuthor(db *gorm.DB) *gorm.DB {
	return db.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name")
	})
}

// GetByID 根据 ID 获取评价
func (r *GormReviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := preloadReviewAuthor(r.db.WithContext(ctx)).First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// Update 按字段更新评价，返回影响行数
func (r *GormReviewRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (int64, error) {
	if len(updates) == 0 {
		var count int64
		err := r.db.WithContext(ctx).Model(&models.Review{}).Where("id = ?", id).Count(&count).Error
		return count, err
	}
	result := r.db.WithContext(ctx).Model(&models.Review{}).Where("id = ?", id).Updates(updates)
	return result.RowsAffected, result.Error
}

// Delete 删除评价，返回影响行数
func (r *GormReviewRepository) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	return result.RowsAffected, result.Error
}

// List 评价列表（最新优先）
func (r *GormReviewRepository) List(ctx context.Context, filter ReviewListFilter) ([]models.Review, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Review{})
	if filter.ProductID != 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}

	query, total, err := countThenPage(query, filter.Page, filter.PageSize)
	if err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	if err := preloadReviewAuthor(query).Order("created_at DESC, id DESC").Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}
