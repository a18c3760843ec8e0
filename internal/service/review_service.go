package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopease-next/internal/logger"
	"github.com/shopease-next/internal/models"
	"github.com/shopease-next/internal/repository"
)

const (
	minReviewRating = 1
	maxReviewRating = 5
)

// ReviewService 商品评价服务
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	catalog    Catalog
}

// CreateReviewInput 创建评价输入
type CreateReviewInput struct {
	ProductID uint
	UserID    uint
	Rating    int
	Comment   string
}

// UpdateReviewInput 更新评价输入，nil 字段保持不变
type UpdateReviewInput struct {
	Rating  *int
	Comment *string
}

// NewReviewService 创建评价服务
func NewReviewService(reviewRepo repository.ReviewRepository, catalog Catalog) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		catalog:    catalog,
	}
}

// CreateReview 创建评价
func (s *ReviewService) CreateReview(ctx context.Context, input CreateReviewInput) (*models.Review, error) {
	if !isValidRating(input.Rating) {
		return nil, ErrInvalidRating
	}
	if _, err := s.catalog.GetProduct(ctx, input.ProductID); err != nil {
		return nil, err
	}
	review := &models.Review{
		ProductID: input.ProductID,
		UserID:    input.UserID,
		Rating:    input.Rating,
		Comment:   strings.TrimSpace(input.Comment),
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, wrapStoreErr(err)
	}
	logger.FromContext(ctx).Infow("review_created", "review_id", review.ID, "product_id", review.ProductID, "user_id", review.UserID)
	return review, nil
}

// UpdateReview 更新评价
func (s *ReviewService) UpdateReview(ctx context.Context, reviewID uint, input UpdateReviewInput) (*models.Review, error) {
	updates := map[string]interface{}{}
	if input.Rating != nil {
		if !isValidRating(*input.Rating) {
			return nil, ErrInvalidRating
		}
		updates["rating"] = *input.Rating
	}
	if input.Comment != nil {
		updates["comment"] = strings.TrimSpace(*input.Comment)
	}

	if len(updates) == 0 {
		return s.GetReview(ctx, reviewID)
	}
	updates["updated_at"] = time.Now()
	affected, err := s.reviewRepo.Update(ctx, reviewID, updates)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if affected == 0 {
		return nil, ErrReviewNotFound
	}
	return s.GetReview(ctx, reviewID)
}

// DeleteReview 删除评价
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID uint) error {
	affected, err := s.reviewRepo.Delete(ctx, reviewID)
	if err != nil {
		return wrapStoreErr(err)
	}
	if affected == 0 {
		return ErrReviewNotFound
	}
	logger.FromContext(ctx).Infow("review_deleted", "review_id", reviewID)
	return nil
}

// GetReview 获取评价详情
func (s *ReviewService) GetReview(ctx context.Context, reviewID uint) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

// ListReviews 获取评价列表（最新优先）
func (s *ReviewService) ListReviews(ctx context.Context, filter repository.ReviewListFilter) ([]models.Review, int64, error) {
	reviews, total, err := s.reviewRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, wrapStoreErr(err)
	}
	return reviews, total, nil
}

func isValidRating(rating int) bool {
	return rating >= minReviewRating && rating <= maxReviewRating
}
