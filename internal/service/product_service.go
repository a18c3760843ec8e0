package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopease-next/internal/cache"
	"github.com/shopease-next/internal/logger"
	"github.com/shopease-next/internal/models"
	"github.com/shopease-next/internal/repository"
)

// Catalog 商品目录查询接口（购物车、下单、评价共用）
// 商品不存在或已下架时返回 ErrProductNotFound
type Catalog interface {
	GetProduct(ctx context.Context, productID uint) (*models.Product, error)
	// GetProducts 批量查询，不存在的商品不出现在结果中
	GetProducts(ctx context.Context, productIDs []uint) (map[uint]*models.Product, error)
}

// ProductService 商品业务服务，同时作为 Catalog 实现
type ProductService struct {
	repo     repository.ProductRepository
	cacheTTL time.Duration
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, cacheTTL time.Duration) *ProductService {
	return &ProductService{repo: repo, cacheTTL: cacheTTL}
}

// ListPublic 获取公开商品列表
func (s *ProductService) ListPublic(ctx context.Context, categorySlug, search string, page, pageSize int) ([]models.Product, int64, error) {
	filter := repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategorySlug: strings.TrimSpace(categorySlug),
		Search:       search,
		OnlyActive:   true,
		WithCategory: true,
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, wrapStoreErr(err)
	}
	return products, total, nil
}

// GetPublic 获取公开商品详情
func (s *ProductService) GetPublic(ctx context.Context, productID uint) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetProduct 查询单个商品（优先读取缓存快照）
func (s *ProductService) GetProduct(ctx context.Context, productID uint) (*models.Product, error) {
	if productID == 0 {
		return nil, ErrProductNotFound
	}
	if cached, hit, err := cache.GetProductSnapshot(ctx, productID); err != nil {
		logger.FromContext(ctx).Warnw("catalog_cache_read_failed", "product_id", productID, "error", err)
	} else if hit {
		return cached, nil
	}

	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	s.remember(ctx, product)
	return product, nil
}

// GetProducts 批量查询商品
func (s *ProductService) GetProducts(ctx context.Context, productIDs []uint) (map[uint]*models.Product, error) {
	result := make(map[uint]*models.Product, len(productIDs))
	missing := make([]uint, 0, len(productIDs))
	seen := make(map[uint]struct{}, len(productIDs))
	for _, id := range productIDs {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if cached, hit, err := cache.GetProductSnapshot(ctx, id); err == nil && hit {
			result[id] = cached
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return result, nil
	}

	products, err := s.repo.ListByIDs(ctx, missing)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	for i := range products {
		product := &products[i]
		if !product.IsActive {
			continue
		}
		result[product.ID] = product
		s.remember(ctx, product)
	}
	return result, nil
}

// UpsertBySlug 按 slug 创建或更新商品（用于初始化目录数据）
func (s *ProductService) UpsertBySlug(ctx context.Context, product *models.Product) (bool, error) {
	existing, err := s.repo.GetBySlug(ctx, product.Slug)
	if err != nil {
		return false, wrapStoreErr(err)
	}
	if existing == nil {
		if err := s.repo.Create(ctx, product); err != nil {
			return false, wrapStoreErr(err)
		}
		return true, nil
	}
	product.ID = existing.ID
	product.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, product); err != nil {
		return false, wrapStoreErr(err)
	}
	if err := cache.DelProductSnapshot(ctx, product.ID); err != nil {
		logger.Warnw("catalog_cache_evict_failed", "product_id", product.ID, "error", err)
	}
	return false, nil
}

func (s *ProductService) remember(ctx context.Context, product *models.Product) {
	if err := cache.SetProductSnapshot(ctx, product, s.cacheTTL); err != nil {
		logger.FromContext(ctx).Warnw("catalog_cache_write_failed", "product_id", product.ID, "error", err)
	}
}
