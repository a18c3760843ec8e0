package service

import (
	"context"

	"github.com/shopease-next/internal/models"
	"github.com/shopease-next/internal/repository"
)

// CategoryService 分类业务服务
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// List 获取分类列表
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return categories, nil
}

// UpsertBySlug 按 slug 创建或更新分类，返回持久化后的记录
func (s *CategoryService) UpsertBySlug(ctx context.Context, category *models.Category) (*models.Category, error) {
	existing, err := s.repo.GetBySlug(ctx, category.Slug)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if existing == nil {
		if err := s.repo.Create(ctx, category); err != nil {
			return nil, wrapStoreErr(err)
		}
		return category, nil
	}
	existing.Name = category.Name
	existing.Description = category.Description
	existing.Icon = category.Icon
	existing.SortOrder = category.SortOrder
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, wrapStoreErr(err)
	}
	return existing, nil
}
