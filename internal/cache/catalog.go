package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/shopease-next/internal/models"
)

func productSnapshotKey(productID uint) string {
	return fmt.Sprintf("catalog:product:%d", productID)
}

// GetProductSnapshot 读取商品快照
func GetProductSnapshot(ctx context.Context, productID uint) (*models.Product, bool, error) {
	if productID == 0 {
		return nil, false, nil
	}
	var product models.Product
	hit, err := GetJSON(ctx, productSnapshotKey(productID), &product)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &product, true, nil
}

// SetProductSnapshot 写入商品快照，ttl 为 0 时不缓存
func SetProductSnapshot(ctx context.Context, product *models.Product, ttl time.Duration) error {
	if product == nil || product.ID == 0 || ttl <= 0 {
		return nil
	}
	return SetJSON(ctx, productSnapshotKey(product.ID), product, ttl)
}

// DelProductSnapshot 删除商品快照
func DelProductSnapshot(ctx context.Context, productID uint) error {
	if productID == 0 {
		return nil
	}
	return Del(ctx, productSnapshotKey(productID))
}
