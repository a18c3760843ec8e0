package service

import (
	"strings"

	"github.com/shopease-next/internal/constants"
	"github.com/shopease-next/internal/models"
)

// OrderLine 下单行（商品 + 数量）
type OrderLine struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// BuildOrder 根据下单行与商品快照构建待持久化的订单
// 单价取自当前商品价格，总额为各行 数量×单价 的精确和
func BuildOrder(userID uint, lines []OrderLine, products map[uint]*models.Product, shippingAddress string) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	address := strings.TrimSpace(shippingAddress)
	if address == "" {
		return nil, ErrShippingAddressRequired
	}
	merged, err := mergeOrderLines(lines)
	if err != nil {
		return nil, err
	}

	total := models.ZeroMoney()
	items := make([]models.OrderItem, 0, len(merged))
	for _, line := range merged {
		product, ok := products[line.ProductID]
		if !ok || product == nil {
			return nil, ErrProductNotFound
		}
		unitPrice := models.NewMoneyFromDecimal(product.Price.Decimal)
		lineTotal := unitPrice.Times(line.Quantity)
		total = total.Plus(lineTotal)
		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   unitPrice,
			Quantity:    line.Quantity,
			TotalPrice:  lineTotal,
		})
	}

	return &models.Order{
		UserID:          userID,
		Status:          constants.OrderStatusPending,
		TotalAmount:     total,
		ShippingAddress: address,
		Items:           items,
	}, nil
}

// mergeOrderLines 合并重复商品的下单行，保持首次出现的顺序
func mergeOrderLines(lines []OrderLine) ([]OrderLine, error) {
	index := make(map[uint]int, len(lines))
	merged := make([]OrderLine, 0, len(lines))
	for _, line := range lines {
		if !isValidQuantity(line.Quantity) {
			return nil, ErrInvalidQuantity
		}
		if line.ProductID == 0 {
			return nil, ErrProductNotFound
		}
		if pos, ok := index[line.ProductID]; ok {
			merged[pos].Quantity += line.Quantity
			if merged[pos].Quantity > constants.MaxItemQuantity {
				return nil, ErrInvalidQuantity
			}
			continue
		}
		index[line.ProductID] = len(merged)
		merged = append(merged, line)
	}
	return merged, nil
}

// isValidQuantity 数量需在 [1, MaxItemQuantity] 区间内
func isValidQuantity(quantity int) bool {
	return quantity >= 1 && quantity <= constants.MaxItemQuantity
}

// orderLineProductIDs 提取下单行中的商品ID
func orderLineProductIDs(lines []OrderLine) []uint {
	ids := make([]uint, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	return ids
}
