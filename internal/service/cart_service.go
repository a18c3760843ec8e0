package service

import (
	"context"
	"time"

	"github.com/shopease-next/internal/constants"
	"github.com/shopease-next/internal/logger"
	"github.com/shopease-next/internal/models"
	"github.com/shopease-next/internal/repository"
)

// CartItemView 购物车项展示数据（每次请求时从商品目录解析，不落库）
type CartItemView struct {
	ID        uint         `json:"id"`
	ProductID uint         `json:"product_id"`
	Quantity  int          `json:"quantity"`
	Available bool         `json:"available"`
	Name      string       `json:"name,omitempty"`
	Image     string       `json:"image,omitempty"`
	Stock     int          `json:"stock"`
	UnitPrice models.Money `json:"unit_price"`
	LineTotal models.Money `json:"line_total"`
}

// CartView 购物车展示数据
type CartView struct {
	ID            uint           `json:"id"`
	UserID        uint           `json:"user_id"`
	Items         []CartItemView `json:"items"`
	TotalQuantity int            `json:"total_quantity"`
	Subtotal      models.Money   `json:"subtotal"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// CartService 购物车服务
type CartService struct {
	cartRepo repository.CartRepository
	catalog  Catalog
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, catalog Catalog) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		catalog:  catalog,
	}
}

// GetCart 获取用户购物车，不存在时创建空购物车
func (s *CartService) GetCart(ctx context.Context, userID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return s.project(ctx, cart)
}

// AddItem 加入购物车：同一商品合并数量，否则追加新项
func (s *CartService) AddItem(ctx context.Context, userID, productID uint, quantity int) (*CartView, error) {
	if !isValidQuantity(quantity) {
		return nil, ErrInvalidQuantity
	}
	if _, err := s.catalog.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	cart, err := s.cartRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	merged, err := s.cartRepo.MergeItem(ctx, cart.ID, productID, quantity, constants.MaxItemQuantity)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if !merged {
		return nil, ErrInvalidQuantity
	}
	logger.FromContext(ctx).Debugw("cart_item_added", "user_id", userID, "product_id", productID, "quantity", quantity)
	return s.reload(ctx, userID)
}

// SetItemQuantity 覆盖购物车项数量
// 数量必须在 [1, MaxItemQuantity] 内，移除购物车项请使用 RemoveItem
func (s *CartService) SetItemQuantity(ctx context.Context, userID, itemID uint, quantity int) (*CartView, error) {
	if !isValidQuantity(quantity) {
		return nil, ErrInvalidQuantity
	}
	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if cart == nil {
		return nil, ErrCartItemNotFound
	}
	affected, err := s.cartRepo.UpdateItemQuantity(ctx, cart.ID, itemID, quantity)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if affected == 0 {
		return nil, ErrCartItemNotFound
	}
	logger.FromContext(ctx).Debugw("cart_item_quantity_set", "user_id", userID, "item_id", itemID, "quantity", quantity)
	return s.reload(ctx, userID)
}

// RemoveItem 移除购物车项，项不存在时视为成功
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if cart == nil {
		return s.project(ctx, &models.Cart{UserID: userID})
	}
	affected, err := s.cartRepo.DeleteItem(ctx, cart.ID, itemID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if affected > 0 {
		logger.FromContext(ctx).Debugw("cart_item_removed", "user_id", userID, "item_id", itemID)
	}
	return s.reload(ctx, userID)
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, userID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if err := s.cartRepo.ClearItems(ctx, cart.ID); err != nil {
		return nil, wrapStoreErr(err)
	}
	return s.reload(ctx, userID)
}

func (s *CartService) reload(ctx context.Context, userID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID}
	}
	return s.project(ctx, cart)
}

// project 解析商品展示数据并计算小计；已下架的商品标记为不可用且不计入小计
func (s *CartService) project(ctx context.Context, cart *models.Cart) (*CartView, error) {
	view := &CartView{
		ID:        cart.ID,
		UserID:    cart.UserID,
		Items:     make([]CartItemView, 0, len(cart.Items)),
		UpdatedAt: cart.UpdatedAt,
	}
	if len(cart.Items) == 0 {
		view.Subtotal = models.ZeroMoney()
		return view, nil
	}

	ids := make([]uint, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.catalog.GetProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	subtotal := models.ZeroMoney()
	for _, item := range cart.Items {
		itemView := CartItemView{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		view.TotalQuantity += item.Quantity
		if product, ok := products[item.ProductID]; ok {
			lineTotal := product.Price.Times(item.Quantity)
			itemView.Available = true
			itemView.Name = product.Name
			itemView.Image = product.Image
			itemView.Stock = product.Stock
			itemView.UnitPrice = product.Price
			itemView.LineTotal = lineTotal
			subtotal = subtotal.Plus(lineTotal)
		}
		view.Items = append(view.Items, itemView)
	}
	view.Subtotal = subtotal
	return view, nil
}
