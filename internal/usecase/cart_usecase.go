package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// CartUsecase は /cart の業務ロジックです。
// カートは (顧客, 店舗) の組で1つ。チェックアウト前なので遷移バリデータは通らない。
type CartUsecase struct {
	customerRepo repo.CustomerRepository
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

func NewCartUsecase(
	customerRepo repo.CustomerRepository,
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		customerRepo: customerRepo,
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

type CartItemResponse struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type CartResponse struct {
	ID           int64              `json:"id"`
	RestaurantID int64              `json:"restaurant_id"`
	Items        []CartItemResponse `json:"items"`
	Total        int64              `json:"total"`
}

type AddCartItemInput struct {
	RestaurantID int64
	ProductID    int64
	Quantity     int64
}

// ログイン中ユーザーの顧客プロフィールを引く。未登録なら404。
func (u *CartUsecase) resolveCustomer(ctx context.Context, userID int64) (model.Customer, error) {
	c, err := u.customerRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return model.Customer{}, NewHTTPError(http.StatusNotFound, "customer not found")
	}
	if err != nil {
		return model.Customer{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

// 顧客の全カートを返す。
func (u *CartUsecase) ListCarts(ctx context.Context, userID int64) ([]CartResponse, error) {
	customer, err := u.resolveCustomer(ctx, userID)
	if err != nil {
		return nil, err
	}

	carts, err := u.cartRepo.ListByCustomerID(ctx, customer.ID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]CartResponse, 0, len(carts))
	for _, cart := range carts {
		resp, err := u.buildCartResponse(ctx, cart)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// カートに追加。対象店舗のカートが無ければ作る。
func (u *CartUsecase) AddItem(ctx context.Context, userID int64, in AddCartItemInput) (CartResponse, error) {
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	customer, err := u.resolveCustomer(ctx, userID)
	if err != nil {
		return CartResponse{}, err
	}

	// 商品チェック（指定店舗のものか）
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if p.RestaurantID != in.RestaurantID {
		//他店の商品は同じカートに入れられない
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
	}

	cart, err := u.cartRepo.GetOrCreate(ctx, customer.ID, in.RestaurantID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 同一商品は数量加算
	if _, err := u.cartItemRepo.UpsertByCartAndProduct(ctx, cart.ID, in.ProductID, in.Quantity); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart)
}

// 明細削除（所有チェックつき）。
func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, cartID int64, cartItemID int64) error {
	cart, err := u.ownedCart(ctx, userID, cartID)
	if err != nil {
		return err
	}

	item, err := u.cartItemRepo.FindByID(ctx, cartItemID)
	if err == repo.ErrNotFound || (err == nil && item.CartID != cart.ID) {
		return NewHTTPError(http.StatusNotFound, "cart item not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartItemRepo.DeleteByID(ctx, item.ID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 数量変更（所有チェックつき）。
func (u *CartUsecase) UpdateQuantity(ctx context.Context, userID int64, cartID int64, cartItemID int64, qty int64) (CartResponse, error) {
	if qty < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	cart, err := u.ownedCart(ctx, userID, cartID)
	if err != nil {
		return CartResponse{}, err
	}

	item, err := u.cartItemRepo.FindByID(ctx, cartItemID)
	if err == repo.ErrNotFound || (err == nil && item.CartID != cart.ID) {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "cart item not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, item.ID, qty); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart)
}

// カート削除（明細ごと）。
func (u *CartUsecase) DeleteCart(ctx context.Context, userID int64, cartID int64) error {
	cart, err := u.ownedCart(ctx, userID, cartID)
	if err != nil {
		return err
	}

	if err := u.cartItemRepo.DeleteByCartID(ctx, cart.ID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if err := u.cartRepo.Delete(ctx, cart.ID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 自分のカートだけを返す。他人のカートは404（存在を隠す）。
func (u *CartUsecase) ownedCart(ctx context.Context, userID int64, cartID int64) (model.Cart, error) {
	customer, err := u.resolveCustomer(ctx, userID)
	if err != nil {
		return model.Cart{}, err
	}

	cart, err := u.cartRepo.FindByID(ctx, cartID)
	if err == repo.ErrNotFound {
		return model.Cart{}, NewHTTPError(http.StatusNotFound, "cart not found")
	}
	if err != nil {
		return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if cart.CustomerID != customer.ID {
		return model.Cart{}, NewHTTPError(http.StatusNotFound, "cart not found")
	}
	return cart, nil
}

func (u *CartUsecase) buildCartResponse(ctx context.Context, cart model.Cart) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := CartResponse{
		ID:           cart.ID,
		RestaurantID: cart.RestaurantID,
		Items:        make([]CartItemResponse, 0, len(items)),
	}

	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err != nil && err != repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// カートの表示価格は現在の商品価格（確定はチェックアウト時）
		out.Items = append(out.Items, CartItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  it.Quantity,
		})
		out.Total += p.Price * it.Quantity
	}

	return out, nil
}
