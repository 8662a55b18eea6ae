package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"app/internal/domain/model"
	"app/internal/infra/cache"
	repo "app/internal/repository"
)

type ProductUsecase struct {
	productRepo    repo.ProductRepository
	restaurantRepo repo.RestaurantRepository
	cache          *cache.Client //nilならキャッシュなしで動く
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	restaurantRepo repo.RestaurantRepository,
	cacheClient *cache.Client,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:    productRepo,
		restaurantRepo: restaurantRepo,
		cache:          cacheClient,
	}
}

// GET /restaurants/:id/products の入力DTO
type ListProductsInput struct {
	RestaurantID int64
	Page         int
	Limit        int
	Q            string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// 公開メニュー一覧。未ログインでも見られる。
func (u *ProductUsecase) ListMenu(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Q) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid q")
	}
	q := strings.TrimSpace(in.Q)

	if _, err := u.restaurantRepo.FindByID(ctx, in.RestaurantID); err != nil {
		if err == repo.ErrNotFound {
			return ProductListOutput{}, NewHTTPError(http.StatusNotFound, "restaurant not found")
		}
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 検索なしの先頭ページだけキャッシュする
	cacheKey := ""
	if u.cache != nil && q == "" {
		cacheKey = fmt.Sprintf("menu:%d:%d:%d", in.RestaurantID, in.Page, in.Limit)
		var cached ProductListOutput
		hit, err := u.cache.Get(ctx, cacheKey, &cached)
		if err == nil && hit {
			return cached, nil
		}
	}

	items, total, err := u.productRepo.ListByRestaurant(ctx, repo.ProductListQuery{
		RestaurantID: in.RestaurantID,
		Page:         in.Page,
		Limit:        in.Limit,
		Q:            q,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := ProductListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}
	if cacheKey != "" {
		// キャッシュ書き込み失敗は無視（古い一覧が出るだけ）
		_ = u.cache.Set(ctx, cacheKey, out)
	}
	return out, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, productID int64) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

type CreateProductInput struct {
	Name        string
	Description string
	ImageURL    string
	Price       int64
}

type UpdateProductInput struct {
	Name        *string
	Description *string
	ImageURL    *string
	Price       *int64
}

// 店舗オーナーによる商品登録。自店にしか作れない。
func (u *ProductUsecase) CreateProduct(ctx context.Context, userID int64, in CreateProductInput) (model.Product, error) {
	rest, err := u.ownRestaurant(ctx, userID)
	if err != nil {
		return model.Product{}, err
	}

	if strings.TrimSpace(in.Name) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.Price < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must not be negative")
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		RestaurantID: rest.ID,
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		ImageURL:     in.ImageURL,
		Price:        in.Price,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, userID int64, productID int64, in UpdateProductInput) (model.Product, error) {
	rest, err := u.ownRestaurant(ctx, userID)
	if err != nil {
		return model.Product{}, err
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if p.RestaurantID != rest.ID {
		return model.Product{}, NewHTTPError(http.StatusForbidden, "not your product")
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "name is required")
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must not be negative")
		}
		p.Price = *in.Price
	}

	if err := u.productRepo.Update(ctx, p); err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// ソフトデリート。既存の注文明細はスナップショットなので影響なし。
func (u *ProductUsecase) DeleteProduct(ctx context.Context, userID int64, productID int64) error {
	rest, err := u.ownRestaurant(ctx, userID)
	if err != nil {
		return err
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if p.RestaurantID != rest.ID {
		return NewHTTPError(http.StatusForbidden, "not your product")
	}

	if err := u.productRepo.SoftDelete(ctx, productID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *ProductUsecase) ownRestaurant(ctx context.Context, userID int64) (model.Restaurant, error) {
	rest, err := u.restaurantRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return model.Restaurant{}, NewHTTPError(http.StatusForbidden, "restaurant profile required")
	}
	if err != nil {
		return model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rest, nil
}
