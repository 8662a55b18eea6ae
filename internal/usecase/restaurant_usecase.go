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

type RestaurantUsecase struct {
	restaurantRepo repo.RestaurantRepository
	cache          *cache.Client
}

func NewRestaurantUsecase(restaurantRepo repo.RestaurantRepository, cacheClient *cache.Client) *RestaurantUsecase {
	return &RestaurantUsecase{restaurantRepo: restaurantRepo, cache: cacheClient}
}

type ListRestaurantsInput struct {
	Page  int
	Limit int
	Q     string
}

type RestaurantListOutput struct {
	Items []model.Restaurant `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// 公開の店舗一覧。
func (u *RestaurantUsecase) ListRestaurants(ctx context.Context, in ListRestaurantsInput) (RestaurantListOutput, error) {
	if in.Page < 1 {
		return RestaurantListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return RestaurantListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Q) > 100 {
		return RestaurantListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid q")
	}
	q := strings.TrimSpace(in.Q)

	cacheKey := ""
	if u.cache != nil && q == "" {
		cacheKey = fmt.Sprintf("restaurants:%d:%d", in.Page, in.Limit)
		var cached RestaurantListOutput
		hit, err := u.cache.Get(ctx, cacheKey, &cached)
		if err == nil && hit {
			return cached, nil
		}
	}

	items, total, err := u.restaurantRepo.ListPublic(ctx, repo.RestaurantListQuery{
		Page:  in.Page,
		Limit: in.Limit,
		Q:     q,
	})
	if err != nil {
		return RestaurantListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := RestaurantListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}
	if cacheKey != "" {
		_ = u.cache.Set(ctx, cacheKey, out)
	}
	return out, nil
}

func (u *RestaurantUsecase) GetRestaurant(ctx context.Context, restaurantID int64) (model.Restaurant, error) {
	r, err := u.restaurantRepo.FindByID(ctx, restaurantID)
	if err == repo.ErrNotFound {
		return model.Restaurant{}, NewHTTPError(http.StatusNotFound, "restaurant not found")
	}
	if err != nil {
		return model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return r, nil
}

type UpdateRestaurantInput struct {
	Name        *string
	Description *string
	Address     *string
	ImageURL    *string
}

// オーナーによる自店プロフィール更新。
func (u *RestaurantUsecase) UpdateMyRestaurant(ctx context.Context, userID int64, in UpdateRestaurantInput) (model.Restaurant, error) {
	r, err := u.restaurantRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return model.Restaurant{}, NewHTTPError(http.StatusForbidden, "restaurant profile required")
	}
	if err != nil {
		return model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return model.Restaurant{}, NewHTTPError(http.StatusBadRequest, "name is required")
		}
		r.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		r.Description = *in.Description
	}
	if in.Address != nil {
		if strings.TrimSpace(*in.Address) == "" {
			return model.Restaurant{}, NewHTTPError(http.StatusBadRequest, "address is required")
		}
		r.Address = strings.TrimSpace(*in.Address)
	}
	if in.ImageURL != nil {
		r.ImageURL = *in.ImageURL
	}

	if err := u.restaurantRepo.Update(ctx, r); err != nil {
		return model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return r, nil
}

func (u *RestaurantUsecase) GetMyRestaurant(ctx context.Context, userID int64) (model.Restaurant, error) {
	r, err := u.restaurantRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return model.Restaurant{}, NewHTTPError(http.StatusForbidden, "restaurant profile required")
	}
	if err != nil {
		return model.Restaurant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return r, nil
}
