package usecase

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newProductFixture() (*ProductUsecase, *productRepoMock, *restaurantRepoMock) {
	products := new(productRepoMock)
	restaurants := new(restaurantRepoMock)
	//キャッシュなし（nilでも動くこと自体が仕様）
	uc := NewProductUsecase(products, restaurants, nil)
	return uc, products, restaurants
}

func TestListMenu_InvalidPage(t *testing.T) {
	uc, _, _ := newProductFixture()

	_, err := uc.ListMenu(context.Background(), ListProductsInput{RestaurantID: 5, Page: 0, Limit: 20})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestListMenu_InvalidLimit(t *testing.T) {
	uc, _, _ := newProductFixture()

	_, err := uc.ListMenu(context.Background(), ListProductsInput{RestaurantID: 5, Page: 1, Limit: 101})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestListMenu_RestaurantMissing(t *testing.T) {
	uc, _, restaurants := newProductFixture()

	restaurants.On("FindByID", mock.Anything, int64(5)).Return(model.Restaurant{}, repo.ErrNotFound)

	_, err := uc.ListMenu(context.Background(), ListProductsInput{RestaurantID: 5, Page: 1, Limit: 20})
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestListMenu_WithoutCache(t *testing.T) {
	uc, products, restaurants := newProductFixture()

	restaurants.On("FindByID", mock.Anything, int64(5)).Return(model.Restaurant{ID: 5}, nil)
	products.On("ListByRestaurant", mock.Anything, repo.ProductListQuery{RestaurantID: 5, Page: 1, Limit: 20}).
		Return([]model.Product{{ID: 42, RestaurantID: 5, Name: "ramen", Price: 900}}, int64(1), nil)

	out, err := uc.ListMenu(context.Background(), ListProductsInput{RestaurantID: 5, Page: 1, Limit: 20})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
	assert.Len(t, out.Items, 1)
}

func TestCreateProduct_RequiresRestaurantProfile(t *testing.T) {
	uc, _, restaurants := newProductFixture()

	restaurants.On("FindByUserID", mock.Anything, int64(20)).Return(model.Restaurant{}, repo.ErrNotFound)

	_, err := uc.CreateProduct(context.Background(), 20, CreateProductInput{Name: "ramen", Price: 900})
	assertHTTPStatus(t, err, http.StatusForbidden)
}

func TestCreateProduct_NegativePrice(t *testing.T) {
	uc, _, restaurants := newProductFixture()

	restaurants.On("FindByUserID", mock.Anything, int64(20)).Return(model.Restaurant{ID: 5, UserID: 20}, nil)

	_, err := uc.CreateProduct(context.Background(), 20, CreateProductInput{Name: "ramen", Price: -1})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

// 他店の商品は更新できない。
func TestUpdateProduct_ForeignProductForbidden(t *testing.T) {
	uc, products, restaurants := newProductFixture()

	restaurants.On("FindByUserID", mock.Anything, int64(20)).Return(model.Restaurant{ID: 5, UserID: 20}, nil)
	products.On("FindByID", mock.Anything, int64(42)).Return(model.Product{ID: 42, RestaurantID: 6}, nil)

	newPrice := int64(1000)
	_, err := uc.UpdateProduct(context.Background(), 20, 42, UpdateProductInput{Price: &newPrice})

	assertHTTPStatus(t, err, http.StatusForbidden)
	products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteProduct_SoftDeletesOwn(t *testing.T) {
	uc, products, restaurants := newProductFixture()

	restaurants.On("FindByUserID", mock.Anything, int64(20)).Return(model.Restaurant{ID: 5, UserID: 20}, nil)
	products.On("FindByID", mock.Anything, int64(42)).Return(model.Product{ID: 42, RestaurantID: 5}, nil)
	products.On("SoftDelete", mock.Anything, int64(42)).Return(nil)

	err := uc.DeleteProduct(context.Background(), 20, 42)

	assert.NoError(t, err)
	products.AssertExpectations(t)
}
