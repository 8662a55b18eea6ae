package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 顧客から見た注文（一覧・詳細・キャンセル・支払い）
type CustomerOrderHandler struct {
	views       *usecase.OrderViewUsecase
	transitions *usecase.OrderTransitionUsecase
	payments    *usecase.PaymentUsecase
}

func NewCustomerOrderHandler(
	views *usecase.OrderViewUsecase,
	transitions *usecase.OrderTransitionUsecase,
	payments *usecase.PaymentUsecase,
) *CustomerOrderHandler {
	return &CustomerOrderHandler{views: views, transitions: transitions, payments: payments}
}

func (h *CustomerOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/customer/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.RoleGuard(model.RoleCustomer))

	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.PATCH("/:id/cancel", h.cancel)
	g.POST("/:id/pay", h.pay)

	//決済ゲートウェイのコールバック。referenceだけで照合するので認証なし。
	e.GET("/payment/verify", h.verify)
}

func (h *CustomerOrderHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	status := c.QueryParam("status")
	if status == "" {
		status = "Ongoing"
	}

	out, err := h.views.ListCustomerOrders(c.Request().Context(), userID, usecase.CustomerOrdersQuery{
		Status: status,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CustomerOrderHandler) detail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.views.GetCustomerOrder(c.Request().Context(), userID, id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CustomerOrderHandler) cancel(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.transitions.CustomerCancel(c.Request().Context(), userID, id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CustomerOrderHandler) pay(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.payments.InitializePayment(c.Request().Context(), userID, id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CustomerOrderHandler) verify(c echo.Context) error {
	reference := c.QueryParam("reference")
	if reference == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "reference is required"})
	}

	out, err := h.payments.VerifyPayment(c.Request().Context(), reference)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
