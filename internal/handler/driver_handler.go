package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ドライバー自身のプロフィール
type DriverHandler struct {
	uc *usecase.DriverUsecase
}

func NewDriverHandler(uc *usecase.DriverUsecase) *DriverHandler {
	return &DriverHandler{uc: uc}
}

func (h *DriverHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/driver/me")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.RoleGuard(model.RoleDriver))
	g.GET("", h.me)
	g.PUT("", h.updateMe)
}

func (h *DriverHandler) me(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	d, err := h.uc.GetMyProfile(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, d)
}

type UpdateDriverRequest struct {
	Name          *string `json:"name"`
	Vehicle       *string `json:"vehicle"`
	LicenseNumber *string `json:"license_number"`
}

func (h *DriverHandler) updateMe(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req UpdateDriverRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	d, err := h.uc.UpdateMyProfile(c.Request().Context(), userID, usecase.UpdateDriverInput{
		Name:          req.Name,
		Vehicle:       req.Vehicle,
		LicenseNumber: req.LicenseNumber,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, d)
}
