package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// DriverUsecase はドライバー自身のプロフィール管理。
type DriverUsecase struct {
	driverRepo repo.DriverRepository
}

func NewDriverUsecase(driverRepo repo.DriverRepository) *DriverUsecase {
	return &DriverUsecase{driverRepo: driverRepo}
}

func (u *DriverUsecase) GetMyProfile(ctx context.Context, userID int64) (model.Driver, error) {
	d, err := u.driverRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return model.Driver{}, NewHTTPError(http.StatusForbidden, "driver profile required")
	}
	if err != nil {
		return model.Driver{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return d, nil
}

type UpdateDriverInput struct {
	Name          *string
	Vehicle       *string
	LicenseNumber *string
}

func (u *DriverUsecase) UpdateMyProfile(ctx context.Context, userID int64, in UpdateDriverInput) (model.Driver, error) {
	d, err := u.driverRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return model.Driver{}, NewHTTPError(http.StatusForbidden, "driver profile required")
	}
	if err != nil {
		return model.Driver{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return model.Driver{}, NewHTTPError(http.StatusBadRequest, "name is required")
		}
		d.Name = strings.TrimSpace(*in.Name)
	}
	if in.Vehicle != nil {
		d.Vehicle = *in.Vehicle
	}
	if in.LicenseNumber != nil {
		d.LicenseNumber = *in.LicenseNumber
	}

	if err := u.driverRepo.Update(ctx, d); err != nil {
		return model.Driver{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return d, nil
}
