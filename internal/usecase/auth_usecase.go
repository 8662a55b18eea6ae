package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"app/internal/config"
	"app/internal/domain/model"
	repo "app/internal/repository"
)

// accesstokenの有効期限（refresh tokenは持たないので長め）
const accessTokenTTL = 24 * time.Hour

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, in AuthRegisterRequest) error
	ValidateLogin(ctx context.Context, email string, password string) error
}

type UserDTO struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

type JwtAccessTokenDTO struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type AuthRegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`

	// プロフィール（ロール共通はNameのみ必須）
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Vehicle string `json:"vehicle"`
}

type AuthRegisterResponse struct {
	User UserDTO `json:"user"`
}

type AuthLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthLoginResponse struct {
	User  UserDTO           `json:"user"`
	Token JwtAccessTokenDTO `json:"token"`
}

type AuthUsecase struct {
	cfg            config.Config
	users          repo.UserRepository
	customerRepo   repo.CustomerRepository
	restaurantRepo repo.RestaurantRepository
	driverRepo     repo.DriverRepository
	validator      AuthValidator
}

func NewAuthUsecase(
	cfg config.Config,
	users repo.UserRepository,
	customerRepo repo.CustomerRepository,
	restaurantRepo repo.RestaurantRepository,
	driverRepo repo.DriverRepository,
	validator AuthValidator,
) *AuthUsecase {
	return &AuthUsecase{
		cfg:            cfg,
		users:          users,
		customerRepo:   customerRepo,
		restaurantRepo: restaurantRepo,
		driverRepo:     driverRepo,
		validator:      validator,
	}
}

// ロール付きサインアップ。User本体とロール別プロフィールを作る。
func (u *AuthUsecase) Register(ctx context.Context, req AuthRegisterRequest) (*AuthRegisterResponse, error) {
	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateRegister(ctx, req); err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := &model.User{
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: string(pwHash),
		Role:         model.Role(req.Role),
		IsActive:     true,
	}

	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, NewHTTPError(http.StatusConflict, "email already used")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	name := strings.TrimSpace(req.Name)
	switch user.Role {
	case model.RoleCustomer:
		_, err = u.customerRepo.Create(ctx, model.Customer{
			UserID:  user.ID,
			Name:    name,
			Address: strings.TrimSpace(req.Address),
			Phone:   strings.TrimSpace(req.Phone),
		})
	case model.RoleRestaurant:
		_, err = u.restaurantRepo.Create(ctx, model.Restaurant{
			UserID:  user.ID,
			Name:    name,
			Address: strings.TrimSpace(req.Address),
		})
	case model.RoleDriver:
		_, err = u.driverRepo.Create(ctx, model.Driver{
			UserID:  user.ID,
			Name:    name,
			Vehicle: strings.TrimSpace(req.Vehicle),
		})
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return &AuthRegisterResponse{User: toUserDTO(user)}, nil
}

func (u *AuthUsecase) Login(ctx context.Context, req AuthLoginRequest) (*AuthLoginResponse, error) {
	if err := u.validator.ValidateLogin(ctx, req.Email, req.Password); err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := u.users.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil || user == nil {
		// 存在有無は漏らさない
		return nil, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	//停止ユーザーはログイン不可
	if !user.IsActive {
		return nil, NewHTTPError(http.StatusForbidden, "account disabled")
	}

	//パスワード照合（bcrypt）
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	//last_login更新
	now := time.Now()
	user.LastLoginAt = &now
	_ = u.users.Update(ctx, user)

	accessToken, expiresIn, err := u.issueAccessToken(user)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return &AuthLoginResponse{
		User: toUserDTO(user),
		Token: JwtAccessTokenDTO{
			AccessToken: accessToken,
			ExpiresIn:   expiresIn,
		},
	}, nil
}

func (u *AuthUsecase) Me(ctx context.Context, userID int64) (*UserDTO, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil || user == nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if !user.IsActive {
		return nil, NewHTTPError(http.StatusForbidden, "account disabled")
	}

	dto := toUserDTO(user)
	return &dto, nil
}

// jwt発行
func (u *AuthUsecase) issueAccessToken(user *model.User) (string, int, error) {
	now := time.Now()
	exp := now.Add(accessTokenTTL)

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := t.SignedString([]byte(u.cfg.JWTSecret))
	if err != nil {
		return "", 0, err
	}

	return signed, int(accessTokenTTL.Seconds()), nil
}

// model.UserをAPI返却用DTOに変換。
func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:       u.ID,
		Email:    u.Email,
		Role:     string(u.Role),
		IsActive: u.IsActive,
	}
}
