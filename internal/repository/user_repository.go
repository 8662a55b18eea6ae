package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

// メール重複を統一
var ErrDuplicateEmail = errors.New("email already used")

// アカウントの保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成（email重複は ErrDuplicateEmail）
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	//メールからユーザーを一件取得する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	//最後のログイン更新など
	Update(ctx context.Context, user *model.User) error
}

// 顧客プロフィール
type CustomerRepository interface {
	Create(ctx context.Context, c model.Customer) (model.Customer, error)
	FindByID(ctx context.Context, id int64) (model.Customer, error)
	FindByUserID(ctx context.Context, userID int64) (model.Customer, error)
}

// ドライバープロフィール
type DriverRepository interface {
	Create(ctx context.Context, d model.Driver) (model.Driver, error)
	FindByID(ctx context.Context, id int64) (model.Driver, error)
	FindByUserID(ctx context.Context, userID int64) (model.Driver, error)
	Update(ctx context.Context, d model.Driver) error
}
