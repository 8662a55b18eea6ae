package usecase

import "context"

// チェックアウト時に1回だけ相談する手数料ポリシー。
type FeePolicy interface {
	ComputeFees(ctx context.Context, amount int64, restaurantID int64, customerAddress string) (serviceCharge int64, deliveryFee int64, err error)
}

// 定額ポリシー。距離や店舗ごとの料金表を入れるときはここを差し替える。
type FlatFeePolicy struct {
	ServiceCharge int64
	DeliveryFee   int64
}

func NewFlatFeePolicy() *FlatFeePolicy {
	return &FlatFeePolicy{ServiceCharge: 100, DeliveryFee: 300}
}

func (p *FlatFeePolicy) ComputeFees(ctx context.Context, amount int64, restaurantID int64, customerAddress string) (int64, int64, error) {
	return p.ServiceCharge, p.DeliveryFee, nil
}
