package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/schema"
)

// 決済参照は採番されるまでNULL。空文字で持つと2件目の未払い注文が
// 一意インデックスに当たるため、NULL許容であることを固定する。
func TestOrderPaymentRefIsNullableAndUnique(t *testing.T) {
	s, err := schema.Parse(&Order{}, &sync.Map{}, schema.NamingStrategy{})
	assert.NoError(t, err)

	f := s.LookUpField("PaymentRef")
	if assert.NotNil(t, f) {
		assert.False(t, f.NotNull)
	}

	var o Order
	assert.Nil(t, o.PaymentRef)

	found := false
	for _, i := range s.ParseIndexes() {
		if len(i.Fields) == 1 && i.Fields[0].DBName == "payment_ref" {
			found = true
			assert.Equal(t, "UNIQUE", i.Class)
		}
	}
	assert.True(t, found, "unique index on payment_ref missing")
}
