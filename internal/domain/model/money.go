package model

import "github.com/shopspring/decimal"

// Money は金額。DBへはnumericとして入り、JSONでは常に小数2桁の文字列になる。
// 計算はdecimal.Decimalのメソッドをそのまま使う。
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{d}
}

// "20" ではなく "20.00" で出す
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}
