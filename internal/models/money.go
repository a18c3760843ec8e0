package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNegativeMoney 商品价格与订单金额均不允许为负
var ErrNegativeMoney = errors.New("money amount must not be negative")

// Money 商品价格、购物车小计与订单金额（保留 2 位小数）
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal 从 decimal 创建金额
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(2)}
}

// ZeroMoney 空购物车小计
func ZeroMoney() Money {
	return Money{Decimal: decimal.Zero}
}

// ParseMoney 解析十进制字符串金额，拒绝负数
func ParseMoney(raw string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return Money{}, err
	}
	if d.IsNegative() {
		return Money{}, ErrNegativeMoney
	}
	return NewMoneyFromDecimal(d), nil
}

// Times 单价乘以数量得到行小计
func (m Money) Times(quantity int) Money {
	return NewMoneyFromDecimal(m.Decimal.Round(2).Mul(decimal.NewFromInt(int64(quantity))))
}

// Plus 累加金额
func (m Money) Plus(other Money) Money {
	return NewMoneyFromDecimal(m.Decimal.Add(other.Decimal))
}

// MarshalJSON 统一输出 2 位小数的字符串，避免前端浮点误差
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON 接受字符串或数字
func (m *Money) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		parsed, err := ParseMoney(s)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	}
	parsed, err := ParseMoney(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value 以 decimal(20,2) 写入
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(2).Value()
}

// Scan 兼容 SQLite 的 REAL/TEXT 与 PostgreSQL 的 numeric
func (m *Money) Scan(value interface{}) error {
	if err := m.Decimal.Scan(value); err != nil {
		return err
	}
	m.Decimal = m.Decimal.Round(2)
	return nil
}

// String 返回 2 位小数格式
func (m Money) String() string {
	return m.Decimal.Round(2).StringFixed(2)
}
