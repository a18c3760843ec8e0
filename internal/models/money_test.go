package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestMoneyLineTotalsAndSubtotal(t *testing.T) {
	price, err := ParseMoney(" 19.999 ")
	require.NoError(t, err)
	require.Equal(t, "20.00", price.String())

	line := NewMoneyFromDecimal(decimal.RequireFromString("12.50")).Times(3)
	require.Equal(t, "37.50", line.String())

	subtotal := ZeroMoney().Plus(line).Plus(price.Times(999))
	require.Equal(t, "20017.50", subtotal.String())

	_, err = ParseMoney("-0.01")
	require.ErrorIs(t, err, ErrNegativeMoney)
	_, err = ParseMoney("abc")
	require.Error(t, err)
}

func TestMoneyJSON(t *testing.T) {
	var item struct {
		Price Money `json:"price"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"price":"9.5"}`), &item))
	require.Equal(t, "9.50", item.Price.String())
	require.NoError(t, json.Unmarshal([]byte(`{"price":12.345}`), &item))
	require.Equal(t, "12.35", item.Price.String())
	require.ErrorIs(t, json.Unmarshal([]byte(`{"price":-3}`), &item), ErrNegativeMoney)

	payload, err := json.Marshal(struct {
		Total Money `json:"total"`
	}{Total: ZeroMoney()})
	require.NoError(t, err)
	require.JSONEq(t, `{"total":"0.00"}`, string(payload))
}
