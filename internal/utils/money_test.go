package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	ok := map[string]int64{
		"12.50":       1250,
		"12.5":        1250,
		"12":          1200,
		"0.07":        7,
		".5":          50,
		"$1,234.56":   123456,
		"12,50":       1250,
		" 7.50 ":      750,
		"-3.25":       -325,
		"99999999.99": 9999999999,
	}
	for in, want := range ok {
		got, err := ParseMoney(in)
		require.NoError(t, err, in)
		assert.Equal(t, Cents(want), got, in)
	}

	for _, in := range []string{"", "abc", "12.345", "1.2.3", "--1", "1e3", "+-2", "100000000.00", "-100000000", "184467440737095517.00", "99999999999999999999"} {
		_, err := ParseMoney(in)
		assert.Error(t, err, in)
	}
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "12.50", Cents(1250).String())
	assert.Equal(t, "0.05", Cents(5).String())
	assert.Equal(t, "-0.05", Cents(-5).String())
	assert.Equal(t, "$7.50", FormatMoney(Cents(750)))
}

func TestMoneyScan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan([]byte("99.90")))
	assert.Equal(t, Cents(9990), m)

	require.NoError(t, m.Scan("5.00"))
	assert.Equal(t, Cents(500), m)

	require.NoError(t, m.Scan(int64(3)))
	assert.Equal(t, Cents(300), m)

	require.NoError(t, m.Scan(nil))
	assert.Equal(t, Money(0), m)

	assert.Error(t, m.Scan(true))
}

func TestMoneyJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Total Money `json:"total"`
	}{Cents(2250)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":22.50}`, string(b))

	var back struct {
		Total Money `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"total":"22.5"}`), &back))
	assert.Equal(t, Cents(2250), back.Total)
}

func TestAmountTextAcceptsNumbersAndStrings(t *testing.T) {
	var in struct {
		A AmountText `json:"a"`
		B AmountText `json:"b"`
		C AmountText `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":7.5,"b":"12.345","c":null}`), &in))
	assert.Equal(t, AmountText("7.5"), in.A)
	assert.Equal(t, AmountText("12.345"), in.B)
	assert.True(t, in.C.IsEmpty())
}
