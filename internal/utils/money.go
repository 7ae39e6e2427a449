package utils

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is a currency amount in cents. It is stored as DECIMAL(10,2).
type Money int64

// MaxMoneyUnits is the largest whole part a DECIMAL(10,2) column holds.
const MaxMoneyUnits = 99_999_999

// Cents builds Money from a cent amount.
func Cents(c int64) Money {
	return Money(c)
}

// ParseMoney parses "12.50", "$1,234.5" or "12,50" into Money.
// At most two decimal places are accepted.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	// lone comma is a decimal separator, otherwise commas group thousands
	if strings.Contains(s, ",") && !strings.Contains(s, ".") && strings.Count(s, ",") == 1 && len(s)-strings.Index(s, ",") <= 3 {
		s = strings.Replace(s, ",", ".", 1)
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	whole, frac, hasDot := strings.Cut(s, ".")
	if whole == "" && (!hasDot || frac == "") {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount %q has more than two decimals", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	if whole == "" {
		whole = "0"
	}
	if strings.ContainsAny(whole, "+-") || strings.ContainsAny(frac, "+-") {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if w > MaxMoneyUnits {
		return 0, fmt.Errorf("amount %q exceeds %d", s, MaxMoneyUnits)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	c := w*100 + f
	if neg {
		c = -c
	}
	return Money(c), nil
}

// MoneyFromFloat rounds a float to the nearest cent.
func MoneyFromFloat(f float64) Money {
	return Money(math.Round(f * 100))
}

func (m Money) Cents() int64 { return int64(m) }

func (m Money) Float64() float64 { return float64(m) / 100 }

// String renders the amount with two decimals and no currency sign.
func (m Money) String() string {
	c := int64(m)
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*m = 0
		return nil
	}
	v, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Scan implements sql.Scanner; NULL scans as zero.
func (m *Money) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = 0
	case int64:
		*m = Money(v * 100)
	case float64:
		*m = MoneyFromFloat(v)
	case []byte:
		p, err := ParseMoney(string(v))
		if err != nil {
			return err
		}
		*m = p
	case string:
		p, err := ParseMoney(v)
		if err != nil {
			return err
		}
		*m = p
	default:
		return fmt.Errorf("cannot scan %T into Money", src)
	}
	return nil
}

func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

// FormatMoney keeps consistent currency formatting for documents.
func FormatMoney(m Money) string {
	return "$" + m.String()
}

// NullMoney maps an optional amount to a nullable column argument.
func NullMoney(p *Money) any {
	if p == nil {
		return nil
	}
	return p.String()
}

// AmountText keeps a user-supplied amount verbatim so the service layer can
// validate it. JSON numbers and strings are both accepted.
type AmountText string

func (a *AmountText) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		*a = ""
	case strings.HasPrefix(s, `"`):
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*a = AmountText(v)
	default:
		*a = AmountText(s)
	}
	return nil
}

func (a AmountText) IsEmpty() bool {
	return strings.TrimSpace(string(a)) == ""
}
