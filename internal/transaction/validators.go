package transaction

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Status is the normalized state of an operation.
type Status string

const (
	StatusExecuted Status = "EXECUTED"
	StatusCanceled Status = "CANCELED"
)

// Card and account numbers.
const (
	CardDigits    = 16
	AccountDigits = 20
)

// Amount is a validated operation amount rounded to two decimal places.
type Amount struct {
	Value    decimal.Decimal `json:"amount" validate:"-"`
	Currency string          `json:"currency" validate:"required"`
	Code     string          `json:"code,omitempty"`

	// small negatives round to a zero Value but still print as "-0.00"
	negZero bool
}

// String returns the amount with exactly two fractional digits.
func (a Amount) String() string {
	if a.negZero {
		return "-" + a.Value.StringFixed(2)
	}
	return a.Value.StringFixed(2)
}

// Party is a card or account reference, e.g. "Visa Gold" + "5999414228426353".
type Party struct {
	Label  string `json:"label" validate:"required"`
	Number string `json:"number" validate:"required,numeric,len=16|len=20"`
}

// accepted date-time layouts, after the "T" separator is replaced by a space.
// Fractional seconds are accepted after the seconds field by time.Parse.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04",
	"2006-01-02 15:04Z07:00",
}

// ValidateID accepts only integer values. JSON numbers must be integer
// literals that fit into int64; bools, floats and numeric strings are rejected.
func ValidateID(v any) (int64, bool) {
	switch id := v.(type) {
	case json.Number:
		n, err := strconv.ParseInt(id.String(), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	case int:
		return int64(id), true
	case int32:
		return int64(id), true
	case int64:
		return id, true
	default:
		return 0, false
	}
}

// ValidateState normalizes "executed" / "canceled" in any letter case.
func ValidateState(v any) (Status, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	switch strings.ToLower(s) {
	case "executed":
		return StatusExecuted, true
	case "canceled":
		return StatusCanceled, true
	}
	return "", false
}

// ValidateDate parses "2019-12-08T22:46:21.935582"-style timestamps.
// Naive timestamps are returned in UTC.
func ValidateDate(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	t, err := parseTimestamp(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.ReplaceAll(s, "T", " ")
	// time.Parse takes a one-digit hour for "15"; require "YYYY-MM-DD HH:MM".
	if len(s) < 16 || s[10] != ' ' || !isDigit(s[11]) || !isDigit(s[12]) || s[13] != ':' {
		return time.Time{}, fmt.Errorf("timestamp %q: want YYYY-MM-DD HH:MM", s)
	}
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// ValidateAmount reads an operationAmount mapping:
//
//	{"amount": "41096.24", "currency": {"name": "USD", "code": "USD"}}
func ValidateAmount(v any) (Amount, bool) {
	m, ok := asMap(v)
	if !ok {
		return Amount{}, false
	}
	raw := m["amount"]
	currency, ok := asMap(m["currency"])
	if !ok {
		return Amount{}, false
	}
	name := currency["name"]
	if isEmpty(raw) || isEmpty(name) {
		return Amount{}, false
	}
	currencyName, ok := name.(string)
	if !ok {
		return Amount{}, false
	}
	f, ok := toFloat(raw)
	if !ok {
		return Amount{}, false
	}

	// same rounding as fmt's %.2f on the float value
	text := strconv.FormatFloat(f, 'f', 2, 64)
	value, err := decimal.NewFromString(text)
	if err != nil {
		return Amount{}, false
	}
	a := Amount{Value: value, Currency: currencyName, negZero: value.IsZero() && strings.HasPrefix(text, "-")}
	if code, ok := currency["code"].(string); ok {
		a.Code = code
	}
	return a, true
}

func toFloat(v any) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch n := v.(type) {
	case json.Number:
		f, err = strconv.ParseFloat(n.String(), 64)
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(n), 64)
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	default:
		// bool lands here as well
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ValidateDescription accepts any string as-is.
func ValidateDescription(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// ValidateParty splits "Счет 90424923579946435907" into label and number.
func ValidateParty(v any) (Party, bool) {
	s, ok := v.(string)
	if !ok {
		return Party{}, false
	}
	idx := strings.LastIndexFunc(s, unicode.IsSpace)
	if idx < 0 {
		return Party{}, false
	}
	_, size := utf8.DecodeRuneInString(s[idx:])
	number := s[idx+size:]
	label := strings.TrimRightFunc(s[:idx], unicode.IsSpace)
	if label == "" || !validNumber(label, number) {
		return Party{}, false
	}
	return Party{Label: label, Number: number}, true
}

// IsAccountLabel reports whether label names a bank account rather than a card.
func IsAccountLabel(label string) bool {
	return strings.EqualFold(label, "счет") || strings.EqualFold(label, "account")
}

func validNumber(label, number string) bool {
	if number == "" {
		return false
	}
	for i := 0; i < len(number); i++ {
		if !isDigit(number[i]) {
			return false
		}
	}
	switch len(number) {
	case CardDigits:
		return !IsAccountLabel(label)
	case AccountDigits:
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case RawRecord:
		return m, true
	}
	return nil, false
}

// isEmpty mirrors JSON "falsy" values: null, false, 0, "", [] and {}.
func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case string:
		return x == ""
	case json.Number:
		f, err := strconv.ParseFloat(x.String(), 64)
		return err == nil && f == 0
	case float64:
		return x == 0
	case int:
		return x == 0
	case int64:
		return x == 0
	case []any:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	case RawRecord:
		return len(x) == 0
	}
	return false
}
