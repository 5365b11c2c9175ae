// pkg/pumpportal/amount.go
package pumpportal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is either an absolute quantity (SOL or tokens, depending on
// DenominatedInSol) or a percentage of the wallet's token balance, e.g. "100%".
// Absolute amounts go over the wire as JSON numbers, percentages as strings.
type Amount struct {
	value   decimal.Decimal
	percent bool
}

// AmountOf returns an absolute amount.
func AmountOf(v float64) Amount {
	return Amount{value: decimal.NewFromFloat(v)}
}

// AmountFromDecimal returns an absolute amount without float rounding.
func AmountFromDecimal(d decimal.Decimal) Amount {
	return Amount{value: d}
}

// Percent returns an amount relative to the held balance.
func Percent(p float64) Amount {
	return Amount{value: decimal.NewFromFloat(p), percent: true}
}

// ParseAmount accepts "0.25" or "50%".
func ParseAmount(s string) (Amount, error) {
	raw := strings.TrimSpace(s)
	percent := strings.HasSuffix(raw, "%")
	raw = strings.TrimSuffix(raw, "%")

	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return Amount{}, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return Amount{value: d, percent: percent}, nil
}

func (a Amount) IsPercent() bool { return a.percent }

func (a Amount) Decimal() decimal.Decimal { return a.value }

func (a Amount) String() string {
	if a.percent {
		return a.value.String() + "%"
	}
	return a.value.String()
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if a.percent {
		return json.Marshal(a.String())
	}
	return []byte(a.value.String()), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParseAmount(s)
		if err != nil {
			return err
		}
		*a = parsed
		return nil
	}

	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("parse amount %s: %w", data, err)
	}
	*a = Amount{value: d}
	return nil
}
