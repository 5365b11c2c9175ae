package pumpportal

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		percent bool
		wantErr bool
	}{
		{in: "0.25", want: "0.25"},
		{in: "1000000", want: "1000000"},
		{in: "100%", want: "100%", percent: true},
		{in: " 12.5 % ", want: "12.5%", percent: true},
		{in: "abc", wantErr: true},
		{in: "%", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			a, err := ParseAmount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.String())
			assert.Equal(t, tt.percent, a.IsPercent())
		})
	}
}

func TestAmount_JSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
		C Amount `json:"c"`
	}{
		A: AmountOf(0.01),
		B: Percent(50),
		C: AmountFromDecimal(decimal.RequireFromString("123.456")),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":0.01,"b":"50%","c":123.456}`, string(raw))

	var decoded struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":1.5,"b":"25%"}`), &decoded))
	assert.True(t, decoded.A.Decimal().Equal(decimal.NewFromFloat(1.5)))
	assert.False(t, decoded.A.IsPercent())
	assert.Equal(t, "25%", decoded.B.String())
}
