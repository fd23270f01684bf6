package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewPriceFormatter(t *testing.T) {
	f := NewPriceFormatter("Rs. ")
	assert.Equal(t, "Rs. 1,250.50", f(decimal.RequireFromString("1250.5")))
	assert.Equal(t, "Rs. 0.00", f(decimal.Zero))
}
