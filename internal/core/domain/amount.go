package domain

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Stored amounts are NUMERIC(20,4).
const (
	AmountScale         = 4
	AmountIntegerDigits = 16
)

var ten = big.NewInt(10)

// CheckAmount reports whether d can be stored exactly: at most AmountScale
// decimal places and AmountIntegerDigits integer digits. It inspects the
// coefficient and exponent only, so exponent-form input such as 1e300000000
// is rejected without being expanded.
func CheckAmount(d decimal.Decimal) error {
	coef := new(big.Int).Abs(d.Coefficient())
	exp := int64(d.Exponent())
	digits := int64(len(coef.String()))

	if digits+exp > AmountIntegerDigits {
		return fmt.Errorf("amount exceeds %d integer digits", AmountIntegerDigits)
	}

	if exp < -AmountScale {
		// the extra trailing digits must all be zero
		extra := -AmountScale - exp
		if extra >= digits {
			return fmt.Errorf("amount has more than %d decimal places", AmountScale)
		}
		div := new(big.Int).Exp(ten, big.NewInt(extra), nil)
		if new(big.Int).Rem(coef, div).Sign() != 0 {
			return fmt.Errorf("amount has more than %d decimal places", AmountScale)
		}
	}
	return nil
}
