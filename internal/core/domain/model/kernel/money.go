package kernel

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"parcelmybox/internal/pkg/errs"
	"parcelmybox/internal/pkg/guard"
)

var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney or ParseMoney")

// MaxMoneyAmount is the largest amount in minor units that Money can hold.
const MaxMoneyAmount int64 = math.MaxInt64

// Money is a non-negative amount in minor units (cents) of a single currency.
type Money struct { //nolint:recvcheck //using for validation
	amount   int64
	currency string
	guard    guard.ConstructorGuard
}

// NewMoney builds Money from minor units and an ISO-4217 code.
func NewMoney(amount int64, currency string) (Money, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not a 3-letter code", currency))
	}
	for _, r := range currency {
		if r < 'A' || r > 'Z' {
			return Money{}, errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not a 3-letter code", currency))
		}
	}
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%d is negative", amount))
	}
	return Money{amount: amount, currency: currency, guard: guard.NewConstructorGuard()}, nil
}

// ParseMoney parses a decimal string with at most two fraction digits ("12", "12.5", "12.50").
func ParseMoney(s string, currency string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, errs.NewValueIsRequiredError("amount")
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" || (hasFrac && (frac == "" || len(frac) > 2)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q is not a decimal amount", s))
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	var cents int64
	if hasFrac {
		if len(frac) == 1 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil || cents < 0 {
			return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q is not a decimal amount", s))
		}
	}
	if units < 0 || strings.HasPrefix(whole, "-") {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q is negative", s))
	}
	if units > (MaxMoneyAmount-99)/100 {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", s, 0, (MaxMoneyAmount-99)/100)
	}
	return NewMoney(units*100+cents, currency)
}

// ZeroMoney returns 0 in the given currency.
func ZeroMoney(currency string) (Money, error) {
	return NewMoney(0, currency)
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns minor units.
func (m Money) Amount() int64 {
	return m.amount
}

func (m Money) Currency() string {
	return m.currency
}

func (m Money) IsZero() bool {
	return m.amount == 0
}

// String renders the amount as a plain decimal, e.g. "12.50".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.amount/100, m.amount%100)
}

// Add sums two amounts of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("cannot add %s to %s", other.currency, m.currency))
	}
	if other.amount > MaxMoneyAmount-m.amount {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", "sum", 0, MaxMoneyAmount)
	}
	return NewMoney(m.amount+other.amount, m.currency)
}

// Multiply scales the amount by a non-negative integer factor.
func (m Money) Multiply(factor int64) (Money, error) {
	if factor < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("factor", fmt.Errorf("%d is negative", factor))
	}
	if factor != 0 && m.amount > MaxMoneyAmount/factor {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", fmt.Sprintf("%d x %d", m.amount, factor), 0, MaxMoneyAmount)
	}
	return NewMoney(m.amount*factor, m.currency)
}

// BasisPoints returns amount*bp/10000 rounded half up.
func (m Money) BasisPoints(bp int64) (Money, error) {
	if bp < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("basis points", fmt.Errorf("%d is negative", bp))
	}
	if bp != 0 && m.amount > (MaxMoneyAmount-5000)/bp {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", fmt.Sprintf("%d x %d bp", m.amount, bp), 0, MaxMoneyAmount)
	}
	return NewMoney((m.amount*bp+5000)/10000, m.currency)
}

func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}
