package queries

import (
	"time"

	"parcelmybox/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// MoneyView is an amount in minor units together with its decimal rendering.
type MoneyView struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Display  string `json:"display"`
}

func moneyView(amount int64, currency string) MoneyView {
	m, err := kernel.NewMoney(amount, currency)
	if err != nil {
		return MoneyView{Amount: amount, Currency: currency}
	}
	return moneyViewOf(m)
}

func moneyViewOf(m kernel.Money) MoneyView {
	return MoneyView{Amount: m.Amount(), Currency: m.Currency(), Display: m.String()}
}

type PostalView struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// postalRow matches the inline postal column group. Row structs embed it
// through a named field tagged embedded.
type postalRow struct {
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}

func (r postalRow) view() PostalView {
	return PostalView(r)
}

func postalColumns(prefix string) []string {
	cols := []string{"line1", "line2", "city", "state", "postal_code", "country"}
	if prefix == "" {
		return cols
	}
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = prefix + c
	}
	return out
}

const dateLayout = time.DateOnly

func optionalID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
