package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"taqueando-console/internal/domain"
)

// Counter holds the physical cash count of an arqueo in progress. It is not
// safe for concurrent use; CashDesk serialises access to it.
type Counter struct {
	counts    domain.DenominationCount
	pettyCash decimal.Decimal
	notes     string
}

func NewCounter() *Counter {
	return &Counter{
		counts:    domain.NewDenominationCount(),
		pettyCash: decimal.Zero,
	}
}

// Input sets the count of one denomination from user input. Empty input
// means zero; anything but an integer between 0 and
// domain.MaxDenominationCount is rejected and leaves the counter untouched.
func (c *Counter) Input(denomination int, raw string) error {
	if !domain.IsDenomination(denomination) {
		return fmt.Errorf("%w: %d", domain.ErrUnknownDenomination, denomination)
	}

	raw = strings.TrimSpace(raw)
	count := 0
	if raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > domain.MaxDenominationCount {
			return fmt.Errorf("%w: %q", domain.ErrInvalidCount, raw)
		}
		count = n
	}

	c.counts[denomination] = count
	return nil
}

// SetPettyCash sets the petty-cash float from user input. Empty input means
// zero; non-numeric or negative input is rejected.
func (c *Counter) SetPettyCash(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		c.pettyCash = decimal.Zero
		return nil
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("%w: %q", domain.ErrInvalidAmount, raw)
	}
	return c.SetPettyCashAmount(amount)
}

// SetPettyCashAmount sets the petty-cash float carried from a previous arqueo.
func (c *Counter) SetPettyCashAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s", domain.ErrInvalidAmount, amount)
	}
	c.pettyCash = amount
	return nil
}

func (c *Counter) SetNotes(notes string) {
	c.notes = notes
}

// Counts returns a copy of the current count.
func (c *Counter) Counts() domain.DenominationCount {
	return c.counts.Clone()
}

func (c *Counter) PettyCash() decimal.Decimal {
	return c.pettyCash
}

func (c *Counter) Notes() string {
	return c.notes
}

// CountedTotal is the sum of value times count over every denomination.
func (c *Counter) CountedTotal() decimal.Decimal {
	return c.counts.Total()
}

// Discrepancy compares the count against the system cash total.
func (c *Counter) Discrepancy(systemCash decimal.Decimal) decimal.Decimal {
	return ComputeDiscrepancy(c.CountedTotal(), c.pettyCash, systemCash)
}

// Reset clears the submitted count: every denomination still holding the
// submitted value goes back to zero and the notes are cleared if unchanged.
// Edits made after counts and notes were taken survive. The petty-cash float
// is kept; it carries over to the next arqueo.
func (c *Counter) Reset(counts domain.DenominationCount, notes string) {
	for value, n := range c.counts {
		if counts[value] == n {
			c.counts[value] = 0
		}
	}
	if c.notes == notes {
		c.notes = ""
	}
}

// ComputeDiscrepancy returns counted - pettyCash - systemCash.
func ComputeDiscrepancy(counted, pettyCash, systemCash decimal.Decimal) decimal.Decimal {
	return counted.Sub(pettyCash).Sub(systemCash)
}

// ClassifyDiscrepancy derives the arqueo status from the sign of d.
func ClassifyDiscrepancy(d decimal.Decimal) domain.ArqueoStatus {
	switch d.Sign() {
	case 0:
		return domain.ArqueoBalanced
	case 1:
		return domain.ArqueoSurplus
	default:
		return domain.ArqueoShortfall
	}
}
