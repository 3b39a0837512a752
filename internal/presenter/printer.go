package presenter

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AgentTarik/receipt-feed/internal/transaction"
	"github.com/fatih/color"
)

const (
	red    = color.FgRed
	yellow = color.FgYellow
	blue   = color.FgBlue
)

// ErrUnmaskable is returned for party numbers that are neither cards nor accounts.
var ErrUnmaskable = errors.New("number cannot be masked")

// MaskNumber hides the middle of a card number ("5999 41** **** 6353") or all
// but the last four digits of an account number ("**4472").
func MaskNumber(number string) (string, bool) {
	digits := []rune(number)
	switch len(digits) {
	case transaction.CardDigits:
		masked := make([]rune, 0, len(digits))
		masked = append(masked, digits[:6]...)
		masked = append(masked, []rune(strings.Repeat("*", 6))...)
		masked = append(masked, digits[12:]...)

		groups := make([]string, 0, len(masked)/4)
		for i := 0; i < len(masked); i += 4 {
			groups = append(groups, string(masked[i:i+4]))
		}
		return strings.Join(groups, " "), true
	case transaction.AccountDigits:
		return "**" + string(digits[len(digits)-4:]), true
	}
	return "", false
}

// Printer renders accepted records as console receipts.
type Printer struct {
	Color bool
}

func (p *Printer) paint(attr color.Attribute, s string) string {
	c := color.New(attr)
	if p.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintFunc()(s)
}

// Render formats one record:
//
//	08.12.2019 Открытие вклада
//	Visa Gold 5999 41** **** 6353 -> Счет **4472
//	41096.24 USD
func (p *Printer) Render(rec transaction.Record) (string, error) {
	if rec.Date == nil || rec.Description == nil || rec.Recipient == nil || rec.Amount == nil {
		return "", fmt.Errorf("render receipt: incomplete record")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s.%s %s\n",
		p.paint(red, rec.Date.Format("02.01")), rec.Date.Format("2006"), *rec.Description)

	if rec.Sender != nil {
		from, err := p.party(*rec.Sender)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%s -%s ", from, p.paint(yellow, ">"))
	}
	to, err := p.party(*rec.Recipient)
	if err != nil {
		return "", err
	}
	b.WriteString(to + "\n")

	fmt.Fprintf(&b, "%s %s\n", p.paint(red, rec.Amount.String()), rec.Amount.Currency)
	return b.String(), nil
}

func (p *Printer) party(pt transaction.Party) (string, error) {
	masked, ok := MaskNumber(pt.Number)
	if !ok {
		return "", fmt.Errorf("%w: %d digits", ErrUnmaskable, len([]rune(pt.Number)))
	}
	return pt.Label + " " + p.paint(blue, masked), nil
}

// Write renders records separated by blank lines.
func (p *Printer) Write(out io.Writer, recs []transaction.Record) error {
	for _, rec := range recs {
		s, err := p.Render(rec)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(out, s+"\n"); err != nil {
			return fmt.Errorf("write receipt: %w", err)
		}
	}
	return nil
}
