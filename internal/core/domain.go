package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Cash PaymentMethod = "Cash"
	Card PaymentMethod = "Card"
)

type (
	// PaymentMethod is how an expense was paid.
	PaymentMethod string

	// Date is a calendar date; time-of-day is always midnight UTC.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// ExpenseRecord is one immutable recorded transaction.
	// Category and CardType are optional; the empty string means absent.
	ExpenseRecord struct {
		Payer    string
		Amount   Money
		Date     Date
		Method   PaymentMethod
		Category string
		CardType string
	}
)

var (
	ErrEmptyPayer     = errors.New("empty payer name")
	ErrNegativeAmount = errors.New("negative amount")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidMethod  = errors.New("invalid payment method")
	ErrOrphanCardType = errors.New("card type set without card payment")
)

// DateLayout is the wire format for dates (ISO-8601 calendar date).
const DateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// ParsePaymentMethod parses a payment method string, case-insensitively.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash":
		return Cash, nil
	case "card":
		return Card, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMethod, s)
	}
}

func (m PaymentMethod) Validate() error {
	switch m {
	case Cash, Card:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMethod, string(m))
	}
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrNegativeAmount
	}
	return nil
}

func (r ExpenseRecord) Validate() error {
	if strings.TrimSpace(r.Payer) == "" {
		return ErrEmptyPayer
	}
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if err := r.Method.Validate(); err != nil {
		return err
	}
	if r.CardType != "" && r.Method != Card {
		return ErrOrphanCardType
	}
	return nil
}
