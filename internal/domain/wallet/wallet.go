package wallet

import (
	"context"
	"strings"
	"time"

	"stayhub/internal/domain/shared/fault"
	"stayhub/internal/domain/shared/money"
	"stayhub/internal/domain/user"
)

var (
	ErrOwnerRequired       = fault.New(fault.Validation, "wallet: owner is required")
	ErrCurrencyMismatch    = fault.New(fault.Validation, "wallet: currency mismatch")
	ErrAmountNotPositive   = fault.New(fault.Validation, "wallet: amount must be positive")
	ErrInsufficientBalance = fault.New(fault.Payment, "wallet: insufficient balance")
	ErrNotFound            = fault.New(fault.Validation, "wallet: not found")
)

type TransactionKind string

const (
	TxDebit  TransactionKind = "debit"
	TxCredit TransactionKind = "credit"
)

type Transaction struct {
	Kind      TransactionKind
	Amount    money.Money
	Reference string
	At        time.Time
}

// Wallet is the guest's stored-value account. Balance never goes below zero;
// a debit that would overdraw is rejected, not clamped.
type Wallet struct {
	OwnerID      user.ID
	Balance      money.Money
	Transactions []Transaction
	UpdatedAt    time.Time
	Version      int64
}

type Repository interface {
	ByOwner(ctx context.Context, ownerID user.ID) (*Wallet, error)
	Save(ctx context.Context, w *Wallet) error
}

func New(ownerID user.ID, opening money.Money, now time.Time) (*Wallet, error) {
	if strings.TrimSpace(string(ownerID)) == "" {
		return nil, ErrOwnerRequired
	}
	if opening.Amount < 0 {
		return nil, ErrAmountNotPositive
	}
	if now.IsZero() {
		now = time.Now()
	}
	return &Wallet{
		OwnerID:   ownerID,
		Balance:   opening,
		UpdatedAt: now.UTC(),
	}, nil
}

// Debit withdraws amount for the given reference. The caller sees
// ErrInsufficientBalance as a payment fault and surfaces it without retry.
func (w *Wallet) Debit(amount money.Money, reference string, now time.Time) error {
	if err := w.checkAmount(amount); err != nil {
		return err
	}
	if w.Balance.Amount < amount.Amount {
		return ErrInsufficientBalance
	}
	balance, err := w.Balance.Sub(amount)
	if err != nil {
		return err
	}
	w.Balance = balance
	w.record(TxDebit, amount, reference, now)
	return nil
}

// Credit deposits amount, used for refunds and top-ups.
func (w *Wallet) Credit(amount money.Money, reference string, now time.Time) error {
	if err := w.checkAmount(amount); err != nil {
		return err
	}
	balance, err := w.Balance.Add(amount)
	if err != nil {
		return err
	}
	w.Balance = balance
	w.record(TxCredit, amount, reference, now)
	return nil
}

func (w *Wallet) checkAmount(amount money.Money) error {
	if !amount.Defined() || amount.Amount <= 0 {
		return ErrAmountNotPositive
	}
	if w.Balance.Defined() && w.Balance.Currency != amount.Currency {
		return ErrCurrencyMismatch
	}
	return nil
}

func (w *Wallet) record(kind TransactionKind, amount money.Money, reference string, now time.Time) {
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()
	w.Transactions = append(w.Transactions, Transaction{
		Kind:      kind,
		Amount:    amount,
		Reference: reference,
		At:        now,
	})
	w.UpdatedAt = now
}
