package wallet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/domain/shared/fault"
	"stayhub/internal/domain/shared/money"
)

var walletNow = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

func TestDebitWithinBalance(t *testing.T) {
	w, err := New("user-1", money.Must(10000, "USD"), walletNow)
	require.NoError(t, err)

	require.NoError(t, w.Debit(money.Must(5400, "USD"), "bkg-1", walletNow))
	assert.Equal(t, int64(4600), w.Balance.Amount)
	require.Len(t, w.Transactions, 1)
	assert.Equal(t, TxDebit, w.Transactions[0].Kind)
	assert.Equal(t, "bkg-1", w.Transactions[0].Reference)
}

func TestDebitOverdrawRejected(t *testing.T) {
	w, err := New("user-1", money.Must(100, "USD"), walletNow)
	require.NoError(t, err)

	err = w.Debit(money.Must(101, "USD"), "bkg-1", walletNow)
	require.ErrorIs(t, err, ErrInsufficientBalance)
	assert.True(t, fault.Is(err, fault.Payment))
	assert.Equal(t, int64(100), w.Balance.Amount, "balance untouched on rejection")
	assert.Empty(t, w.Transactions)
}

func TestDebitCurrencyMismatch(t *testing.T) {
	w, err := New("user-1", money.Must(100, "USD"), walletNow)
	require.NoError(t, err)
	require.ErrorIs(t, w.Debit(money.Must(10, "EUR"), "bkg-1", walletNow), ErrCurrencyMismatch)
}

func TestCreditRefund(t *testing.T) {
	w, err := New("user-1", money.Must(100, "USD"), walletNow)
	require.NoError(t, err)
	require.NoError(t, w.Credit(money.Must(50, "USD"), "refund:bkg-1", walletNow))
	assert.Equal(t, int64(150), w.Balance.Amount)
}

func TestNonPositiveAmountsRejected(t *testing.T) {
	w, err := New("user-1", money.Must(100, "USD"), walletNow)
	require.NoError(t, err)
	require.ErrorIs(t, w.Debit(money.Money{}, "x", walletNow), ErrAmountNotPositive)
	require.ErrorIs(t, w.Credit(money.Must(0, "USD"), "x", walletNow), ErrAmountNotPositive)
}
