package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/app/commands"
	"stayhub/internal/app/middleware"
	appoutbox "stayhub/internal/app/outbox"
	"stayhub/internal/app/policies"
	domainlistings "stayhub/internal/domain/listings"
	"stayhub/internal/domain/shared/fault"
	"stayhub/internal/domain/shared/money"
	domainwallet "stayhub/internal/domain/wallet"
	"stayhub/internal/infra/storage/memory"
)

type bookingFixture struct {
	factory *memory.Factory
	outbox  *memory.OutboxLog
	bus     commands.Bus
}

func newBookingFixture(t *testing.T, cards policies.CardProcessor) bookingFixture {
	t.Helper()
	factory := memory.NewFactory()

	listing, err := domainlistings.New(domainlistings.CreateParams{
		ID:              "lst-1",
		Host:            "host-1",
		Title:           "Canal view flat",
		NightlyRate:     money.Must(10000, "EUR"),
		DiscountPercent: 20,
		PromoCode:       "SPRING20",
		GuestsLimit:     2,
		Now:             time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, factory.ListingsRepo.Save(context.Background(), listing))

	wallet, err := domainwallet.New("guest-1", money.Must(50000, "EUR"), time.Now())
	require.NoError(t, err)
	require.NoError(t, factory.WalletsRepo.Save(context.Background(), wallet))

	outboxLog := memory.NewOutboxLog(nil)
	handler := &RequestBookingHandler{
		UoWFactory: factory,
		Cards:      cards,
		Outbox:     outboxLog,
		Encoder:    appoutbox.JSONEventEncoder{},
	}
	bus := commands.NewInMemoryBus()
	commands.RegisterHandler(bus, RequestBookingCommand{}.Key(), handler)
	chained := middleware.ChainCommands(
		bus,
		middleware.Idempotency(memory.NewIdempotencyStore(0), nil),
		middleware.Transaction(factory, nil),
		middleware.OutboxFlush(outboxLog),
	)
	return bookingFixture{factory: factory, outbox: outboxLog, bus: chained}
}

func stayDates() (time.Time, time.Time) {
	checkIn := time.Now().UTC().AddDate(0, 0, 7)
	return checkIn, checkIn.AddDate(0, 0, 3)
}

func TestRequestBookingWalletPayment(t *testing.T) {
	fx := newBookingFixture(t, nil)
	checkIn, checkOut := stayDates()

	result, err := commands.Dispatch[RequestBookingCommand, *RequestBookingResult](
		context.Background(), fx.bus, RequestBookingCommand{
			CommandID: "cmd-1",
			ListingID: "lst-1",
			GuestID:   "guest-1",
			CheckIn:   checkIn,
			CheckOut:  checkOut,
			Guests:    2,
			PromoCode: "SPRING20",
		})
	require.NoError(t, err)
	require.NotNil(t, result)

	// 3 nights at 100.00 with the 20% promo discount applied.
	assert.Equal(t, int64(24000), result.Total)
	assert.Equal(t, "EUR", result.Currency)
	assert.True(t, result.Paid)

	wallet, err := fx.factory.WalletsRepo.ByOwner(context.Background(), "guest-1")
	require.NoError(t, err)
	assert.Equal(t, int64(26000), wallet.Balance.Amount)
	require.Len(t, wallet.Transactions, 1)
	assert.Equal(t, domainwallet.TxDebit, wallet.Transactions[0].Kind)

	bookings, err := fx.factory.BookingsRepo.ListByGuest(context.Background(), "guest-1")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "wallet:cmd-1", bookings[0].PaymentRef)
	assert.True(t, bookings[0].PromoApplied)

	records := fx.outbox.Tail()
	require.Len(t, records, 1)
	assert.Equal(t, "booking.requested", records[0].Name)
}

func TestRequestBookingOverdrawRejected(t *testing.T) {
	fx := newBookingFixture(t, nil)
	checkIn, _ := stayDates()

	_, err := commands.Dispatch[RequestBookingCommand, *RequestBookingResult](
		context.Background(), fx.bus, RequestBookingCommand{
			CommandID: "cmd-2",
			ListingID: "lst-1",
			GuestID:   "guest-1",
			CheckIn:   checkIn,
			CheckOut:  checkIn.AddDate(0, 0, 14),
			Guests:    2,
		})
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.Payment))

	wallet, walletErr := fx.factory.WalletsRepo.ByOwner(context.Background(), "guest-1")
	require.NoError(t, walletErr)
	assert.Equal(t, int64(50000), wallet.Balance.Amount, "rejected debit leaves the balance alone")

	bookings, listErr := fx.factory.BookingsRepo.ListByGuest(context.Background(), "guest-1")
	require.NoError(t, listErr)
	assert.Empty(t, bookings)
}

func TestRequestBookingIdempotentReplay(t *testing.T) {
	fx := newBookingFixture(t, nil)
	checkIn, checkOut := stayDates()
	cmd := RequestBookingCommand{
		CommandID:       "cmd-3",
		ListingID:       "lst-1",
		GuestID:         "guest-1",
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Guests:          1,
		IdempotencyKeyV: "idem-1",
	}

	first, err := commands.Dispatch[RequestBookingCommand, *RequestBookingResult](context.Background(), fx.bus, cmd)
	require.NoError(t, err)

	replay, err := commands.Dispatch[RequestBookingCommand, *RequestBookingResult](context.Background(), fx.bus, cmd)
	require.NoError(t, err)
	assert.Equal(t, first.BookingID, replay.BookingID)

	wallet, err := fx.factory.WalletsRepo.ByOwner(context.Background(), "guest-1")
	require.NoError(t, err)
	require.Len(t, wallet.Transactions, 1, "replay must not debit twice")

	bookings, err := fx.factory.BookingsRepo.ListByGuest(context.Background(), "guest-1")
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestRequestBookingUnknownPaymentMethod(t *testing.T) {
	fx := newBookingFixture(t, nil)
	checkIn, checkOut := stayDates()

	_, err := commands.Dispatch[RequestBookingCommand, *RequestBookingResult](
		context.Background(), fx.bus, RequestBookingCommand{
			CommandID:     "cmd-4",
			ListingID:     "lst-1",
			GuestID:       "guest-1",
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			Guests:        1,
			PaymentMethod: "cheque",
		})
	require.ErrorIs(t, err, ErrPaymentMethodUnknown)
}

func TestRequestBookingCardUnavailable(t *testing.T) {
	fx := newBookingFixture(t, nil)
	checkIn, checkOut := stayDates()

	_, err := commands.Dispatch[RequestBookingCommand, *RequestBookingResult](
		context.Background(), fx.bus, RequestBookingCommand{
			CommandID:     "cmd-5",
			ListingID:     "lst-1",
			GuestID:       "guest-1",
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			Guests:        1,
			PaymentMethod: "card",
		})
	require.ErrorIs(t, err, ErrCardsUnavailable)
}

type fakeCardProcessor struct {
	holdErr    error
	captureErr error
	captured   []string
}

func (f *fakeCardProcessor) PlaceHold(_ context.Context, bookingID string, _ money.Money) (string, error) {
	if f.holdErr != nil {
		return "", f.holdErr
	}
	return "hold-" + bookingID, nil
}

func (f *fakeCardProcessor) Capture(_ context.Context, holdID string) error {
	if f.captureErr != nil {
		return f.captureErr
	}
	f.captured = append(f.captured, holdID)
	return nil
}

func (f *fakeCardProcessor) Refund(context.Context, string, money.Money) error { return nil }

func TestRequestBookingCardPayment(t *testing.T) {
	cards := &fakeCardProcessor{}
	fx := newBookingFixture(t, cards)
	checkIn, checkOut := stayDates()

	result, err := commands.Dispatch[RequestBookingCommand, *RequestBookingResult](
		context.Background(), fx.bus, RequestBookingCommand{
			CommandID:     "cmd-6",
			ListingID:     "lst-1",
			GuestID:       "guest-1",
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			Guests:        1,
			PaymentMethod: "card",
		})
	require.NoError(t, err)
	assert.True(t, result.Paid)
	assert.Equal(t, []string{"hold-cmd-6"}, cards.captured)

	wallet, err := fx.factory.WalletsRepo.ByOwner(context.Background(), "guest-1")
	require.NoError(t, err)
	assert.Equal(t, int64(50000), wallet.Balance.Amount, "card payment never touches the wallet")

	bookings, err := fx.factory.BookingsRepo.ListByGuest(context.Background(), "guest-1")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "hold-cmd-6", bookings[0].PaymentRef)
}

func TestRequestBookingCaptureFailureLeavesNoBooking(t *testing.T) {
	declined := fault.New(fault.Payment, "payments: card declined")
	fx := newBookingFixture(t, &fakeCardProcessor{captureErr: declined})
	checkIn, checkOut := stayDates()

	_, err := commands.Dispatch[RequestBookingCommand, *RequestBookingResult](
		context.Background(), fx.bus, RequestBookingCommand{
			CommandID:     "cmd-7",
			ListingID:     "lst-1",
			GuestID:       "guest-1",
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			Guests:        1,
			PaymentMethod: "card",
		})
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.Payment))

	bookings, listErr := fx.factory.BookingsRepo.ListByGuest(context.Background(), "guest-1")
	require.NoError(t, listErr)
	assert.Empty(t, bookings, "a failed capture persists nothing")
	assert.Empty(t, fx.outbox.Tail())
}

func TestRequestBookingHoldFailureIsTransient(t *testing.T) {
	down := fault.New(fault.Transient, "payments: processor unreachable")
	fx := newBookingFixture(t, &fakeCardProcessor{holdErr: down})
	checkIn, checkOut := stayDates()

	_, err := commands.Dispatch[RequestBookingCommand, *RequestBookingResult](
		context.Background(), fx.bus, RequestBookingCommand{
			CommandID:     "cmd-8",
			ListingID:     "lst-1",
			GuestID:       "guest-1",
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			Guests:        1,
			PaymentMethod: "card",
		})
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.Transient))

	bookings, listErr := fx.factory.BookingsRepo.ListByGuest(context.Background(), "guest-1")
	require.NoError(t, listErr)
	assert.Empty(t, bookings)
}

func TestRequestBookingReplayKeepsFailureKind(t *testing.T) {
	fx := newBookingFixture(t, nil)
	checkIn, _ := stayDates()
	cmd := RequestBookingCommand{
		CommandID:       "cmd-9",
		ListingID:       "lst-1",
		GuestID:         "guest-1",
		CheckIn:         checkIn,
		CheckOut:        checkIn.AddDate(0, 0, 14),
		Guests:          1,
		IdempotencyKeyV: "idem-2",
	}

	_, err := commands.Dispatch[RequestBookingCommand, *RequestBookingResult](context.Background(), fx.bus, cmd)
	require.Error(t, err)
	require.True(t, fault.Is(err, fault.Payment))

	_, replayErr := commands.Dispatch[RequestBookingCommand, *RequestBookingResult](context.Background(), fx.bus, cmd)
	require.Error(t, replayErr)
	assert.True(t, fault.Is(replayErr, fault.Payment), "a replayed decline keeps its classification")

	wallet, walletErr := fx.factory.WalletsRepo.ByOwner(context.Background(), "guest-1")
	require.NoError(t, walletErr)
	assert.Equal(t, int64(50000), wallet.Balance.Amount)
}
