package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"stayhub/internal/app/policies"
	"stayhub/internal/domain/shared/fault"
	"stayhub/internal/domain/shared/money"
)

// CardClient talks to the external card processor over HTTP. Declines come
// back as payment faults so the booking flow surfaces them to the guest;
// connectivity problems are transient.
type CardClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewCardClient(baseURL string, timeout time.Duration) *CardClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &CardClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type holdRequest struct {
	BookingID string `json:"booking_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}

type holdResponse struct {
	HoldID string `json:"hold_id"`
}

func (c *CardClient) PlaceHold(ctx context.Context, bookingID string, amount money.Money) (string, error) {
	var resp holdResponse
	err := c.post(ctx, "/v1/holds", holdRequest{
		BookingID: bookingID,
		Amount:    amount.Amount,
		Currency:  amount.Currency,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.HoldID, nil
}

func (c *CardClient) Capture(ctx context.Context, holdID string) error {
	return c.post(ctx, "/v1/holds/"+holdID+"/capture", struct{}{}, nil)
}

func (c *CardClient) Refund(ctx context.Context, bookingID string, amount money.Money) error {
	return c.post(ctx, "/v1/refunds", holdRequest{
		BookingID: bookingID,
		Amount:    amount.Amount,
		Currency:  amount.Currency,
	}, nil)
}

func (c *CardClient) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fault.Wrap(fault.Transient, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	case resp.StatusCode == http.StatusPaymentRequired || resp.StatusCode == http.StatusUnprocessableEntity:
		return fault.Newf(fault.Payment, "payments: card declined (status %d)", resp.StatusCode)
	case resp.StatusCode >= 500:
		return fault.Newf(fault.Transient, "payments: processor error (status %d)", resp.StatusCode)
	default:
		return fmt.Errorf("payments: unexpected status %d", resp.StatusCode)
	}
}

var _ policies.CardProcessor = (*CardClient)(nil)
