package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/linsok/housing-analyzer-sub000/internal/domain"
)

// StatusChecker resolves the gateway-side status of a KHQR transaction.
type StatusChecker interface {
	CheckTransaction(ctx context.Context, md5Hash string) (domain.PaymentStatus, error)
}

// BakongGateway talks to the Bakong open API. Transaction lookup is by
// the md5 of the KHQR payload.
type BakongGateway struct {
	baseURL  string
	apiToken string
	client   *http.Client
}

func NewBakongGateway(baseURL, apiToken string) *BakongGateway {
	return &BakongGateway{
		baseURL:  baseURL,
		apiToken: apiToken,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type checkTransactionRequest struct {
	MD5 string `json:"md5"`
}

type checkTransactionResponse struct {
	ResponseCode    int    `json:"responseCode"`
	ResponseMessage string `json:"responseMessage"`
	ErrorCode       *int   `json:"errorCode"`
}

// CheckTransaction returns PAID when the gateway has settled the
// transaction, verifying when it has not seen it yet.
func (g *BakongGateway) CheckTransaction(ctx context.Context, md5Hash string) (domain.PaymentStatus, error) {
	body, err := json.Marshal(checkTransactionRequest{MD5: md5Hash})
	if err != nil {
		return domain.PaymentError, err
	}

	url := g.baseURL + "/v1/check_transaction_by_md5"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.PaymentError, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiToken)

	resp, err := g.client.Do(req)
	if err != nil {
		return domain.PaymentError, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return domain.PaymentError, fmt.Errorf("%w: token rejected", ErrGateway)
	}
	if resp.StatusCode >= 500 {
		return domain.PaymentError, fmt.Errorf("%w: status %d", ErrGateway, resp.StatusCode)
	}

	var out checkTransactionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.PaymentError, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	// Code 0 means settled; code 1 with "not found" means the payer has
	// not scanned yet, which is not an error during polling.
	if out.ResponseCode == 0 {
		return domain.PaymentPaid, nil
	}
	return domain.PaymentVerifying, nil
}
