package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Paystack系の決済ゲートウェイクライアント。
// initializeでリダイレクトURLをもらい、callbackのreferenceをverifyで確認する。
type PaystackClient struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
}

func NewPaystackClient(baseURL string, secretKey string) *PaystackClient {
	return &PaystackClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		secretKey:  secretKey,
	}
}

type initializeRequest struct {
	Email       string `json:"email"`
	Amount      int64  `json:"amount"`
	Reference   string `json:"reference"`
	CallbackURL string `json:"callback_url"`
}

type initializeResponse struct {
	Status bool `json:"status"`
	Data   struct {
		AuthorizationURL string `json:"authorization_url"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type verifyResponse struct {
	Status bool `json:"status"`
	Data   struct {
		Status string `json:"status"`
	} `json:"data"`
}

// 取引を開始して支払いページのURLを返す。amountは最小通貨単位。
func (c *PaystackClient) InitializeTransaction(ctx context.Context, email string, amount int64, reference string, callbackURL string) (string, error) {
	body, err := json.Marshal(initializeRequest{
		Email:       email,
		Amount:      amount,
		Reference:   reference,
		CallbackURL: callbackURL,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("paystack initialize failed: status %d", resp.StatusCode)
	}

	var out initializeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if !out.Status {
		return "", fmt.Errorf("paystack initialize rejected")
	}

	return out.Data.AuthorizationURL, nil
}

// referenceの取引が成功しているか。
func (c *PaystackClient) VerifyTransaction(ctx context.Context, reference string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/transaction/verify/"+reference, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, nil
	}

	var out verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, err
	}

	return out.Status && out.Data.Status == "success", nil
}
