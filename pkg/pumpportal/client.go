// pkg/pumpportal/client.go
package pumpportal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://pumpportal.fun"

	tradePath        = "/api/trade"
	tradeLocalPath   = "/api/trade-local"
	createWalletPath = "/api/create-wallet"
)

type clientConfig struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption customizes NewClient.
type ClientOption func(*clientConfig)

// WithBaseURL points the client at another host, e.g. a test server.
func WithBaseURL(url string) ClientOption {
	return func(c *clientConfig) { c.baseURL = strings.TrimSuffix(url, "/") }
}

// WithHTTPClient supplies the underlying *http.Client. No timeout is set by
// default; pass a client with one if needed.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *clientConfig) { c.httpClient = hc }
}

// Client issues the stateless PumpPortal REST calls. Each call is a single
// request: nothing is retried or cached.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient creates a REST client. A nil logger disables logging.
func NewClient(logger *zap.Logger, opts ...ClientOption) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := clientConfig{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(&cfg)
	}

	var rc *resty.Client
	if cfg.httpClient != nil {
		rc = resty.NewWithClient(cfg.httpClient)
	} else {
		rc = resty.New()
	}
	rc.SetBaseURL(cfg.baseURL).
		SetRetryCount(0).
		SetLogger(logger.Named("resty").Sugar())

	return &Client{
		http:   rc,
		logger: logger.Named("pumpportal-client"),
	}
}

// operation returns a logger tagged with the operation name and a fresh request id.
func (c *Client) operation(name string) *zap.Logger {
	return c.logger.With(
		zap.String("operation", name),
		zap.String("request_id", uuid.NewString()),
	)
}

// TradeResponse is the decoded body returned by the trade endpoint. Its shape
// is owned by PumpPortal and is passed through untouched.
type TradeResponse map[string]any

// Signature returns the transaction signature if the response carries one.
func (r TradeResponse) Signature() string {
	s, _ := r["signature"].(string)
	return s
}

// Errors returns the error messages reported by PumpPortal, if any.
func (r TradeResponse) Errors() []string {
	raw, ok := r["errors"].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		out = append(out, fmt.Sprint(e))
	}
	return out
}

// SubmitTrade asks PumpPortal to execute req with the wallet linked to apiKey
// and returns the decoded response body as is.
func (c *Client) SubmitTrade(ctx context.Context, apiKey string, req TradeRequest) (TradeResponse, error) {
	log := c.operation("submit_trade")
	body := req.body()

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("api-key", apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(tradePath)
	if err != nil {
		log.Error("Trade request failed", zap.String("mint", body.Mint), zap.Error(err))
		return nil, err
	}

	raw := resp.Body()
	if len(raw) == 0 {
		log.Error("Trade response is empty", zap.String("status", resp.Status()))
		return nil, fmt.Errorf("%s: %w", tradePath, ErrEmptyResponse)
	}

	var out TradeResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Error("Trade response is not JSON", zap.String("status", resp.Status()), zap.Error(err))
		return nil, fmt.Errorf("decode %s response: %w", tradePath, err)
	}

	log.Info("Trade submitted",
		zap.String("action", string(body.Action)),
		zap.String("mint", body.Mint),
		zap.String("pool", string(body.Pool)),
		zap.String("signature", out.Signature()),
	)
	return out, nil
}

// FetchLocalTransaction asks PumpPortal to build an unsigned transaction for
// req and decodes it. The caller is expected to sign and send it.
func (c *Client) FetchLocalTransaction(ctx context.Context, req LocalTradeRequest) (*solana.Transaction, error) {
	log := c.operation("trade_local")

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(tradeLocalPath)
	if err != nil {
		log.Error("Local trade request failed", zap.String("mint", req.Mint), zap.Error(err))
		return nil, err
	}

	if !resp.IsSuccess() {
		serr := &StatusError{
			Endpoint:   tradeLocalPath,
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Body:       resp.Body(),
		}
		log.Error("Local trade rejected", zap.Error(serr))
		return nil, serr
	}

	raw := resp.Body()
	if len(raw) == 0 {
		log.Error("Local trade response is empty")
		return nil, fmt.Errorf("%s: %w", tradeLocalPath, ErrEmptyResponse)
	}

	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(raw))
	if err != nil {
		log.Error("Failed to decode transaction", zap.Int("bytes", len(raw)), zap.Error(err))
		return nil, fmt.Errorf("decode transaction: %w", err)
	}

	log.Debug("Local transaction built",
		zap.String("mint", req.Mint),
		zap.Int("instructions", len(tx.Message.Instructions)),
	)
	return tx, nil
}

// WalletCredential is a freshly created PumpPortal wallet together with the API
// key bound to it. The SDK never stores it.
type WalletCredential struct {
	APIKey          string `json:"apiKey"`
	WalletPublicKey string `json:"walletPublicKey"`
	PrivateKey      string `json:"privateKey"`
}

// CreateWallet generates a new wallet and linked API key.
func (c *Client) CreateWallet(ctx context.Context) (*WalletCredential, error) {
	log := c.operation("create_wallet")

	resp, err := c.http.R().
		SetContext(ctx).
		Get(createWalletPath)
	if err != nil {
		log.Error("Create wallet request failed", zap.Error(err))
		return nil, err
	}

	if !resp.IsSuccess() {
		serr := &StatusError{
			Endpoint:   createWalletPath,
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Body:       resp.Body(),
		}
		log.Error("Create wallet rejected", zap.Error(serr))
		return nil, serr
	}

	var cred WalletCredential
	if err := json.Unmarshal(resp.Body(), &cred); err != nil {
		log.Error("Create wallet response is not JSON", zap.Error(err))
		return nil, fmt.Errorf("decode %s response: %w", createWalletPath, err)
	}

	log.Info("Wallet created", zap.String("wallet", cred.WalletPublicKey))
	return &cred, nil
}
