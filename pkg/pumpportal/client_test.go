package pumpportal

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type capturedRequest struct {
	method string
	path   string
	query  map[string][]string
	body   map[string]any
}

func newTestServer(t *testing.T, status int, contentType string, payload []byte) (*httptest.Server, chan capturedRequest) {
	t.Helper()

	captured := make(chan capturedRequest, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := capturedRequest{method: r.Method, path: r.URL.Path, query: r.URL.Query()}
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &req.body); err != nil {
				t.Errorf("request body is not JSON: %v", err)
			}
		}
		captured <- req

		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = w.Write(payload)
	}))
	t.Cleanup(server.Close)
	return server, captured
}

func newTestClient(t *testing.T, server *httptest.Server) *Client {
	return NewClient(zaptest.NewLogger(t), WithBaseURL(server.URL+"/"))
}

func signedTransaction(t *testing.T) ([]byte, solana.PublicKey) {
	t.Helper()

	priv, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	pub := priv.PublicKey()

	ix := solana.NewInstruction(
		solana.SystemProgramID,
		[]*solana.AccountMeta{
			{PublicKey: pub, IsWritable: true, IsSigner: true},
		},
		[]byte{2, 0, 0, 0},
	)
	tx, err := solana.NewTransaction([]solana.Instruction{ix}, solana.Hash{1, 2, 3}, solana.TransactionPayer(pub))
	require.NoError(t, err)

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(pub) {
			return &priv
		}
		return nil
	})
	require.NoError(t, err)

	raw, err := tx.MarshalBinary()
	require.NoError(t, err)
	return raw, pub
}

func TestSubmitTrade_AppliesDefaults(t *testing.T) {
	server, captured := newTestServer(t, http.StatusOK, "application/json", []byte(`{"signature":"5abc","errors":[]}`))
	client := newTestClient(t, server)

	resp, err := client.SubmitTrade(context.Background(), "secret-key", TradeRequest{
		Action:           Buy,
		Mint:             "MintAddress",
		Amount:           AmountOf(0.5),
		DenominatedInSol: true,
		Slippage:         10,
		PriorityFee:      0.0005,
	})
	require.NoError(t, err)
	assert.Equal(t, "5abc", resp.Signature())
	assert.Empty(t, resp.Errors())

	req := <-captured
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/api/trade", req.path)
	assert.Equal(t, []string{"secret-key"}, req.query["api-key"])

	assert.Equal(t, "buy", req.body["action"])
	assert.Equal(t, "MintAddress", req.body["mint"])
	assert.Equal(t, 0.5, req.body["amount"])
	assert.Equal(t, true, req.body["denominatedInSol"])
	assert.Equal(t, float64(10), req.body["slippage"])
	assert.Equal(t, 0.0005, req.body["priorityFee"])
	assert.Equal(t, "pump", req.body["pool"])
	assert.Equal(t, true, req.body["skipPreflight"])
}

func TestSubmitTrade_ExplicitValues(t *testing.T) {
	server, captured := newTestServer(t, http.StatusOK, "application/json", []byte(`{"signature":"sig"}`))
	client := newTestClient(t, server)

	_, err := client.SubmitTrade(context.Background(), "k", TradeRequest{
		Action:        Sell,
		Mint:          "MintAddress",
		Amount:        Percent(100),
		Pool:          PoolRaydium,
		SkipPreflight: Ptr(false),
	})
	require.NoError(t, err)

	req := <-captured
	assert.Equal(t, "sell", req.body["action"])
	assert.Equal(t, "100%", req.body["amount"])
	assert.Equal(t, "raydium", req.body["pool"])
	assert.Equal(t, false, req.body["skipPreflight"])
}

func TestSubmitTrade_ReturnsBodyVerbatim(t *testing.T) {
	server, _ := newTestServer(t, http.StatusBadRequest, "application/json", []byte(`{"errors":["Invalid mint"],"extra":{"n":1}}`))
	client := newTestClient(t, server)

	resp, err := client.SubmitTrade(context.Background(), "k", TradeRequest{Action: Buy, Mint: "bad", Amount: AmountOf(1)})
	require.NoError(t, err)
	assert.Equal(t, []string{"Invalid mint"}, resp.Errors())
	assert.Equal(t, map[string]any{"n": float64(1)}, resp["extra"])
	assert.Empty(t, resp.Signature())
}

func TestSubmitTrade_NonJSONBody(t *testing.T) {
	server, _ := newTestServer(t, http.StatusBadGateway, "text/html", []byte("<html>bad gateway</html>"))
	client := newTestClient(t, server)

	resp, err := client.SubmitTrade(context.Background(), "k", TradeRequest{Action: Buy, Mint: "m", Amount: AmountOf(1)})
	require.Error(t, err)
	assert.Nil(t, resp)
}

func TestSubmitTrade_TransportError(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, "", nil)
	client := newTestClient(t, server)
	server.Close()

	_, err := client.SubmitTrade(context.Background(), "k", TradeRequest{Action: Buy, Mint: "m", Amount: AmountOf(1)})
	require.Error(t, err)
}

func TestFetchLocalTransaction_Decodes(t *testing.T) {
	raw, payer := signedTransaction(t)
	server, captured := newTestServer(t, http.StatusOK, "application/octet-stream", raw)
	client := newTestClient(t, server)

	tx, err := client.FetchLocalTransaction(context.Background(), LocalTradeRequest{
		PublicKey:        payer.String(),
		Action:           Buy,
		Mint:             "MintAddress",
		Amount:           AmountOf(1000),
		DenominatedInSol: false,
		Slippage:         5,
		PriorityFee:      0.0001,
		Pool:             PoolAuto,
	})
	require.NoError(t, err)
	require.NotNil(t, tx)
	require.NotEmpty(t, tx.Message.AccountKeys)
	assert.True(t, tx.Message.AccountKeys[0].Equals(payer))
	assert.Len(t, tx.Message.Instructions, 1)

	req := <-captured
	assert.Equal(t, "/api/trade-local", req.path)
	assert.Empty(t, req.query)
	assert.Equal(t, payer.String(), req.body["publicKey"])
	assert.Equal(t, "auto", req.body["pool"])
	assert.Equal(t, float64(1000), req.body["amount"])
	assert.NotContains(t, req.body, "skipPreflight")
}

func TestFetchLocalTransaction_NoDefaults(t *testing.T) {
	raw, payer := signedTransaction(t)
	server, captured := newTestServer(t, http.StatusOK, "application/octet-stream", raw)
	client := newTestClient(t, server)

	_, err := client.FetchLocalTransaction(context.Background(), LocalTradeRequest{
		PublicKey: payer.String(),
		Action:    Sell,
		Mint:      "MintAddress",
		Amount:    Percent(50),
	})
	require.NoError(t, err)

	req := <-captured
	assert.NotContains(t, req.body, "pool")
	assert.Equal(t, "50%", req.body["amount"])
}

func TestFetchLocalTransaction_HTTPError(t *testing.T) {
	server, _ := newTestServer(t, http.StatusBadRequest, "text/plain", []byte("Bad Request"))
	client := newTestClient(t, server)

	tx, err := client.FetchLocalTransaction(context.Background(), LocalTradeRequest{Action: Buy, Mint: "m", Amount: AmountOf(1)})
	require.Error(t, err)
	assert.Nil(t, tx)

	var serr *StatusError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusBadRequest, serr.StatusCode)
	assert.Contains(t, serr.Status, "Bad Request")
	assert.Equal(t, "/api/trade-local", serr.Endpoint)
}

func TestFetchLocalTransaction_GarbageBody(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, "application/octet-stream", []byte{0xff})
	client := newTestClient(t, server)

	tx, err := client.FetchLocalTransaction(context.Background(), LocalTradeRequest{Action: Buy, Mint: "m", Amount: AmountOf(1)})
	require.Error(t, err)
	assert.Nil(t, tx)
}

func TestFetchLocalTransaction_EmptyBody(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, "application/octet-stream", nil)
	client := newTestClient(t, server)

	_, err := client.FetchLocalTransaction(context.Background(), LocalTradeRequest{Action: Buy, Mint: "m", Amount: AmountOf(1)})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestCreateWallet(t *testing.T) {
	payload := []byte(`{"apiKey":"api-123","walletPublicKey":"Pub111","privateKey":"Priv222"}`)
	server, captured := newTestServer(t, http.StatusOK, "application/json", payload)
	client := newTestClient(t, server)

	cred, err := client.CreateWallet(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &WalletCredential{
		APIKey:          "api-123",
		WalletPublicKey: "Pub111",
		PrivateKey:      "Priv222",
	}, cred)

	req := <-captured
	assert.Equal(t, http.MethodGet, req.method)
	assert.Equal(t, "/api/create-wallet", req.path)

	encoded, err := json.Marshal(cred)
	require.NoError(t, err)
	assert.JSONEq(t, string(payload), string(encoded))
}

func TestCreateWallet_HTTPError(t *testing.T) {
	server, _ := newTestServer(t, http.StatusInternalServerError, "text/plain", []byte("oops"))
	client := newTestClient(t, server)

	cred, err := client.CreateWallet(context.Background())
	assert.Nil(t, cred)

	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusInternalServerError, serr.StatusCode)
	assert.Equal(t, []byte("oops"), serr.Body)
	assert.Contains(t, err.Error(), "/api/create-wallet")
}

type countingTransport struct {
	requests atomic.Int32
	next     http.RoundTripper
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.requests.Add(1)
	return c.next.RoundTrip(r)
}

func TestNewClient_WithHTTPClient(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, "application/json",
		[]byte(`{"apiKey":"a","walletPublicKey":"b","privateKey":"c"}`))

	transport := &countingTransport{next: http.DefaultTransport}
	client := NewClient(zaptest.NewLogger(t),
		WithBaseURL(server.URL),
		WithHTTPClient(&http.Client{Transport: transport}),
	)

	cred, err := client.CreateWallet(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", cred.APIKey)
	assert.Equal(t, int32(1), transport.requests.Load())
}
