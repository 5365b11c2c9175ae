// pkg/pumpportal/types.go
package pumpportal

type Action string

const (
	Buy  Action = "buy"
	Sell Action = "sell"
)

// Pool selects the exchange the trade is routed to.
type Pool string

const (
	PoolPump    Pool = "pump"
	PoolRaydium Pool = "raydium"
	PoolAuto    Pool = "auto"
)

// TradeRequest describes a trade executed by PumpPortal with the wallet linked
// to the API key. Pool defaults to PoolPump and SkipPreflight to true.
type TradeRequest struct {
	Action           Action
	Mint             string
	Amount           Amount
	DenominatedInSol bool
	Slippage         float64 // percent
	PriorityFee      float64 // SOL
	Pool             Pool
	SkipPreflight    *bool
}

// LocalTradeRequest asks PumpPortal to build an unsigned transaction for
// PublicKey; the caller signs and sends it. Nothing is defaulted locally.
type LocalTradeRequest struct {
	PublicKey        string  `json:"publicKey"`
	Action           Action  `json:"action"`
	Mint             string  `json:"mint"`
	Amount           Amount  `json:"amount"`
	DenominatedInSol bool    `json:"denominatedInSol"`
	Slippage         float64 `json:"slippage"`
	PriorityFee      float64 `json:"priorityFee"`
	Pool             Pool    `json:"pool,omitempty"`
}

// tradeBody is the wire form of TradeRequest once defaults are applied.
type tradeBody struct {
	Action           Action  `json:"action"`
	Mint             string  `json:"mint"`
	Amount           Amount  `json:"amount"`
	DenominatedInSol bool    `json:"denominatedInSol"`
	Slippage         float64 `json:"slippage"`
	PriorityFee      float64 `json:"priorityFee"`
	Pool             Pool    `json:"pool"`
	SkipPreflight    bool    `json:"skipPreflight"`
}

func (r TradeRequest) body() tradeBody {
	pool := r.Pool
	if pool == "" {
		pool = PoolPump
	}
	skip := true
	if r.SkipPreflight != nil {
		skip = *r.SkipPreflight
	}
	return tradeBody{
		Action:           r.Action,
		Mint:             r.Mint,
		Amount:           r.Amount,
		DenominatedInSol: r.DenominatedInSol,
		Slippage:         r.Slippage,
		PriorityFee:      r.PriorityFee,
		Pool:             pool,
		SkipPreflight:    skip,
	}
}

// Ptr is a convenience for optional request fields.
func Ptr[T any](v T) *T { return &v }
