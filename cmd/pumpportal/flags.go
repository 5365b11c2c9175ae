package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/rovshanmuradov/pumpportal-go/pkg/pumpportal"
)

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseEvents(s string) ([]pumpportal.Event, error) {
	names := splitList(s)
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no events given", errUsage)
	}
	events := make([]pumpportal.Event, 0, len(names))
	for _, name := range names {
		e, err := pumpportal.ParseEvent(name)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

// tradeFlags are shared by the trade and local commands.
type tradeFlags struct {
	action      string
	mint        string
	amount      string
	sol         bool
	slippage    float64
	priorityFee float64
	pool        string
}

func (f *tradeFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.action, "action", "buy", "buy or sell")
	fs.StringVar(&f.mint, "mint", "", "token mint address")
	fs.StringVar(&f.amount, "amount", "", "amount, e.g. 0.1 or 100%")
	fs.BoolVar(&f.sol, "sol", false, "amount is denominated in SOL")
	fs.Float64Var(&f.slippage, "slippage", 10, "slippage percent")
	fs.Float64Var(&f.priorityFee, "fee", 0.00005, "priority fee in SOL")
	fs.StringVar(&f.pool, "pool", "", "pump, raydium or auto")
}

type parsedTrade struct {
	action pumpportal.Action
	amount pumpportal.Amount
	pool   pumpportal.Pool
}

func (f *tradeFlags) parse() (parsedTrade, error) {
	var p parsedTrade

	switch pumpportal.Action(strings.ToLower(f.action)) {
	case pumpportal.Buy:
		p.action = pumpportal.Buy
	case pumpportal.Sell:
		p.action = pumpportal.Sell
	default:
		return p, fmt.Errorf("%w: invalid action %q", errUsage, f.action)
	}

	if f.mint == "" {
		return p, fmt.Errorf("%w: -mint is required", errUsage)
	}
	if f.amount == "" {
		return p, fmt.Errorf("%w: -amount is required", errUsage)
	}
	amount, err := pumpportal.ParseAmount(f.amount)
	if err != nil {
		return p, err
	}
	p.amount = amount

	switch pool := pumpportal.Pool(strings.ToLower(f.pool)); pool {
	case "", pumpportal.PoolPump, pumpportal.PoolRaydium, pumpportal.PoolAuto:
		p.pool = pool
	default:
		return p, fmt.Errorf("%w: invalid pool %q", errUsage, f.pool)
	}
	return p, nil
}
