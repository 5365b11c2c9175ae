// Package pumpportal is a client for the PumpPortal API.
//
// Stream subscribes to the real-time data feed (new tokens, token and account
// trades, Raydium liquidity). Client wraps the REST endpoints: executing a
// trade with an API key, fetching an unsigned transaction to sign locally, and
// creating a wallet.
//
//	stream, err := pumpportal.Dial(ctx, logger)
//	if err != nil {
//		return err
//	}
//	defer stream.Close()
//	stream.OnMessage(func(data string) { fmt.Println(data) })
//	stream.Subscribe(pumpportal.TokenTrade, mint)
package pumpportal
