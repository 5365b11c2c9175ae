package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/pumpportal-go/internal/blockchain"
	"github.com/rovshanmuradov/pumpportal-go/internal/blockchain/solbc"
	"github.com/rovshanmuradov/pumpportal-go/internal/config"
	"github.com/rovshanmuradov/pumpportal-go/internal/wallet"
	"github.com/rovshanmuradov/pumpportal-go/pkg/pumpportal"
)

func runTrade(ctx context.Context, cfg *config.Config, log *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("trade", flag.ContinueOnError)
	var tf tradeFlags
	tf.register(fs)
	skipPreflight := fs.Bool("skip-preflight", true, "skip preflight simulation")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	p, err := tf.parse()
	if err != nil {
		return err
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}

	log.Debug("Using API key", zap.String("api_key", cfg.MaskedAPIKey()))

	client := pumpportal.NewClient(log, pumpportal.WithBaseURL(cfg.APIBaseURL))
	resp, err := client.SubmitTrade(ctx, cfg.APIKey, pumpportal.TradeRequest{
		Action:           p.action,
		Mint:             tf.mint,
		Amount:           p.amount,
		DenominatedInSol: tf.sol,
		Slippage:         tf.slippage,
		PriorityFee:      tf.priorityFee,
		Pool:             p.pool,
		SkipPreflight:    skipPreflight,
	})
	if err != nil {
		return err
	}

	if errs := resp.Errors(); len(errs) > 0 {
		return fmt.Errorf("trade rejected: %s", strings.Join(errs, "; "))
	}
	fmt.Printf("https://solscan.io/tx/%s\n", resp.Signature())
	return nil
}

func runLocal(ctx context.Context, cfg *config.Config, log *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("local", flag.ContinueOnError)
	var tf tradeFlags
	tf.register(fs)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	p, err := tf.parse()
	if err != nil {
		return err
	}
	if err := cfg.RequirePrivateKey(); err != nil {
		return err
	}

	w, err := wallet.NewWallet(cfg.PrivateKey)
	if err != nil {
		return err
	}
	if cfg.PublicKey != "" && cfg.PublicKey != w.String() {
		return fmt.Errorf("public_key %s does not match private_key (%s)", cfg.PublicKey, w)
	}

	client := pumpportal.NewClient(log, pumpportal.WithBaseURL(cfg.APIBaseURL))
	rpcClient := solbc.NewClient(cfg.RPCURL, log)
	rpcClient.SetConfirmTimeout(cfg.ConfirmTimeout)

	sig, err := executeLocalTrade(ctx, client, rpcClient, w, pumpportal.LocalTradeRequest{
		PublicKey:        w.String(),
		Action:           p.action,
		Mint:             tf.mint,
		Amount:           p.amount,
		DenominatedInSol: tf.sol,
		Slippage:         tf.slippage,
		PriorityFee:      tf.priorityFee,
		Pool:             p.pool,
	}, cfg.SkipPreflight, log)
	if err != nil {
		return err
	}

	fmt.Printf("https://solscan.io/tx/%s\n", sig)
	return nil
}

// executeLocalTrade fetches an unsigned transaction, signs it with w and lands it through sender.
func executeLocalTrade(
	ctx context.Context,
	client *pumpportal.Client,
	sender blockchain.Client,
	w *wallet.Wallet,
	req pumpportal.LocalTradeRequest,
	skipPreflight bool,
	log *zap.Logger,
) (string, error) {
	tx, err := client.FetchLocalTransaction(ctx, req)
	if err != nil {
		return "", err
	}
	if err := w.SignTransaction(tx); err != nil {
		return "", fmt.Errorf("sign transaction: %w", err)
	}

	sig, err := sender.SendTransactionWithOpts(ctx, tx, blockchain.TransactionOptions{
		SkipPreflight:       skipPreflight,
		PreflightCommitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return "", fmt.Errorf("send transaction: %w", err)
	}
	log.Info("Transaction sent", zap.String("signature", sig.String()))

	if err := sender.WaitForTransactionConfirmation(ctx, sig, rpc.CommitmentConfirmed); err != nil {
		return sig.String(), fmt.Errorf("confirm transaction: %w", err)
	}
	log.Info("Transaction confirmed", zap.String("signature", sig.String()))
	return sig.String(), nil
}
