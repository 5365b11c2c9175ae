package main

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/pumpportal-go/internal/config"
	"github.com/rovshanmuradov/pumpportal-go/internal/wallet"
	"github.com/rovshanmuradov/pumpportal-go/pkg/pumpportal"
)

func runWallet(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	client := pumpportal.NewClient(log, pumpportal.WithBaseURL(cfg.APIBaseURL))

	cred, err := client.CreateWallet(ctx)
	if err != nil {
		return err
	}

	// sanity check before handing the keys out
	if _, err := wallet.FromCredential(cred); err != nil {
		return err
	}

	out, err := json.MarshalIndent(cred, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
