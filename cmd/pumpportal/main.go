// ====================================
// File: cmd/pumpportal/main.go
// ====================================
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/pumpportal-go/internal/config"
	"github.com/rovshanmuradov/pumpportal-go/internal/logger"
)

const usage = `usage: pumpportal [-config path] [-json] <command> [flags]

commands:
  stream   subscribe to the data feed and print every message
  trade    execute a trade with the wallet linked to api_key
  local    build a transaction via trade-local, sign it and send it to rpc_url
  wallet   create a new wallet and API key
`

var errUsage = errors.New("usage")

func main() {
	global := flag.NewFlagSet("pumpportal", flag.ExitOnError)
	configPath := global.String("config", "", "path to config.json")
	jsonLogs := global.Bool("json", false, "structured JSON logs")
	global.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	_ = global.Parse(os.Args[1:])

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 config: %v\n", err)
		os.Exit(1)
	}

	var log *zap.Logger
	if *jsonLogs {
		log, err = logger.CreateJSONLogger(cfg.DebugLogging)
		if err != nil {
			fmt.Fprintf(os.Stderr, "💥 logger: %v\n", err)
			os.Exit(1)
		}
	} else {
		log = logger.CreatePrettyLogger(cfg.DebugLogging)
	}
	defer func() { _ = log.Sync() }()

	if err := run(context.Background(), cfg, log, global.Args()); err != nil {
		if errors.Is(err, errUsage) {
			global.Usage()
			os.Exit(2)
		}
		log.Error("Command failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "stream":
		return runStream(ctx, cfg, log, rest)
	case "trade":
		return runTrade(ctx, cfg, log, rest)
	case "local":
		return runLocal(ctx, cfg, log, rest)
	case "wallet":
		return runWallet(ctx, cfg, log)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}
