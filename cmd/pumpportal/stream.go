package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rovshanmuradov/pumpportal-go/internal/config"
	"github.com/rovshanmuradov/pumpportal-go/pkg/pumpportal"
)

var errFeedClosed = errors.New("feed connection closed")

func runStream(ctx context.Context, cfg *config.Config, log *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("stream", flag.ContinueOnError)
	eventsFlag := fs.String("events", "newToken", "comma separated events: newToken,tokenTrade,accountTrade,raydiumLiquidity")
	keysFlag := fs.String("keys", "", "comma separated mints or accounts for tokenTrade/accountTrade")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	events, err := parseEvents(*eventsFlag)
	if err != nil {
		return err
	}
	keys := splitList(*keysFlag)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	stream, err := pumpportal.Dial(ctx, log, pumpportal.WithWebSocketURL(cfg.WebSocketURL))
	if err != nil {
		return err
	}

	return streamFeed(ctx, os.Stdout, stream, events, keys)
}

// streamFeed prints every frame to w, one per line, until ctx is cancelled or
// the feed goes away. Logs never go to w.
func streamFeed(ctx context.Context, w io.Writer, stream *pumpportal.Stream, events []pumpportal.Event, keys []string) error {
	stream.OnMessage(func(data string) {
		_, _ = fmt.Fprintln(w, data)
	})
	for _, e := range events {
		if err := stream.Subscribe(e, scopedKeys(e, keys)...); err != nil {
			stream.Close()
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-gctx.Done()
		for _, e := range stream.Subscribed() {
			_ = stream.Unsubscribe(e, scopedKeys(e, keys)...)
		}
		stream.Close()
		return nil
	})

	g.Go(func() error {
		select {
		case <-stream.Done():
			if ctx.Err() != nil {
				return nil
			}
			return errFeedClosed
		case <-gctx.Done():
			<-stream.Done()
			return nil
		}
	})

	return g.Wait()
}

// scopedKeys returns keys only for events that accept them.
func scopedKeys(e pumpportal.Event, keys []string) []string {
	if e == pumpportal.TokenTrade || e == pumpportal.AccountTrade {
		return keys
	}
	return nil
}
