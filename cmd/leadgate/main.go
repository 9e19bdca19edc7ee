package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/coreos/go-systemd/v22/daemon"

	"leadgate/internal/config"
	"leadgate/internal/intake"
	"leadgate/internal/server"
	"leadgate/internal/sink/crm"
	"leadgate/internal/sink/ledger"
	"leadgate/internal/sink/sheets"
	"leadgate/internal/sink/telegram"
	"leadgate/internal/storage"
	logx "leadgate/pkg/logx"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "path to yaml config (optional; env vars override)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}

	log, closeLogs := logx.New(logx.Config{
		Level:   cfg.Log.Level,
		Console: cfg.Log.Console,
		File:    cfg.Log.File,
	})
	defer closeLogs()

	store, err := storage.Open(storage.Config{
		Driver: cfg.Ledger.Driver,
		Path:   cfg.Ledger.Path,
	}, log.With(logx.String("component", "ledger")))
	if err != nil {
		log.Error("opening ledger failed", logx.Err(err))
		os.Exit(1)
	}
	defer store.Close()

	ledgerSink := ledger.New(store, log)
	regs := []intake.Registration{
		{Sink: ledgerSink, Saves: true},
		{Sink: sheets.New(sheets.Config{
			CredentialsJSON: cfg.Sheets.CredentialsJSON,
			SpreadsheetID:   cfg.Sheets.SpreadsheetID,
			Timezone:        cfg.Timezone,
		}, log), Saves: true},
		{Sink: telegram.New(telegram.Config{
			Token:    cfg.Telegram.Token,
			ChatID:   cfg.Telegram.ChatID,
			Timezone: cfg.Timezone,
		}, log)},
	}
	// Registered only when configured so the default details map stays
	// {localBackup, googleSheets, telegram}.
	if cfg.CRM.APIURL != "" && cfg.CRM.APIKey != "" {
		regs = append(regs, intake.Registration{
			Sink: crm.New(crm.Config{APIURL: cfg.CRM.APIURL, APIKey: cfg.CRM.APIKey}, log),
		})
	}

	svc := intake.New(log, store, regs, ledgerSink)

	if cfgPath != "" {
		if err := config.Watch(ctx, cfgPath, log); err != nil {
			log.Warn("config watch unavailable", logx.Err(err))
		}
	}

	srv := server.New(server.Config{
		Port:      cfg.Server.Port,
		StaticDir: cfg.Server.StaticDir,
	}, svc, log)

	_, _ = daemon.SdNotify(false, daemon.SdNotifyReady)
	err = srv.Run(ctx)
	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server exited", logx.Err(err))
		os.Exit(1)
	}
}
