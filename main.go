package main

import (
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/YH949494/APUGC/bot"
	"github.com/YH949494/APUGC/config"
	"github.com/YH949494/APUGC/db"
	"github.com/YH949494/APUGC/workflow"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}

	store, err := db.Open(cfg, log)
	if err != nil {
		log.Fatal("open store", zap.Error(err))
	}
	defer store.Close()

	engine := workflow.New(store, cfg.MaxSubmissionsPerDay, log)

	b, err := bot.New(cfg, engine, log)
	if err != nil {
		log.Fatal("create bot", zap.Error(err))
	}
	if err := b.Start(); err != nil {
		log.Fatal("start bot", zap.Error(err))
	}

	log.Info("UGC bot running, press Ctrl+C to exit")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	if err := b.Stop(); err != nil {
		log.Error("stop bot", zap.Error(err))
	}
}
