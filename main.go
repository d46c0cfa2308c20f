package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raushankrgupta/virtual-closet/api"
	"github.com/raushankrgupta/virtual-closet/assistant"
	"github.com/raushankrgupta/virtual-closet/closet"
	"github.com/raushankrgupta/virtual-closet/config"
	"github.com/raushankrgupta/virtual-closet/gateway"
	"github.com/raushankrgupta/virtual-closet/importer"
	"github.com/raushankrgupta/virtual-closet/logger"
	"github.com/raushankrgupta/virtual-closet/store"
	"github.com/raushankrgupta/virtual-closet/utils"
)

func main() {
	config.LoadConfig()

	lg, err := logger.New(config.LogMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer lg.Sync()
	utils.Log = lg

	st, err := store.Open(lg)
	if err != nil {
		lg.Fatal("Failed to open store", "error", err)
	}
	defer st.Close()

	gw := gateway.New(gateway.Config{
		APIKey:            config.GeminiAPIKey,
		ChatModel:         config.GeminiChatModel,
		ImageModel:        config.GeminiImageModel,
		ImageMaxDimension: config.ImageMaxDimension,
	}, lg)
	defer gw.Close()
	if config.GeminiAPIKey == "" {
		lg.Warn("GEMINI_API_KEY is not set; recommendations and background removal are unavailable")
	}

	c := closet.New(closet.Options{
		Store:       st,
		Log:         lg,
		Scheduler:   closet.TimerScheduler{},
		DeleteGrace: config.DeleteGrace,
	})
	a := assistant.New(gw, c, lg)
	h := api.NewHandler(c, a, gw, importer.New(lg), lg)

	srv := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lg.Info("Server starting", "port", config.Port, "store", config.StoreBackend, "media", utils.MediaEnabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("Server failed to start", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		lg.Error("Server shutdown failed", "error", err)
	}
	lg.Info("Server stopped")
}
