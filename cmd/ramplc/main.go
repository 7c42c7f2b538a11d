package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ramp/config"
	"ramp/messaging"
	"ramp/protocol"
	"ramp/www"
)

func main() {
	configPath := flag.String("config", "ramplc.yaml", "path to config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	port := flag.Int("port", 0, "status API port (overrides config)")
	flag.Parse()

	if *debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *port > 0 {
		cfg.Web.Port = *port
	}
	lcID := cfg.Controller.LCID

	// Messaging
	client := messaging.NewClient(&cfg.Messaging)
	defer client.Close()
	if err := client.Connect(); err != nil {
		log.Fatalf("messaging connect: %v", err)
	}

	// Inbound: updates addressed to this LC, plus acknowledgments
	lcHandler := messaging.NewLCHandler(client, lcID, nil)
	ingestor := protocol.NewIngestor(lcHandler, func(rcpt protocol.Receipt) bool {
		return rcpt.LCID == lcID
	})
	if err := client.Subscribe(protocol.UpdateTopic(lcID), ingestor.HandleRaw); err != nil {
		log.Fatalf("subscribe updates: %v", err)
	}
	if err := client.Subscribe(messaging.LCAckTopic(lcID), lcHandler.HandleAck); err != nil {
		log.Fatalf("subscribe acks: %v", err)
	}

	// Handshake + periodic heartbeat
	hb := messaging.NewHeartbeater(client, cfg.Controller)
	hb.Start()
	defer hb.Stop()

	// Status API
	router := www.NewRouter(func() any {
		ack, code := lcHandler.LastAck()
		status := map[string]any{
			"lc_id":           lcID,
			"connected":       client.IsConnected(),
			"heartrate_s":     cfg.Controller.Heartrate,
			"updates_applied": lcHandler.UpdatesApplied(),
		}
		if ack != nil {
			status["last_ack"] = map[string]any{
				"msg_type": ack.MsgType,
				"result":   ack.Result,
				"category": code.Category().String(),
			}
		}
		return status
	})
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	server := &http.Server{Addr: addr, Handler: router}
	go func() {
		log.Printf("RAMP LC %s listening on %s", lcID, addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")
	hb.Stop()
	hb.SendDisconnect()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("http server shutdown: %v", err)
	}
}
