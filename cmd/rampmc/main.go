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
	"ramp/results"
	"ramp/www"
)

func main() {
	configPath := flag.String("config", "rampmc.yaml", "path to config file")
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

	// Messaging
	client := messaging.NewClient(&cfg.Messaging)
	defer client.Close()
	if err := client.Connect(); err != nil {
		log.Fatalf("messaging connect: %v", err)
	}

	// Inbound LC traffic, each answered with an acknowledgment
	mcHandler := messaging.NewMCHandler(client)
	ingestor := protocol.NewIngestor(mcHandler, nil)
	for _, sub := range []string{
		messaging.SubHandshakes,
		messaging.SubHeartbeats,
		messaging.SubDisconnects,
	} {
		if err := client.Subscribe(sub, ingestor.HandleRaw); err != nil {
			log.Fatalf("subscribe %s: %v", sub, err)
		}
	}
	if err := client.Subscribe(messaging.SubMCAcks, mcHandler.HandleAck); err != nil {
		log.Fatalf("subscribe acks: %v", err)
	}
	log.Printf("RAMP MC online (result table v%s, %d codes)", results.Version, len(results.All()))

	// Status API
	router := www.NewRouter(func() any {
		return map[string]any{
			"connected":     client.IsConnected(),
			"table_version": results.Version,
			"processed":     mcHandler.Snapshot(),
		}
	})
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	server := &http.Server{Addr: addr, Handler: router}
	go func() {
		log.Printf("RAMP MC listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("http server shutdown: %v", err)
	}
}
