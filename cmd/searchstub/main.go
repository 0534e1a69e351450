// Command searchstub serves a fake user search endpoint for local
// development of usersearch.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"usersearch/internal/domain"
	"usersearch/internal/stub"
)

func main() {
	var (
		addr      string
		fixtures  string
		users     int
		seed      uint64
		delay     time.Duration
		failEmail string
	)
	flag.StringVar(&addr, "addr", ":8080", "Listen address")
	flag.StringVar(&fixtures, "fixtures", "", "JSON file with an array of {email, number} records")
	flag.IntVar(&users, "users", 20, "Number of fake users to generate when no fixtures are given")
	flag.Uint64Var(&seed, "seed", 1, "Seed for generated users")
	flag.DurationVar(&delay, "delay", 0, "Hold every response for this long")
	flag.StringVar(&failEmail, "fail-email", "", "Answer 500 for searches with this email")
	flag.Parse()

	store, err := loadStore(fixtures, users, seed)
	if err != nil {
		log.Fatalf("Failed to load fixtures: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:    addr,
		Handler: stub.NewRouter(store, stub.Options{Delay: delay, FailEmail: failEmail}),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Search stub listening on %s with %d users", addr, len(store.All()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

func loadStore(path string, n int, seed uint64) (*stub.Store, error) {
	if path == "" {
		return stub.Seed(n, seed), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []domain.UserRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return stub.NewStore(records...), nil
}
