/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the leave engine server. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load policy configuration (allowance table, work schedule)
  3. Initialize SQLite store
  4. Create service and API handler
  5. Configure HTTP router
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: leave.db)
           Use ":memory:" for in-memory database
  -config  Policy config JSON path (optional; built-in defaults apply)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/leave.db"

  # Run with in-memory database and a custom allowance table
  ./server -db=":memory:" -config=./policy.json

SEE ALSO:
  - api/server.go: Router configuration
  - factory/config.go: Policy configuration format
  - store/sqlite/sqlite.go: Database implementation
*/
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

	"github.com/warp/leave-engine/api"
	"github.com/warp/leave-engine/factory"
	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "leave.db", "SQLite database path")
	configPath := flag.String("config", "", "Policy config JSON path")
	flag.Parse()

	// Load policy configuration
	cfg, err := factory.LoadConfigFile(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Apply the configured schedule unless an admin already changed it.
	if err := applySchedule(store, cfg.Schedule, *configPath != ""); err != nil {
		log.Printf("Warning: Failed to apply schedule: %v", err)
	}

	// Wire service + handler
	svc := &leave.Service{
		Employees:  store,
		Requests:   store,
		Holidays:   store,
		Schedule:   store,
		Allowances: cfg.Allowances,
	}
	handler := api.NewHandler(svc, store)
	handler.Resetter = store

	// Create router
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%d", *port)
		log.Printf("📊 API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// applySchedule writes the configured schedule to the store. When no
// config file was given the stored value wins, so an admin's PUT
// /api/schedule survives restarts.
func applySchedule(store *sqlite.Store, ws leave.WorkSchedule, force bool) error {
	if !force {
		return nil
	}
	return store.SetSchedule(context.Background(), ws)
}
