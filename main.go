package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/danielhkuo/campus-elections/auth"
	"github.com/danielhkuo/campus-elections/cliparse"
	"github.com/danielhkuo/campus-elections/db"
	"github.com/danielhkuo/campus-elections/router"
	"github.com/danielhkuo/campus-elections/store"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "token" {
		if err := issueToken(os.Args[2:]); err != nil {
			slog.Error("Error issuing token", "error", err)
			os.Exit(1)
		}
		return
	}

	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect and verify
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	s := store.New(dbConn, store.WithTimeout(cfg.RequestTimeout))
	mux := router.NewRouter(s, cfg)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// issueToken prints a signed X-Auth-Token for an operator or student.
// Usage: campus-elections token -role admin -subject alice
func issueToken(args []string) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	role := fs.String("role", "", "Role (admin, officer, staff, student)")
	subject := fs.String("subject", "", "Subject ID (student ID for students)")
	salt := fs.String("token-salt", os.Getenv("AUTH_TOKEN_SALT"), "Auth token salt (prefer env)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *salt == "" {
		return fmt.Errorf("AUTH_TOKEN_SALT is required")
	}

	token, err := auth.GenerateToken(*subject, *role, *salt)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
