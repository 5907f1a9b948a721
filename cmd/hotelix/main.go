package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	log "github.com/hoteldesk/go-hotel-client/internal/logging"
)

const usage = `Usage: hotelix [command] [flags]

Commands:
  tui                         open the admin screens (default)
  list [--cached] <resource>  print rooms, bookings or food-orders as a table
  profile add|use|list|rm     manage backend profiles
  serve-dev                   run the in-memory development backend

Without a profile, HOTELIX_ENDPOINT and HOTELIX_TOKEN select the backend.
`

func main() {
	// Panics are still fatal but end up in ~/.hotelix/logs/panic.log
	defer log.LogPanic()

	closeLog, err := log.InitGlobalLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, os.Args[1:])
	stop()
	closeLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "hotelix: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	command := "tui"
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}
	switch command {
	case "tui":
		return runTUI(ctx)
	case "list":
		return runList(ctx, os.Stdout, args)
	case "profile":
		return runProfile(os.Stdout, args)
	case "serve-dev":
		return runServeDev(ctx)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n\n%s", command, usage)
	}
}
