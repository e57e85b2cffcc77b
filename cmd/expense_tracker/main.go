package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// @title Expense Tracker API
// @version 1.0
// @description Records categorized income and expense transactions and reports totals and per-category breakdowns.

// @host localhost:5000
// @BasePath /api/v1

var rootCmd = &cobra.Command{
	Use:   "expense_tracker",
	Short: "Categorized income and expense tracking",
	Long: `expense_tracker records income and expense transactions split across
categories, imports bank CSV exports and reports totals and per-category
breakdowns over date ranges.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(importCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		slog.Error("Command failed", slog.String("error", err.Error()))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
