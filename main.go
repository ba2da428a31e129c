package main

//go:generate swag init --output docs --parseDependency

import (
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/satheeshds/invoicetrack/cmd"
	_ "github.com/satheeshds/invoicetrack/docs"
)

// @title           Invoice Tracker API
// @version         1.0.0
// @description     Track receivable invoices: status, due dates, payments, totals and CSV export.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.basic  BasicAuth

func main() {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded .env")
	}
	cmd.Execute()
}
