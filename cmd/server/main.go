// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/regrada-ai/aidebt-be/docs" // Swagger docs
)

// @title AI Debt Governance API
// @version 1.0
// @description Scans GitHub repositories for AI-generated code, scores AI debt and raises governance alerts

// @contact.name API Support
// @contact.email support@regrada.ai

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

var rootCmd = &cobra.Command{
	Use:   "aidebt",
	Short: "AI debt governance service",
	Long: `aidebt scans connected GitHub repositories for AI-generated code,
scores the resulting AI debt and raises alerts when governance worsens.

Configuration is read from the environment, see internal/config.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, workerCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
