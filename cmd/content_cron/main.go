// Package main provides the entry point for the content generation cron job.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "content_cron",
	Short: "Social media content generation batch job",
	Long:  "content_cron processes calendar entries awaiting content, generates text and an accompanying image for each with generative AI services, and marks the entries completed.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
