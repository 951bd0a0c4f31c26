package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to MoviePilot",
	Long:  `Test the connection and credentials against the configured MoviePilot server.`,
	RunE:  runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to MoviePilot at %s...\n", cfg.MoviePilot.URL)

	ctx := context.Background()
	if err := client.Ping(ctx); err != nil {
		return err
	}
	fmt.Println("✓ Connection and login successful!")

	tasks, err := client.DownloadProgress(ctx)
	if err != nil {
		return fmt.Errorf("failed to get download tasks: %w", err)
	}
	fmt.Printf("- Active download tasks: %d\n", len(tasks))

	return nil
}
