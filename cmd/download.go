package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fournest/mpsub/filter"
	"github.com/fournest/mpsub/session"
)

var downloadFilter string

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Show active download progress",
	Long: `Show the progress of all active downloads on the MoviePilot server.

An optional expression narrows the list, e.g.:
  mpsub download --filter 'State == "downloading"'
  mpsub download --filter 'Progress > 50 && contains(Title, "west")'`,
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringVarP(&downloadFilter, "filter", "f", "", "filter expression over download tasks")
}

func runDownload(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	tasks, err := client.DownloadProgress(ctx)
	if err != nil {
		// unreachable service, not "nothing downloading"
		return fmt.Errorf("cannot reach the MoviePilot server: %w", err)
	}

	if downloadFilter != "" {
		f, err := filter.Compile(downloadFilter)
		if err != nil {
			return err
		}
		tasks = f.Apply(tasks)
	}

	if len(tasks) == 0 {
		fmt.Println("📭 No active download tasks.")
		return nil
	}

	fmt.Println(session.DownloadReport(tasks))
	return nil
}
