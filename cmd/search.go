package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fournest/mpsub/session"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:     "search <name>",
	Aliases: []string{"sub"},
	Short:   "Search the catalog and subscribe interactively",
	Long: `Search the MoviePilot catalog for a movie or TV series and subscribe to
one of the results. Reply with the number of a result to subscribe; TV
series list their seasons for a second pick. Reply 0 at any point to
cancel. Each prompt times out after 60 seconds.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return fmt.Errorf("media name must not be empty")
	}

	ctx := context.Background()
	logger.Info().Str("title", name).Msg("Searching media")

	movies, err := client.SearchMedia(ctx, name)
	if err != nil {
		return fmt.Errorf("search is unavailable right now: %w", err)
	}
	if len(movies) == 0 {
		fmt.Printf("🔍 No titles matching %q, try another keyword.\n", name)
		return nil
	}

	fmt.Println(session.SearchResults(movies))

	// One interactive owner on the CLI; the registry still enforces the
	// one-session-per-owner rule and the turn deadline.
	const owner = "cli"
	registry := session.NewRegistry()
	registry.Set(owner, session.New(owner, movies, client, logger, time.Now()))

	replies := make(chan string)
	go func() {
		defer close(replies)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			replies <- scanner.Text()
		}
	}()

	for {
		sess, ok := registry.Get(owner)
		if !ok {
			return nil
		}

		select {
		case <-time.After(time.Until(sess.Deadline())):
			registry.Clear(owner)
			fmt.Println("⏰ Selection timed out.")
			return nil
		case reply, ok := <-replies:
			if !ok {
				// stdin closed
				registry.Clear(owner)
				fmt.Println("❌ Cancelled.")
				return nil
			}

			result, ok := registry.Advance(ctx, owner, reply, time.Now())
			if !ok {
				return nil
			}
			fmt.Println(result.Reply)
			if result.Outcome.Terminal() {
				return nil
			}
		}
	}
}
