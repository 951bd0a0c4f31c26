package session

import (
	"fmt"
	"strings"

	"github.com/fournest/mpsub/moviepilot"
)

const divider = "━━━━━━━━━━━━━━━━━━"

// Fixed turn replies
const (
	msgNotANumber         = "⚠️ Please reply with a number."
	msgIndexOutOfRange    = "⚠️ Invalid choice, pick a number from the list."
	msgInvalidSeason      = "⚠️ Invalid season, pick one from the list."
	msgCancelled          = "❌ Cancelled."
	msgTimedOut           = "⏰ Selection timed out."
	msgServiceUnavailable = "❌ Subscription service is unavailable, try again later."
	msgSubscribeRejected  = "❌ Subscription failed, check the MoviePilot server and try again."
	msgIncompleteInfo     = "❌ This title has no usable TMDB info, seasons cannot be listed."
	msgSeasonsUnavailable = "❌ Could not fetch season info, try again later."
	msgNoSeasons          = "❌ No seasons available for this title."
)

// SearchResults renders the numbered result list shown after a search
func SearchResults(movies []moviepilot.Movie) string {
	var b strings.Builder
	b.WriteString("🔍 Search results\n")
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "Found %d matching titles:\n\n", len(movies))

	for i, movie := range movies {
		icon := "🎬"
		if movie.Type.IsSeries() {
			icon = "📺"
		}
		fmt.Fprintf(&b, "  %d. %s %s", i+1, icon, movie.Title)
		if movie.Year != "" {
			fmt.Fprintf(&b, " (%s)", movie.Year)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n💡 Reply with a number to subscribe (0 to cancel)\n")
	b.WriteString(divider)
	return b.String()
}

// seasonList renders the season menu for a selected series
func seasonList(movie moviepilot.Movie, seasons []moviepilot.Season) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📺 %s\n", movie.Title)
	b.WriteString(divider + "\n")
	b.WriteString("📂 Pick a season to subscribe:\n\n")

	for _, season := range seasons {
		defaultName := fmt.Sprintf("Season %d", season.Number)
		if season.Name == "" || season.Name == defaultName {
			fmt.Fprintf(&b, "  🔹 Season %d\n", season.Number)
		} else {
			fmt.Fprintf(&b, "  🔹 Season %d｜%s\n", season.Number, season.Name)
		}
	}

	b.WriteString("\n💡 Reply with the season number to subscribe (0 to cancel)\n")
	b.WriteString(divider)
	return b.String()
}

// movieSubscribed renders the terminal success message for a movie
func movieSubscribed(movie moviepilot.Movie) string {
	var b strings.Builder
	b.WriteString("✅ Subscribed!\n")
	b.WriteString(divider + "\n")
	b.WriteString("📺 Type: movie\n")
	fmt.Fprintf(&b, "🎬 Title: %s", movie.Title)
	if movie.Year != "" {
		fmt.Fprintf(&b, " (%s)", movie.Year)
	}
	b.WriteString("\n" + divider)
	return b.String()
}

// seriesSubscribed renders the terminal success message for a series season
func seriesSubscribed(movie moviepilot.Movie, season int) string {
	var b strings.Builder
	b.WriteString("✅ Subscribed!\n")
	b.WriteString(divider + "\n")
	b.WriteString("📺 Type: series\n")
	fmt.Fprintf(&b, "🎬 Title: %s", movie.Title)
	if movie.Year != "" {
		fmt.Fprintf(&b, " (%s)", movie.Year)
	}
	fmt.Fprintf(&b, "\n📌 Season: %d\n", season)
	b.WriteString(divider)
	return b.String()
}

// DownloadReport renders the active download tasks with progress bars
func DownloadReport(tasks []moviepilot.DownloadTask) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📥 Active downloads (%d)\n", len(tasks))
	b.WriteString(strings.Repeat("=", 30))

	for _, task := range tasks {
		line := stateIcon(task.State) + " " + task.Title
		if task.Season != "" {
			line += " " + task.Season
		}
		if task.Episode != "" {
			line += " " + task.Episode
		}
		b.WriteString("\n" + line + "\n")
		fmt.Fprintf(&b, "   [%s] %.1f%%\n", progressBar(task.Progress, 20), task.Progress)
		if task.Speed != "" {
			fmt.Fprintf(&b, "   💨 %s\n", task.Speed)
		}
	}

	b.WriteString("\n" + strings.Repeat("=", 30))
	return b.String()
}

func stateIcon(state moviepilot.DownloadState) string {
	switch state {
	case moviepilot.StateDownloading:
		return "⬇️"
	case moviepilot.StateSeeding:
		return "✅"
	case moviepilot.StatePaused:
		return "⏸️"
	case moviepilot.StateError:
		return "❌"
	default:
		return "❓"
	}
}

func progressBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(float64(width) * percent / 100)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
