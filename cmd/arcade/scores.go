package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresLimit int
	flagScoresStats bool
	flagScoresRound string
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores for a game",
	Long: `Display the top high scores for the specified game (flappy when omitted).

Examples:
  arcade scores
  arcade scores --limit 25
  arcade scores --limit 0        # every recorded round
  arcade scores --stats
  arcade scores --round <round-id>
  arcade scores --clear
  arcade scores --tui`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores in an interactive table")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to print (0 = all)")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Print aggregated statistics")
	scoresCmd.Flags().StringVar(&flagScoresRound, "round", "", "Print a single round by its ID")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores and the best score")
	scoresCmd.MarkFlagsMutuallyExclusive("tui", "stats", "round", "clear")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := gameArg(args)

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	// Get game title
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	title := game.Title()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	w := cmd.OutOrStdout()
	switch {
	case flagScoresTUI:
		cfg := runtimeConfig()
		_, err := tui.RunScoreboard(gameID, title, store, store, cfg.ScreenW, cfg.ScreenH)
		return err
	case flagScoresStats:
		return printStats(w, store, gameID, title)
	case flagScoresRound != "":
		return printRound(w, store, flagScoresRound)
	case flagScoresClear:
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Fprintf(w, "Cleared all scores for %s.\n", title)
		return nil
	}

	return printScores(w, store, gameID, title, flagScoresLimit)
}

// printScores writes the plain-text score table. A limit of 0 or less
// prints every round.
func printScores(w io.Writer, store *storage.Store, gameID, title string, limit int) error {
	var scores []storage.ScoreEntry
	var err error
	if limit > 0 {
		scores, err = store.TopScores(gameID, limit)
	} else {
		scores, err = store.AllScores(gameID)
	}
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	best, err := store.LoadBest(gameID)
	if err != nil {
		return fmt.Errorf("retrieving best score: %w", err)
	}

	fmt.Fprintf(w, "High Scores - %s\n", title)
	fmt.Fprintln(w)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'arcade play %s' to set the first high score!\n", gameID)
		if best > 0 {
			fmt.Fprintf(w, "Best run: %d\n", best)
		}
		return nil
	}

	// Print header
	fmt.Fprintf(w, "  %-4s  %-10s  %-16s  %s\n", "Rank", "Score", "Date", "Round")
	fmt.Fprintf(w, "  %-4s  %-10s  %-16s  %s\n", "----", "-----", "----", "-----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Fprintf(w, "  %-4d  %-10d  %-16s  %s\n", i+1, entry.Score, dateStr, entry.RoundID)
	}

	// The best table can lag the history if a round's best save failed
	high, err := store.HighScore(gameID)
	if err != nil {
		return fmt.Errorf("retrieving high score: %w", err)
	}
	best = core.Max(best, high)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Best run: %d\n", best)
	return nil
}

// printStats writes aggregated statistics for one game.
func printStats(w io.Writer, store *storage.Store, gameID, title string) error {
	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}

	fmt.Fprintf(w, "Statistics - %s\n", title)
	fmt.Fprintln(w)
	if stats.GamesCount == 0 {
		fmt.Fprintln(w, "No rounds played yet.")
		return nil
	}
	fmt.Fprintf(w, "  Rounds played: %d\n", stats.GamesCount)
	fmt.Fprintf(w, "  High score:    %d\n", stats.HighScore)
	fmt.Fprintf(w, "  Average score: %.1f\n", stats.AvgScore)
	fmt.Fprintf(w, "  Total score:   %d\n", stats.TotalScore)
	if !stats.LastPlayed.IsZero() {
		fmt.Fprintf(w, "  Last played:   %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

// printRound writes a single round looked up by its ID.
func printRound(w io.Writer, store *storage.Store, roundID string) error {
	entry, err := store.RoundByID(roundID)
	if err != nil {
		return fmt.Errorf("retrieving round: %w", err)
	}
	if entry == nil {
		return fmt.Errorf("no round with ID %q", roundID)
	}

	fmt.Fprintf(w, "Round %s\n", entry.RoundID)
	fmt.Fprintf(w, "  Game:  %s\n", entry.GameID)
	fmt.Fprintf(w, "  Score: %d\n", entry.Score)
	fmt.Fprintf(w, "  Date:  %s\n", entry.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}
