package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var journalLimit int

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Browse the session journal",
	Long:  `Commands for listing and inspecting recorded play sessions.`,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent sessions",
	RunE:  runJournalList,
}

var journalShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show the moves of a session",
	Long:  `Display one session's metadata and full move sequence. A unique ID prefix is enough.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalShow,
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalShowCmd)

	journalListCmd.Flags().IntVar(&journalLimit, "limit", 20, "Maximum sessions to list")
}

func runJournalList(cmd *cobra.Command, args []string) error {
	repo, closeDB, err := openJournal()
	if err != nil {
		return err
	}
	defer closeDB()

	sessions, err := repo.List(journalLimit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}

	fmt.Printf("%-10s %-20s %-8s %6s  %s\n", "ID", "STARTED", "SOURCE", "MOVES", "SHUFFLE")
	for _, s := range sessions {
		notation := s.ShuffleNotation
		if len(notation) > 40 {
			notation = notation[:37] + "..."
		}
		fmt.Printf("%-10s %-20s %-8s %6d  %s\n",
			s.SessionID[:8],
			s.StartedAt.Format("2006-01-02 15:04:05"),
			s.Source,
			s.MoveCount,
			notation,
		)
	}
	return nil
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	repo, closeDB, err := openJournal()
	if err != nil {
		return err
	}
	defer closeDB()

	session, err := repo.Get(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Session:  %s\n", session.SessionID)
	fmt.Printf("Started:  %s\n", session.StartedAt.Format(time.RFC3339))
	if session.EndedAt != nil {
		fmt.Printf("Ended:    %s (%s)\n",
			session.EndedAt.Format(time.RFC3339),
			session.EndedAt.Sub(session.StartedAt).Round(time.Millisecond))
	}
	fmt.Printf("Source:   %s\n", session.Source)
	if session.ShuffleNotation != "" {
		fmt.Printf("Shuffle:  %s\n", session.ShuffleNotation)
	}

	moves, err := repo.Moves(session.SessionID)
	if err != nil {
		return err
	}
	fmt.Printf("Moves:    %d\n\n", len(moves))
	for _, m := range moves {
		origin := "manual"
		if m.FromShuffle {
			origin = "shuffle"
		}
		fmt.Printf("  %3d  %-3s  %s  %s\n",
			m.MoveIndex, m.Notation, m.At.Format("15:04:05.000"), origin)
	}
	return nil
}
