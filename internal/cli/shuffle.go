package cli

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubescene"
	"github.com/SeamusWaldron/cubescene/internal/storage"
)

var (
	shuffleLength int
	shuffleSeed   int64
	shufflePlay   bool
	turnMillis    int
)

var shuffleCmd = &cobra.Command{
	Use:   "shuffle",
	Short: "Generate a shuffle sequence",
	Long: `Generate a random shuffle in which no two consecutive moves share a
rotation axis, print its notation, and optionally play it through the
animation core and record it in the journal.`,
	RunE: runShuffle,
}

func init() {
	rootCmd.AddCommand(shuffleCmd)

	shuffleCmd.Flags().IntVar(&shuffleLength, "length", 0, "Number of moves (default: $CUBESCENE_SHUFFLE_LEN or 12)")
	shuffleCmd.Flags().Int64Var(&shuffleSeed, "seed", 0, "Random seed (0 = time-based)")
	shuffleCmd.Flags().BoolVar(&shufflePlay, "play", false, "Play the shuffle headless and record it in the journal")
	shuffleCmd.Flags().IntVar(&turnMillis, "turn-ms", 300, "Milliseconds per face turn when playing")
}

func runShuffle(cmd *cobra.Command, args []string) error {
	length := shuffleLength
	if length <= 0 {
		length = envCfg.ShuffleLength
	}
	seed := shuffleSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rng := rand.New(rand.NewSource(seed))
	s := cubescene.NewShuffle(rng, length)
	fmt.Println(s.Notation())

	if !shufflePlay {
		return nil
	}
	return playHeadless(s)
}

// playHeadless plays a shuffle without a display, journaling every executed
// move.
func playHeadless(s cubescene.Shuffle) error {
	opts := []cubescene.Option{
		cubescene.WithTurnDuration(time.Duration(turnMillis) * time.Millisecond),
	}
	if verbose {
		opts = append(opts, cubescene.WithLogger(log.New(os.Stderr, "cubescene: ", log.Ltime)))
	}

	cube, err := newCube(opts...)
	if err != nil {
		return err
	}

	repo, closeDB, err := openJournal()
	if err != nil {
		return err
	}
	defer closeDB()

	sessionID, err := repo.Begin(storage.SourceShuffle, s.Notation())
	if err != nil {
		return err
	}

	index := 0
	cube.OnMoveComplete(func(m cubescene.Move) {
		if err := repo.AddMove(sessionID, index, m, true); err != nil {
			fmt.Fprintf(os.Stderr, "journal: %v\n", err)
		}
		index++
		if verbose {
			fmt.Fprintf(os.Stderr, "  %d/%d %s\n", index, len(s), m.Notation())
		}
	})

	done := make(chan struct{})
	if err := cube.PlayShuffle(s, func() { close(done) }); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cube.Run(ctx, envCfg.FPS)
	<-done

	if err := repo.End(sessionID); err != nil {
		return err
	}

	fmt.Printf("Played %d moves (session %s)\n", len(s), sessionID[:8])
	return nil
}

// openJournal opens the journal database and returns a session repository.
func openJournal() (*storage.SessionRepository, func(), error) {
	path := getDBPath()
	if path == "" {
		var err error
		path, err = storage.DefaultDBPath()
		if err != nil {
			return nil, nil, err
		}
	}

	db, err := storage.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open journal: %w", err)
	}
	return storage.NewSessionRepository(db), func() { db.Close() }, nil
}
