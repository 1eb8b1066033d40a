package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubescene"
	"github.com/SeamusWaldron/cubescene/internal/smartcube"
	"github.com/SeamusWaldron/cubescene/internal/storage"
)

var bleScanTimeout time.Duration

var bleCmd = &cobra.Command{
	Use:   "ble",
	Short: "Drive the virtual cube from a physical smart cube",
	Long: `Scan for a GoCube-protocol smart cube over Bluetooth LE and mirror
its physical turns on the animated virtual cube. Every accepted turn is
recorded in the journal. Press Ctrl+C to disconnect.`,
	RunE: runBLE,
}

func init() {
	rootCmd.AddCommand(bleCmd)
	bleCmd.Flags().DurationVar(&bleScanTimeout, "scan-timeout", 30*time.Second, "How long to scan before giving up")
}

func runBLE(cmd *cobra.Command, args []string) error {
	opts := []cubescene.Option{}
	logger := log.New(os.Stderr, "cubescene: ", log.Ltime)
	if verbose {
		opts = append(opts, cubescene.WithLogger(logger))
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

	sessionID, err := repo.Begin(storage.SourceBLE, "")
	if err != nil {
		return err
	}

	index := 0
	cube.OnMoveComplete(func(m cubescene.Move) {
		if err := repo.AddMove(sessionID, index, m, false); err != nil {
			fmt.Fprintf(os.Stderr, "journal: %v\n", err)
		}
		index++
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fmt.Printf("Scanning for a smart cube (up to %s)...\n", bleScanTimeout)
	driver, err := smartcube.Connect(ctx, bleScanTimeout, cube, logger)
	if err != nil {
		return err
	}
	defer driver.Close()

	driver.OnMove(func(m cubescene.Move) {
		fmt.Printf("  %s\n", m.Notation())
	})

	fmt.Printf("Connected to %s. Turn the cube; Ctrl+C to quit.\n", driver.DeviceName())

	go cube.Run(ctx, envCfg.FPS)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	if err := repo.End(sessionID); err != nil {
		return err
	}
	fmt.Printf("Recorded %d moves (session %s)\n", index, sessionID[:8])
	return nil
}
