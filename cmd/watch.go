package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/peplint/peplint/lint"
)

// watchCmd: peplint watch
var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-lint Python files as they change",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide directories to watch")
			os.Exit(1)
		}

		engine, err := lint.New(".", cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize lint engine", zap.Error(err))
		}

		if err := engine.EnableWatch(args); err != nil {
			logger.Fatal("Failed to configure watcher", zap.Error(err))
		}
		if err := engine.StartWatching(); err != nil {
			logger.Fatal("Failed to start watching", zap.Error(err))
		}
		defer engine.StopWatching()

		fmt.Printf("Watching %v for changes. Press Ctrl+C to stop.\n", args)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
	},
}
