package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/peplint/peplint/internal"
	"github.com/peplint/peplint/internal/fixer"
	"github.com/peplint/peplint/lint"
	"github.com/peplint/peplint/scanner"
)

var dryRun bool

var fixCmd = &cobra.Command{
	Use:   "fix [paths...]",
	Short: "Rewrite import blocks into the canonical order",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		// initialize the lint engine
		engine, err := lint.New(".", cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize lint engine", zap.Error(err))
		}

		runAutoFix(logger, engine, args, dryRun)
	},
}

func init() {
	fixCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run in dry-run mode (show fixes without applying them)")
}

func runAutoFix(logger *zap.Logger, engine *internal.Engine, paths []string, dryRun bool) {
	fix := fixer.New(dryRun, engine.Classifier())

	for _, path := range paths {
		files, err := collectPythonFiles(path)
		if err != nil {
			logger.Error("error collecting files", zap.String("path", path), zap.Error(err))
			continue
		}

		for _, file := range files {
			if engine.IsPathIgnored(file) {
				continue
			}
			if err := fix.Fix(file); err != nil {
				logger.Error("error fixing imports", zap.String("file", file), zap.Error(err))
			}
		}
	}
}

func collectPythonFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	found, err := scanner.New(path, ".py", ".pyi").Scan()
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(found))
	for _, f := range found {
		files = append(files, f.Path)
	}
	return files, nil
}
