package cmd

import (
	"fmt"

	"github.com/peplint/peplint/lint"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rulesCmd: peplint rules
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the message codes this linter checks",
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := lint.New(".", cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize lint engine", zap.Error(err))
		}

		for _, rule := range engine.Rules() {
			fmt.Printf("%s  %s (%s)\n", rule.Code(), rule.Name(), rule.Severity())
			fmt.Printf("      %s\n", rule.Description())
		}
	},
}
