package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/pathfinder/internal/quiz"
)

func newBankCmd() *cobra.Command {
	bank := &cobra.Command{
		Use:   "bank",
		Short: "Question bank commands",
	}
	bank.AddCommand(&cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a question bank YAML file (default: the embedded bank)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBank(optionalArg(args))
			if err != nil {
				return err
			}
			gates := 0
			for _, q := range b.Questions() {
				if q.Gate != "" {
					gates++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "question bank OK: %d questions, %d gate questions\n", b.Len(), gates)
			return nil
		},
	})
	return bank
}

func loadBank(path string) (*quiz.Bank, error) {
	if path == "" {
		return quiz.Default()
	}
	return quiz.LoadFile(path)
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
