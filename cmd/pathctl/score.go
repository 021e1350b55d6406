package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/p-n-ai/pathfinder/internal/advisor"
	"github.com/p-n-ai/pathfinder/internal/catalog"
	"github.com/p-n-ai/pathfinder/internal/scoring"
)

type scoreOptions struct {
	bankPath    string
	catalogPath string
	ageGate     int
	boost       int
	asJSON      bool
}

func newScoreCmd() *cobra.Command {
	opts := scoreOptions{}
	cmd := &cobra.Command{
		Use:   "score <answers.json>",
		Short: "Score a saved answer file",
		Long: `Scores an answer file offline and prints the ranking, scenario,
explanation and matched scholarships.

The file holds one entry per question in bank order, either as a bare list
or as {"answers": [...]}. Each entry is an option label or null.

Examples:
  pathctl score answers.json
  pathctl score answers.json --catalog scholarships.xlsx --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.bankPath, "bank", "", "question bank YAML (default: embedded)")
	cmd.Flags().StringVar(&opts.catalogPath, "catalog", "", "scholarship catalog JSON or XLSX (default: embedded)")
	cmd.Flags().IntVar(&opts.ageGate, "age-threshold", scoring.DefaultAgeThreshold, "gatekeeper age threshold")
	cmd.Flags().IntVar(&opts.boost, "fasttrack-boost", scoring.DefaultFastTrackBoost, "fast-track GED boost")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the full result as JSON")
	return cmd
}

// readAnswers accepts a bare list of labels or {"answers": [...]}.
func readAnswers(path string) ([]*string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading answers: %w", err)
	}
	data = bytes.TrimSpace(data)

	var labels []*string
	if len(data) > 0 && data[0] == '{' {
		var doc struct {
			Answers []*string `json:"answers"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing answers: %w", err)
		}
		return doc.Answers, nil
	}
	if err := json.Unmarshal(data, &labels); err != nil {
		return nil, fmt.Errorf("parsing answers: %w", err)
	}
	return labels, nil
}

func runScore(ctx context.Context, out io.Writer, path string, opts scoreOptions) error {
	bank, err := loadBank(opts.bankPath)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(opts.catalogPath)
	if err != nil {
		return err
	}
	labels, err := readAnswers(path)
	if err != nil {
		return err
	}

	engine := advisor.NewEngine(advisor.EngineConfig{
		Bank: bank,
		Gate: scoring.GateConfig{AgeThreshold: opts.ageGate, FastTrackBoost: opts.boost},
	})
	res, err := engine.EvaluateLabels(ctx, labels, cat.All())
	if err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	return printResult(out, res)
}

func printResult(out io.Writer, res advisor.Result) error {
	title := cases.Title(language.English)

	fmt.Fprintf(out, "Scenario: %s\n", title.String(string(res.Scenario)))
	if res.Flag != "" {
		fmt.Fprintf(out, "Flag: %s\n", res.Flag)
	}
	if res.Recommended != nil {
		fmt.Fprintf(out, "Recommended: %s (%d)\n\n", res.Recommended.Label, res.Recommended.Score)
	} else {
		fmt.Fprint(out, "Recommended: none\n\n")
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATHWAY\tSCORE\tNOTE")
	for _, r := range res.Ranked {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", r.Label, r.Score, r.Note)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nWhy:")
	for _, line := range res.Explanation {
		fmt.Fprintf(out, "  - %s\n", line)
	}

	if len(res.Remediation) > 0 {
		fmt.Fprintln(out, "\nNext steps:")
		for _, s := range res.Remediation {
			fmt.Fprintf(out, "  %d. %s\n", s.Step, s.Title)
		}
		return nil
	}

	fmt.Fprintf(out, "\nScholarships (%d):\n", len(res.Scholarships))
	for _, s := range res.Scholarships {
		fmt.Fprintf(out, "  - %s\n", s.Title())
	}
	return nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}
