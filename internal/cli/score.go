package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/SAP-F-2025/trait-assessment-service/internal/models"
	"github.com/SAP-F-2025/trait-assessment-service/internal/scoring"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// AnswerFile is the on-disk answer format:
//
//	answers:
//	  per-1: {option_id: a}
//	  vak-1: {ranks: {a: 3, b: 2, c: 1}}
type AnswerFile struct {
	Answers models.ResponseSet `yaml:"answers"`
}

type scoreOptions struct {
	answersPath     string
	requireComplete bool
	seedDefaults    bool
	output          string
}

func newScoreCmd() *cobra.Command {
	opts := &scoreOptions{}

	cmd := &cobra.Command{
		Use:   "score <instrument>",
		Short: "Score an answers file against an instrument",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.answersPath, "answers", "a", "", "YAML answers file (- for stdin)")
	cmd.Flags().BoolVar(&opts.requireComplete, "require-complete", false, "reject answer sets that skip questions")
	cmd.Flags().BoolVar(&opts.seedDefaults, "seed-defaults", false, "fill unanswered ranked questions with the 3/2/1 default ranking")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "output format: text or json")
	_ = cmd.MarkFlagRequired("answers")
	return cmd
}

func runScore(out io.Writer, instrumentID string, opts *scoreOptions) error {
	if opts.output != "text" && opts.output != "json" {
		return fmt.Errorf("unknown output format %q", opts.output)
	}

	answers, err := readAnswers(opts.answersPath)
	if err != nil {
		return err
	}

	c, err := loadCatalog()
	if err != nil {
		return err
	}
	engine := scoring.NewEngine(c, scoring.Options{
		RequireComplete:  opts.requireComplete,
		SeedRankDefaults: opts.seedDefaults,
	})

	result, err := engine.Evaluate(instrumentID, answers)
	if err != nil {
		return err
	}

	if opts.output == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return printResult(out, result)
}

func readAnswers(path string) (models.ResponseSet, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	return parseAnswers(data)
}

func parseAnswers(data []byte) (models.ResponseSet, error) {
	var file AnswerFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse answers: %w", err)
	}
	if file.Answers == nil {
		file.Answers = models.ResponseSet{}
	}
	return file.Answers, nil
}

func printResult(out io.Writer, r models.EvaluationResult) error {
	fmt.Fprintf(out, "%s (%s)\n", r.InstrumentTitle, r.InstrumentID)
	fmt.Fprintf(out, "answered %d/%d\n", r.AnsweredCount, r.QuestionCount)
	fmt.Fprintf(out, "dominant: %s (%s) %d%%\n", r.DominantDisplayName, r.DominantDimension, r.OverallScore)

	for _, s := range r.Scores {
		bar := strings.Repeat("#", s.Percentage/5)
		fmt.Fprintf(out, "  %-14s %3d%% %-20s %s\n", s.Dimension, s.Percentage, bar, s.BandLabel)
	}

	if r.Validity != nil {
		fmt.Fprintf(out, "valid: %t (total %d, expected %d, difference %d)\n",
			r.Validity.Valid, r.Validity.Total, r.Validity.Expected, r.Validity.Difference)
	}
	if r.Description != "" {
		fmt.Fprintf(out, "\n%s\n", r.Description)
	}
	return nil
}
