package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"pbihub/adapters/excel"
	"pbihub/domain/hr"
	"pbihub/domain/quiz"
	"pbihub/domain/sales"
	"pbihub/internal/errors"
	"pbihub/internal/quizbank"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pbihub-cli",
		Short:         "Learning hub CLI for sample datasets and the quiz bank",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newGenerateCmd(),
		newQuizCmd(),
		newBankCmd(),
	)
	return rootCmd
}

func newGenerateCmd() *cobra.Command {
	var seed int64
	var format string
	var out string
	var employees int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the seeded sample sales dataset",
		Long: `Generate the sample sales dataset used throughout the lessons.

The same seed always produces the same rows.

Example: pbihub-cli generate --seed 42 --format xlsx --out sample.xlsx --employees 200`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOutput(cmd, out, func(w io.Writer) error {
				return runGenerate(w, seed, format, employees)
			})
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic generation")
	cmd.Flags().StringVar(&format, "format", "csv", "Output format: json|csv|xlsx")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default stdout)")
	cmd.Flags().IntVar(&employees, "employees", 0, "Add an employees sheet with this many rows (xlsx only)")
	return cmd
}

func runGenerate(w io.Writer, seed int64, format string, employees int) error {
	records, err := sales.Generate(seed, sales.DefaultParams())
	if err != nil {
		return err
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(records), "failed to encode records")
	case "csv":
		return excel.WriteCSV(w, records)
	case "xlsx":
		wb := excel.Workbook{Sales: records}
		if employees > 0 {
			// offset so the employees stream is independent of the sales stream
			wb.Employees, err = hr.Generate(rand.New(rand.NewSource(seed+1)), employees)
			if err != nil {
				return err
			}
		}
		return excel.WriteXLSX(w, wb)
	default:
		return errors.InvalidInputf("unknown format %q", format)
	}
}

func newQuizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Draw and score quizzes from the question bank",
	}
	cmd.AddCommand(newQuizDrawCmd(), newQuizScoreCmd())
	return cmd
}

func newQuizDrawCmd() *cobra.Command {
	var seed int64
	var n int
	var bankFile string

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Print a randomized quiz with bank positions",
		Long: `Print n questions drawn from the bank. The bracketed number before each
question is its bank position, used by "quiz score".

Example: pbihub-cli quiz draw --seed 7 --n 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bank, err := loadBank(bankFile)
			if err != nil {
				return err
			}
			return runQuizDraw(cmd.OutOrStdout(), bank, seed, n)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for question order")
	cmd.Flags().IntVar(&n, "n", 10, "Number of questions to draw")
	cmd.Flags().StringVar(&bankFile, "bank", "", "Question bank file (YAML or JSON); built-in bank when empty")
	return cmd
}

func runQuizDraw(w io.Writer, bank *quiz.Bank, seed int64, n int) error {
	rng := rand.New(rand.NewSource(seed))
	for _, idx := range bank.PresentIndices(rng, n) {
		q, err := bank.Question(idx)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "[%d] %s\n", idx, q.Prompt())
		for j, opt := range q.Options() {
			fmt.Fprintf(w, "    %d) %s\n", j, opt)
		}
	}
	return nil
}

func newQuizScoreCmd() *cobra.Command {
	var seed int64
	var n int
	var threshold float64
	var bankFile string

	cmd := &cobra.Command{
		Use:   "score [position:choice...]",
		Short: "Score answers to a drawn quiz and explain every question",
		Long: `Score answers to the quiz "quiz draw" printed for the same --seed and --n.
Answers are bank-position:option pairs; every drawn question counts, and one
without an answer (or with choice -1) is unanswered.

Example: pbihub-cli quiz score --seed 7 --n 5 3:1 8:0 12:-1 --threshold 0.8`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			answers, err := parseAnswers(args)
			if err != nil {
				return err
			}
			bank, err := loadBank(bankFile)
			if err != nil {
				return err
			}
			return runQuizScore(cmd.OutOrStdout(), bank, seed, n, answers, threshold)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 42, "Seed the quiz was drawn with")
	cmd.Flags().IntVar(&n, "n", 10, "Number of questions drawn")
	cmd.Flags().Float64Var(&threshold, "threshold", 0.8, "Pass threshold between 0 and 1")
	cmd.Flags().StringVar(&bankFile, "bank", "", "Question bank file (YAML or JSON); built-in bank when empty")
	return cmd
}

func parseAnswers(args []string) ([]quiz.Answer, error) {
	answers := make([]quiz.Answer, 0, len(args))
	for _, arg := range args {
		pos, choice, ok := strings.Cut(arg, ":")
		if !ok {
			return nil, errors.InvalidInputf("answer %q must be position:choice", arg)
		}
		idx, err := strconv.Atoi(pos)
		if err != nil {
			return nil, errors.InvalidInputf("answer %q has a bad position", arg)
		}
		sel, err := strconv.Atoi(choice)
		if err != nil {
			return nil, errors.InvalidInputf("answer %q has a bad choice", arg)
		}
		answers = append(answers, quiz.Answer{Index: idx, Selected: quiz.Choice(sel)})
	}
	return answers, nil
}

func runQuizScore(w io.Writer, bank *quiz.Bank, seed int64, n int, answers []quiz.Answer, threshold float64) error {
	if threshold < 0 || threshold > 1 {
		return errors.InvalidInputf("threshold %.2f must be between 0 and 1", threshold)
	}

	presented := bank.PresentIndices(rand.New(rand.NewSource(seed)), n)
	attempt, err := bank.AttemptOver(presented, answers)
	if err != nil {
		return err
	}
	outcome := attempt.Finalize(threshold)

	for i, entry := range attempt.Entries() {
		mark := "✗"
		if entry.Question.IsCorrect(entry.Selected) {
			mark = "✓"
		}
		fmt.Fprintf(w, "%s %d. %s\n", mark, i+1, entry.Question.Prompt())
		if why := quiz.Explain(entry.Question); why != "" {
			fmt.Fprintf(w, "   %s\n", why)
		}
	}

	verdict := "NOT PASSED"
	if outcome.Passed {
		verdict = "PASSED"
	}
	fmt.Fprintf(w, "\nScore: %d/%d (%.0f%%) threshold %.0f%% %s\n",
		outcome.Score, outcome.Total, outcome.Percentage*100, threshold*100, verdict)
	return nil
}

func newBankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bank",
		Short: "Validate and export question banks",
	}

	validate := &cobra.Command{
		Use:   "validate [bank-file]",
		Short: "Check that a question bank file loads",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bank, err := quizbank.LoadFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d questions OK\n", args[0], bank.Len())
			return nil
		},
	}

	var out string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write the built-in question bank as YAML",
		Long: `Write the built-in bank as YAML, a starting point for a custom QUIZ_BANK_FILE.

Example: pbihub-cli bank export --out bank.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOutput(cmd, out, func(w io.Writer) error {
				return quizbank.WriteYAML(w, quizbank.Export(quizbank.Default()))
			})
		},
	}
	export.Flags().StringVar(&out, "out", "", "Output file (default stdout)")

	cmd.AddCommand(validate, export)
	return cmd
}

func loadBank(path string) (*quiz.Bank, error) {
	if path == "" {
		return quizbank.Default(), nil
	}
	return quizbank.LoadFile(path)
}

// withOutput runs fn against the named file, or the command's stdout when path is empty.
func withOutput(cmd *cobra.Command, path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "failed to close %s", path)
}
