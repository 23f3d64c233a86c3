package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/guardline/guardline/internal/keyword"
	"github.com/guardline/guardline/internal/platform/logging"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		debug  bool
		kwPath string
	)

	cmd := &cobra.Command{
		Use:   "guardline [text...]",
		Short: "Score text for grooming, exploitation and bullying language",
		Long: `guardline scores free text against weighted phrase and token dictionaries
and prints the JSON-serialized result. All non-flag arguments joined by
spaces form the text to analyse; with no arguments it prompts for one line.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, debug, kwPath)
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "emit intermediate hit counts and score")
	cmd.Flags().StringVar(&kwPath, "kw", "", "JSON keyword override file merged before scoring")

	return cmd
}

func run(cmd *cobra.Command, args []string, debug bool, kwPath string) error {
	level := "info"
	if debug {
		level = "debug"
	}
	logging.Init(level, "text")

	tables := keyword.DefaultTables()
	if kwPath != "" {
		if err := tables.MergeFile(kwPath); err != nil {
			return err
		}
	}

	analyzer, err := keyword.NewAnalyzer(tables, keyword.DefaultThresholds())
	if err != nil {
		return err
	}

	text := strings.Join(args, " ")
	if len(args) == 0 {
		text, err = promptLine(cmd)
		if err != nil {
			return err
		}
	}

	var res keyword.Result
	if debug {
		res = analyzer.AnalyzeDebug(text)
	} else {
		res = analyzer.Analyze(text)
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	return nil
}

func promptLine(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Enter the message to analyse: ")

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", nil
	}
	return scanner.Text(), nil
}
