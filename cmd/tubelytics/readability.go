// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tubelytics/internal/readability"
)

var readabilityCmd = &cobra.Command{
	Use:   "readability [text...]",
	Short: "Score text with the Flesch-Kincaid grade level and reading ease",
	Long: `Readability scores the given text, or stdin when no text is given, with
the same formulas the server applies to video descriptions.`,
	RunE: runReadability,
}

func init() {
	readabilityCmd.Flags().Bool("json", false, "output scores and counts as JSON")

	rootCmd.AddCommand(readabilityCmd)
}

type readabilityReport struct {
	Words       int     `json:"words"`
	Sentences   int     `json:"sentences"`
	Syllables   int     `json:"syllables"`
	FKGrade     float64 `json:"fkGrade"`
	ReadingEase float64 `json:"readingEase"`
}

func runReadability(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	}

	counts := readability.Count(text)
	report := readabilityReport{
		Words:       counts.Words,
		Sentences:   counts.Sentences,
		Syllables:   counts.Syllables,
		FKGrade:     counts.Grade(),
		ReadingEase: counts.Ease(),
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	fmt.Fprintf(out, "Flesch-Kincaid Grade Level = %v, Flesch Reading Ease Score = %v\n", report.FKGrade, report.ReadingEase)
	fmt.Fprintf(out, "(%d words, %d sentences, %d syllables)\n", report.Words, report.Sentences, report.Syllables)
	return nil
}
