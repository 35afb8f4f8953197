package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spigell/ats-scorer/internal/section"
	"github.com/spigell/ats-scorer/internal/textnorm"
)

type sectionsReport struct {
	Section    string   `json:"section"`
	Found      bool     `json:"found"`
	Content    string   `json:"content"`
	Normalized string   `json:"normalized"`
	Skills     []string `json:"skills"`
	SkillsText string   `json:"skills_normalized"`
}

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "Show the sections and skills extracted from a resume",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return sections(cmd.Context(), cmd)
	},
}

func init() {
	rootCmd.AddCommand(sectionsCmd)

	sectionsCmd.Flags().StringP("resume", "r", "", "path or s3:// location of the resume")
	sectionsCmd.Flags().StringP("section", "s", string(section.Experience), "section heading to extract")
	sectionsCmd.Flags().StringP("output", "o", outputText, "output format: text or json")
}

func sections(ctx context.Context, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}

	config, err := getConfig()
	if err != nil {
		return fmt.Errorf("getting a config: %w", err)
	}

	resumePath, err := pathFromFlagOrPrompt(cmd, "resume", "Path to the resume")
	if err != nil {
		return err
	}

	loader, err := newSources(ctx, config, nil, resumePath)
	if err != nil {
		return err
	}

	resume, err := loader.Load(ctx, resumePath)
	if err != nil {
		return err
	}

	normalizer, err := newNormalizer(config.Resources)
	if err != nil {
		return err
	}

	target, _ := cmd.Flags().GetString("section")
	output, _ := cmd.Flags().GetString("output")

	report := buildSectionsReport(newExtractor(config.Sections), normalizer, resume, section.Name(strings.TrimSpace(target)))

	return writeSectionsReport(cmd.OutOrStdout(), output, report)
}

func buildSectionsReport(extractor *section.Extractor, normalizer textnorm.Normalizer, resume string, target section.Name) *sectionsReport {
	extracted := extractor.Extract(resume, target)
	skills := extractor.ExtractSkills(resume)

	return &sectionsReport{
		Section:    target.String(),
		Found:      extracted.Found,
		Content:    extracted.Content,
		Normalized: normalizer.Normalize(extracted.Content),
		Skills:     skills,
		SkillsText: normalizer.Normalize(strings.Join(skills, " ")),
	}
}

func writeSectionsReport(w io.Writer, output string, report *sectionsReport) error {
	switch output {
	case outputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	case outputText:
	default:
		return fmt.Errorf("invalid output format: %s", output)
	}

	if !report.Found {
		fmt.Fprintf(w, "%s: not found\n", report.Section)
	} else {
		fmt.Fprintf(w, "%s:\n%s\n\nnormalized: %s\n", report.Section, report.Content, report.Normalized)
	}

	if len(report.Skills) == 0 {
		_, err := fmt.Fprintln(w, "\nskills: none")
		return err
	}

	_, err := fmt.Fprintf(w, "\nskills: %s\nnormalized: %s\n", strings.Join(report.Skills, ", "), report.SkillsText)
	return err
}
