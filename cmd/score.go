package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/embedding"
	"github.com/spigell/ats-scorer/internal/logger"
	"github.com/spigell/ats-scorer/internal/scoring"
)

const (
	outputText = "text"
	outputJSON = "json"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume against a job description",
	Long: `Score a resume against a job description.

Both documents may be local files (plain text, PDF or DOCX) or s3://bucket/key
objects. The job description may also be an hh.ru vacancy given as hh:<id>
or a vacancy URL. Missing paths are asked for interactively.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return score(cmd.Context(), cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("resume", "r", "", "path or s3:// location of the resume")
	scoreCmd.Flags().StringP("job", "J", "", "path or s3:// location of the job description")
	scoreCmd.Flags().StringP("output", "o", outputText, "output format: text or json")
}

func score(ctx context.Context, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}

	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer log.Sync()

	config, err := getConfig()
	if err != nil {
		return fmt.Errorf("getting a config: %w", err)
	}

	output, _ := cmd.Flags().GetString("output")
	if output != outputText && output != outputJSON {
		return fmt.Errorf("invalid output format: %s", output)
	}

	resumePath, err := pathFromFlagOrPrompt(cmd, "resume", "Path to the resume")
	if err != nil {
		return err
	}
	jobPath, err := pathFromFlagOrPrompt(cmd, "job", "Path to the job description")
	if err != nil {
		return err
	}

	loader, err := newSources(ctx, config, log, resumePath, jobPath)
	if err != nil {
		return err
	}

	resume, err := loader.Load(ctx, resumePath)
	if err != nil {
		return err
	}
	job, err := loader.Load(ctx, jobPath)
	if err != nil {
		return err
	}

	embedder, cleanup, err := newEmbedder(ctx, config, log)
	if err != nil {
		return fmt.Errorf("building embedder: %w", err)
	}
	defer cleanup()

	normalizer, err := newNormalizer(config.Resources)
	if err != nil {
		return err
	}

	provider, model := embedding.Describe(embedder)
	runLog := logger.ForRun(log, uuid.NewString(), provider, model)
	runLog.Info("starting the ats-scorer",
		zap.String("version", version),
		zap.String("resume", resumePath),
		zap.String("job", jobPath),
	)

	if timeout := config.Embedding.Timeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	pipeline := scoring.NewPipeline(newExtractor(config.Sections), normalizer, scoring.NewScorer(embedder), runLog)

	result, err := pipeline.Run(ctx, resume, job)
	if err != nil {
		if errors.Is(err, embedding.ErrProvider) {
			runLog.Error("embedding provider failed, no score produced", zap.Error(err))
		}
		return err
	}

	return writeResult(cmd.OutOrStdout(), output, result)
}

func writeResult(w io.Writer, output string, result *scoring.Result) error {
	if output == outputJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	_, err := fmt.Fprintf(w, "ATS match score: %.2f%%\n", result.Percent)
	return err
}

func pathFromFlagOrPrompt(cmd *cobra.Command, flag, label string) (string, error) {
	value, _ := cmd.Flags().GetString(flag)
	if value = strings.TrimSpace(value); value != "" {
		return value, nil
	}

	prompt := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("path must not be empty")
			}
			return nil
		},
	}

	value, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("reading %s path: %w", flag, err)
	}

	return strings.TrimSpace(value), nil
}
