package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/skill-matcher/internal/extraction"
	"github.com/spigell/skill-matcher/internal/filtering"
	"github.com/spigell/skill-matcher/internal/logger"
	"github.com/spigell/skill-matcher/internal/posting"
	"github.com/spigell/skill-matcher/internal/store"
)

const descriptionPreviewLength = 120

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract required and preferred skills from raw postings",
	PreRun: func(cmd *cobra.Command, _ []string) {
		bindFlags(cmd, extractFlags)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		l, config := setup(cmd.Name())
		ctx := cmd.Context()

		postings, err := loadAndExtract(ctx, l, config)
		if err != nil {
			l.Fatal("extracting skills", zap.Error(err))
		}

		if err := saveStructured(l, config.Extract.Output, postings); err != nil {
			l.Fatal("saving structured postings", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("input", "i", "", "raw postings csv")
	extractCmd.Flags().StringP("output", "o", "", "structured postings csv")
	extractCmd.Flags().IntP("workers", "w", 0, "number of extraction workers")
	extractCmd.Flags().Bool("strip-html", true, "convert html descriptions to plain text before extraction")
	extractCmd.Flags().StringP("exclude-file", "e", "", "special file with postings to exclude. Default is unset.")
}

var extractFlags = map[string]string{
	"input":        key("extract", "input"),
	"output":       key("extract", "output"),
	"workers":      key("extract", "workers"),
	"strip-html":   key("extract", "strip-html"),
	"exclude-file": "exclude-file",
}

// loadAndExtract reads the raw table, filters it and annotates every posting left.
func loadAndExtract(ctx context.Context, l *zap.Logger, config *Config) (*posting.Postings, error) {
	table, err := store.ReadFile(config.Extract.Input)
	if err != nil {
		return nil, fmt.Errorf("reading raw postings: %w", err)
	}
	if err := table.Require(store.ColumnDescription); err != nil {
		return nil, fmt.Errorf("%s: %w", config.Extract.Input, err)
	}

	postings := table.Postings
	l.Info("getting postings", zap.Int("count", postings.Len()), zap.String("path", config.Extract.Input))

	steps, err := config.filterSteps()
	if err != nil {
		return nil, err
	}

	postings, err = filtering.Run(ctx, config.filteringConfig(), filtering.Deps{Logger: l}, steps, postings)
	if err != nil {
		return nil, fmt.Errorf("filtering: %w", err)
	}

	for _, status := range filtering.Describe(steps) {
		l.Debug("filter status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	if postings.Len() == 0 {
		l.Info("no postings left after filters")
		return postings, nil
	}

	if config.Extract.StripHTML {
		if err := stripHTML(l, postings); err != nil {
			return nil, err
		}
	}

	c := config.skillCatalog()
	l.Info("using skill catalog", zap.Int("skills", c.Len()), zap.Strings("categories", c.CategoryNames()))

	if err := extraction.New(c).Annotate(ctx, postings.Items, config.Extract.Workers); err != nil {
		return nil, fmt.Errorf("annotating postings: %w", err)
	}

	for _, p := range postings.Items {
		l.Debug("extracted skills", append(logger.PostingFields(p),
			zap.String("required", p.Required.Encode()),
			zap.String("preferred", p.Preferred.Encode()),
			logger.DescriptionPreview(p, descriptionPreviewLength),
		)...)
	}

	l.Info("extracted skills", zap.Int("count", postings.Len()))
	return postings, nil
}

func stripHTML(l *zap.Logger, postings *posting.Postings) error {
	converted := 0
	for _, p := range postings.Items {
		if !posting.LooksLikeHTML(p.Description) {
			continue
		}

		text, err := posting.PlainText(p.Description)
		if err != nil {
			return fmt.Errorf("converting description of %s: %w", p.URL, err)
		}
		p.Description = text
		converted++
	}

	if converted > 0 {
		l.Info("converted html descriptions", zap.Int("count", converted))
	}
	return nil
}

func saveStructured(l *zap.Logger, path string, postings *posting.Postings) error {
	err := store.WriteFile(path, func(w io.Writer) error {
		return store.WriteStructured(w, postings)
	})
	if err != nil {
		return err
	}

	l.Info("saved structured postings", zap.String("path", path), zap.Int("count", postings.Len()))
	return nil
}
