package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Conceptual-Machines/suno-prompt-api/internal/config"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/models"
	"github.com/Conceptual-Machines/suno-prompt-api/internal/prompt"
	"github.com/spf13/cobra"
)

type options struct {
	taxonomyDir string
	exportBase  string
	seed        int64
	engine      *prompt.Engine
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	opts := &options{}

	root := &cobra.Command{
		Use:           "promptctl",
		Short:         "Build, check and enrich music generation prompts",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			tax, err := prompt.NewLoader(opts.taxonomyDir).Load()
			if err != nil {
				return err
			}
			opts.engine = prompt.NewEngine(tax, prompt.EngineConfig{
				ExportBaseURL: opts.exportBase,
				RandomSeed:    opts.seed,
			})
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.taxonomyDir, "taxonomy", cfg.TaxonomyPath, "directory with taxonomy overrides")
	root.PersistentFlags().StringVar(&opts.exportBase, "export-base", cfg.ExportBaseURL, "generator site for export links")
	root.PersistentFlags().Int64Var(&opts.seed, "seed", cfg.RandomSeed, "random seed for wildcard ideas (0 uses the clock)")

	root.AddCommand(
		newExtractCmd(opts),
		newFormatCmd(opts),
		newValidateCmd(opts),
		newSuggestCmd(opts),
		newIdeasCmd(opts),
		newTemplatesCmd(opts),
		newProcessCmd(opts),
	)
	return root
}

func newExtractCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "extract [text]",
		Short: "Extract musical components from free text",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := textInput(cmd, args)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), opts.engine.ExtractComponents(text))
		},
	}
}

func newFormatCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "format [components.json]",
		Short: "Format a component set into a prompt",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := componentsInput(cmd, args)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), opts.engine.OptimizePrompt(components))
			return err
		},
	}
}

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [prompt]",
		Short: "Score a prompt and list what to fix",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := textInput(cmd, args)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), opts.engine.ValidatePrompt(text))
		},
	}
}

func newSuggestCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest [components.json]",
		Short: "Suggest complementary components and templates",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := componentsInput(cmd, args)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), opts.engine.GenerateSuggestions(components))
		},
	}
}

func newIdeasCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ideas [components.json]",
		Short: "Generate creative directions for a component set",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := componentsInput(cmd, args)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), opts.engine.GenerateCreativeIdeas(components))
		},
	}
}

func newTemplatesCmd(opts *options) *cobra.Command {
	var genre, mood string

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List prompt templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tax := opts.engine.Taxonomy()
			templates := tax.Templates()
			if genre != "" {
				templates = tax.TemplatesByGenre(genre)
			}
			if mood != "" {
				want := strings.ToLower(mood)
				filtered := []models.Template{}
				for _, tpl := range templates {
					if strings.ToLower(tpl.Components.Mood) == want {
						filtered = append(filtered, tpl)
					}
				}
				templates = filtered
			}
			return writeJSON(cmd.OutOrStdout(), templates)
		},
	}

	cmd.Flags().StringVar(&genre, "genre", "", "only templates of this genre")
	cmd.Flags().StringVar(&mood, "mood", "", "only templates with this mood")
	return cmd
}

func newProcessCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "process [text]",
		Short: "Extract, format and validate in one go",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := textInput(cmd, args)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), opts.engine.Process(cmd.Context(), text))
		},
	}
}

// textInput joins the arguments, or reads stdin when there are none.
func textInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// componentsInput decodes a component set from the named file or stdin.
func componentsInput(cmd *cobra.Command, args []string) (models.ComponentSet, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return models.ComponentSet{}, fmt.Errorf("failed to read components: %w", err)
	}

	components := models.EmptyComponents()
	if err := json.Unmarshal(data, &components); err != nil {
		return models.ComponentSet{}, fmt.Errorf("invalid components JSON: %w", err)
	}
	return components, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
