package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/lumo/storefront/internal/domain"
	"github.com/lumo/storefront/internal/infrastructure/catalog"
	"github.com/lumo/storefront/internal/infrastructure/logging"
	"github.com/lumo/storefront/internal/usecase"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const defaultCatalogPath = "./data/catalog.yaml"

// cliOptions are the persistent flags shared by every subcommand
type cliOptions struct {
	catalogPath     string
	inferCategories bool
	outputJSON      bool
	verbose         bool

	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:          "lumoctl",
		Short:        "Query the Lumo chat engine against a local catalog",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			opts.logger = logging.Setup(logging.Options{
				Level:       level,
				Environment: "development",
				Service:     "lumoctl",
				Console:     cmd.ErrOrStderr(),
			})
		},
	}

	root.PersistentFlags().StringVarP(&opts.catalogPath, "catalog", "c", defaultCatalogPath, "catalog seed file (YAML or JSON)")
	root.PersistentFlags().BoolVar(&opts.inferCategories, "infer-categories", true, "guess categories for projects saved without one")
	root.PersistentFlags().BoolVar(&opts.outputJSON, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log scoring details to stderr")

	root.AddCommand(newAskCmd(opts))
	root.AddCommand(newProjectsCmd(opts))
	root.AddCommand(newPriceCmd(opts))

	return root
}

func newAskCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <message...>",
		Short: "Send one chat message and print the bot's reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := opts.chatService()
			if err != nil {
				return err
			}

			reply, err := service.Reply(cmd.Context(), &domain.ChatRequest{Message: strings.Join(args, " ")})
			if err != nil {
				return err
			}

			if opts.outputJSON {
				return writeJSON(cmd.OutOrStdout(), reply)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "[%s]\n%s\n", reply.Intent, reply.Text)
			for _, p := range reply.Projects {
				fmt.Fprintf(out, "  id=%s score=%d\n", p.ID, p.Score)
			}
			return nil
		},
	}
}

func newProjectsCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List catalog projects with their display prices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := opts.chatService()
			if err != nil {
				return err
			}

			projects, err := service.ListProjects(cmd.Context())
			if err != nil {
				return err
			}

			if opts.outputJSON {
				return writeJSON(cmd.OutOrStdout(), projects)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tPRICE")
			for _, p := range projects {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Title, p.Category, p.PriceDisplay)
			}
			return w.Flush()
		},
	}
}

func newPriceCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "price <budget-json>",
		Short: "Show how a raw budget value would be displayed",
		Example: `  lumoctl price '{"min": 3000, "max": 4000}'
  lumoctl price 500`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item := domain.CatalogItem{Budget: catalog.DecodeBudget(json.RawMessage(args[0]))}
			opts.logger.Debug().Interface("budget", item.Budget).Msg("decoded budget")

			_, err := fmt.Fprintln(cmd.OutOrStdout(), usecase.PriceDisplay(&item))
			return err
		},
	}
}

// chatService wires a ChatService over the seed file without a cache
func (o *cliOptions) chatService() (*usecase.ChatService, error) {
	repo, err := catalog.NewFileRepository(o.catalogPath, catalog.MapperOptions{InferCategories: o.inferCategories})
	if err != nil {
		return nil, err
	}

	return usecase.NewChatService(nil, repo, usecase.ChatServiceConfig{
		EnableDebugLogging: o.verbose,
		Logger:             o.logger,
	}), nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
