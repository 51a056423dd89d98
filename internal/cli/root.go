// Package cli implements the clientes command tree.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-clientes-sync/config"
	"github.com/goliatone/go-clientes-sync/pkg/di"
)

// app carries the state shared by every subcommand.
type app struct {
	baseURL    string
	jsonOutput bool

	container *di.Container
	out       io.Writer

	// prompts, replaced in tests
	confirm   func(title string) (bool, error)
	editDraft func(d *draftInput) error
}

// NewRootCommand builds the clientes command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{
		confirm:   huhConfirm,
		editDraft: huhDraftForm,
	})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "clientes",
		Short: "Manage customer records",
		Long: `clientes lists, searches, creates, edits and deletes customer records.

Configuration is read from CLIENTES_* environment variables; --base-url
overrides CLIENTES_API_BASE_URL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.container != nil {
				a.container.Close()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.baseURL, "base-url", "", "API base URL (default from CLIENTES_API_BASE_URL)")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Output command results in JSON format")

	root.AddCommand(
		a.newListCommand(),
		a.newGetCommand(),
		a.newCreateCommand(),
		a.newEditCommand(),
		a.newDeleteCommand(),
		a.newDashboardCommand(),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if a.baseURL != "" {
		cfg.APIBaseURL = a.baseURL
	}

	container, err := di.NewContainer(*cfg)
	if err != nil {
		return err
	}
	a.container = container
	a.out = cmd.OutOrStdout()
	return nil
}

// printResult writes data as JSON with --json, or calls textFn otherwise.
func (a *app) printResult(data any, textFn func(w io.Writer)) error {
	if a.jsonOutput {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	textFn(a.out)
	return nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid client id %q", arg)
	}
	return id, nil
}
