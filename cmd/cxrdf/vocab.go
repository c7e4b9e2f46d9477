package main

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/c360studio/semstreams/vocabulary"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/c360studio/cxrdf/config"
	"github.com/c360studio/cxrdf/vocabulary/ndex"
)

func vocabCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vocab",
		Short: "List the CX predicates and their IRIs",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "PREDICATE\tIRI\tDESCRIPTION")
			for _, name := range ndex.Predicates() {
				desc := ""
				if meta := vocabulary.GetPredicateMetadata(name); meta != nil {
					desc = meta.Description
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", name, ndex.PredicateIRI(name), desc)
			}
			return tw.Flush()
		},
	}
}

func configCmd(global *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage cxrdf configuration",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Create the user config file with defaults",
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := config.NewLoader(slog.Default()).EnsureUserConfig()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig(global.configPath, slog.Default())
				if err != nil {
					return err
				}
				shown := *cfg
				if shown.NDEx.Password != "" {
					shown.NDEx.Password = "********"
				}
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(&shown); err != nil {
					return err
				}
				return enc.Close()
			},
		},
	)

	return cmd
}
