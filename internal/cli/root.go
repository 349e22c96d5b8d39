// Package cli implements the nonbon command-line client.
package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/adanyl0v/nonbon/internal/client"
)

var Version = "dev"

// focusClient is the part of client.Client the commands use.
type focusClient interface {
	ListAll(ctx context.Context) ([]client.Item, error)
	ListActive(ctx context.Context) ([]client.Item, error)
	ListBacklog(ctx context.Context) ([]client.Item, error)
	RandomBacklog(ctx context.Context) (client.Item, error)
	Create(ctx context.Context, req client.CreateItemRequest) (client.Item, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type clientFactory func() (focusClient, error)

// NewRootCmd builds the command tree. Commands talk to the server
// configured through flags, NONBON_* env vars or the config file.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	newClient := func() (focusClient, error) {
		cfg, err := LoadConfig(v)
		if err != nil {
			return nil, err
		}
		c, err := client.New(cfg.ServerURL, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	rootCmd := newRootCmd(newClient)
	rootCmd.PersistentFlags().String("server", "", "API base URL (default http://localhost:5000)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "request timeout (default 10s)")
	_ = v.BindPFlag("server_url", rootCmd.PersistentFlags().Lookup("server"))
	_ = v.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	return rootCmd
}

func newRootCmd(newClient clientFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "nonbon-cli",
		Short:         "NonBon (Not Another New Backlog) - keep at most a few things in focus",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(activeCmd(newClient))
	rootCmd.AddCommand(backlogCmd(newClient))
	rootCmd.AddCommand(listCmd(newClient))
	rootCmd.AddCommand(addCmd(newClient))
	rootCmd.AddCommand(statusCmd(newClient))
	rootCmd.AddCommand(suggestCmd(newClient))
	rootCmd.AddCommand(menuCmd(newClient))

	return rootCmd
}

func activeCmd(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "active",
		Short: "List active focuses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			items, err := c.ListActive(cmd.Context())
			if err != nil {
				return err
			}
			panel(cmd.OutOrStdout(), itemLines(items, "No active focuses."))
			return nil
		},
	}
}

func backlogCmd(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "backlog",
		Short: "List the backlog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			items, err := c.ListBacklog(cmd.Context())
			if err != nil {
				return err
			}
			panel(cmd.OutOrStdout(), itemLines(items, "Backlog is empty."))
			return nil
		},
	}
}

func listCmd(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all focus items grouped by status",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			items, err := c.ListAll(cmd.Context())
			if err != nil {
				return err
			}
			panel(cmd.OutOrStdout(), groupedLines(items))
			return nil
		},
	}
}

func addCmd(newClient clientFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a new focus",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			area, _ := cmd.Flags().GetString("area")
			status, _ := cmd.Flags().GetString("status")

			c, err := newClient()
			if err != nil {
				return err
			}
			item, err := c.Create(cmd.Context(), client.CreateItemRequest{
				Title:  strings.Join(args, " "),
				Area:   area,
				Status: status,
			})
			if err != nil {
				return fmt.Errorf("failed to add focus: %w", err)
			}
			ok(cmd.OutOrStdout(), "Focus added. "+itemLine(item))
			return nil
		},
	}

	cmd.Flags().StringP("area", "a", "Other", "Area (Work, Learning, Home, ...)")
	cmd.Flags().StringP("status", "s", "", "Status (Backlog, Active, Done, Archived); defaults to Backlog")

	return cmd
}

func statusCmd(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Change the status of a focus",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("id: not a number: %s", args[0])
			}

			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.UpdateStatus(cmd.Context(), id, args[1]); err != nil {
				return fmt.Errorf("failed to update status: %w", err)
			}
			ok(cmd.OutOrStdout(), "Status updated.")
			return nil
		},
	}
}

func suggestCmd(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest",
		Short: "Suggest a random backlog item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			item, err := c.RandomBacklog(cmd.Context())
			if client.IsNotFound(err) {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("No backlog items to suggest."))
				return nil
			}
			if err != nil {
				return err
			}
			panel(cmd.OutOrStdout(), []string{
				titleStyle.Render("Suggested focus from backlog:"),
				itemLine(item),
			})
			return nil
		},
	}
}

func menuCmd(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			p := tea.NewProgram(newMenuModel(cmd.Context(), c),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			return err
		},
	}
}

// Execute runs the root command and prints a failure to stderr.
func Execute(ctx context.Context) int {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fail(rootCmd.ErrOrStderr(), err.Error())
		return 1
	}
	return 0
}
