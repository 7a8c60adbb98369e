package main

import (
	"fmt"
	"time"

	"voicemail-console/internal/dashboard"
	"voicemail-console/internal/lifecycle"

	"github.com/spf13/cobra"
)

func newProjectsCmd() *cobra.Command {
	var summary bool
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List cached projects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()
			if summary {
				return printJSON(cmd.OutOrStdout(), dashboard.Summarize(a.Projects.All(), a.Voicemails.All(), time.Now()))
			}
			return printJSON(cmd.OutOrStdout(), a.Projects.All())
		},
	}
	cmd.Flags().BoolVar(&summary, "summary", false, "print the dashboard summary instead of the project list")
	return cmd
}

func newReviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "List ended numbers and numbers due for review",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()
			findings := lifecycle.Sweep(a.Projects.Assignments(), time.Now())
			if findings == nil {
				findings = []lifecycle.Finding{}
			}
			return printJSON(cmd.OutOrStdout(), findings)
		},
	}
}

func newSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Show operator settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()
			return printJSON(cmd.OutOrStdout(), a.Settings.Get())
		},
	}
}

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <number>",
		Short: "Show which project receives a dialed number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()
			p, ok := a.ResolveNumber(args[0])
			if !ok {
				return fmt.Errorf("no project receives %s", args[0])
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
}
