package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newRootCommand(ctx *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "admin",
		Short:         "Commons account administration",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newSetAdminCommand(ctx, "promote", "Grant admin rights to a user", true))
	rootCmd.AddCommand(newSetAdminCommand(ctx, "demote", "Revoke admin rights from a user", false))
	rootCmd.AddCommand(newListAdminsCommand(ctx))

	return rootCmd
}

func newSetAdminCommand(ctx *commandContext, use, short string, isAdmin bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <username>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.adminService()
			if err != nil {
				return err
			}
			username := args[0]
			if isAdmin {
				err = svc.Promote(cmd.Context(), username)
			} else {
				err = svc.Demote(cmd.Context(), username)
			}
			if err != nil {
				return err
			}
			if isAdmin {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is now an admin\n", username)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is no longer an admin\n", username)
			}
			return nil
		},
	}
}

func newListAdminsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list-admins",
		Short: "List admin accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.adminService()
			if err != nil {
				return err
			}
			admins, err := svc.ListAdmins(cmd.Context())
			if err != nil {
				return err
			}
			if len(admins) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No admins found")
				return nil
			}

			rows := make([][]string, 0, len(admins))
			for _, u := range admins {
				created := "-"
				if !u.CreatedAt.IsZero() {
					created = u.CreatedAt.UTC().Format("2006-01-02 15:04")
				}
				rows = append(rows, []string{strconv.FormatUint(uint64(u.ID), 10), u.Username, created})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Username", "Created"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
}
