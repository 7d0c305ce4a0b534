package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var programsCmd = &cobra.Command{
	Use:   "programs",
	Short: "Inspect and manage heating programs",
}

var programsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List predefined and custom programs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			return runProgramsList(cmd.Context(), a, cmd.OutOrStdout())
		})
	},
}

var programsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a custom program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			return runProgramsDelete(cmd.Context(), a, cmd.OutOrStdout(), args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(programsCmd)
	programsCmd.AddCommand(programsListCmd, programsDeleteCmd)
}

func runProgramsList(ctx context.Context, a *app, w io.Writer) error {
	programs, err := a.catalog.GetAllPrograms(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%-38s %-20s %-6s %-5s %-4s %s\n", "ID", "NAME", "TIME", "POWER", "CHAR", "KIND")
	for _, p := range programs {
		kind := "predefined"
		if p.IsCustom {
			kind = "custom"
		}
		fmt.Fprintf(w, "%-38s %-20s %-6s %-5d %-4s %s\n", p.ID, p.Name, p.FormattedTime, p.PowerLevel, p.Character, kind)
	}
	return nil
}

func runProgramsDelete(ctx context.Context, a *app, w io.Writer, id string) error {
	res, err := a.programs.DeleteProgram(ctx, id)
	if err != nil {
		return err
	}
	if !res.Success {
		return errors.New(res.Message)
	}
	fmt.Fprintln(w, res.Message)
	return nil
}
