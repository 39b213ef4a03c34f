package cli

import (
	"fmt"

	apptrash "github.com/erp/papelera/internal/application/trash"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func (a *app) conflictsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "conflicts",
		Aliases: []string{"conflictos"},
		Short:   "Inspect and resolve identity conflicts",
	}
	cmd.AddCommand(a.conflictsListCmd(), a.conflictsResolveCmd())
	return cmd
}

func (a *app) conflictsListCmd() *cobra.Command {
	var req apptrash.ListConflictsRequest
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List conflicts, pending ones by default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := a.open(cmd)
			if err != nil {
				return err
			}
			conflicts, err := env.Conflicts.List(cmd.Context(), a.principal(), req)
			if err != nil {
				return err
			}
			return printConflicts(cmd.OutOrStdout(), conflicts)
		},
	}
	cmd.Flags().StringVar(&req.Estado, "estado", "", "PENDIENTE, RESUELTO_RESTAURAR, RESUELTO_IGNORAR or TODOS")
	cmd.Flags().StringVar(&req.TipoModelo, "tipo", "", "only conflicts of this category")
	return cmd
}

func (a *app) conflictsResolveCmd() *cobra.Command {
	var req apptrash.ResolveConflictRequest
	cmd := &cobra.Command{
		Use:   "resolve ID",
		Short: "Restore the deleted record of a conflict or dismiss the conflict",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid conflict id %q", args[0])
			}
			if req.Resolucion == "" {
				return fmt.Errorf("--decision is required (RESTAURAR or IGNORAR)")
			}
			env, err := a.open(cmd)
			if err != nil {
				return err
			}
			conflict, err := env.Conflicts.Resolve(cmd.Context(), a.principal(), id, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Conflict %s is now %s\n", okMark("✓"), conflict.ID, conflict.Estado)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Resolucion, "decision", "", "RESTAURAR or IGNORAR")
	cmd.Flags().StringVar(&req.Notas, "notes", "", "free text kept with the resolution")
	return cmd
}
