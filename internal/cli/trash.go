package cli

import (
	"fmt"
	"strconv"
	"time"

	apptrash "github.com/erp/papelera/internal/application/trash"
	"github.com/erp/papelera/internal/domain/trash"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func (a *app) trashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trash",
		Short: "List and move records in and out of the trash",
	}
	cmd.AddCommand(a.trashListCmd(), a.trashDeleteCmd())
	return cmd
}

func (a *app) trashListCmd() *cobra.Command {
	var (
		search string
		from   string
		to     string
		active bool
	)
	cmd := &cobra.Command{
		Use:   "list CATEGORY",
		Short: "List deleted records of a category (productos, clientes, proveedores, ventas, compras)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := trash.ParseCategory(args[0])
			if err != nil {
				return err
			}
			env, err := a.open(cmd)
			if err != nil {
				return err
			}

			var records []apptrash.RecordResponse
			if active {
				records, err = env.Trash.ListActive(cmd.Context(), a.principal(), category)
			} else {
				req := apptrash.ListTrashRequest{Search: search}
				loc := env.Config.Trash.Location()
				if req.From, err = parseDate(from, loc); err != nil {
					return fmt.Errorf("--from: %w", err)
				}
				if req.To, err = parseDate(to, loc); err != nil {
					return fmt.Errorf("--to: %w", err)
				}
				records, err = env.Trash.ListTrash(cmd.Context(), a.principal(), category, req)
			}
			if err != nil {
				return err
			}
			return printRecords(cmd.OutOrStdout(), records)
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "case and accent insensitive text search")
	cmd.Flags().StringVar(&from, "from", "", "earliest record date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "latest record date (YYYY-MM-DD), inclusive")
	cmd.Flags().BoolVar(&active, "active", false, "list active records instead of the trash")
	return cmd
}

func (a *app) trashDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete CATEGORY ID",
		Short: "Move an active record to the trash",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, id, err := parseRecordRef(args)
			if err != nil {
				return err
			}
			env, err := a.open(cmd)
			if err != nil {
				return err
			}
			record, err := env.Trash.SoftDelete(cmd.Context(), a.principal(), category, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Moved %s %d to the trash\n", okMark("✓"), record.TipoModelo, record.ID)
			return nil
		},
	}
}

func (a *app) restoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore CATEGORY ID",
		Short: "Restore a deleted record, recording a conflict when its identity is taken",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, id, err := parseRecordRef(args)
			if err != nil {
				return err
			}
			env, err := a.open(cmd)
			if err != nil {
				return err
			}
			result, err := env.Trash.Restore(cmd.Context(), a.principal(), category, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Restored {
				fmt.Fprintf(out, "%s %s: %s %d\n", okMark("✓"), result.Mensaje, result.Record.TipoModelo, result.Record.ID)
				return nil
			}
			fmt.Fprintf(out, "%s %s: %s\n", warnMark("!"), result.Mensaje, result.ConflictID)
			if result.Conflict != nil {
				fmt.Fprintf(out, "  active record with the same identity: %d\n", result.Conflict.IDExistente)
			}
			fmt.Fprintf(out, "  resolve with: papeleractl conflicts resolve %s --decision RESTAURAR|IGNORAR\n", result.ConflictID)
			return nil
		},
	}
}

func parseRecordRef(args []string) (trash.Category, int64, error) {
	category, err := trash.ParseCategory(args[0])
	if err != nil {
		return "", 0, err
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || id < 1 {
		return "", 0, fmt.Errorf("invalid record id %q", args[1])
	}
	return category, id, nil
}

func parseDate(value string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, loc)
	if err != nil {
		return nil, fmt.Errorf("expected YYYY-MM-DD, got %q", value)
	}
	return &t, nil
}
