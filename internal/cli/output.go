package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	apptrash "github.com/erp/papelera/internal/application/trash"
	"github.com/fatih/color"
)

const timeLayout = "2006-01-02 15:04"

var (
	okMark   = color.New(color.FgGreen).SprintFunc()
	warnMark = color.New(color.FgYellow).SprintFunc()
	dimText  = color.New(color.Faint).SprintFunc()
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printRecords(w io.Writer, records []apptrash.RecordResponse) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, dimText("no records"))
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTIPO\tNOMBRE\tBORRADO")
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.ID, r.TipoModelo, recordLabel(r), formatTime(r.DeletedAt))
	}
	return tw.Flush()
}

// recordLabel picks the field a person would recognise the record by
func recordLabel(r apptrash.RecordResponse) string {
	switch {
	case r.Nombre != "":
		return r.Nombre
	case r.Factura != "":
		return "factura " + r.Factura
	}
	return "-"
}

func printConflicts(w io.Writer, conflicts []apptrash.ConflictResponse) error {
	if len(conflicts) == 0 {
		_, err := fmt.Fprintln(w, dimText("no conflicts"))
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTIPO\tBORRADO\tEXISTENTE\tESTADO\tDETECTADO")
	for _, c := range conflicts {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n",
			c.ID, c.TipoModelo, c.IDBorrado, c.IDExistente, colorEstado(c.Estado), formatTime(&c.FechaDeteccion))
	}
	return tw.Flush()
}

func colorEstado(estado string) string {
	if estado == apptrash.EstadoPendiente {
		return warnMark(estado)
	}
	return okMark(estado)
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ",")
}
