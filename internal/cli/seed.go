package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/papelera/internal/domain/shared"
	"github.com/erp/papelera/internal/domain/trash"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func (a *app) seedCmd() *cobra.Command {
	var withConflict bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert a small demo data set",
		Long: `Insert one supplier, client, two products, a sale and a purchase.
With --conflict, the product "Widget" is moved to the trash and a new active
"widget" is created, so restoring the first one records a conflict.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := a.open(cmd)
			if err != nil {
				return err
			}
			s := &seeder{records: env.Records, now: time.Now().UTC()}
			if err := s.run(cmd.Context()); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Seeded %d records\n", okMark("✓"), s.created)

			if withConflict {
				if _, err := env.Trash.SoftDelete(cmd.Context(), a.principal(), trash.CategoryProduct, s.widgetID); err != nil {
					return err
				}
				shadow := &trash.Product{BusinessEntity: shared.NewBusinessEntity(s.now), Name: "widget", Stock: 1}
				if err := env.Records.Create(cmd.Context(), shadow); err != nil {
					return err
				}
				fmt.Fprintf(out, "%s producto %d is in the trash and producto %d holds its name\n", warnMark("!"), s.widgetID, shadow.ID)
				fmt.Fprintf(out, "  try: papeleractl restore productos %d\n", s.widgetID)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withConflict, "conflict", false, "also prepare a record whose restore conflicts")
	return cmd
}

type seeder struct {
	records  trash.RecordRepository
	now      time.Time
	created  int
	widgetID int64
}

func (s *seeder) run(ctx context.Context) error {
	supplier := &trash.Supplier{
		BusinessEntity: s.entity(),
		Name:           "Distribuidora Andina",
		TaxID:          "20100011111",
		ContactPerson:  "Rosa Quispe",
		Email:          "ventas@andina.example",
	}
	client := &trash.Client{
		BusinessEntity: s.entity(),
		Name:           "Comercial Lima",
		TaxID:          "20555500001",
		Email:          "compras@comerciallima.example",
	}
	if err := s.create(ctx, supplier, client); err != nil {
		return err
	}

	widget := &trash.Product{
		BusinessEntity: s.entity(),
		Name:           "Widget",
		Description:    "Widget de aluminio",
		SupplierID:     &supplier.ID,
		Stock:          40,
		PurchasePrice:  decimal.RequireFromString("12.50"),
	}
	screw := &trash.Product{
		BusinessEntity: s.entity(),
		Name:           "Tornillo 3/8",
		SupplierID:     &supplier.ID,
		Stock:          500,
		PurchasePrice:  decimal.RequireFromString("0.35"),
	}
	if err := s.create(ctx, widget, screw); err != nil {
		return err
	}
	s.widgetID = widget.ID

	day := s.now.Truncate(24 * time.Hour)
	sale := &trash.Sale{
		BusinessEntity: s.entity(),
		ProductID:      &widget.ID,
		ClientID:       &client.ID,
		Quantity:       3,
		UnitPrice:      decimal.RequireFromString("19.90"),
		Invoice:        "F001-000123",
		Date:           &day,
	}
	purchase := &trash.Purchase{
		BusinessEntity: s.entity(),
		ProductID:      &screw.ID,
		SupplierID:     &supplier.ID,
		Quantity:       200,
		UnitCost:       decimal.RequireFromString("0.30"),
		Invoice:        "C-2024-0042",
		Date:           &day,
	}
	return s.create(ctx, sale, purchase)
}

func (s *seeder) entity() shared.BusinessEntity {
	return shared.NewBusinessEntity(s.now)
}

func (s *seeder) create(ctx context.Context, records ...trash.Record) error {
	for _, r := range records {
		if err := s.records.Create(ctx, r); err != nil {
			return fmt.Errorf("seed %s: %w", r.Category(), err)
		}
		s.created++
	}
	return nil
}
