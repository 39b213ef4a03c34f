package trash

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/erp/papelera/internal/domain/trash"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRecordResponse_Totals(t *testing.T) {
	date := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)

	t.Run("purchase carries total_compra", func(t *testing.T) {
		p := &trash.Purchase{Quantity: 4, UnitCost: decimal.RequireFromString("2.25"), Invoice: "C-2024-0042", Date: &date}
		p.ID = 3

		resp := ToRecordResponse(p)
		require.NotNil(t, resp.TotalCompra)
		assert.Equal(t, "9", resp.TotalCompra.String())
		assert.Nil(t, resp.TotalVenta)
		assert.Equal(t, "COMPRA", resp.TipoModelo)
		assert.Equal(t, &date, resp.FechaCompra)

		raw, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"total_compra":"9"`)
		assert.NotContains(t, string(raw), "total_venta")
	})

	t.Run("sale carries total_venta", func(t *testing.T) {
		s := &trash.Sale{Quantity: 3, UnitPrice: decimal.RequireFromString("12.5"), Invoice: "F001-000123", Date: &date}

		resp := ToRecordResponse(s)
		require.NotNil(t, resp.TotalVenta)
		assert.Equal(t, "37.5", resp.TotalVenta.String())
		assert.Nil(t, resp.TotalCompra)
	})

	t.Run("product has no totals", func(t *testing.T) {
		resp := ToRecordResponse(&trash.Product{Name: "Widget"})
		assert.Nil(t, resp.TotalVenta)
		assert.Nil(t, resp.TotalCompra)
	})
}
