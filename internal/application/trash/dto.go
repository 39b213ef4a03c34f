package trash

import (
	"time"

	"github.com/erp/papelera/internal/domain/trash"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wire values of conflict states and decisions
const (
	EstadoPendiente         = "PENDIENTE"
	EstadoResueltoRestaurar = "RESUELTO_RESTAURAR"
	EstadoResueltoIgnorar   = "RESUELTO_IGNORAR"
	EstadoTodos             = "TODOS"

	MensajeConflictoDetectado = "Conflicto detectado"
	MensajeRestaurado         = "Registro restaurado"
)

// ListTrashRequest carries the trash filters as received from clients
type ListTrashRequest struct {
	Search string     `form:"search" json:"search,omitempty"`
	From   *time.Time `form:"-" json:"fecha_inicio,omitempty"`
	To     *time.Time `form:"-" json:"fecha_fin,omitempty"`
}

// Filter converts the request into a domain filter
func (r ListTrashRequest) Filter() trash.TrashFilter {
	return trash.TrashFilter{Search: r.Search, From: r.From, To: r.To}
}

// ListConflictsRequest selects conflicts by wire state and category.
// An empty state lists pending conflicts, TODOS lists every state.
type ListConflictsRequest struct {
	Estado     string `form:"estado" json:"estado,omitempty"`
	TipoModelo string `form:"tipo_modelo" json:"tipo_modelo,omitempty"`
}

// ResolveConflictRequest is the operator decision on a conflict
type ResolveConflictRequest struct {
	Resolucion string `json:"resolucion" binding:"required,oneof=RESTAURAR IGNORAR RESTORE IGNORE"`
	Notas      string `json:"notas" binding:"max=2000"`
}

// RecordResponse is the wire shape of a record of any category.
// Fields that do not exist on a category are omitted.
type RecordResponse struct {
	ID         int64  `json:"id"`
	TipoModelo string `json:"tipo_modelo"`

	Nombre          string `json:"nombre,omitempty"`
	Descripcion     string `json:"descripcion,omitempty"`
	RUC             string `json:"ruc,omitempty"`
	PersonaContacto string `json:"persona_contacto,omitempty"`
	Email           string `json:"email,omitempty"`
	Telefono        string `json:"telefono,omitempty"`
	PaginaWeb       string `json:"pagina_web,omitempty"`

	Proveedor *int64 `json:"proveedor,omitempty"`
	Producto  *int64 `json:"producto,omitempty"`
	Cliente   *int64 `json:"cliente,omitempty"`

	Stock                *int             `json:"stock,omitempty"`
	Cantidad             *int             `json:"cantidad,omitempty"`
	PrecioCompraActual   *decimal.Decimal `json:"precio_compra_actual,omitempty"`
	PrecioCompraUnitario *decimal.Decimal `json:"precio_compra_unitario,omitempty"`
	PrecioVenta          *decimal.Decimal `json:"precio_venta,omitempty"`
	TotalVenta           *decimal.Decimal `json:"total_venta,omitempty"`
	TotalCompra          *decimal.Decimal `json:"total_compra,omitempty"`
	Factura              string           `json:"factura,omitempty"`
	FechaVenta           *time.Time       `json:"fecha_venta,omitempty"`
	FechaCompra          *time.Time       `json:"fecha_compra,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at"`
}

// ToRecordResponse converts a domain record to its wire shape
func ToRecordResponse(r trash.Record) RecordResponse {
	resp := RecordResponse{
		ID:         r.GetID(),
		TipoModelo: r.Category().String(),
		CreatedAt:  r.GetCreatedAt(),
		DeletedAt:  r.GetDeletedAt(),
	}
	switch v := r.(type) {
	case *trash.Product:
		resp.Nombre = v.Name
		resp.Descripcion = v.Description
		resp.Proveedor = v.SupplierID
		resp.Stock = &v.Stock
		resp.PrecioCompraActual = &v.PurchasePrice
	case *trash.Client:
		resp.Nombre = v.Name
		resp.RUC = v.TaxID
		resp.Email = v.Email
		resp.Telefono = v.Phone
		resp.PaginaWeb = v.Website
	case *trash.Supplier:
		resp.Nombre = v.Name
		resp.RUC = v.TaxID
		resp.PersonaContacto = v.ContactPerson
		resp.Email = v.Email
		resp.Telefono = v.Phone
		resp.PaginaWeb = v.Website
	case *trash.Sale:
		total := v.Total()
		resp.Producto = v.ProductID
		resp.Cliente = v.ClientID
		resp.Cantidad = &v.Quantity
		resp.PrecioVenta = &v.UnitPrice
		resp.TotalVenta = &total
		resp.Factura = v.Invoice
		resp.FechaVenta = v.Date
	case *trash.Purchase:
		total := v.Total()
		resp.Producto = v.ProductID
		resp.Proveedor = v.SupplierID
		resp.Cantidad = &v.Quantity
		resp.PrecioCompraUnitario = &v.UnitCost
		resp.TotalCompra = &total
		resp.Factura = v.Invoice
		resp.FechaCompra = v.Date
	}
	return resp
}

// ToRecordResponses converts a list of records
func ToRecordResponses(records []trash.Record) []RecordResponse {
	out := make([]RecordResponse, len(records))
	for i, r := range records {
		out[i] = ToRecordResponse(r)
	}
	return out
}

// ConflictResponse is the wire shape of a conflict
type ConflictResponse struct {
	ID                   uuid.UUID  `json:"id"`
	TipoModelo           string     `json:"tipo_modelo"`
	IDBorrado            int64      `json:"id_borrado"`
	IDExistente          int64      `json:"id_existente"`
	Estado               string     `json:"estado"`
	DetectadoPorUsername string     `json:"detectado_por_username"`
	FechaDeteccion       time.Time  `json:"fecha_deteccion"`
	ResueltoPorUsername  string     `json:"resuelto_por_username,omitempty"`
	FechaResolucion      *time.Time `json:"fecha_resolucion,omitempty"`
	NotasResolucion      string     `json:"notas_resolucion,omitempty"`
}

// ToConflictResponse converts a domain conflict to its wire shape
func ToConflictResponse(c *trash.Conflict) ConflictResponse {
	resp := ConflictResponse{
		ID:                   c.ID,
		TipoModelo:           c.Category.String(),
		IDBorrado:            c.DeletedRecordID,
		IDExistente:          c.ExistingRecordID,
		Estado:               EstadoFromState(c.State),
		DetectadoPorUsername: c.DetectedBy.Username,
		FechaDeteccion:       c.DetectedAt,
		FechaResolucion:      c.ResolvedAt,
		NotasResolucion:      c.ResolutionNotes,
	}
	if c.ResolvedBy != nil {
		resp.ResueltoPorUsername = c.ResolvedBy.Username
	}
	return resp
}

// ToConflictResponses converts a list of conflicts
func ToConflictResponses(conflicts []trash.Conflict) []ConflictResponse {
	out := make([]ConflictResponse, len(conflicts))
	for i := range conflicts {
		out[i] = ToConflictResponse(&conflicts[i])
	}
	return out
}

// EstadoFromState maps a domain state to its wire value
func EstadoFromState(s trash.ConflictState) string {
	switch s {
	case trash.ConflictStatePending:
		return EstadoPendiente
	case trash.ConflictStateResolvedRestore:
		return EstadoResueltoRestaurar
	case trash.ConflictStateResolvedIgnore:
		return EstadoResueltoIgnorar
	}
	return string(s)
}

// StateFromEstado maps a wire state to the domain; ok is false for unknown values
func StateFromEstado(estado string) (trash.ConflictState, bool) {
	switch estado {
	case EstadoPendiente, string(trash.ConflictStatePending):
		return trash.ConflictStatePending, true
	case EstadoResueltoRestaurar, string(trash.ConflictStateResolvedRestore):
		return trash.ConflictStateResolvedRestore, true
	case EstadoResueltoIgnorar, string(trash.ConflictStateResolvedIgnore):
		return trash.ConflictStateResolvedIgnore, true
	}
	return "", false
}

// RestoreResult reports the outcome of a restore request. Exactly one of
// Record and Conflict is set.
type RestoreResult struct {
	Restored        bool              `json:"restored"`
	Mensaje         string            `json:"mensaje"`
	Record          *RecordResponse   `json:"record,omitempty"`
	ConflictID      *uuid.UUID        `json:"conflict_id,omitempty"`
	Conflict        *ConflictResponse `json:"conflicto,omitempty"`
	ConflictCreated bool              `json:"-"`
}
