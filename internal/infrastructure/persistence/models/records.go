package models

import (
	"fmt"
	"time"

	"github.com/erp/papelera/internal/domain/trash"
	"github.com/shopspring/decimal"
)

// RecordRow is implemented by every recoverable business table model
type RecordRow interface {
	TableName() string
	Base() *RecordModel
	ToRecord() trash.Record
}

// ProductModel is the persistence model for products
type ProductModel struct {
	RecordModel
	Nombre             string          `gorm:"type:varchar(200);not null"`
	Descripcion        string          `gorm:"type:text"`
	ProveedorID        *int64          `gorm:"index"`
	Stock              int             `gorm:"not null;default:0"`
	PrecioCompraActual decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string { return "productos" }

// ToRecord converts the model to a domain record
func (m *ProductModel) ToRecord() trash.Record {
	return &trash.Product{
		BusinessEntity: m.RecordModel.ToDomain(),
		Name:           m.Nombre,
		Description:    m.Descripcion,
		SupplierID:     m.ProveedorID,
		Stock:          m.Stock,
		PurchasePrice:  m.PrecioCompraActual,
	}
}

// ClientModel is the persistence model for clients
type ClientModel struct {
	RecordModel
	Nombre    string `gorm:"type:varchar(200);not null"`
	RUC       string `gorm:"column:ruc;type:varchar(50)"`
	Email     string `gorm:"type:varchar(254)"`
	Telefono  string `gorm:"type:varchar(50)"`
	PaginaWeb string `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string { return "clientes" }

// ToRecord converts the model to a domain record
func (m *ClientModel) ToRecord() trash.Record {
	return &trash.Client{
		BusinessEntity: m.RecordModel.ToDomain(),
		Name:           m.Nombre,
		TaxID:          m.RUC,
		Email:          m.Email,
		Phone:          m.Telefono,
		Website:        m.PaginaWeb,
	}
}

// SupplierModel is the persistence model for suppliers
type SupplierModel struct {
	RecordModel
	Nombre          string `gorm:"type:varchar(200);not null"`
	RUC             string `gorm:"column:ruc;type:varchar(50)"`
	PersonaContacto string `gorm:"type:varchar(200)"`
	Email           string `gorm:"type:varchar(254)"`
	Telefono        string `gorm:"type:varchar(50)"`
	PaginaWeb       string `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string { return "proveedores" }

// ToRecord converts the model to a domain record
func (m *SupplierModel) ToRecord() trash.Record {
	return &trash.Supplier{
		BusinessEntity: m.RecordModel.ToDomain(),
		Name:           m.Nombre,
		TaxID:          m.RUC,
		ContactPerson:  m.PersonaContacto,
		Email:          m.Email,
		Phone:          m.Telefono,
		Website:        m.PaginaWeb,
	}
}

// SaleModel is the persistence model for sales
type SaleModel struct {
	RecordModel
	ProductoID  *int64          `gorm:"index"`
	ClienteID   *int64          `gorm:"index"`
	Cantidad    int             `gorm:"not null"`
	PrecioVenta decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Factura     string          `gorm:"type:varchar(100)"`
	Fecha       *time.Time      `gorm:"index"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string { return "ventas" }

// ToRecord converts the model to a domain record
func (m *SaleModel) ToRecord() trash.Record {
	return &trash.Sale{
		BusinessEntity: m.RecordModel.ToDomain(),
		ProductID:      m.ProductoID,
		ClientID:       m.ClienteID,
		Quantity:       m.Cantidad,
		UnitPrice:      m.PrecioVenta,
		Invoice:        m.Factura,
		Date:           m.Fecha,
	}
}

// PurchaseModel is the persistence model for purchases
type PurchaseModel struct {
	RecordModel
	ProductoID           *int64          `gorm:"index"`
	ProveedorID          *int64          `gorm:"index"`
	Cantidad             int             `gorm:"not null"`
	PrecioCompraUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Factura              string          `gorm:"type:varchar(100)"`
	Fecha                *time.Time      `gorm:"index"`
}

// TableName returns the table name for GORM
func (PurchaseModel) TableName() string { return "compras" }

// ToRecord converts the model to a domain record
func (m *PurchaseModel) ToRecord() trash.Record {
	return &trash.Purchase{
		BusinessEntity: m.RecordModel.ToDomain(),
		ProductID:      m.ProductoID,
		SupplierID:     m.ProveedorID,
		Quantity:       m.Cantidad,
		UnitCost:       m.PrecioCompraUnitario,
		Invoice:        m.Factura,
		Date:           m.Fecha,
	}
}

// NewRecordRow returns an empty model for the category
func NewRecordRow(c trash.Category) (RecordRow, error) {
	switch c {
	case trash.CategoryProduct:
		return &ProductModel{}, nil
	case trash.CategoryClient:
		return &ClientModel{}, nil
	case trash.CategorySupplier:
		return &SupplierModel{}, nil
	case trash.CategorySale:
		return &SaleModel{}, nil
	case trash.CategoryPurchase:
		return &PurchaseModel{}, nil
	}
	return nil, fmt.Errorf("no table for category %q", c)
}

// RecordRowFromDomain converts a domain record to its model, stamping the identity key
func RecordRowFromDomain(r trash.Record) (RecordRow, error) {
	identity := trash.IdentityOf(r)
	switch v := r.(type) {
	case *trash.Product:
		m := &ProductModel{
			Nombre:             v.Name,
			Descripcion:        v.Description,
			ProveedorID:        v.SupplierID,
			Stock:              v.Stock,
			PrecioCompraActual: v.PurchasePrice,
		}
		m.FromDomainBusinessEntity(v.BusinessEntity, identity)
		return m, nil
	case *trash.Client:
		m := &ClientModel{
			Nombre:    v.Name,
			RUC:       v.TaxID,
			Email:     v.Email,
			Telefono:  v.Phone,
			PaginaWeb: v.Website,
		}
		m.FromDomainBusinessEntity(v.BusinessEntity, identity)
		return m, nil
	case *trash.Supplier:
		m := &SupplierModel{
			Nombre:          v.Name,
			RUC:             v.TaxID,
			PersonaContacto: v.ContactPerson,
			Email:           v.Email,
			Telefono:        v.Phone,
			PaginaWeb:       v.Website,
		}
		m.FromDomainBusinessEntity(v.BusinessEntity, identity)
		return m, nil
	case *trash.Sale:
		m := &SaleModel{
			ProductoID:  v.ProductID,
			ClienteID:   v.ClientID,
			Cantidad:    v.Quantity,
			PrecioVenta: v.UnitPrice,
			Factura:     v.Invoice,
			Fecha:       v.Date,
		}
		m.FromDomainBusinessEntity(v.BusinessEntity, identity)
		return m, nil
	case *trash.Purchase:
		m := &PurchaseModel{
			ProductoID:           v.ProductID,
			ProveedorID:          v.SupplierID,
			Cantidad:             v.Quantity,
			PrecioCompraUnitario: v.UnitCost,
			Factura:              v.Invoice,
			Fecha:                v.Date,
		}
		m.FromDomainBusinessEntity(v.BusinessEntity, identity)
		return m, nil
	}
	return nil, fmt.Errorf("unsupported record type %T", r)
}

// RecordModels lists every record model, for AutoMigrate in tests and dev
func RecordModels() []any {
	return []any{&ProductModel{}, &ClientModel{}, &SupplierModel{}, &SaleModel{}, &PurchaseModel{}}
}
