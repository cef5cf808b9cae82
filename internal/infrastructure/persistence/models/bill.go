package models

import (
	"time"

	"github.com/easybill/backend/internal/domain/billing"
	"github.com/easybill/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillModel is the persistence model for the Bill aggregate
type BillModel struct {
	BaseModel
	AccountID           uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:uq_bills_account_bill_number,priority:1"`
	BillNumber          string          `gorm:"type:varchar(100);not null;uniqueIndex:uq_bills_account_bill_number,priority:2"`
	CustomerID          *uuid.UUID      `gorm:"type:uuid;index"`
	Customer            *CustomerModel  `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL"`
	DeletedCustomerName string          `gorm:"type:varchar(200);not null"`
	Date                time.Time       `gorm:"not null;index"`
	GSTRate             decimal.Decimal `gorm:"column:gst_rate;type:decimal(9,4);not null"`
	PaymentStatus       string          `gorm:"type:varchar(20);not null"`
	PaymentMethod       string          `gorm:"type:varchar(100);not null"`
	Notes               string          `gorm:"type:text;not null"`
	Items               []BillItemModel `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (BillModel) TableName() string {
	return "bills"
}

// BillItemModel is one ordered line of a bill. Amounts are derived, never stored.
type BillItemModel struct {
	BillID      uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position    int             `gorm:"primaryKey;autoIncrement:false"`
	Description string          `gorm:"type:text;not null"`
	Rate        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (BillItemModel) TableName() string {
	return "bill_items"
}

// ToDomain converts the persistence model to a domain Bill
func (m *BillModel) ToDomain() *billing.Bill {
	items := make([]billing.LineItem, len(m.Items))
	for i, it := range m.Items {
		items[i] = billing.LineItem{
			Description: it.Description,
			Rate:        it.Rate,
			Quantity:    it.Quantity,
		}
	}

	var customerID *uuid.UUID
	if m.CustomerID != nil {
		id := *m.CustomerID
		customerID = &id
	}

	return &billing.Bill{
		AccountScoped:       shared.AccountScoped{BaseEntity: m.BaseModel.ToDomain(), AccountID: m.AccountID},
		BillNumber:          m.BillNumber,
		CustomerID:          customerID,
		DeletedCustomerName: m.DeletedCustomerName,
		Date:                m.Date,
		Items:               items,
		GSTRate:             m.GSTRate,
		PaymentStatus:       billing.PaymentStatus(m.PaymentStatus),
		PaymentMethod:       m.PaymentMethod,
		Notes:               m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Bill.
// Items are numbered by their position in the bill.
func (m *BillModel) FromDomain(b *billing.Bill) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.AccountID = b.AccountID
	m.BillNumber = b.BillNumber
	m.CustomerID = b.CustomerID
	m.DeletedCustomerName = b.DeletedCustomerName
	m.Date = b.Date
	m.GSTRate = b.GSTRate
	m.PaymentStatus = string(b.PaymentStatus)
	m.PaymentMethod = b.PaymentMethod
	m.Notes = b.Notes

	m.Items = make([]BillItemModel, len(b.Items))
	for i, it := range b.Items {
		m.Items[i] = BillItemModel{
			BillID:      b.ID,
			Position:    i,
			Description: it.Description,
			Rate:        it.Rate,
			Quantity:    it.Quantity,
		}
	}
}

// BillModelFromDomain creates a new persistence model from a domain Bill
func BillModelFromDomain(b *billing.Bill) *BillModel {
	m := &BillModel{}
	m.FromDomain(b)
	return m
}
