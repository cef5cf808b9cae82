// Package models contains GORM persistence models that map to database tables.
// They are kept apart from the domain types so the domain layer stays free of
// ORM tags. Each model has ToDomain / FromDomain mappers used by the repositories.
//
// The table layout mirrors migrations/000001_init.up.sql:
//   - accounts: one row per tenant, unique email
//   - customers: owned by an account
//   - bills: owned by an account, unique (account_id, bill_number), nullable customer_id
//   - bill_items: ordered line items, amounts are never stored
package models
