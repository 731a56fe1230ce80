// Package models defines the persisted release tracker entities.
//
// Track lists and track name sets are stored as JSON columns through GORM's
// json serializer, so the schema works unchanged on SQLite and MySQL.
package models
