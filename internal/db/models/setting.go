// Package models contains database model definitions.
package models

// Setting is a named blob stored in the database, used for bookkeeping such as
// the summary of the last csv import.
type Setting struct {
	ID    uint64 `gorm:"primaryKey"`
	Name  string `gorm:"unique;size:100;not null"`
	Value []byte
}

// TableName specifies the database table name for the Setting model.
func (Setting) TableName() string {
	return "settings"
}
