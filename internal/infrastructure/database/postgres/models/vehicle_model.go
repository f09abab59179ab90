package models

import "time"

// VehicleModel represents the database model for fleet vehicles.
type VehicleModel struct {
	ID               int64     `gorm:"primaryKey;autoIncrement"`
	DeviceID         *int64    `gorm:"uniqueIndex"`
	Code             *int64    `gorm:"index"`
	GroupID          *int64    `gorm:"index"`
	GroupTitle       *string   `gorm:"type:varchar(255)"`
	IMEI             *string   `gorm:"column:imei;type:varchar(64)"`
	DisplayName      *string   `gorm:"type:varchar(255);index"`
	Brand            *string   `gorm:"type:varchar(100)"`
	Class            *string   `gorm:"type:varchar(100)"`
	Model            *string   `gorm:"type:varchar(100)"`
	Type             *string   `gorm:"type:varchar(100)"`
	Year             *int      `gorm:"type:integer"`
	Plate            *string   `gorm:"type:varchar(50);index"`
	Area             *string   `gorm:"type:varchar(150)"`
	ResponsibleParty *string   `gorm:"type:varchar(150)"`
	ManagementGroup  *string   `gorm:"type:varchar(150)"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

func (VehicleModel) TableName() string {
	return "vehicles"
}
