package models

import "time"

// ClassificationRangeModel is one usage band of a category table.
type ClassificationRangeModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Category  string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_ranges_category_name,priority:1"`
	Name      string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_ranges_category_name,priority:2"`
	Min       float64   `gorm:"column:min_value;not null"`
	Max       float64   `gorm:"column:max_value;not null"`
	SortOrder int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ClassificationRangeModel) TableName() string {
	return "classification_ranges"
}
