package models

import "strings"

// Category is a menu section grouping products.
// DisplayOrder positions the category on the public menu; categories without one are hidden.
type Category struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description  string    `gorm:"size:250" json:"description"`
	ImageURL     string    `gorm:"size:250" json:"image_url"`
	DisplayOrder *int      `gorm:"index" json:"display_order,omitempty"`
	Products     []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// Listed reports whether the category appears on the public menu
func (c Category) Listed() bool {
	return c.DisplayOrder != nil
}

// IsExternalImage reports whether ref points outside the upload store
func IsExternalImage(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
