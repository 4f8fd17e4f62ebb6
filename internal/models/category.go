package models

import "time"

// CategoryNode is one leaf of the Main → Sub → Sub-sub category taxonomy
type CategoryNode struct {
	MainCategory   string    `json:"mainCategory" bson:"mainCategory" db:"main_category"`
	SubCategory    string    `json:"subCategory" bson:"subCategory" db:"sub_category"`
	SubSubCategory string    `json:"subSubCategory" bson:"subSubCategory" db:"sub_sub_category"`
	IsActive       bool      `json:"isActive" bson:"isActive" db:"is_active"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt" db:"updated_at"`
}

// Triple identifies a node by its three category names
type Triple struct {
	Main   string
	Sub    string
	SubSub string
}

// Triple returns the node's identifying names
func (n CategoryNode) Triple() Triple {
	return Triple{Main: n.MainCategory, Sub: n.SubCategory, SubSub: n.SubSubCategory}
}
