package model

type MenuItem struct {
	DTO
	Categorie     string  `gorm:"size:20;not null;index" json:"categorie"`
	Nom           string  `gorm:"size:150;not null" json:"nom"`
	Description   string  `gorm:"type:text" json:"description"`
	Prix          float64 `gorm:"type:numeric(10,2);not null;default:0" json:"prix"`
	ImageUrl      *string `json:"image_url"`
	ImagePublicID *string `json:"-"`
	IsVegan       bool    `gorm:"not null;default:false" json:"is_vegan"`
	IsSpicy       bool    `gorm:"not null;default:false" json:"is_spicy"`
	IsPeanutFree  bool    `gorm:"not null;default:false" json:"is_peanut_free"`
	IsGlutenFree  bool    `gorm:"not null;default:false" json:"is_gluten_free"`
}

type CreateMenuItemInput struct {
	Categorie    string  `json:"categorie" form:"categorie" validate:"required,category"`
	Nom          string  `json:"nom" form:"nom" validate:"required,max=150"`
	Description  string  `json:"description" form:"description" validate:"omitempty,max=2000"`
	Prix         float64 `json:"prix" form:"prix" validate:"gte=0"`
	ImageUrl     *string `json:"image_url" form:"image_url" validate:"omitempty,url"`
	IsVegan      bool    `json:"is_vegan" form:"is_vegan"`
	IsSpicy      bool    `json:"is_spicy" form:"is_spicy"`
	IsPeanutFree bool    `json:"is_peanut_free" form:"is_peanut_free"`
	IsGlutenFree bool    `json:"is_gluten_free" form:"is_gluten_free"`
}

type UpdateMenuItemInput struct {
	Categorie    *string  `json:"categorie" form:"categorie" validate:"omitempty,category"`
	Nom          *string  `json:"nom" form:"nom" validate:"omitempty,min=1,max=150"`
	Description  *string  `json:"description" form:"description" validate:"omitempty,max=2000"`
	Prix         *float64 `json:"prix" form:"prix" validate:"omitempty,gte=0"`
	ImageUrl     *string  `json:"image_url" form:"image_url" validate:"omitempty,url"`
	IsVegan      *bool    `json:"is_vegan" form:"is_vegan"`
	IsSpicy      *bool    `json:"is_spicy" form:"is_spicy"`
	IsPeanutFree *bool    `json:"is_peanut_free" form:"is_peanut_free"`
	IsGlutenFree *bool    `json:"is_gluten_free" form:"is_gluten_free"`
}

type MenuFilter struct {
	Categorie  *string `query:"categorie"`
	Vegan      *bool   `query:"vegan"`
	GlutenFree *bool   `query:"gluten_free"`
}

// MenuSection is one category with its items, in display order.
type MenuSection struct {
	Categorie string     `json:"categorie"`
	Items     []MenuItem `json:"items"`
}
