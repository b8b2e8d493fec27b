package model

import "time"

// SiteConfig is one row of the flat theme key/value table.
type SiteConfig struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100;not null" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (SiteConfig) TableName() string { return "site_config" }

// SiteSetting is a typed key/value pair (colors or images).
type SiteSetting struct {
	DTO
	Key   string `gorm:"uniqueIndex:idx_setting_type_key;size:100;not null" json:"key"`
	Value string `gorm:"type:text;not null" json:"value"`
	Type  string `gorm:"uniqueIndex:idx_setting_type_key;size:20;not null" json:"type"`
}

type UpsertSiteSettingInput struct {
	Key   string `json:"key" validate:"required,max=100"`
	Value string `json:"value" validate:"required"`
	Type  string `json:"type" validate:"required,oneof=colors images"`
}

// Feature is a named boolean switch; "customization" gates in-place editing.
type Feature struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:60;not null" json:"name"`
	Enabled   bool      `gorm:"not null;default:false" json:"enabled"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SetFeatureInput struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// EditableElement overrides the content of one element on one page.
type EditableElement struct {
	DTO
	PagePath  string `gorm:"uniqueIndex:idx_editable_page_element;size:200;not null" json:"page_path"`
	ElementID string `gorm:"uniqueIndex:idx_editable_page_element;size:120;not null" json:"element_id"`
	Content   string `gorm:"type:text;not null" json:"content"`
}

type UpsertEditableElementInput struct {
	PagePath  string `json:"page_path" validate:"required,startswith=/,max=200"`
	ElementID string `json:"element_id" validate:"required,max=120"`
	Content   string `json:"content" validate:"max=20000"`
}

// ThemeUpdateInput mirrors theme.Patch on the wire.
type ThemeUpdateInput struct {
	Colors      map[string]string `json:"colors" validate:"omitempty,dive,keys,required,endkeys,hexcolor"`
	Images      map[string]string `json:"images" validate:"omitempty,dive,keys,required,endkeys,omitempty,url"`
	TextContent map[string]any    `json:"textContent"`
}
