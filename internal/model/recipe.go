package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	bytes, err := scanBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, a)
}

// JSONBStringMap stores a string-to-string mapping, such as nutrition facts, in JSONB
type JSONBStringMap map[string]string

// Value implements the driver.Valuer interface
func (m JSONBStringMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (m *JSONBStringMap) Scan(value interface{}) error {
	if value == nil {
		*m = JSONBStringMap{}
		return nil
	}

	bytes, err := scanBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, m)
}

func scanBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported JSONB source type %T", value)
	}
}

// Recipe is a collected recipe together with its diet classification. The
// JSON form is the record written by the collector.
type Recipe struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
	DeletedAt         gorm.DeletedAt   `gorm:"index" json:"-"`
	Title             string           `gorm:"size:255;not null" json:"title"`
	RecipeURL         string           `gorm:"size:512;not null;uniqueIndex" json:"recipe_url"`
	ImageURL          string           `gorm:"size:512" json:"image_url"`
	Servings          string           `gorm:"size:50" json:"servings"`
	Description       string           `gorm:"type:text" json:"description"`
	Ingredients       JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions      JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	NutritionInfo     JSONBStringMap   `gorm:"type:jsonb;not null;default:'{}'" json:"nutrition_info"`
	Courses           JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"courses"`
	FoodGroups        JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"food_groups"`
	Cuisines          JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"cuisines"`
	Diets             JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"diets"`
	MeetsRequirements bool             `gorm:"not null;default:false;index" json:"meets_requirements"`
}

// BeforeCreate assigns an ID when the caller did not set one
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
