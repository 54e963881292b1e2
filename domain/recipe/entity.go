package recipe

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Default values applied when a recipe is created without them.
const (
	DefaultCookingTime = 30
	DefaultDifficulty  = "Medium"
	DefaultCategory    = "Main Course"
)

// StringList is a list of ingredient lines. A bare JSON string decodes into
// a single-element list, so clients may submit either form.
type StringList []string

// UnmarshalJSON coerces a scalar string into a one-element list.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = items
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("ingredients must be a string or a list of strings")
	}
	*l = StringList{single}
	return nil
}

// Value implements driver.Valuer, storing the list as a JSON text column.
func (l StringList) Value() (driver.Value, error) {
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return json.Unmarshal([]byte(v), (*[]string)(l))
	case []byte:
		return json.Unmarshal(v, (*[]string)(l))
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}

// Recipe represents a shared recipe. ID, CreatedBy and CreatedAt are
// immutable once assigned; updates may touch everything else.
type Recipe struct {
	ID           int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title        string     `json:"title" gorm:"not null;type:text"`
	Description  string     `json:"description" gorm:"type:text"`
	Ingredients  StringList `json:"ingredients" gorm:"type:text"`
	Instructions string     `json:"instructions" gorm:"type:text"`
	CookingTime  int        `json:"cookingTime"`
	Difficulty   string     `json:"difficulty"`
	Category     string     `json:"category"`
	CreatedBy    Owner      `json:"createdBy" gorm:"type:text"`
	CreatedAt    time.Time  `json:"createdAt" gorm:"autoCreateTime:false"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty" gorm:"autoUpdateTime:false"`
}

// TableName returns the table name for the Recipe entity.
func (Recipe) TableName() string {
	return "recipes"
}
