package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectStory is the problem/solution/approach narrative shown on the back
// of a portfolio card.
type ProjectStory struct {
	Problem  string `gorm:"type:text" json:"problem"`
	Solution string `gorm:"type:text" json:"solution"`
	Approach string `gorm:"type:text" json:"approach"`
}

type Project struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string       `gorm:"type:varchar(200);not null" json:"title"`
	Description string       `gorm:"type:text;not null" json:"description"`
	Story       ProjectStory `gorm:"embedded;embeddedPrefix:story_" json:"story"`
	Image       string       `gorm:"type:text" json:"image"`
	Github      string       `gorm:"type:text" json:"github"`
	Live        string       `gorm:"type:text" json:"live"`
	Tech        TechList     `gorm:"type:text;not null" json:"tech"`
	Category    string       `gorm:"type:varchar(100)" json:"category"`
	Gradient    string       `gorm:"type:varchar(100)" json:"gradient"`
	CreatedAt   time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Tech == nil {
		p.Tech = TechList{}
	}
	return nil
}

// TechList keeps the display order of a project's technologies. It is
// stored as a JSON array in a text column, which both Postgres and SQLite
// accept. It encodes itself as a driver.Valuer because column-map updates
// bypass gorm field serializers.
type TechList []string

func (t TechList) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *TechList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*t = TechList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("tech list: unsupported column type %T", src)
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return fmt.Errorf("tech list: %w", err)
	}
	if list == nil {
		list = []string{}
	}
	*t = list
	return nil
}

// MarshalJSON renders a nil list as [] so clients never see null.
func (t TechList) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(t))
}
