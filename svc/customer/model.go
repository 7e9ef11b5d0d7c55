package customer

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MaxNameLength     = 255
	MinPasswordLength = 6
	MaxPasswordBytes  = 72
)

// Customer is the stored credential record.
type Customer struct {
	ID          string  `gorm:"type:uuid;primaryKey"`
	Name        string  `gorm:"size:255;not null"`
	Email       string  `gorm:"size:255;not null;uniqueIndex"`
	Password    *string `gorm:"size:255"`
	TextContent *string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Customer) TableName() string { return "customers" }

// BeforeCreate assigns a random id when none is set.
func (c *Customer) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// HasPassword reports whether login requires a password.
func (c *Customer) HasPassword() bool {
	return c.Password != nil && *c.Password != ""
}

// Profile is the public projection of a customer.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Dashboard is the customer's free-form text and when it last changed.
type Dashboard struct {
	TextContent string    `json:"textContent"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (c *Customer) Profile() Profile {
	return Profile{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	}
}

func (c *Customer) Dashboard() Dashboard {
	d := Dashboard{UpdatedAt: c.UpdatedAt}
	if c.TextContent != nil {
		d.TextContent = *c.TextContent
	}
	return d
}
