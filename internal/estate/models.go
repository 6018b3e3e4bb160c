package estate

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is a residential development unit offered for sale.
type Project struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Bedrooms       int       `gorm:"column:bedrooms" json:"bedrooms"`
	Bathrooms      float64   `gorm:"column:bathrooms" json:"bathrooms"`
	Status         string    `gorm:"column:status;type:varchar(100)" json:"status"`
	UnitType       string    `gorm:"column:unit_type;type:varchar(100)" json:"unit_type"`
	Developer      string    `gorm:"column:developer;type:varchar(255)" json:"developer"`
	Price          float64   `gorm:"column:price;type:numeric(15,2)" json:"price"`
	Area           float64   `gorm:"column:area" json:"area"`
	PropertyType   string    `gorm:"column:property_type;type:varchar(100)" json:"property_type"`
	City           string    `gorm:"column:city;type:varchar(100)" json:"city"`
	Country        string    `gorm:"column:country;type:varchar(100)" json:"country"`
	CompletionDate string    `gorm:"column:completion_date;type:varchar(100)" json:"completion_date"`
	Features       string    `gorm:"column:features;type:text" json:"features"`
	Facilities     string    `gorm:"column:facilities;type:text" json:"facilities"`
	Description    string    `gorm:"column:description;type:text" json:"description"`
}

func (Project) TableName() string { return "projects" }

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Lead is a prospective buyer identified by email.
type Lead struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FirstName   string    `gorm:"column:first_name;type:varchar(100);not null" json:"first_name"`
	LastName    string    `gorm:"column:last_name;type:varchar(100)" json:"last_name"`
	Email       string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	Preferences string    `gorm:"column:preferences;type:text" json:"preferences"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Lead) TableName() string { return "leads" }

func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// VisitBooking records a confirmed property visit for a lead.
type VisitBooking struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	LeadID        uuid.UUID  `gorm:"column:lead_id;type:uuid;not null" json:"lead_id"`
	Lead          *Lead      `gorm:"foreignKey:LeadID" json:"lead,omitempty"`
	ProjectID     uuid.UUID  `gorm:"column:project_id;type:uuid;not null" json:"project_id"`
	Project       *Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	City          string     `gorm:"column:city;type:varchar(100)" json:"city"`
	PreferredDate *time.Time `gorm:"column:preferred_date;type:date" json:"preferred_date"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (VisitBooking) TableName() string { return "visit_bookings" }

func (b *VisitBooking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
