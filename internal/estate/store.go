package estate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	errx "github.com/priyaank17/real-estate-ai-assistant/internal/core/error"
)

// SearchFilters narrows a structured project search. Zero values are ignored.
type SearchFilters struct {
	City         string   `json:"city,omitempty"`
	PriceMin     float64  `json:"price_min,omitempty"`
	PriceMax     float64  `json:"price_max,omitempty"`
	Bedrooms     int      `json:"bedrooms,omitempty"`
	PropertyType string   `json:"property_type,omitempty"`
	Developer    string   `json:"developer,omitempty"`
	ProjectName  string   `json:"project_name,omitempty"`
	Features     []string `json:"features,omitempty"`
	Limit        int      `json:"limit,omitempty"`
}

// IsEmpty reports whether no filter field is set.
func (f SearchFilters) IsEmpty() bool {
	return f.City == "" && f.PriceMin == 0 && f.PriceMax == 0 && f.Bedrooms == 0 &&
		f.PropertyType == "" && f.Developer == "" && f.ProjectName == "" && len(f.Features) == 0
}

const defaultSearchLimit = 10

// Store provides relational access to projects, leads, and bookings.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// SearchProjects runs a structured filter query ordered by price.
func (s *Store) SearchProjects(ctx context.Context, f SearchFilters) ([]Project, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	q := s.db.WithContext(ctx).Model(&Project{})
	if f.City != "" {
		q = q.Where("city ILIKE ?", f.City)
	}
	if f.PriceMin > 0 {
		q = q.Where("price >= ?", f.PriceMin)
	}
	if f.PriceMax > 0 {
		q = q.Where("price <= ?", f.PriceMax)
	}
	if f.Bedrooms > 0 {
		q = q.Where("bedrooms = ?", f.Bedrooms)
	}
	if f.PropertyType != "" {
		q = q.Where("property_type ILIKE ?", f.PropertyType)
	}
	if f.Developer != "" {
		q = q.Where("developer ILIKE ?", "%"+f.Developer+"%")
	}
	if f.ProjectName != "" {
		q = q.Where("name ILIKE ?", "%"+f.ProjectName+"%")
	}
	for _, feat := range f.Features {
		kw := "%" + strings.TrimSpace(feat) + "%"
		q = q.Where("(features ILIKE ? OR facilities ILIKE ? OR description ILIKE ?)", kw, kw, kw)
	}

	var projects []Project
	if err := q.Order("price ASC").Limit(limit).Find(&projects).Error; err != nil {
		return nil, errx.WrapDB(err)
	}
	return projects, nil
}

// ProjectsByNames matches projects whose name contains any of the given names.
func (s *Store) ProjectsByNames(ctx context.Context, names []string) ([]Project, error) {
	if len(names) == 0 {
		return nil, nil
	}

	q := s.db.WithContext(ctx).Model(&Project{})
	var conds []string
	var args []any
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		conds = append(conds, "name ILIKE ?")
		args = append(args, "%"+name+"%")
	}
	if len(conds) == 0 {
		return nil, nil
	}

	var projects []Project
	if err := q.Where(strings.Join(conds, " OR "), args...).Find(&projects).Error; err != nil {
		return nil, errx.WrapDB(err)
	}
	return projects, nil
}

// ProjectByNameLike returns the first project whose name contains name.
func (s *Store) ProjectByNameLike(ctx context.Context, name string) (*Project, error) {
	var project Project
	err := s.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+strings.TrimSpace(name)+"%").
		First(&project).Error
	if err != nil {
		return nil, errx.WrapDB(err)
	}
	return &project, nil
}

// ProjectByID looks a project up by primary key.
func (s *Store) ProjectByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	var project Project
	if err := s.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		return nil, errx.WrapDB(err)
	}
	return &project, nil
}

// CityPrices returns all non-zero prices of projects in a city, for comparables.
func (s *Store) CityPrices(ctx context.Context, city string) ([]float64, error) {
	var prices []float64
	err := s.db.WithContext(ctx).Model(&Project{}).
		Where("city ILIKE ? AND price > 0", city).
		Pluck("price", &prices).Error
	if err != nil {
		return nil, errx.WrapDB(err)
	}
	return prices, nil
}

// CountProjects reports the number of seeded projects.
func (s *Store) CountProjects(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&Project{}).Count(&n).Error; err != nil {
		return 0, errx.WrapDB(err)
	}
	return n, nil
}

// CreateProjects inserts seed records in batches.
func (s *Store) CreateProjects(ctx context.Context, projects []Project) error {
	if len(projects) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).CreateInBatches(projects, 100).Error; err != nil {
		return errx.WrapDB(err)
	}
	return nil
}

// AllProjects streams every project, used by RAG ingestion.
func (s *Store) AllProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := s.db.WithContext(ctx).Find(&projects).Error; err != nil {
		return nil, errx.WrapDB(err)
	}
	return projects, nil
}

// BookingRequest carries everything needed to persist a visit.
type BookingRequest struct {
	ProjectID     string
	ProjectName   string
	CustomerName  string
	CustomerEmail string
	City          string
	Preferences   string
	PreferredDate string // YYYY-MM-DD, optional
}

// BookingResult is the persisted outcome of a visit booking.
type BookingResult struct {
	Booking *VisitBooking
	Lead    *Lead
	Project *Project
}

// BookViewing resolves the project, gets or creates the lead by email, and
// stores the visit booking in a single transaction.
func (s *Store) BookViewing(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	if strings.TrimSpace(req.CustomerEmail) == "" {
		return nil, fmt.Errorf("customer email is required")
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, fmt.Errorf("customer name is required")
	}

	var preferredDate *time.Time
	if strings.TrimSpace(req.PreferredDate) != "" {
		d, err := time.Parse("2006-01-02", strings.TrimSpace(req.PreferredDate))
		if err != nil {
			return nil, fmt.Errorf("invalid date format %q, expected YYYY-MM-DD", req.PreferredDate)
		}
		preferredDate = &d
	}

	project, err := s.resolveProject(ctx, req.ProjectID, req.ProjectName)
	if err != nil {
		return nil, err
	}

	first, last := splitName(req.CustomerName)

	var result BookingResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lead Lead
		err := tx.Where("email = ?", strings.ToLower(strings.TrimSpace(req.CustomerEmail))).First(&lead).Error
		switch {
		case err == nil:
			if req.Preferences != "" && lead.Preferences != req.Preferences {
				lead.Preferences = req.Preferences
				if err := tx.Save(&lead).Error; err != nil {
					return err
				}
			}
		case err == gorm.ErrRecordNotFound:
			lead = Lead{
				FirstName:   first,
				LastName:    last,
				Email:       strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
				Preferences: req.Preferences,
			}
			if err := tx.Create(&lead).Error; err != nil {
				return err
			}
		default:
			return err
		}

		booking := VisitBooking{
			LeadID:        lead.ID,
			ProjectID:     project.ID,
			City:          req.City,
			PreferredDate: preferredDate,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		result = BookingResult{Booking: &booking, Lead: &lead, Project: project}
		return nil
	})
	if err != nil {
		return nil, errx.WrapDB(err)
	}
	return &result, nil
}

func (s *Store) resolveProject(ctx context.Context, id, name string) (*Project, error) {
	if strings.TrimSpace(id) != "" {
		pid, err := uuid.Parse(strings.TrimSpace(id))
		if err == nil {
			return s.ProjectByID(ctx, pid)
		}
		// Some models pass the project name in the id slot; fall through.
		if name == "" {
			name = id
		}
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("project id or name is required")
	}
	return s.ProjectByNameLike(ctx, name)
}

func splitName(full string) (first, last string) {
	parts := strings.Fields(strings.TrimSpace(full))
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
