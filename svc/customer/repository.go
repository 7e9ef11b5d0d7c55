package customer

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists customers.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	FindByID(ctx context.Context, id string) (*Customer, error)
	Create(ctx context.Context, c *Customer) error
	Save(ctx context.Context, c *Customer) error
	// List returns all customers, newest first.
	List(ctx context.Context) ([]Customer, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository returns a Repository backed by db. The connection should be
// opened with TranslateError so unique violations map to ErrDuplicateEmail.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindByEmail(ctx context.Context, email string) (*Customer, error) {
	return r.first(ctx, "email = ?", email)
}

// FindByID treats an id that is not a UUID as unknown instead of sending it to
// the database, where postgres would reject the cast.
func (r *gormRepository) FindByID(ctx context.Context, id string) (*Customer, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrNotFound
	}
	return r.first(ctx, "id = ?", id)
}

func (r *gormRepository) first(ctx context.Context, query string, arg any) (*Customer, error) {
	var c Customer
	err := r.db.WithContext(ctx).Where(query, arg).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *gormRepository) Create(ctx context.Context, c *Customer) error {
	err := r.db.WithContext(ctx).Create(c).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *gormRepository) Save(ctx context.Context, c *Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *gormRepository) List(ctx context.Context) ([]Customer, error) {
	var customers []Customer
	err := r.db.WithContext(ctx).
		Select("id", "name", "email", "created_at").
		Order("created_at DESC").
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}
