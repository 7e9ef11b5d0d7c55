package customer

import (
	"context"
	"errors"

	"github.com/dmitrymomot/intellicall/pkg/sanitizer"
	"github.com/dmitrymomot/intellicall/pkg/validator"
)

// PasswordHasher is satisfied by *auth.PasswordHasher.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(plain, hash string) bool
}

type Service struct {
	repo   Repository
	hasher PasswordHasher
}

func NewService(repo Repository, hasher PasswordHasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

// RegisterInput is the data needed to create a customer. A nil Password
// creates a customer who can log in with the email alone.
type RegisterInput struct {
	Name     string
	Email    string
	Password *string
}

// Overview is everything the dashboard page shows.
type Overview struct {
	Profile   Profile
	Dashboard Dashboard
}

var normalizeName = sanitizer.Compose(sanitizer.RemoveControlChars, sanitizer.SingleLine)

// Register validates in and stores a new customer.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Profile, error) {
	name := normalizeName(in.Name)
	email := sanitizer.NormalizeEmail(in.Email)

	var password string
	if in.Password != nil {
		password = *in.Password
	}

	if err := validator.Apply(
		validator.RequiredString("name", name).WithMessage(MsgNameRequired),
		validator.MaxLenString("name", name, MaxNameLength).WithMessage(MsgNameTooLong),
		validator.ValidEmail("email", email).WithMessage(MsgEmailInvalid),
		validator.When(in.Password != nil,
			validator.MinLenString("password", password, MinPasswordLength).WithMessage(MsgPasswordTooShort)),
		validator.When(in.Password != nil,
			validator.MaxBytesString("password", password, MaxPasswordBytes).WithMessage(MsgPasswordTooLong)),
	); err != nil {
		return Profile{}, err
	}

	switch _, err := s.repo.FindByEmail(ctx, email); {
	case err == nil:
		return Profile{}, ErrDuplicateEmail
	case !errors.Is(err, ErrNotFound):
		return Profile{}, err
	}

	c := &Customer{Name: name, Email: email}
	if password != "" {
		hash, err := s.hasher.Hash(password)
		if err != nil {
			return Profile{}, err
		}
		c.Password = &hash
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Profile{}, err
	}
	return c.Profile(), nil
}

// Authenticate checks an email and optional password.
// Customers without a stored hash are accepted on email alone.
func (s *Service) Authenticate(ctx context.Context, email string, password *string) (Profile, error) {
	email = sanitizer.NormalizeEmail(email)
	if err := validator.Apply(
		validator.ValidEmail("email", email).WithMessage(MsgEmailInvalid),
	); err != nil {
		return Profile{}, err
	}

	c, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return Profile{}, ErrInvalidCredentials
	}
	if err != nil {
		return Profile{}, err
	}

	if c.HasPassword() {
		if password == nil || *password == "" {
			return Profile{}, ErrPasswordRequired
		}
		if !s.hasher.Compare(*password, *c.Password) {
			return Profile{}, ErrInvalidCredentials
		}
	}
	return c.Profile(), nil
}

func (s *Service) Get(ctx context.Context, id string) (Profile, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	return c.Profile(), nil
}

// List returns every customer, newest first.
func (s *Service) List(ctx context.Context) ([]Profile, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]Profile, 0, len(customers))
	for i := range customers {
		profiles = append(profiles, customers[i].Profile())
	}
	return profiles, nil
}

func (s *Service) Dashboard(ctx context.Context, id string) (Dashboard, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Dashboard{}, err
	}
	return c.Dashboard(), nil
}

func (s *Service) Overview(ctx context.Context, id string) (Overview, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Overview{}, err
	}
	return Overview{Profile: c.Profile(), Dashboard: c.Dashboard()}, nil
}

// UpdateDashboard replaces the customer's dashboard text.
func (s *Service) UpdateDashboard(ctx context.Context, id, text string) (Dashboard, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Dashboard{}, err
	}

	c.TextContent = &text
	if err := s.repo.Save(ctx, c); err != nil {
		return Dashboard{}, err
	}
	return c.Dashboard(), nil
}
