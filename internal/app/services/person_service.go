package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/yigit/seasonledger/internal/app/models"
	"github.com/yigit/seasonledger/internal/app/models/dto"
	"github.com/yigit/seasonledger/internal/app/repositories"
	"github.com/yigit/seasonledger/internal/db"
	"github.com/yigit/seasonledger/internal/pkg/apperrors"
	"github.com/yigit/seasonledger/internal/pkg/auth"
	"github.com/yigit/seasonledger/internal/pkg/helpers"
	"github.com/yigit/seasonledger/internal/pkg/logger"
	"github.com/yigit/seasonledger/internal/pkg/validation"
)

// PersonService defines the interface for person operations
type PersonService interface {
	CreatePerson(ctx context.Context, req *dto.CreatePersonRequest) (*dto.PersonResponse, error)
	GetPerson(ctx context.Context, id int64) (*dto.PersonResponse, error)
	UpdatePerson(ctx context.Context, id int64, req *dto.UpdatePersonRequest) (*dto.PersonResponse, error)
	SetPersonActive(ctx context.Context, id int64, active bool) (*dto.PersonResponse, error)
	ListPeople(ctx context.Context, filter *dto.PersonFilterRequest) (*dto.PersonListResponse, error)
}

// personServiceImpl implements PersonService
type personServiceImpl struct {
	people repositories.PersonStore
	tx     db.Transactor
	hasher *auth.PasswordHasher
	clock  clockwork.Clock
}

// NewPersonService creates a new PersonService
func NewPersonService(
	people repositories.PersonStore,
	tx db.Transactor,
	hasher *auth.PasswordHasher,
	clock clockwork.Clock,
) PersonService {
	return &personServiceImpl{
		people: people,
		tx:     tx,
		hasher: hasher,
		clock:  clock,
	}
}

// personFields is the normalized, validated form of a create or update request.
type personFields struct {
	gameName string
	name     string
	phone    string
	password string
	role     models.Role
}

func validatePerson(gameName, name, phone, password, role string) (*personFields, error) {
	f := &personFields{
		gameName: strings.TrimSpace(gameName),
		name:     strings.TrimSpace(name),
		phone:    strings.TrimSpace(phone),
		password: password,
	}
	err := validation.All(
		validation.NewStringValidation("gameName", f.gameName).WithMaxLength(models.GameNameMaxLength),
		validation.NewStringValidation("name", f.name).WithMaxLength(models.PersonNameMaxLength).WithRequired(false),
		validation.NewStringValidation("phoneNumber", f.phone).WithMaxLength(models.PhoneNumberMaxLength).WithRequired(false),
		validation.NewStringValidation("password", f.password).WithMaxLength(models.PasswordMaxLength).WithRequired(false),
	)
	if err != nil {
		return nil, err
	}

	parsed, ok := models.ParseRole(role)
	if !ok {
		return nil, apperrors.ErrInvalidRole
	}
	f.role = parsed
	return f, nil
}

// CreatePerson validates and stores a new person. A password, when given, is stored as a bcrypt hash.
func (s *personServiceImpl) CreatePerson(ctx context.Context, req *dto.CreatePersonRequest) (*dto.PersonResponse, error) {
	fields, err := validatePerson(req.GameName, req.Name, req.PhoneNumber, req.Password, req.Role)
	if err != nil {
		return nil, err
	}

	person := &models.Person{
		GameName:    fields.gameName,
		Name:        fields.name,
		PhoneNumber: fields.phone,
		Role:        fields.role,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if fields.password != "" {
		if person.PasswordHash, err = s.hasher.Hash(fields.password); err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
	}

	if _, err := s.people.Create(ctx, person); err != nil {
		return nil, fmt.Errorf("error creating person: %w", err)
	}

	logger.Ctx(ctx).Info().Int64("personID", person.ID).Str("gameName", person.GameName).Msg("Person created")
	resp := dto.FromPerson(person)
	return &resp, nil
}

func (s *personServiceImpl) GetPerson(ctx context.Context, id int64) (*dto.PersonResponse, error) {
	person, err := s.people.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromPerson(person)
	return &resp, nil
}

// UpdatePerson replaces the editable fields. An empty password keeps the stored hash.
// Participant rows reference the person by id only, so a game name change leaves them as they are.
func (s *personServiceImpl) UpdatePerson(ctx context.Context, id int64, req *dto.UpdatePersonRequest) (*dto.PersonResponse, error) {
	fields, err := validatePerson(req.GameName, req.Name, req.PhoneNumber, req.Password, req.Role)
	if err != nil {
		return nil, err
	}

	var newHash string
	if fields.password != "" {
		if newHash, err = s.hasher.Hash(fields.password); err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
	}

	var updated *models.Person
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		person, err := s.people.GetByID(ctx, id)
		if err != nil {
			return err
		}

		person.GameName = fields.gameName
		person.Name = fields.name
		person.PhoneNumber = fields.phone
		person.Role = fields.role
		if req.IsActive != nil {
			person.IsActive = *req.IsActive
		}
		if newHash != "" {
			person.PasswordHash = newHash
		}
		person.UpdatedAt = s.clock.Now().UTC()

		if err := s.people.Update(ctx, person); err != nil {
			return err
		}
		updated = person
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info().Int64("personID", id).Bool("passwordChanged", newHash != "").Msg("Person updated")
	resp := dto.FromPerson(updated)
	return &resp, nil
}

// SetPersonActive flips the active flag. Event history is not touched.
func (s *personServiceImpl) SetPersonActive(ctx context.Context, id int64, active bool) (*dto.PersonResponse, error) {
	var person *models.Person
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.people.SetActive(ctx, id, active, s.clock.Now().UTC()); err != nil {
			return err
		}
		var err error
		person, err = s.people.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info().Int64("personID", id).Bool("active", active).Msg("Person state changed")
	resp := dto.FromPerson(person)
	return &resp, nil
}

// ListPeople retrieves one page of people with filtering and sorting
func (s *personServiceImpl) ListPeople(ctx context.Context, filter *dto.PersonFilterRequest) (*dto.PersonListResponse, error) {
	if err := helpers.ValidatePage(filter.Page, filter.PageSize); err != nil {
		return nil, err
	}

	var people []*models.Person
	var total int64
	err := s.tx.WithSnapshot(ctx, func(ctx context.Context) error {
		var err error
		people, total, err = s.people.List(ctx, repositories.PersonFilter{
			ListOptions: listOptions(filter.ListQuery, filter.PageSize),
			Search:      filter.Search,
			Active:      filter.Active,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error listing people: %w", err)
	}

	items := make([]dto.PersonResponse, 0, len(people))
	for _, p := range people {
		items = append(items, dto.FromPerson(p))
	}
	return &dto.PersonListResponse{
		People:         items,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

func listOptions(q dto.ListQuery, pageSize int) repositories.ListOptions {
	return repositories.ListOptions{
		Page:          q.Page,
		PageSize:      pageSize,
		SortBy:        q.SortBy,
		SortDirection: q.SortDirection,
	}
}
