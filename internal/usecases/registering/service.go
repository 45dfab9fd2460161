package registering

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/vfg2006/campaign-manager-api/infrastructure/repository"
	"github.com/vfg2006/campaign-manager-api/internal/domain"
	"github.com/vfg2006/campaign-manager-api/pkg/utils"
)

var (
	// ErrRegistrationNotFound indica registro inexistente no escopo do tenant
	ErrRegistrationNotFound = errors.New("registro não encontrado")
	// ErrDuplicateRegistrationID indica colisão de identificador no cadastro
	ErrDuplicateRegistrationID = errors.New("registration_id já cadastrado")
)

// ListResult é a página de registros com o total do filtro
type ListResult struct {
	Registrations []*domain.Registration `json:"registrations"`
	Total         int64                  `json:"total"`
}

type Registrar interface {
	Create(ctx context.Context, registration *domain.Registration) (*domain.Registration, error)
	Get(ctx context.Context, businessID, registrationID string) (*domain.Registration, error)
	List(ctx context.Context, businessID string, filters repository.RegistrationListFilters) (*ListResult, error)
	Update(ctx context.Context, businessID, registrationID string, patch *domain.RegistrationPatch) (*domain.Registration, error)
	Delete(ctx context.Context, businessID, registrationID string) error
	DeleteAll(ctx context.Context, businessID string) (int64, error)
	ImportCSV(ctx context.Context, businessID string, r io.Reader) (*ImportResult, error)
	ExportCSV(ctx context.Context, businessID string, filters repository.RegistrationListFilters, w io.Writer) (int, error)
}

type Service struct {
	registrationRepo repository.RegistrationRepository
}

func NewService(registrationRepo repository.RegistrationRepository) Registrar {
	return &Service{
		registrationRepo: registrationRepo,
	}
}

func (s *Service) Create(ctx context.Context, registration *domain.Registration) (*domain.Registration, error) {
	if err := registration.Validate(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(registration.RegistrationID) == "" {
		registration.RegistrationID = utils.NewSortableID()
	}

	if err := s.registrationRepo.Create(ctx, registration); err != nil {
		if errors.Is(err, repository.ErrDuplicateID) {
			return nil, ErrDuplicateRegistrationID
		}
		return nil, err
	}

	return registration, nil
}

func (s *Service) Get(ctx context.Context, businessID, registrationID string) (*domain.Registration, error) {
	registration, err := s.registrationRepo.GetByID(ctx, businessID, registrationID)
	if err != nil {
		return nil, err
	}
	if registration == nil {
		return nil, ErrRegistrationNotFound
	}

	return registration, nil
}

func (s *Service) List(ctx context.Context, businessID string, filters repository.RegistrationListFilters) (*ListResult, error) {
	if filters.Limit == 0 || filters.Limit > 100 {
		filters.Limit = 20
	}

	registrations, total, err := s.registrationRepo.List(ctx, businessID, filters)
	if err != nil {
		return nil, err
	}

	return &ListResult{Registrations: registrations, Total: total}, nil
}

func (s *Service) Update(ctx context.Context, businessID, registrationID string, patch *domain.RegistrationPatch) (*domain.Registration, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	registration, err := s.registrationRepo.Update(ctx, businessID, registrationID, patch)
	if err != nil {
		return nil, err
	}
	if registration == nil {
		return nil, ErrRegistrationNotFound
	}

	return registration, nil
}

func (s *Service) Delete(ctx context.Context, businessID, registrationID string) error {
	deleted, err := s.registrationRepo.Delete(ctx, businessID, registrationID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrRegistrationNotFound
	}

	return nil
}

// DeleteAll apaga todos os registros do tenant e retorna quantos foram removidos
func (s *Service) DeleteAll(ctx context.Context, businessID string) (int64, error) {
	return s.registrationRepo.DeleteAllByBusiness(ctx, businessID)
}
