package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"twin-dojo/internal/domain"
	"twin-dojo/internal/repository"
)

var (
	ErrEmployeeNotConfigured = errors.New("employee service not configured")
	ErrEmployeeInvalidInput  = errors.New("employee invalid input")
	ErrEmployeeNotFound      = errors.New("employee not found")
)

// CreateEmployeeInput son los datos del creador de personas. Traits nil = todos en 50.
type CreateEmployeeInput struct {
	Name   string
	Role   string
	Gender domain.Gender
	Traits *domain.TraitProfile
}

// EmployeeService administra las personas disponibles para practicar.
type EmployeeService struct {
	repo   repository.EmployeeRepository
	logger *zap.Logger
}

func NewEmployeeService(repo repository.EmployeeRepository, logger *zap.Logger) *EmployeeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeService{repo: repo, logger: logger}
}

func (s *EmployeeService) Create(ctx context.Context, in CreateEmployeeInput) (domain.Employee, error) {
	if s == nil || s.repo == nil {
		return domain.Employee{}, ErrEmployeeNotConfigured
	}
	name := strings.TrimSpace(in.Name)
	role := strings.TrimSpace(in.Role)
	if name == "" || role == "" {
		return domain.Employee{}, fmt.Errorf("%w: name and role are required", ErrEmployeeInvalidInput)
	}
	gender := domain.Gender(strings.ToLower(strings.TrimSpace(string(in.Gender))))
	switch gender {
	case "":
		gender = domain.GenderFemale
	case domain.GenderFemale, domain.GenderMale:
	default:
		return domain.Employee{}, fmt.Errorf("%w: unknown gender %q", ErrEmployeeInvalidInput, in.Gender)
	}

	traits := domain.NeutralTraitProfile()
	if in.Traits != nil {
		traits = in.Traits.Clamped()
	}

	employee := domain.Employee{
		ID:        uuid.NewString(),
		Name:      name,
		Role:      role,
		Gender:    gender,
		AvatarURL: AvatarURL(gender, name, role),
		Traits:    traits,
		History:   []domain.SessionSummary{},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, employee); err != nil {
		return domain.Employee{}, fmt.Errorf("create employee: %w", err)
	}
	s.logger.Info("employee created",
		zap.String("employee_id", employee.ID),
		zap.String("role", employee.Role),
	)
	return employee, nil
}

func (s *EmployeeService) List(ctx context.Context) ([]domain.Employee, error) {
	if s == nil || s.repo == nil {
		return nil, ErrEmployeeNotConfigured
	}
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return list, nil
}

func (s *EmployeeService) Get(ctx context.Context, id string) (domain.Employee, error) {
	if s == nil || s.repo == nil {
		return domain.Employee{}, ErrEmployeeNotConfigured
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Employee{}, ErrEmployeeInvalidInput
	}
	e, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Employee{}, ErrEmployeeNotFound
	}
	if err != nil {
		return domain.Employee{}, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

// ReplaceTraits sustituye el perfil completo. Las conversaciones ya iniciadas conservan el anterior.
func (s *EmployeeService) ReplaceTraits(ctx context.Context, id string, traits domain.TraitProfile) (domain.Employee, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return domain.Employee{}, err
	}
	updated := e.WithTraits(traits)
	if err := s.repo.Update(ctx, updated); err != nil {
		return domain.Employee{}, fmt.Errorf("update traits: %w", err)
	}
	return updated, nil
}

// AppendHistory agrega un resumen de práctica. Solo se muestra; no afecta las respuestas.
func (s *EmployeeService) AppendHistory(ctx context.Context, id string, entry domain.SessionSummary) (domain.Employee, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return domain.Employee{}, err
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now().UTC()
	}
	entry.Summary = strings.TrimSpace(entry.Summary)
	updated := e.WithHistoryEntry(entry)
	if err := s.repo.Update(ctx, updated); err != nil {
		return domain.Employee{}, fmt.Errorf("append history: %w", err)
	}
	return updated, nil
}

// AvatarURL elige un retrato estable a partir del género y el largo de nombre y cargo.
func AvatarURL(gender domain.Gender, name, role string) string {
	folder := "women"
	if gender == domain.GenderMale {
		folder = "men"
	}
	idx := (utf8.RuneCountInString(name) + utf8.RuneCountInString(role)) % 99
	return fmt.Sprintf("https://randomuser.me/api/portraits/%s/%d.jpg", folder, idx)
}
