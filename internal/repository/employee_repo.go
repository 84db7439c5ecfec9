package repository

import (
	"context"
	"errors"
	"sync"

	"twin-dojo/internal/domain"
)

// EmployeeRepository define el contrato de almacenamiento para personas.
type EmployeeRepository interface {
	Create(ctx context.Context, employee domain.Employee) error
	GetByID(ctx context.Context, id string) (domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	Update(ctx context.Context, employee domain.Employee) error
}

var ErrEmployeeExists = errors.New("employee already exists")

// MemoryEmployeeRepository guarda personas en memoria. Devuelve copias: mutar el
// resultado no altera lo guardado.
type MemoryEmployeeRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Employee
	order []string
}

func NewMemoryEmployeeRepository() *MemoryEmployeeRepository {
	return &MemoryEmployeeRepository{items: make(map[string]domain.Employee)}
}

func (r *MemoryEmployeeRepository) Create(_ context.Context, employee domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[employee.ID]; ok {
		return ErrEmployeeExists
	}
	r.items[employee.ID] = copyEmployee(employee)
	r.order = append(r.order, employee.ID)
	return nil
}

func (r *MemoryEmployeeRepository) GetByID(_ context.Context, id string) (domain.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.items[id]
	if !ok {
		return domain.Employee{}, ErrNotFound
	}
	return copyEmployee(e), nil
}

// List devuelve en orden de alta.
func (r *MemoryEmployeeRepository) List(_ context.Context) ([]domain.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Employee, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, copyEmployee(r.items[id]))
	}
	return out, nil
}

func (r *MemoryEmployeeRepository) Update(_ context.Context, employee domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[employee.ID]; !ok {
		return ErrNotFound
	}
	r.items[employee.ID] = copyEmployee(employee)
	return nil
}

func copyEmployee(e domain.Employee) domain.Employee {
	e.History = append([]domain.SessionSummary(nil), e.History...)
	return e
}
