package repository

import (
	"context"
	"fmt"

	"github.com/Raymond9734/customer360-backend/internal/models"
)

// ProgramRepository defines read access to opportunity programs and eligibility
type ProgramRepository interface {
	List(ctx context.Context) ([]models.Program, error)
	GetByID(ctx context.Context, id string) (*models.Program, error)
	EligibilityByProgram(ctx context.Context, programID string) ([]models.Eligibility, error)
	EligibilityByCustomer(ctx context.Context, customerID string) ([]models.Eligibility, error)
}

type programRepository struct {
	programs  []models.Program
	byID      map[string]int
	byProgram map[string][]models.Eligibility
	ds        *models.Dataset
}

// NewProgramRepository indexes eligibility by program. Within a program,
// entries follow customer order in the dataset.
func NewProgramRepository(ds *models.Dataset) ProgramRepository {
	r := &programRepository{
		programs:  ds.Programs,
		byID:      make(map[string]int, len(ds.Programs)),
		byProgram: make(map[string][]models.Eligibility),
		ds:        ds,
	}
	for i, p := range ds.Programs {
		r.byID[p.ID] = i
	}
	for _, c := range ds.Customers {
		for _, e := range ds.Eligibility[c.ID] {
			r.byProgram[e.ProgramID] = append(r.byProgram[e.ProgramID], e)
		}
	}
	return r
}

func (r *programRepository) List(ctx context.Context) ([]models.Program, error) {
	return r.programs, nil
}

func (r *programRepository) GetByID(ctx context.Context, id string) (*models.Program, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("program with ID %s not found", id))
	}
	return &r.programs[i], nil
}

func (r *programRepository) EligibilityByProgram(ctx context.Context, programID string) ([]models.Eligibility, error) {
	return lookup(r.byProgram, programID), nil
}

func (r *programRepository) EligibilityByCustomer(ctx context.Context, customerID string) ([]models.Eligibility, error) {
	return lookup(r.ds.Eligibility, customerID), nil
}
