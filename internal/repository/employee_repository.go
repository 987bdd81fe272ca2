package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/olivere/elastic/v7"

	"github.com/vuongnm/staffdesk/internal/database"
	"github.com/vuongnm/staffdesk/internal/domain"
	"github.com/vuongnm/staffdesk/internal/logger"
)

type employeeRepository struct {
	es   *database.ElasticSearchClient
	size int
}

// emailGuard reserves one email per live record. Its document id is the
// lowercased address, so op_type=create makes the reservation atomic.
type emailGuard struct {
	EmployeeID string `json:"employeeId"`
}

// NewEmployeeRepository creates the Elasticsearch-backed accessor.
// size caps how many records list and search return per call.
func NewEmployeeRepository(es *database.ElasticSearchClient, size int) domain.EmployeeRepository {
	if size <= 0 {
		size = 1000
	}
	return &employeeRepository{es: es, size: size}
}

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	res, err := r.es.Client().Search().
		Index(r.es.Index()).
		Query(elastic.NewMatchAllQuery()).
		Sort("createdAt", false).
		Size(r.size).
		Do(ctx)
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "failed to list employees", err)
	}
	return decodeHits(ctx, res)
}

func (r *employeeRepository) Search(ctx context.Context, query string) ([]domain.Employee, error) {
	q := elastic.NewMultiMatchQuery(query, "firstName", "lastName", "email")

	// No explicit sort: hits come back by descending relevance score.
	res, err := r.es.Client().Search().
		Index(r.es.Index()).
		Query(q).
		Size(r.size).
		Do(ctx)
	if err != nil {
		return nil, domain.WrapError(domain.KindInternal, "failed to search employees", err)
	}
	return decodeHits(ctx, res)
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	res, err := r.es.Client().Get().
		Index(r.es.Index()).
		Id(id).
		Do(ctx)
	if err != nil {
		if elastic.IsNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.WrapError(domain.KindInternal, "failed to get employee", err)
	}
	if !res.Found {
		return nil, domain.ErrNotFound
	}

	var e domain.Employee
	if err := json.Unmarshal(res.Source, &e); err != nil {
		return nil, domain.WrapError(domain.KindInternal, "failed to decode employee", err)
	}
	return &e, nil
}

func (r *employeeRepository) Create(ctx context.Context, in domain.CreateEmployeeInput) (*domain.Employee, error) {
	now := time.Now().UTC()
	e := domain.Employee{
		ID:             uuid.NewString(),
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		EmployeeType:   in.EmployeeType,
		ProfilePicture: in.ProfilePicture,
		Phone:          in.Phone,
		Position:       in.Position,
		Department:     in.Department,
		JoiningDate:    in.JoiningDate,
		Status:         in.Status,
		Address:        in.Address,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.Salary != nil {
		e.Salary = *in.Salary
	}

	if err := r.reserveEmail(ctx, e.Email, e.ID); err != nil {
		return nil, err
	}

	_, err := r.es.Client().Index().
		Index(r.es.Index()).
		Id(e.ID).
		BodyJson(e).
		Refresh("true").
		Do(ctx)
	if err != nil {
		r.releaseEmail(ctx, e.Email)
		return nil, domain.WrapError(domain.KindInternal, "failed to create employee", err)
	}
	return &e, nil
}

func (r *employeeRepository) Update(ctx context.Context, id string, in domain.UpdateEmployeeInput) (*domain.Employee, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// An email change swaps the reservation before the record moves, so
	// a concurrent create on the new address still races atomically.
	oldEmail := current.Email
	if in.Email != nil && !strings.EqualFold(*in.Email, oldEmail) {
		if err := r.reserveEmail(ctx, *in.Email, id); err != nil {
			return nil, err
		}
	}

	merged := *current
	applyUpdate(&merged, in)
	merged.ID = id
	merged.UpdatedAt = time.Now().UTC()

	_, err = r.es.Client().Index().
		Index(r.es.Index()).
		Id(id).
		BodyJson(merged).
		Refresh("true").
		Do(ctx)
	if err != nil {
		if in.Email != nil && !strings.EqualFold(*in.Email, oldEmail) {
			r.releaseEmail(ctx, *in.Email)
		}
		return nil, domain.WrapError(domain.KindInternal, "failed to update employee", err)
	}

	if in.Email != nil && !strings.EqualFold(*in.Email, oldEmail) {
		r.releaseEmail(ctx, oldEmail)
	}
	return &merged, nil
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	_, err = r.es.Client().Delete().
		Index(r.es.Index()).
		Id(id).
		Refresh("true").
		Do(ctx)
	if err != nil {
		if elastic.IsNotFound(err) {
			return domain.ErrNotFound
		}
		return domain.WrapError(domain.KindInternal, "failed to delete employee", err)
	}

	r.releaseEmail(ctx, current.Email)
	return nil
}

// reserveEmail claims the address with an atomic create; a conflict
// means another live record already holds it.
func (r *employeeRepository) reserveEmail(ctx context.Context, email, employeeID string) error {
	_, err := r.es.Client().Index().
		Index(r.es.EmailIndex()).
		Id(strings.ToLower(email)).
		OpType("create").
		BodyJson(emailGuard{EmployeeID: employeeID}).
		Refresh("true").
		Do(ctx)
	if err != nil {
		if elastic.IsConflict(err) {
			return domain.ErrDuplicateEmail
		}
		return domain.WrapError(domain.KindInternal, "failed to reserve email", err)
	}
	return nil
}

// releaseEmail drops the reservation. Best effort: a leaked guard only
// blocks reuse of an address until cleaned up, it never corrupts data.
func (r *employeeRepository) releaseEmail(ctx context.Context, email string) {
	_, err := r.es.Client().Delete().
		Index(r.es.EmailIndex()).
		Id(strings.ToLower(email)).
		Refresh("true").
		Do(ctx)
	if err != nil && !elastic.IsNotFound(err) {
		logger.WarnLog(ctx, "failed to release email guard for %s: %v", email, err)
	}
}

func applyUpdate(e *domain.Employee, in domain.UpdateEmployeeInput) {
	if in.FirstName != nil {
		e.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		e.LastName = *in.LastName
	}
	if in.Email != nil {
		e.Email = *in.Email
	}
	if in.EmployeeType != nil {
		e.EmployeeType = *in.EmployeeType
	}
	if in.ProfilePicture != nil {
		e.ProfilePicture = *in.ProfilePicture
	}
	if in.Phone != nil {
		e.Phone = *in.Phone
	}
	if in.Position != nil {
		e.Position = *in.Position
	}
	if in.Department != nil {
		e.Department = *in.Department
	}
	if in.JoiningDate != nil {
		e.JoiningDate = *in.JoiningDate
	}
	if in.Salary != nil {
		e.Salary = *in.Salary
	}
	if in.Status != nil {
		e.Status = *in.Status
	}
	if in.Address != nil {
		e.Address = in.Address
	}
}

func decodeHits(ctx context.Context, res *elastic.SearchResult) ([]domain.Employee, error) {
	employees := make([]domain.Employee, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var e domain.Employee
		if err := json.Unmarshal(hit.Source, &e); err != nil {
			logger.WarnLog(ctx, "skipping undecodable employee doc %s: %v", hit.Id, err)
			continue
		}
		employees = append(employees, e)
	}
	return employees, nil
}
