package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/domain"
)

// EmployeeRepository defines persistence access for the roster.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	Update(ctx context.Context, employee *domain.Employee) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	CountActive(ctx context.Context) (int, error)
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository returns a Postgres-backed implementation.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	const query = `
        INSERT INTO employees (name, phone, department, is_active)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		employee.Name,
		employee.Phone,
		employee.Department,
		employee.IsActive,
	).Scan(&employee.ID, &employee.CreatedAt)
}

func (r *employeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	const query = `
        UPDATE employees SET name=$1, phone=$2, department=$3, is_active=$4
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		employee.Name,
		employee.Phone,
		employee.Department,
		employee.IsActive,
		employee.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	const query = `
        SELECT id, name, phone, department, is_active, created_at
        FROM employees WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

// GetByPhone resolves the sender handle to an employee. A missing row is
// reported as (nil, nil) because "unknown sender" is a pipeline outcome,
// not a storage failure.
func (r *employeeRepository) GetByPhone(ctx context.Context, phone string) (*domain.Employee, error) {
	const query = `
        SELECT id, name, phone, department, is_active, created_at
        FROM employees WHERE phone=$1`
	employee, err := r.fetchSingle(ctx, query, phone)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return employee, err
}

func (r *employeeRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Employee, error) {
	var employee domain.Employee
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&employee.ID,
		&employee.Name,
		&employee.Phone,
		&employee.Department,
		&employee.IsActive,
		&employee.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	const query = `
        SELECT id, name, phone, department, is_active, created_at
        FROM employees ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Employee
	for rows.Next() {
		var employee domain.Employee
		if err := rows.Scan(
			&employee.ID,
			&employee.Name,
			&employee.Phone,
			&employee.Department,
			&employee.IsActive,
			&employee.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, employee)
	}
	return result, rows.Err()
}

func (r *employeeRepository) CountActive(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM employees WHERE is_active`
	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
