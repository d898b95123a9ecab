package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mediscribe/internal/model"
)

// NewPostgresStore creates a PostgreSQL-backed store on an open connection.
func NewPostgresStore(conn *sql.DB) *Store {
	return &Store{
		Patients: &postgresPatientRepository{db: conn},
		Users:    &postgresUserRepository{db: conn},
	}
}

type postgresPatientRepository struct {
	db *sql.DB
}

const patientColumns = `
	id, user_id, name, age, gender, history, symptoms, tests, allergies,
	possible_condition, recommendations, created_at, updated_at`

func (r *postgresPatientRepository) Create(ctx context.Context, p *model.Patient) error {
	query := `
		INSERT INTO patients (` + patientColumns + `
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.UserID,
		p.Name,
		p.Age,
		p.Gender,
		p.History,
		p.Symptoms,
		p.Tests,
		p.Allergies,
		p.PossibleCondition,
		p.Recommendations,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient record: %w", err)
	}

	return nil
}

func (r *postgresPatientRepository) Update(ctx context.Context, p *model.Patient) error {
	query := `
		UPDATE patients
		SET
			name = $1,
			age = $2,
			gender = $3,
			history = $4,
			symptoms = $5,
			tests = $6,
			allergies = $7,
			possible_condition = $8,
			recommendations = $9,
			updated_at = $10
		WHERE id = $11 AND user_id = $12
	`

	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.Age,
		p.Gender,
		p.History,
		p.Symptoms,
		p.Tests,
		p.Allergies,
		p.PossibleCondition,
		p.Recommendations,
		p.UpdatedAt,
		p.ID,
		p.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient record: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *postgresPatientRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM patients WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete patient record: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *postgresPatientRepository) GetByID(ctx context.Context, userID, id string) (*model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1 AND user_id = $2`

	var p model.Patient
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Age,
		&p.Gender,
		&p.History,
		&p.Symptoms,
		&p.Tests,
		&p.Allergies,
		&p.PossibleCondition,
		&p.Recommendations,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient record: %w", err)
	}

	return &p, nil
}

func (r *postgresPatientRepository) ListByUser(ctx context.Context, userID string) ([]model.Patient, error) {
	query := `SELECT ` + patientColumns + `
		FROM patients
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query patient records: %w", err)
	}
	defer rows.Close()

	records := make([]model.Patient, 0)
	for rows.Next() {
		var p model.Patient
		err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Name,
			&p.Age,
			&p.Gender,
			&p.History,
			&p.Symptoms,
			&p.Tests,
			&p.Allergies,
			&p.PossibleCondition,
			&p.Recommendations,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan patient record: %w", err)
		}
		records = append(records, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}

type postgresUserRepository struct {
	db *sql.DB
}

func (r *postgresUserRepository) Create(ctx context.Context, u *model.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password, name, created_at) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Email, u.Password, u.Name, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getUser(ctx, `SELECT id, email, password, name, created_at FROM users WHERE email = $1`, email)
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getUser(ctx, `SELECT id, email, password, name, created_at FROM users WHERE id = $1`, id)
}

func (r *postgresUserRepository) getUser(ctx context.Context, query string, arg string) (*model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.Password, &u.Name, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}
