package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/xavierca1/inadimplencia-api/internal/entity"
)

type PersonRepository struct {
	DB *sql.DB
}

func NewPersonRepository(db *sql.DB) *PersonRepository {
	return &PersonRepository{DB: db}
}

const personColumns = `id, cpf, name, birth_date, email, COALESCE(phone, ''), COALESCE(address, ''), created_at, updated_at`

func (r *PersonRepository) Create(ctx context.Context, p *entity.Person) error {
	query := `
		INSERT INTO persons (id, cpf, name, birth_date, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	id := uuid.New().String()
	_, err := r.DB.ExecContext(ctx, query,
		id,
		p.CPF,
		p.Name,
		p.BirthDate,
		p.Email,
		nullString(p.Phone),
		nullString(p.Address),
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrCPFAlreadyRegistered
		}
		return fmt.Errorf("erro ao inserir pessoa: %w", err)
	}

	p.ID = id
	return nil
}

func (r *PersonRepository) FindByCPF(ctx context.Context, cpf string) (*entity.Person, error) {
	query := `SELECT ` + personColumns + ` FROM persons WHERE cpf = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, cpf))
}

func (r *PersonRepository) FindByID(ctx context.Context, id string) (*entity.Person, error) {
	query := `SELECT ` + personColumns + ` FROM persons WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *PersonRepository) Update(ctx context.Context, p *entity.Person) error {
	query := `
		UPDATE persons
		SET name = $1, email = $2, phone = $3, address = $4, updated_at = $5
		WHERE id = $6
	`
	res, err := r.DB.ExecContext(ctx, query,
		p.Name,
		p.Email,
		nullString(p.Phone),
		nullString(p.Address),
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("erro ao atualizar pessoa: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entity.ErrPersonNotFound
	}
	return nil
}

func (r *PersonRepository) scanOne(row *sql.Row) (*entity.Person, error) {
	var p entity.Person
	err := row.Scan(
		&p.ID,
		&p.CPF,
		&p.Name,
		&p.BirthDate,
		&p.Email,
		&p.Phone,
		&p.Address,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrPersonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar pessoa: %w", err)
	}
	return &p, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
