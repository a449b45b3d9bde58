package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/inadimplencia-api/internal/entity"
)

type DebtRepository struct {
	DB *sql.DB
}

func NewDebtRepository(db *sql.DB) *DebtRepository {
	return &DebtRepository{DB: db}
}

const debtColumns = `id, person_id, cpf, status, total_amount, records_count, last_negativation_date,
	origin, consulted_at, COALESCE(summary, ''), created_at, updated_at`

func (r *DebtRepository) Create(ctx context.Context, d *entity.Debt) error {
	query := `
		INSERT INTO debts (id, person_id, cpf, status, total_amount, records_count,
			last_negativation_date, origin, consulted_at, summary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	id := uuid.New().String()
	_, err := r.DB.ExecContext(ctx, query,
		id,
		d.PersonID,
		d.CPF,
		string(d.Status),
		d.TotalAmount,
		d.RecordsCount,
		nullTime(d.LastNegativationDate),
		d.Origin,
		d.ConsultedAt,
		nullString(d.Summary),
		d.CreatedAt,
		d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("erro ao inserir consulta: %w", err)
	}

	d.ID = id
	return nil
}

func (r *DebtRepository) FindByPersonID(ctx context.Context, personID string) ([]*entity.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE person_id = $1 ORDER BY consulted_at DESC, created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, personID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar consultas: %w", err)
	}
	defer rows.Close()

	debts := []*entity.Debt{}
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, err
		}
		debts = append(debts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao listar consultas: %w", err)
	}
	return debts, nil
}

func (r *DebtRepository) FindLatestByPersonID(ctx context.Context, personID string) (*entity.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE person_id = $1 ORDER BY consulted_at DESC, created_at DESC LIMIT 1`

	d, err := scanDebt(r.DB.QueryRowContext(ctx, query, personID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrDebtNotFound
	}
	return d, err
}

func (r *DebtRepository) Update(ctx context.Context, d *entity.Debt) error {
	query := `
		UPDATE debts
		SET status = $1, total_amount = $2, records_count = $3, last_negativation_date = $4,
			origin = $5, consulted_at = $6, summary = $7, updated_at = $8
		WHERE id = $9
	`
	res, err := r.DB.ExecContext(ctx, query,
		string(d.Status),
		d.TotalAmount,
		d.RecordsCount,
		nullTime(d.LastNegativationDate),
		d.Origin,
		d.ConsultedAt,
		nullString(d.Summary),
		d.UpdatedAt,
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("erro ao atualizar consulta: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entity.ErrDebtNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDebt(s scanner) (*entity.Debt, error) {
	var (
		d      entity.Debt
		status string
		negDt  sql.NullTime
	)
	err := s.Scan(
		&d.ID,
		&d.PersonID,
		&d.CPF,
		&status,
		&d.TotalAmount,
		&d.RecordsCount,
		&negDt,
		&d.Origin,
		&d.ConsultedAt,
		&d.Summary,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao ler consulta: %w", err)
	}

	d.Status = entity.DebtStatus(status)
	if negDt.Valid {
		t := negDt.Time
		d.LastNegativationDate = &t
	}
	return &d, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
