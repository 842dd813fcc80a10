package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clientbook/backend/internal/models"
)

var ErrClientNotFound = errors.New("client not found")

type ClientRepository struct {
	pool *pgxpool.Pool
}

func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

const clientColumns = `id, firstname, lastname, email, phone_number, birthday, additional_data, created_at, updated_at`

func scanClient(row pgx.Row) (models.Client, error) {
	var client models.Client
	err := row.Scan(
		&client.ID,
		&client.Firstname,
		&client.Lastname,
		&client.Email,
		&client.PhoneNumber,
		&client.Birthday,
		&client.AdditionalData,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Client{}, ErrClientNotFound
		}
		return models.Client{}, err
	}
	return client, nil
}

func (r *ClientRepository) collect(ctx context.Context, query string, args ...any) ([]models.Client, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]models.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	return clients, rows.Err()
}

func (r *ClientRepository) List(ctx context.Context, limit, offset int) ([]models.Client, error) {
	const query = `
		SELECT ` + clientColumns + `
		FROM clients ORDER BY id LIMIT $1 OFFSET $2
	`
	return r.collect(ctx, query, limit, offset)
}

func (r *ClientRepository) All(ctx context.Context) ([]models.Client, error) {
	const query = `
		SELECT ` + clientColumns + `
		FROM clients ORDER BY id
	`
	return r.collect(ctx, query)
}

func (r *ClientRepository) Search(ctx context.Context, term string) ([]models.Client, error) {
	const query = `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE firstname ILIKE '%' || $1 || '%'
		   OR lastname ILIKE '%' || $1 || '%'
		   OR email ILIKE '%' || $1 || '%'
		ORDER BY id
	`
	return r.collect(ctx, query, term)
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (models.Client, error) {
	const query = `
		SELECT ` + clientColumns + `
		FROM clients WHERE id = $1
	`
	return scanClient(r.pool.QueryRow(ctx, query, id))
}

func (r *ClientRepository) FindByEmail(ctx context.Context, email string) (models.Client, error) {
	const query = `
		SELECT ` + clientColumns + `
		FROM clients WHERE email = $1
	`
	return scanClient(r.pool.QueryRow(ctx, query, email))
}

func (r *ClientRepository) FindByPhone(ctx context.Context, phoneNumber string) (models.Client, error) {
	const query = `
		SELECT ` + clientColumns + `
		FROM clients WHERE phone_number = $1
	`
	return scanClient(r.pool.QueryRow(ctx, query, phoneNumber))
}

func (r *ClientRepository) Create(ctx context.Context, client models.Client) error {
	const query = `
		INSERT INTO clients (
			id, firstname, lastname, email, phone_number, birthday, additional_data, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		client.ID,
		client.Firstname,
		client.Lastname,
		client.Email,
		client.PhoneNumber,
		client.Birthday,
		client.AdditionalData,
	)
	return err
}

func (r *ClientRepository) Update(ctx context.Context, client models.Client) error {
	const query = `
		UPDATE clients SET
			firstname = $2,
			lastname = $3,
			email = $4,
			phone_number = $5,
			birthday = $6,
			additional_data = $7,
			updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query,
		client.ID,
		client.Firstname,
		client.Lastname,
		client.Email,
		client.PhoneNumber,
		client.Birthday,
		client.AdditionalData,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrClientNotFound
	}
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM clients WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrClientNotFound
	}
	return nil
}
