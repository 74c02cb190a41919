// Copyright (c) 2026 Holocron. All rights reserved.

package character

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"holocron/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on a characters table with a
// storage-level uniqueness constraint on name.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Exists(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM characters WHERE name = $1)`

	var exists bool
	if err := repository.db.QueryRow(ctx, query, name).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "character_exists")
	}

	return exists, nil
}

func (repository *PostgresRepository) Insert(ctx context.Context, character *Character) error {
	query := `
		INSERT INTO characters (name, episodes, planet)
		VALUES ($1, $2, $3)
	`

	params := character.Parameters()
	_, err := repository.db.Exec(ctx, query, params.Name, params.Episodes, params.Planet)
	return dberr.Wrap(err, "insert_character")
}

func (repository *PostgresRepository) Update(ctx context.Context, name string, character *Character) (*Character, error) {
	query := `
		UPDATE characters
		SET name = $2, episodes = $3, planet = $4
		WHERE name = $1
		RETURNING name, episodes, planet
	`

	params := character.Parameters()

	var updated Parameters
	err := repository.db.QueryRow(ctx, query, name, params.Name, params.Episodes, params.Planet).
		Scan(&updated.Name, &updated.Episodes, &updated.Planet)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dberr.Wrap(err, "update_character")
	}

	return NewCharacter(updated), nil
}

func (repository *PostgresRepository) GetAll(ctx context.Context, offset, limit int) ([]*Character, int, error) {
	// The total count is read independently of the page fetch; the two are
	// not required to be consistent with each other.
	countQuery := `SELECT count(*) FROM characters`

	var total int
	if err := repository.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_characters")
	}

	// Insertion order (bigserial id) stands in for the document store's
	// natural ordering.
	query := `
		SELECT name, episodes, planet
		FROM characters
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := repository.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_characters")
	}
	defer rows.Close()

	characters := make([]*Character, 0, limit)
	for rows.Next() {
		var params Parameters
		if err := rows.Scan(&params.Name, &params.Episodes, &params.Planet); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_character")
		}
		characters = append(characters, NewCharacter(params))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_characters")
	}

	return characters, total, nil
}

func (repository *PostgresRepository) GetByName(ctx context.Context, name string) (*Character, error) {
	query := `SELECT name, episodes, planet FROM characters WHERE name = $1`

	var params Parameters
	err := repository.db.QueryRow(ctx, query, name).Scan(&params.Name, &params.Episodes, &params.Planet)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dberr.Wrap(err, "get_character")
	}

	return NewCharacter(params), nil
}

func (repository *PostgresRepository) DeleteByName(ctx context.Context, name string) error {
	query := `DELETE FROM characters WHERE name = $1`

	// No rows affected is not an error: delete is idempotent.
	_, err := repository.db.Exec(ctx, query, name)
	return dberr.Wrap(err, "delete_character")
}
