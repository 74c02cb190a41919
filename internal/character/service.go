// Copyright (c) 2026 Holocron. All rights reserved.

package character

import (
	"context"
	"fmt"
	"log/slog"

	"holocron/internal/platform/apperr"
	"holocron/internal/platform/dberr"
	"holocron/pkg/pagination"
)

// ListResponse is the paginated list shape returned by GetAllCharacters.
type ListResponse struct {
	Characters []Parameters    `json:"characters"`
	Metadata   pagination.Meta `json:"metadata"`
}

// Service orchestrates the character use cases. It owns the business
// invariants: name uniqueness on create and rename, and existence on lookup
// and update. Input validation happens before the service is reached.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// errAlreadyExists is the conflict raised on a name collision.
func errAlreadyExists(name string) *apperr.AppError {
	return apperr.Conflict(fmt.Sprintf("Character with name %s already exists.", name))
}

// errNotFound is raised when a referenced character does not exist.
func errNotFound(name string) *apperr.AppError {
	return apperr.NotFound(fmt.Sprintf("Character %s was not found.", name))
}

// GetAllCharacters returns a page of characters with pagination metadata.
func (service *Service) GetAllCharacters(ctx context.Context, params pagination.Params) (ListResponse, error) {
	characters, total, err := service.repo.GetAll(ctx, params.Offset, params.Limit)
	if err != nil {
		return ListResponse{}, err
	}

	results := make([]Parameters, 0, len(characters))
	for _, c := range characters {
		results = append(results, c.Parameters())
	}

	return ListResponse{
		Characters: results,
		Metadata:   pagination.NewMeta(total, params.Offset, params.Limit),
	}, nil
}

// GetCharacterByName returns a single character's parameters.
func (service *Service) GetCharacterByName(ctx context.Context, name string) (Parameters, error) {
	c, err := service.repo.GetByName(ctx, name)
	if err != nil {
		return Parameters{}, err
	}
	if c == nil {
		return Parameters{}, errNotFound(name)
	}

	return c.Parameters(), nil
}

// CreateCharacter builds and persists a new character.
//
// The existence pre-check gives a friendly conflict on the common path; the
// storage uniqueness constraint closes the check-then-act window, and its
// violation is reported as the same conflict.
func (service *Service) CreateCharacter(ctx context.Context, query Parameters) error {
	exists, err := service.repo.Exists(ctx, query.Name)
	if err != nil {
		return err
	}
	if exists {
		return errAlreadyExists(query.Name)
	}

	if err := service.repo.Insert(ctx, NewCharacter(query)); err != nil {
		if dberr.IsDuplicate(err) {
			return errAlreadyExists(query.Name)
		}
		return err
	}

	service.logger.Info("character_created", slog.String("name", query.Name))
	return nil
}

// UpdateCharacter applies a partial update to the character stored under name
// and returns the persisted post-update parameters.
//
// The rename-collision check runs first, before the target's existence is
// confirmed, and only when the payload carries a name different from the
// current one — renaming a character to its own name is a no-op, not a
// conflict.
func (service *Service) UpdateCharacter(ctx context.Context, name string, query Parameters) (Parameters, error) {
	if query.Name != "" && query.Name != name {
		exists, err := service.repo.Exists(ctx, query.Name)
		if err != nil {
			return Parameters{}, err
		}
		if exists {
			return Parameters{}, errAlreadyExists(query.Name)
		}
	}

	c, err := service.repo.GetByName(ctx, name)
	if err != nil {
		return Parameters{}, err
	}
	if c == nil {
		return Parameters{}, errNotFound(name)
	}

	c.UpdateParameters(query)

	updated, err := service.repo.Update(ctx, name, c)
	if err != nil {
		if dberr.IsDuplicate(err) {
			return Parameters{}, errAlreadyExists(query.Name)
		}
		return Parameters{}, err
	}
	if updated == nil {
		// The record vanished between the read and the write.
		return Parameters{}, errNotFound(name)
	}

	service.logger.Info("character_updated", slog.String("name", name))
	return updated.Parameters(), nil
}

// DeleteCharacterByName removes a character. Deleting a name that does not
// exist succeeds silently.
func (service *Service) DeleteCharacterByName(ctx context.Context, name string) error {
	if err := service.repo.DeleteByName(ctx, name); err != nil {
		return err
	}

	service.logger.Warn("character_deleted", slog.String("name", name))
	return nil
}
