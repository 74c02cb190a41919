// Copyright (c) 2026 Holocron. All rights reserved.

package character

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "holocron/internal/platform/request"
	"holocron/internal/platform/respond"
	"holocron/internal/platform/validate"
	"holocron/pkg/pagination"
)

// Handler maps HTTP requests onto the character service.
//
// All input validation happens here, before the service is invoked; domain
// errors flow back through respond.Error for status mapping.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the character router, mounted under /characters.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCharacters)
	router.Post("/", handler.createCharacter)
	router.Get("/{name}", handler.getCharacter)
	router.Put("/{name}", handler.updateCharacter)
	router.Delete("/{name}", handler.deleteCharacter)

	return router
}

func (handler *Handler) listCharacters(writer http.ResponseWriter, request *http.Request) {
	params, err := pagination.FromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	response, err := handler.service.GetAllCharacters(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, response)
}

func (handler *Handler) getCharacter(writer http.ResponseWriter, request *http.Request) {
	name := requestutil.Param(request, "name")

	params, err := handler.service.GetCharacterByName(request.Context(), name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, params)
}

func (handler *Handler) createCharacter(writer http.ResponseWriter, request *http.Request) {
	var input Parameters
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 200)
	validateEpisodes(validator, input.Episodes)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateCharacter(request.Context(), input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) updateCharacter(writer http.ResponseWriter, request *http.Request) {
	name := requestutil.Param(request, "name")

	var input Parameters
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Every field is optional on update; only supplied values are checked.
	validator := &validate.Validator{}
	if input.Name != "" {
		validator.MaxLen(FieldName, input.Name, 200)
	}
	validateEpisodes(validator, input.Episodes)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateCharacter(request.Context(), name, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

func (handler *Handler) deleteCharacter(writer http.ResponseWriter, request *http.Request) {
	name := requestutil.Param(request, "name")

	if err := handler.service.DeleteCharacterByName(request.Context(), name); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// validateEpisodes checks every supplied tag against the episode enumeration.
func validateEpisodes(validator *validate.Validator, episodes []string) {
	for _, episode := range episodes {
		validator.Custom(FieldEpisodes, !IsKnownEpisode(episode), "Must be a known episode title")
	}
}
