// Copyright (c) 2026 Rolodex. All rights reserved.

package contact

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rolodexhq/rolodex/internal/platform/middleware"
	requestutil "github.com/rolodexhq/rolodex/internal/platform/request"
	"github.com/rolodexhq/rolodex/internal/platform/respond"
	"github.com/rolodexhq/rolodex/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the contact directory HTTP endpoints.
type Handler struct {
	contactService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{contactService: service}
}

// Routes returns a [chi.Router] configured with contact routes.
//
// Every route requires an authenticated caller; there is no public surface
// on this domain.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/trash", handler.listTrash)

	router.Route("/{id}", func(r chi.Router) {
		r.Get("/", handler.get)
		r.Put("/", handler.update)
		r.Delete("/", handler.softDelete)
		r.Put("/favorite", handler.toggleFavorite)
		r.Put("/restore", handler.restore)
		r.Delete("/permanent", handler.purge)
	})

	return router
}

// # Request Payloads

type createRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// updateRequest uses pointer fields so "absent" and "set to empty" stay
// distinguishable after decoding.
type updateRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// pathContactID extracts and validates the {id} URL parameter.
//
// Contact IDs are UUIDs at the storage layer; malformed values are rejected
// here so they never reach the uuid-typed query parameters.
func pathContactID(request *http.Request) (string, error) {
	id := requestutil.Param(request, FieldID)

	validator := &validate.Validator{}
	if err := validator.UUID(FieldID, id).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// list handles GET /.
//
// Supports ?search= (substring over name, email, phone) and ?sort=
// (name | name-desc | date-asc; anything else means newest first).
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := ListFilter{
		Search: request.URL.Query().Get("search"),
		Sort:   NormalizeSort(request.URL.Query().Get("sort")),
	}

	contacts, err := handler.contactService.List(request.Context(), ownerID, filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, contacts)
}

// listTrash handles GET /trash.
func (handler *Handler) listTrash(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	contacts, err := handler.contactService.ListTrash(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, contacts)
}

// create handles POST /.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// Contact emails and phones are free-form labels, not verified
	// addresses; only presence is required.
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		Required(FieldEmail, input.Email).
		Required(FieldPhone, input.Phone)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	contact, err := handler.contactService.Create(request.Context(), ownerID, CreateInput{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, contact)
}

// get handles GET /{id}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	contactID, err := pathContactID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	contact, err := handler.contactService.Get(request.Context(), ownerID, contactID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, contact)
}

// update handles PUT /{id}.
//
// Partial updates: only the fields present in the body change. An email, if
// present, must still be well-formed.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	contactID, err := pathContactID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required(FieldName, *input.Name)
	}
	if input.Email != nil {
		validator.Required(FieldEmail, *input.Email)
	}
	if input.Phone != nil {
		validator.Required(FieldPhone, *input.Phone)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	contact, err := handler.contactService.Update(request.Context(), ownerID, contactID, UpdateInput{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, contact)
}

// toggleFavorite handles PUT /{id}/favorite.
func (handler *Handler) toggleFavorite(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	contactID, err := pathContactID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	contact, err := handler.contactService.ToggleFavorite(request.Context(), ownerID, contactID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, contact)
}

// softDelete handles DELETE /{id}.
//
// Responds 200 with the trashed contact, 422 if it is already in the trash.
func (handler *Handler) softDelete(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	contactID, err := pathContactID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	contact, err := handler.contactService.SoftDelete(request.Context(), ownerID, contactID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]interface{}{
		FieldMessage: "Contact moved to trash",
		FieldContact: contact,
	})
}

// restore handles PUT /{id}/restore.
func (handler *Handler) restore(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	contactID, err := pathContactID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	contact, err := handler.contactService.Restore(request.Context(), ownerID, contactID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]interface{}{
		FieldMessage: "Contact restored",
		FieldContact: contact,
	})
}

// purge handles DELETE /{id}/permanent.
//
// Responds 200 with a confirmation message and the purged contact, 422 when
// the contact is not in the trash.
func (handler *Handler) purge(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	contactID, err := pathContactID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	purged, err := handler.contactService.Purge(request.Context(), ownerID, contactID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]interface{}{
		FieldMessage: "Contact permanently deleted",
		FieldContact: purged,
	})
}
