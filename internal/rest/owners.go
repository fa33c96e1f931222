package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"realty-catalog/internal/domain/owners"
	"realty-catalog/internal/service"
)

type ownerRequest struct {
	Name           string `json:"name"`
	Address        string `json:"address"`
	Photo          string `json:"photo"`
	Birthday       string `json:"birthday"` // YYYY-MM-DD opcional
	DocumentNumber string `json:"document_number"`
	Email          string `json:"email"`
}

type ownerResponse struct {
	IDOwner         int64      `json:"id_owner"`
	Name            string     `json:"name"`
	Address         string     `json:"address"`
	Photo           string     `json:"photo,omitempty"`
	Birthday        *time.Time `json:"birthday,omitempty"`
	DocumentNumber  string     `json:"document_number"`
	Email           string     `json:"email,omitempty"`
	PropertiesCount int        `json:"properties_count"`
}

func toOwnerResponse(o owners.Owner) ownerResponse {
	return ownerResponse{
		IDOwner:         o.IDOwner,
		Name:            o.Name,
		Address:         o.Address,
		Photo:           o.Photo,
		Birthday:        o.Birthday,
		DocumentNumber:  o.DocumentNumber,
		Email:           o.Email,
		PropertiesCount: o.PropertiesCount,
	}
}

func (req ownerRequest) toInput(w http.ResponseWriter) (service.OwnerInput, bool) {
	in := service.OwnerInput{
		Name:           req.Name,
		Address:        req.Address,
		Photo:          req.Photo,
		DocumentNumber: req.DocumentNumber,
		Email:          req.Email,
	}
	if req.Birthday != "" {
		t, err := time.Parse("2006-01-02", req.Birthday)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "birthday must be YYYY-MM-DD"})
			return service.OwnerInput{}, false
		}
		in.Birthday = &t
	}
	return in, true
}

func RegisterOwnerRoutes(r chi.Router, svc *service.OwnerService) {
	r.Route("/owners", func(or chi.Router) {
		or.Post("/", createOwnerHandler(svc))
		or.Get("/", listOwnersHandler(svc))
		or.Get("/{ownerID}", getOwnerHandler(svc))
		or.Put("/{ownerID}", updateOwnerHandler(svc))
		or.Delete("/{ownerID}", deleteOwnerHandler(svc))
	})
}

func createOwnerHandler(svc *service.OwnerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ownerRequest
		if !decodeBody(w, r, &req) {
			return
		}
		in, ok := req.toInput(w)
		if !ok {
			return
		}

		o, err := svc.Create(r.Context(), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toOwnerResponse(o))
	}
}

func listOwnersHandler(svc *service.OwnerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := svc.GetAll(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]ownerResponse, 0, len(all))
		for _, o := range all {
			out = append(out, toOwnerResponse(o))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getOwnerHandler(svc *service.OwnerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "ownerID")
		if !ok {
			writeNotFound(w)
			return
		}

		o, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if o == nil {
			writeNotFound(w)
			return
		}
		writeJSON(w, http.StatusOK, toOwnerResponse(*o))
	}
}

func updateOwnerHandler(svc *service.OwnerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "ownerID")
		if !ok {
			writeNotFound(w)
			return
		}

		var req ownerRequest
		if !decodeBody(w, r, &req) {
			return
		}
		in, ok := req.toInput(w)
		if !ok {
			return
		}

		o, err := svc.Update(r.Context(), id, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if o == nil {
			writeNotFound(w)
			return
		}
		writeJSON(w, http.StatusOK, toOwnerResponse(*o))
	}
}

func deleteOwnerHandler(svc *service.OwnerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "ownerID")
		if !ok {
			writeNotFound(w)
			return
		}

		deleted, err := svc.Delete(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if !deleted {
			writeNotFound(w)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
