package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"realty-catalog/internal/domain/properties"
	"realty-catalog/internal/service"
)

type propertyRequest struct {
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Price        float64 `json:"price"`
	CodeInternal string  `json:"code_internal"`
	Year         int     `json:"year"`
	IDOwner      int64   `json:"id_owner"`
}

type propertyResponse struct {
	IDProperty   int64   `json:"id_property"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Price        float64 `json:"price"`
	CodeInternal string  `json:"code_internal"`
	Year         int     `json:"year"`
	IDOwner      int64   `json:"id_owner"`
}

type priceRequest struct {
	Price float64 `json:"price"`
}

func toPropertyResponse(p properties.Property) propertyResponse {
	return propertyResponse{
		IDProperty:   p.IDProperty,
		Name:         p.Name,
		Address:      p.Address,
		Price:        p.Price,
		CodeInternal: p.CodeInternal,
		Year:         p.Year,
		IDOwner:      p.IDOwner,
	}
}

func (req propertyRequest) toInput() service.PropertyInput {
	return service.PropertyInput{
		Name:         req.Name,
		Address:      req.Address,
		Price:        req.Price,
		CodeInternal: req.CodeInternal,
		Year:         req.Year,
		IDOwner:      req.IDOwner,
	}
}

func RegisterPropertyRoutes(r chi.Router, svc *service.PropertyService) {
	r.Route("/properties", func(pr chi.Router) {
		pr.Post("/", createPropertyHandler(svc))
		pr.Get("/", listPropertiesHandler(svc))
		pr.Get("/{propertyID}", getPropertyHandler(svc))
		pr.Put("/{propertyID}", updatePropertyHandler(svc))
		pr.Patch("/{propertyID}/price", updatePriceHandler(svc))
		pr.Delete("/{propertyID}", deletePropertyHandler(svc))
	})
}

func createPropertyHandler(svc *service.PropertyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req propertyRequest
		if !decodeBody(w, r, &req) {
			return
		}

		p, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPropertyResponse(p))
	}
}

func listPropertiesHandler(svc *service.PropertyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := svc.GetAll(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]propertyResponse, 0, len(all))
		for _, p := range all {
			out = append(out, toPropertyResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getPropertyHandler(svc *service.PropertyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "propertyID")
		if !ok {
			writeNotFound(w)
			return
		}

		p, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if p == nil {
			writeNotFound(w)
			return
		}
		writeJSON(w, http.StatusOK, toPropertyResponse(*p))
	}
}

func updatePropertyHandler(svc *service.PropertyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "propertyID")
		if !ok {
			writeNotFound(w)
			return
		}

		var req propertyRequest
		if !decodeBody(w, r, &req) {
			return
		}

		p, err := svc.Update(r.Context(), id, req.toInput())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if p == nil {
			writeNotFound(w)
			return
		}
		writeJSON(w, http.StatusOK, toPropertyResponse(*p))
	}
}

func updatePriceHandler(svc *service.PropertyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "propertyID")
		if !ok {
			writeNotFound(w)
			return
		}

		var req priceRequest
		if !decodeBody(w, r, &req) {
			return
		}

		p, err := svc.UpdatePrice(r.Context(), id, req.Price)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if p == nil {
			writeNotFound(w)
			return
		}
		writeJSON(w, http.StatusOK, toPropertyResponse(*p))
	}
}

func deletePropertyHandler(svc *service.PropertyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "propertyID")
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
