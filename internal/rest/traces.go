package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"realty-catalog/internal/domain/traces"
	"realty-catalog/internal/service"
)

type traceRequest struct {
	DateSale   string  `json:"date_sale"` // YYYY-MM-DD
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Tax        float64 `json:"tax"`
	IDProperty int64   `json:"id_property"`
}

type traceResponse struct {
	IDTrace    int64     `json:"id_trace"`
	IDProperty int64     `json:"id_property"`
	DateSale   time.Time `json:"date_sale"`
	Name       string    `json:"name"`
	Value      float64   `json:"value"`
	Tax        float64   `json:"tax"`
}

func toTraceResponse(tr traces.PropertyTrace) traceResponse {
	return traceResponse{
		IDTrace:    tr.IDTrace,
		IDProperty: tr.IDProperty,
		DateSale:   tr.DateSale,
		Name:       tr.Name,
		Value:      tr.Value,
		Tax:        tr.Tax,
	}
}

func parseDateSale(w http.ResponseWriter, raw string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "date_sale must be YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}

func RegisterTraceRoutes(r chi.Router, svc *service.TraceService) {
	r.Route("/properties/{propertyID}/traces", func(tr chi.Router) {
		tr.Post("/", createTraceHandler(svc))
		tr.Get("/", listTracesByPropertyHandler(svc))
	})

	r.Route("/traces", func(tr chi.Router) {
		tr.Get("/{traceID}", getTraceHandler(svc))
		tr.Put("/{traceID}", updateTraceHandler(svc))
		tr.Delete("/{traceID}", deleteTraceHandler(svc))
	})
}

func createTraceHandler(svc *service.TraceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idProperty, ok := pathID(r, "propertyID")
		if !ok {
			writeNotFound(w)
			return
		}

		var req traceRequest
		if !decodeBody(w, r, &req) {
			return
		}
		dateSale, ok := parseDateSale(w, req.DateSale)
		if !ok {
			return
		}

		tr, err := svc.Create(r.Context(), service.TraceInput{
			IDProperty: idProperty,
			DateSale:   dateSale,
			Name:       req.Name,
			Value:      req.Value,
			Tax:        req.Tax,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toTraceResponse(tr))
	}
}

func listTracesByPropertyHandler(svc *service.TraceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idProperty, ok := pathID(r, "propertyID")
		if !ok {
			writeNotFound(w)
			return
		}

		all, err := svc.ListByProperty(r.Context(), idProperty)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]traceResponse, 0, len(all))
		for _, tr := range all {
			out = append(out, toTraceResponse(tr))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getTraceHandler(svc *service.TraceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "traceID")
		if !ok {
			writeNotFound(w)
			return
		}

		tr, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if tr == nil {
			writeNotFound(w)
			return
		}
		writeJSON(w, http.StatusOK, toTraceResponse(*tr))
	}
}

func updateTraceHandler(svc *service.TraceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "traceID")
		if !ok {
			writeNotFound(w)
			return
		}

		var req traceRequest
		if !decodeBody(w, r, &req) {
			return
		}
		dateSale, ok := parseDateSale(w, req.DateSale)
		if !ok {
			return
		}

		tr, err := svc.Update(r.Context(), id, service.TraceInput{
			IDProperty: req.IDProperty,
			DateSale:   dateSale,
			Name:       req.Name,
			Value:      req.Value,
			Tax:        req.Tax,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if tr == nil {
			writeNotFound(w)
			return
		}
		writeJSON(w, http.StatusOK, toTraceResponse(*tr))
	}
}

func deleteTraceHandler(svc *service.TraceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "traceID")
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
