package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"realty-catalog/internal/domain/images"
	"realty-catalog/internal/service"
)

type imageRequest struct {
	IDProperty int64  `json:"id_property"`
	File       string `json:"file"`
	Enabled    bool   `json:"enabled"`
}

type imageResponse struct {
	IDImage    int64  `json:"id_image"`
	IDProperty int64  `json:"id_property"`
	File       string `json:"file"`
	Enabled    bool   `json:"enabled"`
}

func toImageResponse(img images.PropertyImage) imageResponse {
	return imageResponse{
		IDImage:    img.IDImage,
		IDProperty: img.IDProperty,
		File:       img.File,
		Enabled:    img.Enabled,
	}
}

func RegisterImageRoutes(r chi.Router, svc *service.ImageService) {
	// Las altas y el listado cuelgan de la propiedad dueña.
	r.Route("/properties/{propertyID}/images", func(ir chi.Router) {
		ir.Post("/", createImageHandler(svc))
		ir.Get("/", listImagesByPropertyHandler(svc))
	})

	r.Route("/images", func(ir chi.Router) {
		ir.Get("/{imageID}", getImageHandler(svc))
		ir.Put("/{imageID}", updateImageHandler(svc))
		ir.Delete("/{imageID}", deleteImageHandler(svc))
	})
}

func createImageHandler(svc *service.ImageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idProperty, ok := pathID(r, "propertyID")
		if !ok {
			writeNotFound(w)
			return
		}

		var req imageRequest
		if !decodeBody(w, r, &req) {
			return
		}

		img, err := svc.Create(r.Context(), service.ImageInput{
			IDProperty: idProperty,
			File:       req.File,
			Enabled:    req.Enabled,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toImageResponse(img))
	}
}

func listImagesByPropertyHandler(svc *service.ImageService) http.HandlerFunc {
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

		out := make([]imageResponse, 0, len(all))
		for _, img := range all {
			out = append(out, toImageResponse(img))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getImageHandler(svc *service.ImageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "imageID")
		if !ok {
			writeNotFound(w)
			return
		}

		img, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if img == nil {
			writeNotFound(w)
			return
		}
		writeJSON(w, http.StatusOK, toImageResponse(*img))
	}
}

func updateImageHandler(svc *service.ImageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "imageID")
		if !ok {
			writeNotFound(w)
			return
		}

		var req imageRequest
		if !decodeBody(w, r, &req) {
			return
		}

		img, err := svc.Update(r.Context(), id, service.ImageInput{
			IDProperty: req.IDProperty,
			File:       req.File,
			Enabled:    req.Enabled,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if img == nil {
			writeNotFound(w)
			return
		}
		writeJSON(w, http.StatusOK, toImageResponse(*img))
	}
}

func deleteImageHandler(svc *service.ImageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "imageID")
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
