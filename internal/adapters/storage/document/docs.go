package document

import (
	"time"

	"realty-catalog/internal/domain/images"
	"realty-catalog/internal/domain/owners"
	"realty-catalog/internal/domain/properties"
	"realty-catalog/internal/domain/traces"
)

// Formas persistidas. StorageID es el handle opaco del documento
// (uuid); nunca sale del adaptador, hacia afuera solo viaja la clave
// subrogada.

type ownerDoc struct {
	StorageID       string     `json:"_id"`
	IDOwner         int64      `json:"id_owner"`
	Name            string     `json:"name"`
	Address         string     `json:"address"`
	Photo           string     `json:"photo,omitempty"`
	Birthday        *time.Time `json:"birthday,omitempty"`
	DocumentNumber  string     `json:"document_number"`
	Email           string     `json:"email,omitempty"`
	PropertiesCount int        `json:"properties_count"`
}

type ownerSnapshotDoc struct {
	IDOwner int64  `json:"id_owner"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Photo   string `json:"photo,omitempty"`
}

type propertyDoc struct {
	StorageID    string           `json:"_id"`
	IDProperty   int64            `json:"id_property"`
	Name         string           `json:"name"`
	Address      string           `json:"address"`
	Price        float64          `json:"price"`
	CodeInternal string           `json:"code_internal"`
	Year         int              `json:"year"`
	Owner        ownerSnapshotDoc `json:"owner"`
	Images       []imageDoc       `json:"images"`
}

type imageDoc struct {
	StorageID  string `json:"_id"`
	IDImage    int64  `json:"id_image"`
	IDProperty int64  `json:"id_property"`
	File       string `json:"file"`
	Enabled    bool   `json:"enabled"`
}

type traceDoc struct {
	StorageID  string    `json:"_id"`
	IDTrace    int64     `json:"id_trace"`
	IDProperty int64     `json:"id_property"`
	DateSale   time.Time `json:"date_sale"`
	Name       string    `json:"name"`
	Value      float64   `json:"value"`
	Tax        float64   `json:"tax"`
}

func (d ownerDoc) toModel() owners.Owner {
	return owners.Owner{
		IDOwner:         d.IDOwner,
		Name:            d.Name,
		Address:         d.Address,
		Photo:           d.Photo,
		Birthday:        d.Birthday,
		DocumentNumber:  d.DocumentNumber,
		Email:           d.Email,
		PropertiesCount: d.PropertiesCount,
	}
}

func (d propertyDoc) toModel() properties.Property {
	return properties.Property{
		IDProperty:   d.IDProperty,
		Name:         d.Name,
		Address:      d.Address,
		Price:        d.Price,
		CodeInternal: d.CodeInternal,
		Year:         d.Year,
		IDOwner:      d.Owner.IDOwner,
	}
}

func (d imageDoc) toModel() images.PropertyImage {
	return images.PropertyImage{
		IDImage:    d.IDImage,
		IDProperty: d.IDProperty,
		File:       d.File,
		Enabled:    d.Enabled,
	}
}

func (d traceDoc) toModel() traces.PropertyTrace {
	return traces.PropertyTrace{
		IDTrace:    d.IDTrace,
		IDProperty: d.IDProperty,
		DateSale:   d.DateSale,
		Name:       d.Name,
		Value:      d.Value,
		Tax:        d.Tax,
	}
}
