package postgres

import (
	"context"
	"database/sql"
)

// schema es el DDL mínimo del catálogo. Las FK de imágenes y traces
// llevan ON DELETE CASCADE; el backend documental no tiene cascade y lo
// suple el servicio.
const schema = `
CREATE TABLE IF NOT EXISTS owners (
	id_owner         BIGSERIAL PRIMARY KEY,
	name             TEXT NOT NULL,
	address          TEXT NOT NULL,
	photo            TEXT NOT NULL DEFAULT '',
	birthday         DATE,
	document_number  TEXT NOT NULL UNIQUE,
	email            TEXT NOT NULL DEFAULT '',
	properties_count INT  NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS properties (
	id_property   BIGSERIAL PRIMARY KEY,
	name          TEXT NOT NULL,
	address       TEXT NOT NULL,
	price         NUMERIC(14,2) NOT NULL CHECK (price >= 0),
	code_internal TEXT NOT NULL UNIQUE,
	year          INT NOT NULL,
	id_owner      BIGINT NOT NULL REFERENCES owners(id_owner)
);

CREATE TABLE IF NOT EXISTS property_images (
	id_image    BIGSERIAL PRIMARY KEY,
	id_property BIGINT NOT NULL REFERENCES properties(id_property) ON DELETE CASCADE,
	file        TEXT NOT NULL,
	enabled     BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS property_traces (
	id_trace    BIGSERIAL PRIMARY KEY,
	id_property BIGINT NOT NULL REFERENCES properties(id_property) ON DELETE CASCADE,
	date_sale   DATE NOT NULL,
	name        TEXT NOT NULL,
	value       NUMERIC(14,2) NOT NULL CHECK (value >= 0),
	tax         NUMERIC(14,2) NOT NULL CHECK (tax >= 0)
);

CREATE INDEX IF NOT EXISTS idx_properties_id_owner      ON properties(id_owner);
CREATE INDEX IF NOT EXISTS idx_property_images_property ON property_images(id_property);
CREATE INDEX IF NOT EXISTS idx_property_traces_property ON property_traces(id_property);
`

// EnsureSchema crea las tablas si no existen (suficiente para dev y CI;
// el versionado de migraciones queda fuera).
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
