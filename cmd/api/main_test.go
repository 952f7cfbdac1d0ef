package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// El middleware de Swagger entra en pánico en el arranque si el spec no
// existe; este test garantiza que el artefacto viaja con el repo y cubre
// las rutas del servicio.
func TestSwaggerSpec_ExisteYDeclaraLasRutas(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "docs", "swagger.json"))
	require.NoError(t, err, "docs/swagger.json debe estar versionado junto al código")

	var spec struct {
		Swagger string                     `json:"swagger"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &spec))

	assert.Equal(t, "2.0", spec.Swagger)
	assert.Contains(t, spec.Paths, "/health")
	assert.Contains(t, spec.Paths, "/apps/proxy")
	assert.Contains(t, spec.Paths, "/webhooks/orders-create")
}
