package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestGetSwagger(t *testing.T) {
	// When
	doc, err := GetSwagger()

	// Then
	require.NoError(t, err)
	assert.Equal(t, "ParcelMyBox API", doc.Info.Title)
	for _, path := range []string{"/auth/token", "/shipments/{id}/label", "/bills/export", "/support-requests/{id}/assign"} {
		assert.NotNil(t, doc.Paths.Find(path), path)
	}
}

func TestRegisteredWithSwag(t *testing.T) {
	// When
	raw, err := swag.ReadDoc()

	// Then
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &body))
	assert.Equal(t, "3.0.3", body["openapi"])
}
