package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validHash = "sha256:" + strings.Repeat("ab", 32)

func TestValidateManifest_Valid(t *testing.T) {
	doc := `{
  "version": "1.0",
  "generated_at": null,
  "assets": {
    "images/a.png": {
      "original_name": "a.png",
      "content_hash": "` + validHash + `",
      "size_bytes": 12,
      "mime_type": "image/png",
      "category": "images",
      "uploaded_at": "2024-01-01T00:00:00Z",
      "dimensions": {"width": 2, "height": 3}
    }
  }
}`
	assert.NoError(t, ValidateManifest([]byte(doc)))
}

func TestValidateManifest_Empty(t *testing.T) {
	assert.NoError(t, ValidateManifest([]byte(`{"version":"1.0","generated_at":null,"assets":{}}`)))
}

func TestValidateManifest_Violations(t *testing.T) {
	tests := map[string]string{
		"missing assets": `{"version":"1.0"}`,
		"bad hash":       `{"version":"1.0","assets":{"misc/x":{"original_name":"x","content_hash":"md5:1","size_bytes":1,"category":"misc"}}}`,
		"bad category":   `{"version":"1.0","assets":{"misc/x":{"original_name":"x","content_hash":"` + validHash + `","size_bytes":1,"category":"stickers"}}}`,
		"negative size":  `{"version":"1.0","assets":{"misc/x":{"original_name":"x","content_hash":"` + validHash + `","size_bytes":-1,"category":"misc"}}}`,
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			err := ValidateManifest([]byte(doc))
			require.Error(t, err)
			var verr *Error
			assert.True(t, errors.As(err, &verr), "expected *Error, got %T", err)
		})
	}
}

func TestValidateManifest_Syntax(t *testing.T) {
	assert.Error(t, ValidateManifest([]byte(`{"version": "1.0", "assets": {`)))
}
