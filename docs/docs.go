// Package docs содержит OpenAPI описание HTTP API для swagger UI.
package docs

import _ "embed"

//go:embed swagger.json
var SwaggerJSON []byte
