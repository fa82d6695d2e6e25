// Package docs registra el documento OpenAPI del dashboard para /swagger.
// Regenerar con: swag init -g cmd/api/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness",
                "produces": ["text/plain"],
                "responses": {"200": {"description": "ok"}}
            }
        },
        "/filters": {
            "get": {
                "description": "Devuelve los filtros del selector en orden. Un filtro desconocido se resuelve a ` + "`All`" + `.",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Listar filtros",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dashboard.filtersResponse"}}}
            }
        },
        "/columns": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Listar columnas de la tabla",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/animals.Column"}}}}
            }
        },
        "/sessions": {
            "post": {
                "description": "Crea una sesión, carga el filtro pedido (default All) y devuelve el estado completo.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Abrir sesión de dashboard",
                "parameters": [{"description": "Filtro inicial", "name": "payload", "in": "body", "schema": {"$ref": "#/definitions/dashboard.openSessionRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object"}},
                    "400": {"description": "invalid json", "schema": {"type": "string"}},
                    "500": {"description": "store error", "schema": {"type": "string"}}
                }
            }
        },
        "/sessions/{sessionID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Estado completo de la sesión",
                "parameters": [{"type": "string", "description": "ID de la sesión", "name": "sessionID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "404": {"description": "session not found", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "tags": ["sessions"],
                "summary": "Cerrar sesión",
                "parameters": [{"type": "string", "description": "ID de la sesión", "name": "sessionID", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "session not found", "schema": {"type": "string"}}
                }
            }
        },
        "/sessions/{sessionID}/table": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Página actual de la tabla",
                "parameters": [{"type": "string", "description": "ID de la sesión", "name": "sessionID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "404": {"description": "session not found", "schema": {"type": "string"}}
                }
            }
        },
        "/sessions/{sessionID}/events": {
            "post": {
                "description": "Aplica un evento (cambio de filtro, selección de fila/columnas, orden, filtro por columna, página) y devuelve solo las salidas recalculadas.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Enviar evento de interacción",
                "parameters": [
                    {"type": "string", "description": "ID de la sesión", "name": "sessionID", "in": "path", "required": true},
                    {"description": "Evento", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dashboard.EventEnvelope"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "invalid json / evento inválido", "schema": {"type": "string"}},
                    "404": {"description": "session not found", "schema": {"type": "string"}},
                    "422": {"description": "fila sin coordenadas: salidas parciales con errors", "schema": {"type": "object"}},
                    "500": {"description": "store error", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "animals.Column": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "numeric": {"type": "boolean"},
                "selectable": {"type": "boolean"}
            }
        },
        "dashboard.filtersResponse": {
            "type": "object",
            "properties": {
                "default": {"type": "string"},
                "filters": {"type": "array", "items": {"type": "string"}}
            }
        },
        "dashboard.openSessionRequest": {
            "type": "object",
            "properties": {
                "filter": {"type": "string", "enum": ["Water Rescue", "Mountain/Wilderness", "Disaster/Individual", "All"]}
            }
        },
        "dashboard.EventEnvelope": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["filter_changed", "columns_selected", "row_clicked", "row_cleared", "sort_changed", "column_filter_changed", "page_changed"]},
                "filter": {"type": "string"},
                "columns": {"type": "array", "items": {"type": "string"}},
                "index": {"type": "integer"},
                "sort_by": {"type": "array", "items": {"type": "object"}},
                "column_id": {"type": "string"},
                "query": {"type": "string"},
                "page": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Shelter Dashboard API",
	Description:      "Dashboard de candidatos de rescate del Austin Animal Center.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
