// Package docs registers the OpenAPI document served under /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/auth/login": {
            "post": {
                "security": [],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Exchange credentials for a bearer token",
                "parameters": [
                    {"name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LoginResponse"}},
                    "400": {"description": "Malformed body", "schema": {"$ref": "#/definitions/dto.ValidationErrorResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/boats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["boats"],
                "summary": "List boats",
                "parameters": [
                    {"name": "query", "in": "query", "type": "string", "description": "Filters, e.g. name|like|Orca%,id|gt|3"},
                    {"name": "order", "in": "query", "type": "string", "description": "Ordering, e.g. name|asc"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "per_page", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "headers": {"X-Total-Count": {"type": "integer"}},
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.BoatResponse"}}
                    },
                    "400": {"description": "Invalid list parameters", "schema": {"$ref": "#/definitions/dto.ValidationErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["boats"],
                "summary": "Create a boat",
                "parameters": [
                    {"name": "boat", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.BoatRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.BoatResponse"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/dto.ValidationErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/boats/{id}": {
            "parameters": [
                {"name": "id", "in": "path", "required": true, "type": "integer"}
            ],
            "get": {
                "produces": ["application/json"],
                "tags": ["boats"],
                "summary": "Get a boat",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.BoatResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["boats"],
                "summary": "Replace a boat",
                "parameters": [
                    {"name": "boat", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.BoatRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.BoatResponse"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/dto.ValidationErrorResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["boats"],
                "summary": "Delete a boat",
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "security": [],
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Liveness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "dto.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "type": {"type": "string", "example": "Bearer"},
                "expires_in": {"type": "integer"}
            }
        },
        "dto.BoatRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "minLength": 2, "maxLength": 100},
                "description": {"type": "string", "maxLength": 500}
            }
        },
        "dto.BoatResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"},
                "code": {"type": "integer"}
            }
        },
        "dto.ValidationErrorResponse": {
            "type": "object",
            "additionalProperties": {"type": "string"}
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "time": {"type": "string"}
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
	Title:            "Boat API",
	Description:      "CRUD API for boats behind a bearer token login.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
