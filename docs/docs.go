// Package docs registers the OpenAPI description served at /swagger. It is
// maintained by hand in the swag template format; keep it in step with the
// handler annotations in internal/server.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["meta"],
                "summary": "List routes",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/server.routeEntry"}}
                    }
                }
            }
        },
        "/people": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List people",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Person"}}
                    }
                }
            }
        },
        "/people/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Get a person",
                "parameters": [
                    {"type": "integer", "description": "Person ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Person"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/planets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List planets",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Planet"}}
                    }
                }
            }
        },
        "/planets/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Get a planet",
                "parameters": [
                    {"type": "integer", "description": "Planet ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Planet"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List users",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/models.User"}}
                    }
                }
            }
        },
        "/users/favorites": {
            "get": {
                "produces": ["application/json"],
                "tags": ["favorites"],
                "summary": "List the current user's favorites",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Favorite"}}
                    }
                }
            }
        },
        "/users/{id}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Delete a user",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/favorite/planet/{id}": {
            "post": {
                "produces": ["application/json"],
                "tags": ["favorites"],
                "summary": "Favorite a planet",
                "parameters": [
                    {"type": "integer", "description": "Planet ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "already a favorite", "schema": {"type": "object", "additionalProperties": true}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Favorite"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["favorites"],
                "summary": "Remove a favorite planet",
                "parameters": [
                    {"type": "integer", "description": "Planet ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/favorite/people/{id}": {
            "post": {
                "produces": ["application/json"],
                "tags": ["favorites"],
                "summary": "Favorite a person",
                "parameters": [
                    {"type": "integer", "description": "Person ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "already a favorite", "schema": {"type": "object", "additionalProperties": true}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Favorite"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["favorites"],
                "summary": "Remove a favorite person",
                "parameters": [
                    {"type": "integer", "description": "Person ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/seed/swapi": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["seed"],
                "summary": "Import planets and people from SWAPI",
                "parameters": [
                    {"description": "Import limits", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/server.SeedSwapiRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/seed/test": {
            "post": {
                "produces": ["application/json"],
                "tags": ["seed"],
                "summary": "Insert one fixed planet and person",
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "models.Favorite": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "people_id": {"type": "integer"},
                "planet_id": {"type": "integer"},
                "user_id": {"type": "integer"}
            }
        },
        "models.Person": {
            "type": "object",
            "properties": {
                "birth_year": {"type": "string"},
                "eye_color": {"type": "string"},
                "gender": {"type": "string"},
                "hair_color": {"type": "string"},
                "height": {"type": "string"},
                "id": {"type": "integer"},
                "mass": {"type": "string"},
                "name": {"type": "string"},
                "skin_color": {"type": "string"}
            }
        },
        "models.Planet": {
            "type": "object",
            "properties": {
                "climate": {"type": "string"},
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "population": {"type": "string"},
                "terrain": {"type": "string"}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "id": {"type": "integer"},
                "username": {"type": "string"}
            }
        },
        "server.SeedSwapiRequest": {
            "type": "object",
            "properties": {
                "people_limit": {"type": "integer"},
                "planets_limit": {"type": "integer"}
            }
        },
        "server.routeEntry": {
            "type": "object",
            "properties": {
                "method": {"type": "string"},
                "path": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3001",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Holocron API",
	Description:      "Star Wars catalog with per-user favorites and a SWAPI importer",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
