// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
        "/menus/parse": {
            "post": {
                "description": "Sends a base64 or data-URL image to the vision model and returns the translated menu",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["menus"],
                "summary": "Extract a menu from one photo",
                "parameters": [
                    {"description": "Menu photo", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.ParseMenuRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MenuEnvelope"}},
                    "400": {"description": "Invalid image", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "502": {"description": "Model returned no menu", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "503": {"description": "Model temporarily unavailable", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/menus/parse-batch": {
            "post": {
                "description": "Extracts every page in parallel and merges them into one menu; any failing page fails the request",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["menus"],
                "summary": "Extract one menu from several photos",
                "parameters": [
                    {"description": "Menu pages", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.ParseBatchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MenuEnvelope"}},
                    "400": {"description": "No or invalid images", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "502": {"description": "Model returned no menu", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/menus/upload": {
            "post": {
                "description": "Compresses each uploaded photo, then extracts and merges the menu",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["menus"],
                "summary": "Extract a menu from uploaded files",
                "parameters": [
                    {"type": "file", "description": "Menu photos (repeat the field for several pages)", "name": "files", "in": "formData", "required": true},
                    {"type": "string", "default": "English", "description": "Target language", "name": "preferredLanguage", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MenuEnvelope"}},
                    "400": {"description": "Missing files", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "413": {"description": "File too large", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/menus/wildcard": {
            "post": {
                "description": "Picks dishes from the menu for the party size, appetite and adventurousness, complementing the current cart",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["menus"],
                "summary": "Recommend dishes for a party",
                "parameters": [
                    {"description": "Menu and party", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.WildcardRequestBody"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Missing required fields", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "502": {"description": "No valid menu items found in recommendations", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/orders/summary": {
            "post": {
                "description": "Resolves the cart against the menu with line totals and a formatted total",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Summarize an order",
                "parameters": [
                    {"description": "Menu and cart", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.OrderRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid body", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/orders/export": {
            "post": {
                "description": "Downloads the order as CSV or XLSX, e.g. to show a waiter",
                "consumes": ["application/json"],
                "produces": ["text/csv", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["orders"],
                "summary": "Export an order",
                "parameters": [
                    {"type": "string", "default": "csv", "description": "csv or xlsx", "name": "format", "in": "query"},
                    {"description": "Menu and cart", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.OrderRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Invalid body or format", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/languages": {
            "get": {
                "produces": ["application/json"],
                "tags": ["languages"],
                "summary": "List target languages",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Response"}}
                }
            }
        },
        "/languages/resolve": {
            "get": {
                "description": "Accepts short codes (zh-cn), names (spanish) and BCP 47 tags (pt-BR)",
                "produces": ["application/json"],
                "tags": ["languages"],
                "summary": "Resolve a language parameter",
                "parameters": [
                    {"type": "string", "description": "Language code, name or tag", "name": "lang", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "404": {"description": "Unknown language", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/scans": {
            "get": {
                "produces": ["application/json"],
                "tags": ["scans"],
                "summary": "List archived scans",
                "parameters": [
                    {"type": "integer", "default": 0, "description": "Offset for pagination", "name": "offset", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Limit for pagination (max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Response"}}
                }
            }
        },
        "/scans/{id}": {
            "get": {
                "description": "Returns the stored menu with presigned links to the page images",
                "produces": ["application/json"],
                "tags": ["scans"],
                "summary": "Get an archived scan",
                "parameters": [
                    {"type": "string", "description": "Scan ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid ID", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "404": {"description": "Scan not found", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/scans/{id}/translate": {
            "post": {
                "description": "Re-extracts the stored page images in another language and archives the result as a new scan",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["scans"],
                "summary": "Translate an archived scan again",
                "parameters": [
                    {"type": "string", "description": "Scan ID", "name": "id", "in": "path", "required": true},
                    {"description": "Target language", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.TranslateScanRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.MenuEnvelope"}},
                    "404": {"description": "Scan not found", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        }
    },
    "definitions": {
        "handler.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.ErrorResponseBody": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": false},
                "error": {"$ref": "#/definitions/handler.APIError"}
            }
        },
        "handler.PagMeta": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "offset": {"type": "integer"},
                "limit": {"type": "integer"}
            }
        },
        "handler.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "data": {},
                "meta": {"$ref": "#/definitions/handler.PagMeta"}
            }
        },
        "handler.MenuEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "data": {"$ref": "#/definitions/handler.MenuResponse"}
            }
        },
        "handler.MenuResponse": {
            "type": "object",
            "properties": {
                "menu": {"type": "object"},
                "scanId": {"type": "string", "example": "550e8400-e29b-41d4-a716-446655440000"}
            }
        },
        "handler.ParseMenuRequest": {
            "type": "object",
            "required": ["imageBase64"],
            "properties": {
                "imageBase64": {"type": "string", "example": "data:image/jpeg;base64,/9j/4AAQSkZJRg..."},
                "preferredLanguage": {"type": "string", "example": "Spanish"}
            }
        },
        "handler.ParseBatchRequest": {
            "type": "object",
            "required": ["images"],
            "properties": {
                "images": {"type": "array", "items": {"type": "string"}},
                "preferredLanguage": {"type": "string", "example": "German"}
            }
        },
        "handler.WildcardRequestBody": {
            "type": "object",
            "properties": {
                "menu": {"type": "object"},
                "partySize": {"type": "integer", "example": 3},
                "hungerLevel": {"type": "string", "enum": ["light", "moderate", "hungry", "feast"], "example": "hungry"},
                "adventurous": {"type": "boolean", "example": true},
                "preferredLanguage": {"type": "string", "example": "English"},
                "currentCart": {"type": "object"}
            }
        },
        "handler.OrderRequest": {
            "type": "object",
            "properties": {
                "menu": {"type": "object"},
                "cart": {"type": "object"}
            }
        },
        "handler.TranslateScanRequest": {
            "type": "object",
            "required": ["preferredLanguage"],
            "properties": {
                "preferredLanguage": {"type": "string", "example": "French"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "carte API",
	Description:      "Menu photo translation: extraction, multi-page merge, wildcard picks and order export.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
