// Package docs holds the Swagger document served under /swagger. It uses the
// layout swag init emits, so `swag init -g cmd/server/main.go` regenerates it
// from the handler annotations.
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
        "/document": {
            "get": {
                "description": "Returns the document analysis state and the submitted image reference",
                "produces": ["application/json"],
                "tags": ["document"],
                "summary": "Get document analysis state",
                "responses": {
                    "200": {"description": "Current state", "schema": {"$ref": "#/definitions/handler.APIResponse"}}
                }
            },
            "post": {
                "description": "Accepts a multipart \"file\" upload or a JSON body {\"image_ref\": \"...\"} and starts analysis",
                "consumes": ["multipart/form-data", "application/json"],
                "produces": ["application/json"],
                "tags": ["document"],
                "summary": "Analyze a document image",
                "parameters": [
                    {"type": "file", "description": "Image to analyze", "name": "file", "in": "formData"}
                ],
                "responses": {
                    "202": {"description": "Analysis started", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "400": {"description": "Missing or unsupported image", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "403": {"description": "image_ref outside the gallery directory", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "413": {"description": "Image too large", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "415": {"description": "Body is neither multipart nor JSON", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "503": {"description": "Server shutting down", "schema": {"$ref": "#/definitions/handler.APIResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["document"],
                "summary": "Reset the document analysis flow",
                "responses": {
                    "200": {"description": "Idle state", "schema": {"$ref": "#/definitions/handler.APIResponse"}}
                }
            }
        },
        "/document/export": {
            "get": {
                "produces": ["text/csv", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["document"],
                "summary": "Download the analysis as CSV or XLSX",
                "parameters": [
                    {"enum": ["csv", "xlsx"], "type": "string", "default": "csv", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Attachment"},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "409": {"description": "No successful result", "schema": {"$ref": "#/definitions/handler.APIResponse"}}
                }
            }
        },
        "/query": {
            "get": {
                "produces": ["application/json"],
                "tags": ["query"],
                "summary": "Get legal query state, question and case type",
                "responses": {
                    "200": {"description": "Current state", "schema": {"$ref": "#/definitions/handler.APIResponse"}}
                }
            },
            "post": {
                "description": "Stores the question and case type, then submits them. A blank question fails immediately.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["query"],
                "summary": "Ask a legal question",
                "parameters": [
                    {"description": "Question and case type", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.QueryRequest"}}
                ],
                "responses": {
                    "202": {"description": "Question submitted", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "400": {"description": "Invalid case type", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "415": {"description": "Body is not JSON", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "503": {"description": "Server shutting down", "schema": {"$ref": "#/definitions/handler.APIResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["query"],
                "summary": "Reset the legal query flow",
                "responses": {
                    "200": {"description": "Idle state", "schema": {"$ref": "#/definitions/handler.APIResponse"}}
                }
            }
        },
        "/query/case-types": {
            "get": {
                "produces": ["application/json"],
                "tags": ["query"],
                "summary": "List case types with display labels",
                "responses": {
                    "200": {"description": "Case types", "schema": {"$ref": "#/definitions/handler.APIResponse"}}
                }
            }
        },
        "/query/export": {
            "get": {
                "produces": ["text/csv", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["query"],
                "summary": "Download the answer as CSV or XLSX",
                "parameters": [
                    {"enum": ["csv", "xlsx"], "type": "string", "default": "csv", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Attachment"},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "409": {"description": "No successful result", "schema": {"$ref": "#/definitions/handler.APIResponse"}}
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
        "handler.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/handler.APIError"},
                "success": {"type": "boolean"}
            }
        },
        "handler.QueryRequest": {
            "type": "object",
            "properties": {
                "case_type": {"type": "string", "enum": ["general", "family", "property", "criminal", "business"]},
                "question": {"type": "string"}
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
	Title:            "Ainoggo bridge API",
	Description:      "Local bridge over the document-analysis and legal-query flows.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
