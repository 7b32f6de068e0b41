// Package docs registers the swagger description of the HTTP API, in the
// layout swag init produces from the handler annotations.
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
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {"type": "string"}
                        }
                    }
                }
            }
        },
        "/api/scrape": {
            "post": {
                "description": "Fetches the page once, extracts payment rows and stores them in a new session",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["scrape"],
                "summary": "Scrape payment records from a page",
                "parameters": [
                    {
                        "description": "Page to scrape",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/api.ScrapeRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/api.ScrapeResponse"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/api.ErrorResponse"}
                    },
                    "502": {
                        "description": "Fetch or parse failed",
                        "schema": {"$ref": "#/definitions/api.ErrorResponse"}
                    }
                }
            }
        },
        "/api/sessions/{id}": {
            "get": {
                "description": "Returns the stored records with their columns in export order",
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Preview a scrape session",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/api.PreviewResponse"}
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/api.ErrorResponse"}
                    }
                }
            }
        },
        "/api/sessions/{id}/records": {
            "post": {
                "description": "Body maps row index to column values. Each row is applied on its own; a rejected row leaves the others intact.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Edit pass-book and variance columns",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Edits by row index",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "object",
                                "additionalProperties": {"type": "string"}
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/api.UpdateResponse"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/api.ErrorResponse"}
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/api.ErrorResponse"}
                    }
                }
            }
        },
        "/api/sessions/{id}/reconcile": {
            "post": {
                "description": "Sets every variance to scraped minus pass-book amount where both parse",
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Recompute variances",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/api.ReconcileResponse"}
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/api.ErrorResponse"}
                    }
                }
            }
        },
        "/api/sessions/{id}/export": {
            "get": {
                "description": "Sends the workbook as an attachment and then drops the session",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["sessions"],
                "summary": "Download the session as xlsx",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "file"}
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/api.ErrorResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "api.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "api.ScrapeRequest": {
            "type": "object",
            "properties": {
                "url": {"type": "string"}
            }
        },
        "api.ScrapeResponse": {
            "type": "object",
            "properties": {
                "found": {"type": "boolean"},
                "message": {"type": "string"},
                "session_id": {"type": "string"},
                "total_records": {"type": "integer"}
            }
        },
        "api.PreviewResponse": {
            "type": "object",
            "properties": {
                "columns": {"type": "array", "items": {"type": "string"}},
                "records": {"type": "array", "items": {"$ref": "#/definitions/payment.Record"}},
                "session_id": {"type": "string"},
                "total_records": {"type": "integer"},
                "url": {"type": "string"}
            }
        },
        "api.RejectedEdit": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "row": {"type": "string"}
            }
        },
        "api.UpdateResponse": {
            "type": "object",
            "properties": {
                "rejected": {"type": "array", "items": {"$ref": "#/definitions/api.RejectedEdit"}},
                "success": {"type": "boolean"},
                "updated": {"type": "integer"}
            }
        },
        "api.ReconcileResponse": {
            "type": "object",
            "properties": {
                "records": {"type": "array", "items": {"$ref": "#/definitions/payment.Record"}},
                "success": {"type": "boolean"},
                "updated": {"type": "integer"}
            }
        },
        "payment.Record": {
            "type": "object",
            "additionalProperties": {"type": "string"}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Payment Data Scraper API",
	Description:      "Scrapes payment tables from web pages, collects pass-book reconciliation edits and exports xlsx.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
