// Package docs registers the OpenAPI description of the HTTP API with the
// swag runtime so the Swagger UI route can serve it.
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
        "/summaries": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Summaries"],
                "summary": "List recorded summarization attempts (paginated)",
                "operationId": "listSummaries",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "Page number (1-based)", "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Page size (max 100)", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ListSummariesResponse"}},
                    "500": {"description": "History unavailable", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Summaries"],
                "summary": "Summarize a transcript",
                "operationId": "createSummary",
                "parameters": [
                    {"type": "string", "description": "User ID (demo header)", "name": "X-User-ID", "in": "header"},
                    {"type": "string", "description": "Safe-retry key", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Summarization payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateSummaryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.SummaryResult"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Unknown template", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "502": {"description": "Generation failed", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/summaries/{id}/feedback": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Feedback"],
                "summary": "Leave feedback on a recorded summary",
                "operationId": "leaveFeedback",
                "parameters": [
                    {"type": "string", "description": "User ID (demo header)", "name": "X-User-ID", "in": "header"},
                    {"type": "integer", "description": "Summary event log id", "name": "id", "in": "path", "required": true},
                    {"description": "Feedback payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.LeaveFeedbackRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Invalid payload or log id", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Feedback could not be recorded", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/templates": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Templates"],
                "summary": "List summarization templates",
                "operationId": "listTemplates",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ListTemplatesResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.CreateSummaryRequest": {
            "type": "object",
            "required": ["template", "transcript"],
            "properties": {
                "custom_prompt": {"type": "string", "example": "Summarize as a bullet list of decisions."},
                "template": {"type": "string", "example": "General Meeting"},
                "transcript": {"type": "string", "example": "Alice: let's review the Q3 pipeline..."}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "bad_request"},
                "message": {"type": "string", "example": "transcript is empty"},
                "request_id": {"type": "string", "example": "3f1c2a9b-…"}
            }
        },
        "handlers.LeaveFeedbackRequest": {
            "type": "object",
            "required": ["rating"],
            "properties": {
                "comment": {"type": "string", "example": "Caught every action item."},
                "rating": {"type": "integer", "example": 5}
            }
        },
        "handlers.ListSummariesResponse": {
            "type": "object",
            "properties": {
                "pagination": {"$ref": "#/definitions/handlers.Pagination"},
                "summaries": {"type": "array", "items": {"$ref": "#/definitions/services.HistoryPage"}}
            }
        },
        "handlers.ListTemplatesResponse": {
            "type": "object",
            "properties": {
                "templates": {"type": "array", "items": {"$ref": "#/definitions/services.TemplateView"}}
            }
        },
        "handlers.Pagination": {
            "type": "object",
            "properties": {
                "has_next": {"type": "boolean"},
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "services.HistoryPage": {
            "type": "object",
            "properties": {
                "created_date": {"type": "string"},
                "duration_seconds": {"type": "number"},
                "event": {"type": "string"},
                "failed": {"type": "boolean"},
                "input_tokens": {"type": "integer"},
                "log_id": {"type": "integer"},
                "model": {"type": "string"},
                "output_tokens": {"type": "integer"},
                "user_id": {"type": "string"}
            }
        },
        "services.SummaryResult": {
            "type": "object",
            "properties": {
                "duration_seconds": {"type": "number"},
                "input_tokens": {"type": "integer"},
                "log_id": {"type": "integer"},
                "logged": {"type": "boolean"},
                "model": {"type": "string"},
                "output_tokens": {"type": "integer"},
                "summary": {"type": "string"}
            }
        },
        "services.TemplateView": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "display_name": {"type": "string"},
                "icon": {"type": "string"},
                "name": {"type": "string"},
                "prompt": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "IntelliNotes API",
	Description:      "Meeting transcript summarization backend with an audit log, feedback, and prompt templates.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
