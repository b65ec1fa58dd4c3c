// Package docs holds the OpenAPI document served by the swagger UI.
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
        "/entries": {
            "get": {
                "produces": ["application/json"],
                "tags": ["entries"],
                "summary": "List ledger entries visible to the acting coach",
                "parameters": [
                    {"type": "string", "name": "X-Coach-Name", "in": "header", "required": true},
                    {"type": "string", "name": "coach", "in": "query"},
                    {"type": "integer", "name": "year", "in": "query"},
                    {"type": "integer", "name": "month", "in": "query"},
                    {"type": "integer", "name": "lastDays", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["entries"],
                "summary": "Submit a payroll entry",
                "parameters": [
                    {"type": "string", "name": "X-Coach-Name", "in": "header", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "207": {"description": "Partial write"},
                    "400": {"description": "Invalid input"},
                    "503": {"description": "Store unavailable"}
                }
            },
            "delete": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["entries"],
                "summary": "Delete ledger entries by ID",
                "parameters": [
                    {"type": "string", "name": "X-Coach-Name", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"},
                    "409": {"description": "Stale delete target"}
                }
            }
        },
        "/reports/monthly": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Per-coach monthly totals",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/reports/monthly/export": {
            "get": {
                "produces": ["text/csv", "application/pdf"],
                "tags": ["reports"],
                "summary": "Export the monthly summary",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/coaches": {
            "get": {
                "produces": ["application/json"],
                "tags": ["coaches"],
                "summary": "List the coach roster",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/coaches/{name}/role": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["coaches"],
                "summary": "Update a coach's default role",
                "parameters": [
                    {"type": "string", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/rates": {
            "get": {
                "produces": ["application/json"],
                "tags": ["rates"],
                "summary": "Billable items and prices for a role",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Workmoney Backend API",
	Description:      "Payroll-entry backend for part-time skating coaches.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
