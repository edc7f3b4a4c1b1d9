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
        "/api/v1/sessions": {
            "post": {
                "tags": ["sessions"],
                "summary": "Mount a browse session",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/sessions/{id}": {
            "get": {
                "tags": ["sessions"],
                "summary": "Session snapshot",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["sessions"],
                "summary": "Unmount a browse session",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/sessions/{id}/events": {
            "post": {
                "tags": ["sessions"],
                "summary": "Deliver a browse event",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/sessions/{id}/records/{recordID}/select": {
            "post": {
                "tags": ["sessions"],
                "summary": "Select a record from the list view",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/catalogs": {
            "get": {
                "tags": ["catalogs"],
                "summary": "List catalogs",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/catalogs/{id}/categories": {
            "get": {
                "tags": ["catalogs"],
                "summary": "Catalog categories",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/catalogs/{id}/records": {
            "get": {
                "tags": ["catalogs"],
                "summary": "Catalog records",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/catalogs/{id}/refresh": {
            "post": {
                "tags": ["catalogs"],
                "summary": "Refresh a catalog",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/preferences/language": {
            "get": {
                "tags": ["preferences"],
                "summary": "Current language",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "tags": ["preferences"],
                "summary": "Change language",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Catalog Browse Service API",
	Description:      "Faceted browse and localized content resolution for point-of-interest catalogs: category navigation, facet filtering and per-field language fallback.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
