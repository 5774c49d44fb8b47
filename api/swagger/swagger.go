package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Timetable Assignment API",
        "description": "University timetable generation and publication service",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Timetable", "description": "Generation, drafts, reads and exports"},
        {"name": "Catalog", "description": "Programs, courses, faculty, rooms, slots and constraints"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/timetable/generate": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Generate and publish an exact timetable",
                "responses": {
                    "201": {"description": "Published"},
                    "409": {"description": "Infeasible"},
                    "422": {"description": "Empty candidate set"},
                    "504": {"description": "Solver timeout"}
                }
            }
        },
        "/timetable/draft": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Build a fast advisory draft timetable",
                "responses": {
                    "200": {"description": "Draft"}
                }
            }
        },
        "/timetable": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Active timetable for a semester",
                "responses": {
                    "200": {"description": "Entries"},
                    "404": {"description": "No published timetable"}
                }
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
