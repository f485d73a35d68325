package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Lesson Booking API",
        "description": "Weekly lesson booking for a single tutor",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http",
        "https"
    ],
    "tags": [
        {"name": "slots", "description": "Public weekly slot grid"},
        {"name": "booking", "description": "Student bookings"},
        {"name": "settings", "description": "Display settings"},
        {"name": "auth", "description": "Admin session"},
        {"name": "admin", "description": "Admin schedule management"}
    ],
    "paths": {
        "/slots": {
            "get": {
                "tags": ["slots"],
                "summary": "List week slots",
                "parameters": [
                    {"name": "weekStart", "in": "query", "type": "string", "description": "Week start YYYY-MM-DD"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/book": {
            "post": {
                "tags": ["booking"],
                "summary": "Book a slot",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BookRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed"},
                    "404": {"description": "Slot not found"},
                    "409": {"description": "Slot already booked"}
                }
            }
        },
        "/settings": {
            "get": {
                "tags": ["settings"],
                "summary": "Current settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["settings"],
                "summary": "Update settings (admin)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateSettingsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Validation failed"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/admin/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Admin login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Session cookie set"},
                    "401": {"description": "Invalid password"}
                }
            }
        },
        "/admin/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Admin logout",
                "responses": {
                    "200": {"description": "Session cleared"}
                }
            }
        },
        "/admin/slots": {
            "get": {
                "tags": ["admin"],
                "summary": "Admin week view with bookings and grid",
                "parameters": [
                    {"name": "weekStart", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/admin/create-slot": {
            "post": {
                "tags": ["admin"],
                "summary": "Create a one-off slot",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSlotRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/admin/block-slot": {
            "post": {
                "tags": ["admin"],
                "summary": "Block a slot",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SlotActionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Slot not found"}
                }
            }
        },
        "/admin/release-slot": {
            "post": {
                "tags": ["admin"],
                "summary": "Release a slot and delete its bookings",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SlotActionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Slot not found"}
                }
            }
        },
        "/admin/block-day": {
            "post": {
                "tags": ["admin"],
                "summary": "Block every slot in a day",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DayActionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/admin/release-day": {
            "post": {
                "tags": ["admin"],
                "summary": "Release every slot in a day",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DayActionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/admin/seed-weeks": {
            "post": {
                "tags": ["admin"],
                "summary": "Generate slots from the weekly template",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SeedWeeksRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/admin/export": {
            "get": {
                "tags": ["admin"],
                "summary": "Download the week schedule",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "weekStart", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "400": {"description": "Unsupported format"}
                }
            }
        },
        "/admin/test-email": {
            "post": {
                "tags": ["admin"],
                "summary": "Send a test email",
                "parameters": [
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/TestEmailRequest"}}
                ],
                "responses": {
                    "200": {"description": "Sent"},
                    "400": {"description": "Mail not configured"}
                }
            }
        }
    },
    "definitions": {
        "BookRequest": {
            "type": "object",
            "required": ["slotId", "studentName", "studentEmail", "studentPhone"],
            "properties": {
                "slotId": {"type": "string"},
                "studentName": {"type": "string"},
                "studentEmail": {"type": "string"},
                "studentPhone": {"type": "string"},
                "note": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["password"],
            "properties": {
                "password": {"type": "string"}
            }
        },
        "UpdateSettingsRequest": {
            "type": "object",
            "properties": {
                "hours_from": {"type": "integer"},
                "hours_to": {"type": "integer"},
                "tz": {"type": "string"}
            }
        },
        "SlotActionRequest": {
            "type": "object",
            "required": ["slotId"],
            "properties": {
                "slotId": {"type": "string"}
            }
        },
        "DayActionRequest": {
            "type": "object",
            "required": ["date"],
            "properties": {
                "date": {"type": "string"}
            }
        },
        "SeedWeeksRequest": {
            "type": "object",
            "required": ["weekStart"],
            "properties": {
                "weekStart": {"type": "string"},
                "weeks": {"type": "integer"},
                "lesson": {"type": "integer"},
                "buffer": {"type": "integer"}
            }
        },
        "CreateSlotRequest": {
            "type": "object",
            "required": ["startLocal"],
            "properties": {
                "startLocal": {"type": "string"},
                "durationMin": {"type": "integer"}
            }
        },
        "TestEmailRequest": {
            "type": "object",
            "properties": {
                "to": {"type": "string"}
            }
        },
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
                "ok": {"type": "boolean"},
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
