package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Admin Console API",
        "description": "Provisioning console for platform user accounts",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Users", "description": "Account provisioning and directory"},
        {"name": "Credentials", "description": "Password policy and email-domain assists"},
        {"name": "Lookup", "description": "Read-only activity lookup views"},
        {"name": "Reports", "description": "Derived reporting filter options"},
        {"name": "Audit", "description": "Provisioning audit trail"}
    ],
    "paths": {
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List directory users",
                "parameters": [
                    {"name": "filter", "in": "query", "type": "string", "enum": ["all", "teacher", "student"]},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Users"],
                "summary": "Provision a new user account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UserDraft"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/refresh": {
            "post": {
                "tags": ["Users"],
                "summary": "Force a directory snapshot refetch",
                "responses": {
                    "204": {"description": "Refreshed"}
                }
            }
        },
        "/users/{id}": {
            "put": {
                "tags": ["Users"],
                "summary": "Update an existing user account",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UserPatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Users"],
                "summary": "Delete a user account",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "confirm", "in": "query", "required": true, "type": "boolean"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "428": {"description": "Confirmation required"}
                }
            }
        },
        "/credentials/assess": {
            "post": {
                "tags": ["Credentials"],
                "summary": "Score a candidate password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssessRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/credentials/generate": {
            "post": {
                "tags": ["Credentials"],
                "summary": "Generate a policy-compliant temporary password",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/email/domains": {
            "get": {
                "tags": ["Credentials"],
                "summary": "Suggest allow-listed email domains",
                "parameters": [
                    {"name": "local_part", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/lookup/{role}": {
            "get": {
                "tags": ["Lookup"],
                "summary": "List users in an activity lookup view",
                "parameters": [
                    {"name": "role", "in": "path", "required": true, "type": "string", "enum": ["teachers", "students"]},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/lookup/{role}/export": {
            "get": {
                "tags": ["Lookup"],
                "summary": "Download an activity lookup view",
                "parameters": [
                    {"name": "role", "in": "path", "required": true, "type": "string", "enum": ["teachers", "students"]},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "produces": ["text/csv", "application/pdf"],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/reports/semesters": {
            "get": {
                "tags": ["Reports"],
                "summary": "Derive semester filter options for a class year",
                "parameters": [
                    {"name": "class_year", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/class-years": {
            "get": {
                "tags": ["Reports"],
                "summary": "List the known class years",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/audit": {
            "get": {
                "tags": ["Audit"],
                "summary": "List recent provisioning audit entries",
                "parameters": [
                    {"name": "actor", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "UserDraft": {
            "type": "object",
            "required": ["role", "first_name", "last_name", "email", "password", "department"],
            "properties": {
                "role": {"type": "string", "enum": ["teacher", "student"]},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "phone_number": {"type": "string"},
                "student_id": {"type": "string"},
                "department": {"type": "string"},
                "class_year": {"type": "string"}
            }
        },
        "UserPatch": {
            "type": "object",
            "required": ["first_name", "last_name"],
            "properties": {
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "phone_number": {"type": "string"},
                "department": {"type": "string"},
                "class_year": {"type": "string"},
                "is_active": {"type": "boolean"},
                "password": {"type": "string"}
            }
        },
        "AssessRequest": {
            "type": "object",
            "required": ["password"],
            "properties": {
                "password": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
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
