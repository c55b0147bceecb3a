// Package docs is generated by swaggo/swag from the handler annotations.
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
        "/api/chat/messages": {
            "get": {
                "description": "Most recent messages in chronological order",
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "List chat messages",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/chat.Message"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/user.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Store a message; the oldest messages beyond the retention ceiling are evicted",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Post chat message",
                "parameters": [
                    {"description": "Message", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/chat.CreateMessageRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/chat.Message"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/user.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/user.ErrorResponse"}}
                }
            }
        },
        "/api/feedback": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Feedback"],
                "summary": "Submit feedback",
                "parameters": [
                    {"description": "Feedback", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/feedback.SubmitRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/feedback.StatusResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/user.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/user.ErrorResponse"}}
                }
            }
        },
        "/api/health": {
            "get": {
                "description": "Reports which record store backend is serving and probes its dependencies",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/health.StatusResponse"}}
                }
            }
        },
        "/api/test-db": {
            "get": {
                "description": "Pings the record store and counts every collection",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Store diagnostics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/health.DiagnosticsResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/health.ErrorResponse"}}
                }
            }
        },
        "/api/user": {
            "post": {
                "description": "Create a user with a unique display name and a server-issued udid",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["User"],
                "summary": "Register user",
                "parameters": [
                    {"description": "Display name", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/user.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/user.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/user.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/user.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/user.ErrorResponse"}}
                }
            }
        },
        "/api/user/{udid}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["User"],
                "summary": "Get user",
                "parameters": [
                    {"type": "string", "description": "User udid", "name": "udid", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/user.User"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/user.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/user.ErrorResponse"}}
                }
            },
            "delete": {
                "description": "Delete the account together with its achievements and presence row",
                "produces": ["application/json"],
                "tags": ["User"],
                "summary": "Delete user",
                "parameters": [
                    {"type": "string", "description": "User udid", "name": "udid", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/user.DeleteResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/user.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/user.ErrorResponse"}}
                }
            }
        },
        "/api/user/{udid}/achievements": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Achievement"],
                "summary": "List achievements",
                "parameters": [
                    {"type": "string", "description": "User udid", "name": "udid", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/achievement.Achievement"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/user.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/user.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Idempotent: an already unlocked achievement is returned with 200",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Achievement"],
                "summary": "Unlock achievement",
                "parameters": [
                    {"type": "string", "description": "User udid", "name": "udid", "in": "path", "required": true},
                    {"description": "Achievement code", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/achievement.UnlockRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/achievement.Achievement"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/achievement.Achievement"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/user.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/user.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/user.ErrorResponse"}}
                }
            }
        },
        "/api/users/active": {
            "get": {
                "description": "Users whose last heartbeat falls inside the presence window",
                "produces": ["application/json"],
                "tags": ["Presence"],
                "summary": "Online users",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/presence.ActiveUser"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/user.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Presence"],
                "summary": "Presence heartbeat",
                "parameters": [
                    {"description": "Who is online", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/presence.HeartbeatRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/presence.StatusResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/user.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/user.ErrorResponse"}}
                }
            }
        },
        "/ws": {
            "get": {
                "description": "Websocket stream of chat_message_created, active_user_seen and user_deleted events",
                "tags": ["Live"],
                "summary": "Live events",
                "responses": {}
            }
        }
    },
    "definitions": {
        "achievement.Achievement": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "achievement_id": {"type": "string"},
                "unlocked_at": {"type": "string"},
                "user_udid": {"type": "string"}
            }
        },
        "achievement.UnlockRequest": {
            "type": "object",
            "properties": {
                "achievement_id": {"type": "string", "example": "explorer"}
            }
        },
        "chat.CreateMessageRequest": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "hello"},
                "udid": {"type": "string"},
                "user": {"type": "string", "example": "Alice"}
            }
        },
        "chat.Message": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "message": {"type": "string"},
                "timestamp": {"type": "string"},
                "udid": {"type": "string"},
                "user": {"type": "string"}
            }
        },
        "feedback.StatusResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "success"}
            }
        },
        "feedback.SubmitRequest": {
            "type": "object",
            "required": ["email", "message", "name"],
            "properties": {
                "email": {"type": "string", "example": "alice@example.com"},
                "message": {"type": "string", "example": "Nice site"},
                "name": {"type": "string", "example": "Alice"},
                "rating": {"type": "number", "example": 5},
                "udid": {"type": "string"}
            }
        },
        "health.DiagnosticsResponse": {
            "type": "object",
            "properties": {
                "backend": {"type": "string"},
                "collections": {"type": "object", "additionalProperties": {"type": "integer"}},
                "message": {"type": "string"},
                "ping_result": {"type": "object", "additionalProperties": {"type": "integer"}},
                "status": {"type": "string", "example": "success"}
            }
        },
        "health.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "status": {"type": "string", "example": "error"}
            }
        },
        "health.StatusResponse": {
            "type": "object",
            "properties": {
                "backend": {"type": "string", "example": "mongo"},
                "environment": {"type": "string", "example": "development"},
                "inMemoryDb": {"type": "boolean"},
                "mongodb": {"type": "boolean"},
                "services": {"type": "array", "items": {"$ref": "#/definitions/utils.Service"}},
                "status": {"type": "string", "example": "ok"},
                "timestamp": {"type": "string"}
            }
        },
        "presence.ActiveUser": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "udid": {"type": "string"}
            }
        },
        "presence.HeartbeatRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "Alice"},
                "udid": {"type": "string", "example": "4f9c3c1e-8a53-4c09-9a55-0c4b2a1f7d11"}
            }
        },
        "presence.StatusResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "success"}
            }
        },
        "user.DeleteResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "User account deleted successfully"},
                "status": {"type": "string", "example": "success"}
            }
        },
        "user.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "user.RegisterRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "Alice"}
            }
        },
        "user.User": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "created_at": {"type": "string"},
                "name": {"type": "string"},
                "udid": {"type": "string"}
            }
        },
        "utils.Service": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "name": {"type": "string"},
                "status": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Portfolio API",
	Description:      "Users, achievements, presence, chat and feedback for the portfolio site.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
