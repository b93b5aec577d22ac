// Package docs holds the OpenAPI document for the muzzle API
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.0.3",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "paths": {
        "/filter/check": {
            "post": {
                "tags": ["filter"],
                "summary": "Report whether text contains profanity",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.CheckRequest"}}}},
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.CheckResult"}}}}}
            }
        },
        "/filter/clean": {
            "post": {
                "tags": ["filter"],
                "summary": "Mask every match with the mask token",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.CleanRequest"}}}},
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.CleanResult"}}}}}
            }
        },
        "/filter/inspect": {
            "post": {
                "tags": ["filter"],
                "summary": "Normalized text, hits per rule and script hint",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.CheckRequest"}}}},
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/filter.Verdict"}}}}}
            }
        },
        "/filter/batch": {
            "post": {
                "tags": ["filter"],
                "summary": "Clean many texts; Accept text/plain returns the log report",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.BatchRequest"}}}},
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {"schema": {"$ref": "#/components/schemas/domain.BatchResult"}},
                            "text/plain": {"schema": {"type": "string"}}
                        }
                    }
                }
            }
        },
        "/filter/wordlist": {
            "get": {
                "tags": ["filter"],
                "summary": "The loaded wordlist and its compiled rules",
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.WordlistView"}}}}}
            }
        },
        "/meta/health": {
            "get": {"tags": ["meta"], "summary": "Liveness", "responses": {"200": {"description": "OK"}}}
        },
        "/meta/ready": {
            "get": {
                "tags": ["meta"],
                "summary": "Pings every configured backend",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/meta/version": {
            "get": {"tags": ["meta"], "summary": "Build information", "responses": {"200": {"description": "OK"}}}
        },
        "/meta/filter": {
            "get": {"tags": ["meta"], "summary": "Rule count, mask and wordlist version", "responses": {"200": {"description": "OK"}}}
        },
        "/meta/verdicts": {
            "get": {
                "tags": ["meta"],
                "summary": "Verdict counts over the last hours",
                "parameters": [{"name": "hours", "in": "query", "schema": {"type": "integer", "default": 24, "minimum": 1, "maximum": 744}}],
                "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}, "503": {"description": "Service Unavailable"}}
            }
        }
    },
    "components": {
        "schemas": {
            "domain.CheckRequest": {
                "type": "object",
                "required": ["text"],
                "properties": {"text": {"type": "string", "maxLength": 65536, "example": "이런 씨.발"}}
            },
            "domain.CheckResult": {
                "type": "object",
                "properties": {"profane": {"type": "boolean", "example": true}}
            },
            "domain.CleanRequest": {
                "type": "object",
                "required": ["text"],
                "properties": {
                    "text": {"type": "string", "maxLength": 65536, "example": "이런 씨.발"},
                    "mask": {"type": "string", "maxLength": 16, "example": "***"}
                }
            },
            "domain.CleanResult": {
                "type": "object",
                "properties": {
                    "cleaned": {"type": "string", "example": "이런 ***"},
                    "profane": {"type": "boolean", "example": true},
                    "cached": {"type": "boolean", "example": false}
                }
            },
            "filter.Hit": {
                "type": "object",
                "properties": {
                    "index": {"type": "integer"},
                    "source": {"type": "string", "example": "씨발"},
                    "kind": {"type": "string", "enum": ["word", "lookalike"]},
                    "spans": {"type": "array", "items": {"type": "array", "items": {"type": "integer"}}}
                }
            },
            "filter.Verdict": {
                "type": "object",
                "properties": {
                    "original": {"type": "string"},
                    "normalized": {"type": "string"},
                    "cleaned": {"type": "string"},
                    "profane": {"type": "boolean"},
                    "hits": {"type": "array", "items": {"$ref": "#/components/schemas/filter.Hit"}},
                    "hint": {"type": "object"}
                }
            },
            "domain.BatchRequest": {
                "type": "object",
                "required": ["texts"],
                "properties": {
                    "texts": {"type": "array", "minItems": 1, "maxItems": 500, "items": {"type": "string"}},
                    "split": {"type": "string", "enum": ["whole", "lines", "paragraphs"]},
                    "mask": {"type": "string"}
                }
            },
            "domain.BatchResult": {
                "type": "object",
                "properties": {
                    "batch_id": {"type": "string", "format": "uuid"},
                    "summary": {"type": "object"},
                    "items": {"type": "array", "items": {"type": "object"}}
                }
            },
            "domain.WordlistView": {
                "type": "object",
                "properties": {
                    "version": {"type": "integer"},
                    "name": {"type": "string"},
                    "words": {"type": "array", "items": {"type": "string"}},
                    "lookalikes": {"type": "array", "items": {"type": "string"}},
                    "rules": {"type": "integer"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/api/v1",
	Title:            "muzzle API",
	Description:      "Fuzzy profanity matching for Korean chat text",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
