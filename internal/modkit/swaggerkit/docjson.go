package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	"muzzle/internal/platform/config"
	perr "muzzle/internal/platform/errors"

	docs "muzzle/internal/services/api/docs"
)

const (
	oasVersion   = "3.0.3"
	apiBase      = "/api/v1"
	errorSchema  = "ErrorResponse"
	exampleReqID = "muzzle-1/abc-000001"
)

// docReader is a seam for tests
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// fallback is a response added to operations that do not declare one
type fallback struct {
	status  string
	desc    string
	example perr.ErrorCode
	field   string
	msg     string
	// bodyOnly limits the fallback to operations that read a request body
	bodyOnly bool
}

var fallbacks = []fallback{
	{status: "500", desc: "Internal Server Error", example: perr.ErrorCodePanic, msg: "panic recovered"},
	{status: "400", desc: "Bad Request", example: perr.ErrorCodeValidation, field: "text", msg: "text is a required field", bodyOnly: true},
	{status: "413", desc: "Request Entity Too Large", example: perr.ErrorCodeTooLarge, msg: "request body too large", bodyOnly: true},
}

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		decorate(spec, config.New().Prefix("MUZZLE_API_").MayString("DOCS_TITLE_SUFFIX", ""))

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// decorate applies the shared fixes every served document gets
func decorate(spec map[string]any, titleSuffix string) {
	ensureServers(spec, apiBase)
	if titleSuffix != "" {
		if info, ok := spec["info"].(map[string]any); ok {
			if title, ok := info["title"].(string); ok {
				info["title"] = title + " " + titleSuffix
			}
		}
	}
	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas[errorSchema]; !ok {
		schemas[errorSchema] = errorResponseSchema()
	}
	for _, fb := range fallbacks {
		eachOperation(spec, func(method string, op map[string]any) {
			if fb.bodyOnly && method != http.MethodPost && method != http.MethodPut {
				return
			}
			resps := child(op, "responses")
			if _, ok := resps[fb.status]; !ok {
				resps[fb.status] = fb.response()
			}
		})
	}
}

// ensureServers makes sure the document is OAS 3.0 with a servers array.
// The bundled UI cannot render 3.1, so it is downconverted
func ensureServers(spec map[string]any, url string) {
	if _, hasSwagger := spec["swagger"]; hasSwagger {
		delete(spec, "swagger")
	}
	if v, ok := spec["openapi"].(string); !ok || !strings.HasPrefix(v, "3.0") {
		spec["openapi"] = oasVersion
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

// errorResponseSchema mirrors the error side of the response envelope
func errorResponseSchema() map[string]any {
	str := map[string]any{"type": "string"}
	i32 := map[string]any{"type": "integer", "format": "int32"}
	return map[string]any{
		"type":        "object",
		"description": "Error envelope",
		"properties": map[string]any{
			"status_code": i32,
			"status":      str,
			"code":        i32,
			"name":        str,
			"error":       str,
			"field":       str,
			"request_id":  str,
		},
		"required": []any{"status_code", "status"},
	}
}

func (fb fallback) response() map[string]any {
	ex := map[string]any{
		"status_code": perr.HTTPStatusCode(fb.example),
		"status":      fb.desc,
		"code":        int(fb.example),
		"error":       fb.msg,
		"request_id":  exampleReqID,
	}
	if fb.field != "" {
		ex["field"] = fb.field
	}
	return map[string]any{
		"description": fb.desc,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/" + errorSchema},
				"example": ex,
			},
		},
	}
}

// eachOperation visits every operation object with its upper case method
func eachOperation(spec map[string]any, fn func(method string, op map[string]any)) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for method, opAny := range node {
			if op, ok := opAny.(map[string]any); ok {
				fn(strings.ToUpper(method), op)
			}
		}
	}
}

// child returns m[key] as an object, creating it when missing
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}
