// Package swaggerkit serves the OpenAPI document and Swagger UI
package swaggerkit

import (
	"net/http"

	phttp "muzzle/internal/platform/net/http"
)

const (
	docsPrefix = "/api/docs"
	docJSON    = docsPrefix + "/doc.json"
)

// Mount the Swagger UI and JSON spec if enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get(docsPrefix, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, docsPrefix+"/", http.StatusPermanentRedirect)
	})
	r.Get(docJSON, serveDocJSON())
	phttp.MountSwagger(r, docsPrefix, docJSON, true)
}
