package http

import (
	httpSwagger "github.com/swaggo/http-swagger"
)

// MountSwagger serves Swagger UI under prefix, reading the document from docURL
func MountSwagger(r Router, prefix, docURL string, enabled bool) {
	if !enabled {
		return
	}
	r.Handle(prefix+"/*", httpSwagger.Handler(httpSwagger.URL(docURL)))
}
