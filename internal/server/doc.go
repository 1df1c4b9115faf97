// Package server exposes the floor plan analysis pipeline over HTTP.
//
// The API accepts multipart image uploads and JSON bodies and always
// answers in JSON, except for /analyze/image which streams the
// annotated floor plan back as PNG. Error responses carry a single
// "detail" field with a human-readable message: validation problems
// are 400s, upstream collaborator failures are 502s, and anything
// else is a 500.
//
// # Endpoints
//
//	POST /analyze           full floor plan analysis with room buttons
//	POST /analyze/image     annotated floor plan as a PNG image
//	POST /analyze-furniture furniture identification for a room photo
//	POST /search-products   product search for one furniture item
//	POST /analyze-and-shop  furniture analysis with product matches
//	POST /visual-search     reverse image product search
//	GET  /health            service health probe
//	GET  /metrics           Prometheus metrics
//	GET  /                  service banner and endpoint map
//
// All endpoints allow cross-origin requests. The server counts
// requests, errors, and in-flight work through the metrics package.
package server
