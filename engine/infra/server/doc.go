// Package server wires the gin engine: request ids, request logging, HTTP
// metrics, health, the Prometheus endpoint and the domain routers.
package server
