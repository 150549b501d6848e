// Package http contains the chi HTTP handlers for the dashboard API.
// Handlers stay thin: they decode requests, call the service layer, and
// translate service errors into the structured API error envelope.
package http
