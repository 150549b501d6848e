// Package app wires configuration, services and HTTP routing into a
// runnable dashboard application with graceful shutdown.
package app
