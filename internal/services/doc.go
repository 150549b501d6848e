// Package services implements the business logic layer between the HTTP
// handlers and the data processing pipeline. Handlers stay thin; upload
// handling, statistics, report generation and email delivery all live here.
//
// Services follow these principles:
//
//	1. Context propagation for cancellation and tracing
//	2. Dependency injection for loose coupling
//	3. Sentinel errors that handlers translate to API responses
package services
