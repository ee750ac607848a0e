// Package http implements the HTTP request handlers of the dashboard API.
// It is a thin layer between transport and the service layer: handlers
// parse and validate requests, delegate to services, and translate service
// errors into RFC 7807 problem responses.
//
// Each handler owns a chi sub-router returned by its Routes method, which
// the application mounts under /api. The dashboard shell itself is served
// by DashboardHandler from an embedded template, and WebSocketHandler
// upgrades /ws connections onto the hub so open pages learn about dataset
// replacements.
package http
