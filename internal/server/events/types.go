// Package events provides a unified event system for real-time catalog updates.
//
// The broker connects the coursemap change hooks to transport mechanisms
// (currently WebSocket) through a common event pipeline.
package events

import (
	"time"

	"github.com/agentstation/coursemap/pkg/catalogs"
)

// EventType represents the type of catalog event.
type EventType string

// Event types for catalog changes.
const (
	// Catalog events (from coursemap hooks).
	DepartmentUpdated = EventType(catalogs.DepartmentUpdated)
	CourseUpdated     = EventType(catalogs.CourseUpdated)
	CatalogReplaced   = EventType(catalogs.CatalogReplaced)

	// Client events (from transport layers).
	ClientConnected EventType = "client.connected"
)

// Event represents a catalog event with type, timestamp, and data.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}
