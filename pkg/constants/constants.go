// Package constants provides shared constants used throughout the coursemap codebase.
// This includes timeouts, file permissions, defaults and the response
// messages the HTTP API returns verbatim.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// ReadTimeout is the default HTTP server read timeout
	ReadTimeout = 10 * time.Second

	// WriteTimeout is the default HTTP server write timeout
	WriteTimeout = 10 * time.Second

	// IdleTimeout is the default HTTP server idle timeout
	IdleTimeout = 60 * time.Second

	// ShutdownTimeout bounds graceful HTTP shutdown
	ShutdownTimeout = 10 * time.Second

	// WebSocketWriteWait is the time allowed to write a message to a peer
	WebSocketWriteWait = 10 * time.Second

	// WebSocketPongWait is the time allowed to read the next pong from a peer
	WebSocketPongWait = 60 * time.Second

	// WebSocketPingPeriod must be less than WebSocketPongWait
	WebSocketPingPeriod = (WebSocketPongWait * 9) / 10
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define various limits and capacities
const (
	// ChannelBufferSize is the default buffer size for event channels
	ChannelBufferSize = 256

	// WebSocketMaxMessageSize is the largest inbound frame accepted from clients
	WebSocketMaxMessageSize = 512
)

// Cache constants
const (
	// CacheTTL is the default time-to-live for cached responses
	CacheTTL = 5 * time.Minute

	// CacheCleanupInterval is how often to clean expired cache entries
	CacheCleanupInterval = 10 * time.Minute
)

// Default values
const (
	// DefaultHost is the interface the API binds to
	DefaultHost = "localhost"

	// DefaultPort is the port the API listens on
	DefaultPort = 8080

	// DefaultDataFile is the catalog file used when none is configured
	DefaultDataFile = "./coursemap.bin"

	// DefaultConfigFile is the config file name looked up in the working and home directories
	DefaultConfigFile = ".coursemap"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "COURSEMAP"
)

// API response messages
const (
	MsgDepartmentNotFound = "Department Not Found"
	MsgCourseNotFound     = "Course Not Found"
	MsgMissingParam       = "URL parameters must include "
	MsgInvalidCount       = "count must be an integer"

	// No trailing period, unlike MsgAttributeUpdated.
	MsgMajorUpdated     = "Attribute was updated successfully"
	MsgAttributeUpdated = "Attribute was updated successfully."

	MsgStudentEnrolled    = "Student has been enrolled"
	MsgStudentNotEnrolled = "Student has not been enrolled"
	MsgStudentDropped     = "Student has been dropped"
	MsgStudentNotDropped  = "Student has not been dropped"

	MsgWelcome = "Welcome, in order to make an API call direct your browser or Postman to an endpoint " +
		"\n\n This can be done using the following format: \n\n http:127.0.0.1:8080/endpoint?arg=value"
)
