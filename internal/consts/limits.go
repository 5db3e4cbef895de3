package consts

import "time"

// Input limits
const (
	// MaxInputLength is the maximum number of runes accepted into the calculator buffer
	// and the longest expression the HTTP API evaluates
	MaxInputLength = 256
	// MaxRequestBodyBytes caps the size of HTTP request bodies
	MaxRequestBodyBytes = 4 * 1024
)

// Display defaults
const (
	// DefaultPrecision selects the shortest round-trip representation of results
	DefaultPrecision = -1
	// ClassicPrecision gives the fixed six fractional digits of classic keypad displays
	ClassicPrecision = 6
	// ErrorDisplay is shown in place of a result when evaluation fails
	ErrorDisplay = "Error"
)

// History defaults
const (
	// DefaultHistoryLimit is the number of entries kept in the history database
	DefaultHistoryLimit = 500
	// HistoryPanelEntries is the number of entries shown in the TUI history panel
	HistoryPanelEntries = 8
	// DefaultHistoryListLimit is the number of entries printed by the history command
	DefaultHistoryListLimit = 20
)

// Server defaults
const (
	// DefaultServeAddr is the listen address of the HTTP API
	DefaultServeAddr = "127.0.0.1:8080"
	// ServerReadTimeout bounds reading a request
	ServerReadTimeout = 5 * time.Second
	// ServerWriteTimeout bounds writing a response
	ServerWriteTimeout = 10 * time.Second
	// ServerShutdownTimeout bounds graceful shutdown
	ServerShutdownTimeout = 5 * time.Second
)

// Timeouts for various operations
const (
	// StatusDisplayDuration is how long transient TUI status messages stay visible
	StatusDisplayDuration = 3 * time.Second
	// ConfigReloadDebounce groups bursts of file events into one reload
	ConfigReloadDebounce = 100 * time.Millisecond
)

// Buffer sizes for various operations
const (
	// BufferSize64KB is 64 kilobytes
	BufferSize64KB = 64 * 1024
)
