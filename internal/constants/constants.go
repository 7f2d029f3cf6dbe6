// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

import "time"

// Matching constants
const (
	// DefaultMatchThreshold is the normalized correlation a captured photo must
	// exceed to be accepted as the same person as a reference photo
	DefaultMatchThreshold = 0.72

	// DefaultImageSize is the canonical width and height photos are resized to
	// before comparison
	DefaultImageSize = 200

	// DefaultBlurKernel is the Gaussian blur kernel size applied before resizing
	DefaultBlurKernel = 5

	// DefaultMaxPixels caps width*height of a photo before it is decoded
	DefaultMaxPixels = 40_000_000
)

// Cooldown constants
const (
	// DefaultCooldownWindow suppresses repeated attendance for the same identity
	DefaultCooldownWindow = 300 * time.Second
)

// Storage constants
const (
	// DefaultProfilesDir holds one reference photo per registered identity
	DefaultProfilesDir = "photos/profiles"

	// DefaultLogsDir holds the per-day attendance CSV files
	DefaultLogsDir = "attendance_logs"

	// ProfileExt is the extension used when a reference photo is written
	ProfileExt = ".jpg"
)

// Remote sync constants
const (
	// DefaultSheetsRange is the A1 range rows are appended to
	DefaultSheetsRange = "Sheet1"

	// DefaultSheetsCredentials is the service account key file
	DefaultSheetsCredentials = "credentials.json"

	// DefaultSyncTimeout bounds a single remote append
	DefaultSyncTimeout = 10 * time.Second
)

// HTTP constants
const (
	// MaxRequestBodySize caps JSON bodies carrying base64 photos
	MaxRequestBodySize = 20 << 20

	// DefaultRecognizeRate is the sustained /recognize requests per second
	DefaultRecognizeRate = 5

	// DefaultRecognizeBurst is the token bucket size for /recognize
	DefaultRecognizeBurst = 10
)

// Response messages returned to clients
const (
	MsgMissingNamePhoto = "Missing Name/Photo"
	MsgMissingName      = "Missing Name"
	MsgAlreadyLogged    = "Already logged"
	MsgUnknown          = "Unknown"
	MsgTooManyRequests  = "Too many requests"
	MsgInvalidBody      = "invalid request body"
)
