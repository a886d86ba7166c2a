package config

import "time"

const (
	// Redemption codes
	RedemptionCodeLen        = 8
	RedemptionCodeMaxRetries = 5

	// Store defaults
	DefaultConversionRate = 100 // points per £1 of reward
	DefaultPointsPerVisit = 10

	// Auth
	MinPasswordLen  = 8
	SessionTokenLen = 32 // bytes of entropy before encoding

	// HTTP server timeouts
	ReadHeaderTimeout = 5 * time.Second
	ShutdownTimeout   = 10 * time.Second

	// Link preview
	PreviewFetchTimeout = 10 * time.Second
	PreviewMaxBodySize  = 1 << 20 // 1 MiB

	// Pagination
	DefaultPageSize = 50
	MaxPageSize     = 200
)
