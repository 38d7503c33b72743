package config

import "time"

const (
	DefaultQueryTimeout = 30 * time.Second
	UploadTimeout       = 2 * time.Minute

	// TokenKeyLength is the byte length of raw API token keys before
	// hex encoding (40 hex chars on the wire).
	TokenKeyLength = 20

	MaxImageSize = 10 * 1024 * 1024

	DefaultPageLimit = 20
	MaxPageLimit     = 100
)
