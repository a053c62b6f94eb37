// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// WorkspacePrefix namespaces drafting workspaces in the cache database.
const WorkspacePrefix = "workspace:"

// MaxAudioUploadBytes bounds dictation uploads.
const MaxAudioUploadBytes = 5 << 20

// MaxPhotoUploadBytes bounds profile photo uploads.
const MaxPhotoUploadBytes = 5 << 20

// DBTimeout is the per-call timeout for single-document database operations.
const DBTimeout = 5 * time.Second

// DBListTimeout applies to queries that return many documents.
const DBListTimeout = 10 * time.Second
