// Package log provides the structured logger used by errenhanced.
//
// Package: log
// Title: errenhanced Structured Logging
// Description: Leveled, structured logging with JSON and text output. The
//              serializers and the application-state enhancer log every
//              failure here immediately before returning the wrapped error.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-16
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging
// - 2026-10-16 v0.2.0: Trimmed to the sinks needed by error enrichment
//
// Usage:
//
//	logger := log.NewWithConfig(log.Config{Level: log.LevelDebug, Format: log.FormatText})
//	logger.WithName("serializer").ErrorWithErr("serialization failed", err, log.Fields{"format": "XML"})
package log
