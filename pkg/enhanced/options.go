// File: options.go
// Title: Composite Options
// Description: Logger, metrics and serializer defaults carried by every
//              composite error.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation
// - 2026-10-16 v0.1.1: Default the XML indent

package enhanced

import (
	"github.com/msto63/errenhanced/pkg/core/config"
	"github.com/msto63/errenhanced/pkg/core/log"
	"github.com/msto63/errenhanced/pkg/core/metrics"
)

// Options are shared by a composite and every copy derived from it
type Options struct {
	Logger   *log.Logger
	Metrics  *metrics.Recorder
	Snapshot string // config.SnapshotCached or config.SnapshotFresh

	CSVDelimiter string
	CSVQuoted    bool
	XMLIndent    string // defaults to two spaces
	CompactXML   bool   // single-line XML, XMLIndent is ignored
}

// DefaultOptions returns options matching config.DefaultSettings with the
// package default logger and no metrics
func DefaultOptions() Options {
	return OptionsFromSettings(config.DefaultSettings(), log.GetDefault(), nil)
}

// OptionsFromSettings builds options from typed settings
func OptionsFromSettings(s config.Settings, logger *log.Logger, recorder *metrics.Recorder) Options {
	if logger == nil {
		logger = log.GetDefault()
	}
	return Options{
		Logger:       logger,
		Metrics:      recorder,
		Snapshot:     s.Serializer.Snapshot,
		CSVDelimiter: s.Serializer.CSVDelimiter,
		CSVQuoted:    s.Serializer.CSVQuoted,
		XMLIndent:    s.Serializer.XMLIndent,
		CompactXML:   s.Serializer.XMLIndent == "",
	}
}

func (o Options) normalized() Options {
	d := config.DefaultSettings().Serializer
	if o.Logger == nil {
		o.Logger = log.GetDefault()
	}
	if o.Snapshot == "" {
		o.Snapshot = d.Snapshot
	}
	if o.CSVDelimiter == "" {
		o.CSVDelimiter = d.CSVDelimiter
	}
	if o.XMLIndent == "" {
		o.XMLIndent = d.XMLIndent
	}
	return o
}
