// File: hash.go
// Title: Content Hash
// Description: Fingerprints a composite for grouping equal occurrences.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation
// - 2026-10-16 v0.1.1: Hash the unescaped JSON encoding

package enhanced

import (
	"crypto/md5"
	"encoding/hex"

	"github.com/msto63/errenhanced/pkg/enhancer/identifiers"
	"github.com/msto63/errenhanced/pkg/enhancer/systemcontext"
)

// volatile fields differ between occurrences of the same error
var volatile = []string{
	identifiers.FieldID,
	identifiers.FieldTimestamp,
	identifiers.FieldHighPrecisionTimestamp,
	systemcontext.FieldSystemUptime,
	FieldStack,
}

// Hash returns the hex MD5 of the composite's content, ignoring volatile
// fields such as the id, timestamps, uptime and stack. Two occurrences of
// the same failure produce the same hash.
func (e *Error) Hash() string {
	snap := e.buildSnapshot()
	for _, name := range volatile {
		snap.Delete(name)
	}

	data, err := marshalJSON(snap)
	if err != nil {
		data = []byte(e.Error())
	}
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
