package schemagen

import (
	"strconv"
	"sync"

	"github.com/reoring/schemagen/typedesc"
)

// The derivation cache is the only long-lived shared state in the package:
// rendered text keyed by type identity, never definitions tables. Lookups
// and insertions are serialized because independent requests may race on
// the same type.
var (
	cacheMu sync.Mutex
	cache   = map[string]string{}
)

// cacheKey combines the qualified identity, the indent unit, and the
// structural fingerprint, so structurally distinct types sharing a display
// name never collide across requests.
func cacheKey(td typedesc.Type, indent string) string {
	return typedesc.Identity(td) + "\x00" + indent + "\x00" +
		strconv.FormatUint(typedesc.Fingerprint(td), 16)
}

func cacheLookup(key string) (string, bool) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	text, ok := cache[key]
	return text, ok
}

func cacheStore(key, text string) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cache[key] = text
}
