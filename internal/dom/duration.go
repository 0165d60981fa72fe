// Package dom mounts the page state onto the browser DOM in the js/wasm
// build.
package dom

import (
	"strconv"
	"strings"
	"time"
)

// longestTransition parses a computed transition-duration value such as
// "0.2s" or "0s, 150ms" and returns the longest entry. Unparseable entries
// count as zero.
func longestTransition(css string) time.Duration {
	var longest time.Duration
	for _, part := range strings.Split(css, ",") {
		part = strings.TrimSpace(part)
		var d time.Duration
		switch {
		case strings.HasSuffix(part, "ms"):
			v, err := strconv.ParseFloat(strings.TrimSuffix(part, "ms"), 64)
			if err != nil {
				continue
			}
			d = time.Duration(v * float64(time.Millisecond))
		case strings.HasSuffix(part, "s"):
			v, err := strconv.ParseFloat(strings.TrimSuffix(part, "s"), 64)
			if err != nil {
				continue
			}
			d = time.Duration(v * float64(time.Second))
		}
		if d > longest {
			longest = d
		}
	}
	return longest
}

// exitGrace is added to the computed duration before giving up on a
// transitionend event that never arrives.
const exitGrace = 50 * time.Millisecond
