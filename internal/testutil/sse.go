package testutil

import (
	"strings"
)

// ParseEvents splits a server-sent event body into the payloads of its
// "data: " lines.
//
// Events are separated by a blank line. Anything after the last separator is
// returned in rest so callers can detect a truncated stream.
func ParseEvents(body string) (payloads []string, rest string) {
	blocks := strings.Split(body, "\n\n")
	rest = blocks[len(blocks)-1]
	for _, block := range blocks[:len(blocks)-1] {
		for _, line := range strings.Split(block, "\n") {
			if data, ok := strings.CutPrefix(line, "data: "); ok {
				payloads = append(payloads, data)
			}
		}
	}
	return payloads, rest
}
