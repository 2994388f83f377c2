/*
Copyright 2025 David Arnold
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at
    http://www.apache.org/licenses/LICENSE-2.0
Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package core

import (
	"strings"
	"unicode"
)

// ScanBracketed returns the length of the bracketed run at the start of s,
// counting nested '[' and ']' until the depth returns to zero. When s does
// not start with '[' it returns 0, false. When the brackets never balance
// the whole of s is consumed and closed is false.
func ScanBracketed(s string) (n int, closed bool) {
	if !strings.HasPrefix(s, "[") {
		return 0, false
	}

	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return len(s), false
}

// findFlag returns the index of the first occurrence of the flag marker
// that stands as its own token, or -1.
func findFlag(s, marker string) int {
	offset := 0
	for {
		i := strings.Index(s[offset:], marker)
		if i < 0 {
			return -1
		}
		i += offset
		end := i + len(marker)
		if tokenStart(s, i) && (end == len(s) || isSpace(s[end]) || s[end] == '=') {
			return i
		}
		offset = i + 1
	}
}

// hasFlag reports whether the flag marker is present as its own token.
func hasFlag(s, marker string) bool {
	return findFlag(s, marker) >= 0
}

// nextFlagMarker returns the index of the next token starting with "--",
// or len(s) when there is none.
func nextFlagMarker(s string) int {
	offset := 0
	for {
		i := strings.Index(s[offset:], "--")
		if i < 0 {
			return len(s)
		}
		i += offset
		if tokenStart(s, i) {
			return i
		}
		offset = i + 2
	}
}

// flagRegion returns the text following marker up to the next flag marker.
func flagRegion(s, marker string) (string, bool) {
	i := findFlag(s, marker)
	if i < 0 {
		return "", false
	}
	rest := s[i+len(marker):]
	return strings.TrimSpace(rest[:nextFlagMarker(rest)]), true
}

func tokenStart(s string, i int) bool {
	return i == 0 || isSpace(s[i-1])
}

func isSpace(b byte) bool {
	return unicode.IsSpace(rune(b))
}
