// ABOUTME: Terminal cell width of plain text with grapheme-cluster segmentation
// ABOUTME: Cluster splitting and column truncation used by the content renderer

package width

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Cluster is one user-perceived character and the cells it occupies.
type Cluster struct {
	Text  string
	Width int
}

// Of returns the number of terminal cells s occupies. s must not contain
// escape sequences; callers validate that before measuring.
func Of(s string) int {
	if isPlainASCII(s) {
		return len(s)
	}
	w := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		w += clusterWidth(cluster)
	}
	return w
}

// Clusters splits s into grapheme clusters with their widths.
func Clusters(s string) []Cluster {
	if isPlainASCII(s) {
		out := make([]Cluster, len(s))
		for i := 0; i < len(s); i++ {
			out[i] = Cluster{Text: s[i : i+1], Width: 1}
		}
		return out
	}
	out := make([]Cluster, 0, utf8.RuneCountInString(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, Cluster{Text: cluster, Width: clusterWidth(cluster)})
	}
	return out
}

// Truncate returns the longest prefix of s that fits in cols cells. Wide
// clusters that would straddle the limit are dropped whole.
func Truncate(s string, cols int) string {
	if cols <= 0 {
		return ""
	}
	if isPlainASCII(s) {
		if len(s) <= cols {
			return s
		}
		return s[:cols]
	}
	used := 0
	end := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		cluster, next, _, newState := uniseg.FirstGraphemeClusterInString(rest, state)
		cw := clusterWidth(cluster)
		if used+cw > cols {
			break
		}
		used += cw
		end += len(cluster)
		rest, state = next, newState
	}
	return s[:end]
}

// isPlainASCII reports whether s is printable ASCII only.
func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}

// clusterWidth measures a cluster by its leading rune.
func clusterWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(cluster)
	return runewidth.RuneWidth(r)
}
