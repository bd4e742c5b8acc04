package pipeline

import (
	"regexp"
	"strings"
)

// fencedBlock matches the first triple-backtick block, optionally tagged as
// python, case-insensitive and non-greedy. Taking the first fence (the one
// nearest the model's own preamble) is deliberate: a later fence could be
// an echo of fence markers from the user's request text.
var fencedBlock = regexp.MustCompile("(?i)```(?:python)?\r?\n([\\s\\S]*?)```")

// ExtractCode isolates the fenced source block from a model response. If no
// fence is present the whole response is returned trimmed, because models
// sometimes omit fencing. Idempotent on already-unfenced text.
func ExtractCode(responseText string) string {
	if m := fencedBlock.FindStringSubmatch(responseText); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(responseText)
}
