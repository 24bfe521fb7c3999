package convert

import "strings"

// Fixed failure messages for Markdown extraction. Callers match on
// these, so they are part of the contract.
const (
	ErrNoCodeBlocks = "no JSON code blocks found"
	ErrNoValidJSON  = "no valid JSON found in code blocks"
)

// ExtractJSON scans a Markdown document for triple-backtick fenced code
// blocks that are untagged or tagged "json", parses each block
// independently, and returns the parsed content pretty-printed with a
// two-space indent. Blocks that fail to parse are silently skipped. A
// single valid block yields that value; several valid blocks yield an
// array of them in document order.
func ExtractJSON(markdown string) Result {
	regions := fencedRegions(markdown)
	if len(regions) == 0 {
		return failure(ErrNoCodeBlocks)
	}

	var values Array
	for _, region := range regions {
		v, err := Parse(strings.TrimSpace(region))
		if err != nil {
			continue
		}
		values = append(values, v)
	}

	switch len(values) {
	case 0:
		return failure(ErrNoValidJSON)
	case 1:
		return success(Serialize(values[0], IndentSpaces(2)))
	default:
		return success(Serialize(values, IndentSpaces(2)))
	}
}

// fencedRegions collects the inner text of fenced blocks, pairing
// fence lines greedily left to right. Only fences with an empty or
// "json" info string open a JSON region; other languages still toggle
// fencing so their contents are never misread as openers.
func fencedRegions(markdown string) []string {
	lines := strings.Split(markdown, "\n")

	var regions []string
	var body []string
	inFence := false
	jsonFence := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			if inFence {
				if jsonFence {
					regions = append(regions, strings.Join(body, "\n"))
				}
				inFence = false
				body = nil
				continue
			}
			tag := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(trimmed, "```")))
			inFence = true
			jsonFence = tag == "" || tag == "json"
			continue
		}
		if inFence {
			body = append(body, line)
		}
	}
	// An unterminated fence is not a region.
	return regions
}
