package llm

import (
	"regexp"
	"strings"

	"github.com/scrypster/journa/pkg/types"
)

// Tag markup parsing. Models answer extraction prompts with
// <person name="...">...</person>, <date>...</date>, and <log>...</log>
// tags; anything outside well-formed tags is ignored, and tags whose body
// trims to empty are dropped. Malformed markup never produces an error,
// only fewer segments.

var (
	personTagRe = regexp.MustCompile(`(?s)<person name="([^"]+)">(.*?)</person>`)
	dateTagRe   = regexp.MustCompile(`(?s)<date>(.*?)</date>`)
	logTagRe    = regexp.MustCompile(`(?s)<log>(.*?)</log>`)
)

// ParsePersonTags extracts person segments from a model response. Each
// well-formed person tag yields one segment carrying the tag's contact name.
func ParsePersonTags(response string) []types.Segment {
	matches := personTagRe.FindAllStringSubmatch(response, -1)
	segments := make([]types.Segment, 0, len(matches))
	for _, m := range matches {
		text := strings.TrimSpace(m[2])
		if text == "" {
			continue
		}
		seg := types.NewSegment(text, types.SegmentPerson)
		seg.ContactName = m[1]
		segments = append(segments, *seg)
	}
	return segments
}

// ParseTag extracts segments of the given kind from a model response. Person
// segments parsed this way carry no contact name; use ParsePersonTags for
// the attributed form.
func ParseTag(response string, kind types.SegmentType) []types.Segment {
	var re *regexp.Regexp
	switch kind {
	case types.SegmentPerson:
		re = regexp.MustCompile(`(?s)<person>(.*?)</person>`)
	case types.SegmentDate:
		re = dateTagRe
	default:
		re = logTagRe
	}

	matches := re.FindAllStringSubmatch(response, -1)
	segments := make([]types.Segment, 0, len(matches))
	for _, m := range matches {
		text := strings.TrimSpace(m[1])
		if text == "" {
			continue
		}
		segments = append(segments, *types.NewSegment(text, kind))
	}
	return segments
}

// ParseAll extracts person, date, and log segments from a single combined
// response, preserving document order across the three tag kinds. Used for
// import summaries where one model call produces all segment kinds at once.
func ParseAll(response string) []types.Segment {
	type located struct {
		start   int
		segment types.Segment
	}
	var found []located

	for _, idx := range personTagRe.FindAllStringSubmatchIndex(response, -1) {
		name := response[idx[2]:idx[3]]
		text := strings.TrimSpace(response[idx[4]:idx[5]])
		if text == "" {
			continue
		}
		seg := types.NewSegment(text, types.SegmentPerson)
		seg.ContactName = name
		found = append(found, located{start: idx[0], segment: *seg})
	}
	for _, idx := range dateTagRe.FindAllStringSubmatchIndex(response, -1) {
		text := strings.TrimSpace(response[idx[2]:idx[3]])
		if text == "" {
			continue
		}
		found = append(found, located{start: idx[0], segment: *types.NewSegment(text, types.SegmentDate)})
	}
	for _, idx := range logTagRe.FindAllStringSubmatchIndex(response, -1) {
		text := strings.TrimSpace(response[idx[2]:idx[3]])
		if text == "" {
			continue
		}
		found = append(found, located{start: idx[0], segment: *types.NewSegment(text, types.SegmentLog)})
	}

	// insertion sort keeps document order stable for equal offsets
	for i := 1; i < len(found); i++ {
		for j := i; j > 0 && found[j].start < found[j-1].start; j-- {
			found[j], found[j-1] = found[j-1], found[j]
		}
	}

	segments := make([]types.Segment, 0, len(found))
	for _, f := range found {
		segments = append(segments, f.segment)
	}
	return segments
}
