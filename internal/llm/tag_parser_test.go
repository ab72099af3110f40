package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrypster/journa/pkg/types"
)

func TestParsePersonTags(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     []struct{ contact, text string }
	}{
		{
			name: "multiple tags same contact",
			response: `<person name="John">John seemed tired but was in good spirits.</person>
<person name="John">John mentioned he wants to move to Austin.</person>`,
			want: []struct{ contact, text string }{
				{"John", "John seemed tired but was in good spirits."},
				{"John", "John mentioned he wants to move to Austin."},
			},
		},
		{
			name:     "surrounding prose ignored",
			response: `Here are the results: <person name="Maya">Maya got the job.</person> Done!`,
			want: []struct{ contact, text string }{
				{"Maya", "Maya got the job."},
			},
		},
		{
			name:     "body spanning lines",
			response: "<person name=\"Sam\">Sam is training\nfor a marathon.</person>",
			want: []struct{ contact, text string }{
				{"Sam", "Sam is training\nfor a marathon."},
			},
		},
		{
			name:     "whitespace-only body dropped",
			response: `<person name="John">   </person><person name="Maya">Maya called.</person>`,
			want: []struct{ contact, text string }{
				{"Maya", "Maya called."},
			},
		},
		{
			name:     "unclosed tag dropped",
			response: `<person name="John">John said something`,
			want:     nil,
		},
		{
			name:     "missing name attribute dropped",
			response: `<person>John said something</person>`,
			want:     nil,
		},
		{
			name:     "no tags",
			response: "Nothing to report.",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := ParsePersonTags(tt.response)
			require.Len(t, segments, len(tt.want))
			for i, want := range tt.want {
				assert.Equal(t, want.contact, segments[i].ContactName)
				assert.Equal(t, want.text, segments[i].Text)
				assert.Equal(t, types.SegmentPerson, segments[i].Kind())
				assert.NotEmpty(t, segments[i].ID)
			}
		})
	}
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		name     string
		response string
		kind     types.SegmentType
		want     []string
	}{
		{
			name:     "date tags in order",
			response: "<date>Dinner this Friday at 7pm.</date>\n<date>Dentist on March 5th.</date>",
			kind:     types.SegmentDate,
			want:     []string{"Dinner this Friday at 7pm.", "Dentist on March 5th."},
		},
		{
			name:     "log summary trimmed",
			response: "<log>\n  Caught up with old friends over coffee.\n</log>",
			kind:     types.SegmentLog,
			want:     []string{"Caught up with old friends over coffee."},
		},
		{
			name:     "empty body dropped",
			response: "<date></date>",
			kind:     types.SegmentDate,
			want:     nil,
		},
		{
			name:     "mismatched close dropped",
			response: "<date>Friday</log>",
			kind:     types.SegmentDate,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := ParseTag(tt.response, tt.kind)
			require.Len(t, segments, len(tt.want))
			for i, want := range tt.want {
				assert.Equal(t, want, segments[i].Text)
				assert.Equal(t, tt.kind, segments[i].Kind())
			}
		})
	}
}

func TestParseAllPreservesDocumentOrder(t *testing.T) {
	response := `<log>Caught up with Maya about her move.</log>
<person name="Maya">Maya is moving to Denver in June.</person>
<date>Helping Maya pack next Saturday.</date>
<person name="Maya">Maya seemed excited about the new job.</person>`

	segments := ParseAll(response)
	require.Len(t, segments, 4)

	assert.Equal(t, types.SegmentLog, segments[0].Kind())
	assert.Equal(t, types.SegmentPerson, segments[1].Kind())
	assert.Equal(t, "Maya", segments[1].ContactName)
	assert.Equal(t, types.SegmentDate, segments[2].Kind())
	assert.Equal(t, types.SegmentPerson, segments[3].Kind())
	assert.Equal(t, "Maya seemed excited about the new job.", segments[3].Text)
}

func TestParseAllEmptyResponse(t *testing.T) {
	assert.Empty(t, ParseAll(""))
	assert.Empty(t, ParseAll("no tags here"))
}
