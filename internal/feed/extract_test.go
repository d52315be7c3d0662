package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xmlparser "github.com/ecofinds/catalogue-service/internal/parsers/xml"
)

func mustParse(t *testing.T, doc string) map[string]interface{} {
	t.Helper()
	parsed, err := xmlparser.Parse(doc)
	require.NoError(t, err)
	return parsed
}

func TestExtractItemsVariants(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want int
	}{
		{
			name: "RSS channel items",
			doc: `<rss><channel>
				<item><title>A</title></item>
				<item><title>B</title></item>
			</channel></rss>`,
			want: 2,
		},
		{
			name: "Atom entries",
			doc: `<feed xmlns="http://www.w3.org/2005/Atom">
				<entry><title>A</title></entry>
				<entry><title>B</title></entry>
				<entry><title>C</title></entry>
			</feed>`,
			want: 3,
		},
		{
			name: "Generic products",
			doc:  `<products><product><title>A</title></product></products>`,
			want: 1,
		},
		{
			name: "Generic productfeed",
			doc:  `<productfeed><product><title>A</title></product></productfeed>`,
			want: 1,
		},
		{
			name: "Unrecognized shape yields zero items",
			doc:  `<catalog><entry><title>A</title></entry></catalog>`,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := ExtractItems(mustParse(t, tt.doc))
			assert.Len(t, items, tt.want)
		})
	}
}

func TestExtractItemsWrapsSingleNode(t *testing.T) {
	doc := mustParse(t, `<rss><channel><item><title>Only</title></item></channel></rss>`)

	items := ExtractItems(doc)
	require.Len(t, items, 1, "single item node should be wrapped as a one-element sequence")
}

// A document matching more than one variant must resolve to the earliest in
// the fixed priority order, and only that variant's items are returned.
func TestExtractItemsVariantPriority(t *testing.T) {
	doc := mustParse(t, `<feed xmlns="http://www.w3.org/2005/Atom">
		<entry><title>Atom entry</title></entry>
	</feed>
	<products>
		<product><title>Generic one</title></product>
		<product><title>Generic two</title></product>
	</products>`)

	items := ExtractItems(doc)
	require.Len(t, items, 1)

	title, ok := xmlparser.Text(items[0].(map[string]interface{})["title"])
	require.True(t, ok)
	assert.Equal(t, "Atom entry", title)
}
