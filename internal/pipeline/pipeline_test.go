package pipeline

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecofinds/catalogue-service/internal/catalogue"
	"github.com/ecofinds/catalogue-service/internal/fetch"
	xmlparser "github.com/ecofinds/catalogue-service/internal/parsers/xml"
	"github.com/ecofinds/catalogue-service/internal/store"
)

// recordingStore captures upserts in call order and can be told to fail on a
// specific product id.
type recordingStore struct {
	products map[string]catalogue.Product
	order    []string
	feeds    []string
	failOn   string
}

func newRecordingStore() *recordingStore {
	return &recordingStore{products: make(map[string]catalogue.Product)}
}

func (s *recordingStore) UpsertProduct(ctx context.Context, p catalogue.Product, sourceFeed string) error {
	if s.failOn != "" && p.ID == s.failOn {
		return errors.New("simulated persistence failure")
	}
	p.SourceFeed = &sourceFeed
	s.products[p.ID] = p
	s.order = append(s.order, p.ID)
	return nil
}

func (s *recordingStore) RegisterFeed(ctx context.Context, url string) error {
	s.feeds = append(s.feeds, url)
	return nil
}

func (s *recordingStore) QueryProducts(ctx context.Context, f store.Filters) ([]catalogue.Product, error) {
	out := make([]catalogue.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func feedServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			http.Error(w, http.StatusText(status), status)
			return
		}
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(body))
	}))
}

func newTestImporter(cat store.Catalogue) *Importer {
	return NewImporter(cat, fetch.NewClient(5*time.Second), zerolog.Nop())
}

func TestRunSingleRSSItem(t *testing.T) {
	srv := feedServer(t, http.StatusOK, `<?xml version="1.0"?>
		<rss xmlns:g="http://base.google.com/ns/1.0"><channel>
			<item>
				<title>Recycled tote</title>
				<link>https://x/1</link>
				<g:price>9.99 USD</g:price>
			</item>
		</channel></rss>`)
	defer srv.Close()

	cat := newRecordingStore()
	result, err := newTestImporter(cat).Run(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, srv.URL, result.FeedURL)
	assert.Equal(t, 1, result.Count)
	require.Len(t, result.Products, 1)

	p := result.Products[0]
	assert.Equal(t, "feed-0", p.ID)
	assert.Equal(t, "Recycled tote", p.Title)
	assert.Equal(t, "https://x/1", p.URL)
	require.NotNil(t, p.Price)
	assert.Equal(t, 9.99, *p.Price)
	require.NotNil(t, p.Currency)
	assert.Equal(t, "USD", *p.Currency)
	assert.Equal(t, []string{catalogue.TagRecycled}, p.Tags)

	assert.Equal(t, []string{srv.URL}, cat.feeds)
	stored := cat.products["feed-0"]
	require.NotNil(t, stored.SourceFeed)
	assert.Equal(t, srv.URL, *stored.SourceFeed)
}

func TestRunFetchFailureNoStoreMutation(t *testing.T) {
	srv := feedServer(t, http.StatusNotFound, "")
	defer srv.Close()

	cat := newRecordingStore()
	_, err := newTestImporter(cat).Run(context.Background(), srv.URL)

	require.Error(t, err)

	var statusErr *fetch.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Status)

	assert.Empty(t, cat.products, "a failed fetch must not touch the store")
	assert.Empty(t, cat.feeds)
}

func TestRunParseFailure(t *testing.T) {
	srv := feedServer(t, http.StatusOK, `<rss><channel><item></channel>`)
	defer srv.Close()

	cat := newRecordingStore()
	_, err := newTestImporter(cat).Run(context.Background(), srv.URL)

	require.Error(t, err)

	var parseErr *xmlparser.ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Empty(t, cat.products)
}

func TestRunUnrecognizedShapeYieldsZeroProducts(t *testing.T) {
	srv := feedServer(t, http.StatusOK, `<catalog><thing><title>A</title></thing></catalog>`)
	defer srv.Close()

	cat := newRecordingStore()
	result, err := newTestImporter(cat).Run(context.Background(), srv.URL)

	require.NoError(t, err, "an unrecognized schema is not an error")
	assert.Equal(t, 0, result.Count)
	assert.Empty(t, cat.products)
	// The feed itself is still registered.
	assert.Equal(t, []string{srv.URL}, cat.feeds)
}

// Two raw items sharing an id collapse to one stored product reflecting the
// later item in the sequence.
func TestRunDuplicateIDLastWins(t *testing.T) {
	srv := feedServer(t, http.StatusOK, `<rss xmlns:g="http://base.google.com/ns/1.0"><channel>
		<item><g:id>dup</g:id><title>First</title><link>https://x/1</link></item>
		<item><g:id>dup</g:id><title>Second</title><link>https://x/2</link></item>
	</channel></rss>`)
	defer srv.Close()

	cat := newRecordingStore()
	result, err := newTestImporter(cat).Run(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)

	require.Len(t, cat.products, 1)
	assert.Equal(t, "Second", cat.products["dup"].Title)
}

// A persistence failure on item N leaves items 1..N-1 written and fails the
// run as a whole; nothing is rolled back.
func TestRunPersistFailureKeepsPriorUpserts(t *testing.T) {
	srv := feedServer(t, http.StatusOK, `<rss xmlns:g="http://base.google.com/ns/1.0"><channel>
		<item><g:id>a</g:id><title>A</title><link>https://x/a</link></item>
		<item><g:id>b</g:id><title>B</title><link>https://x/b</link></item>
		<item><g:id>c</g:id><title>C</title><link>https://x/c</link></item>
	</channel></rss>`)
	defer srv.Close()

	cat := newRecordingStore()
	cat.failOn = "b"

	_, err := newTestImporter(cat).Run(context.Background(), srv.URL)

	require.Error(t, err)

	var persistErr *PersistError
	require.ErrorAs(t, err, &persistErr)
	assert.Equal(t, "b", persistErr.Key)

	assert.Equal(t, []string{"a"}, cat.order, "items before the failure stay written")
	_, hasC := cat.products["c"]
	assert.False(t, hasC, "items after the failure are never attempted")
}

func TestRunReadOnlyStore(t *testing.T) {
	srv := feedServer(t, http.StatusOK, `<rss><channel>
		<item><title>A</title><link>https://x/a</link></item>
	</channel></rss>`)
	defer srv.Close()

	_, err := newTestImporter(store.NewMemory()).Run(context.Background(), srv.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrReadOnly)
}

func TestRunItemsWithMissingFieldsShrinkResult(t *testing.T) {
	srv := feedServer(t, http.StatusOK, `<rss><channel>
		<item><title>Kept</title><link>https://x/1</link></item>
		<item><title>Dropped, no link</title></item>
	</channel></rss>`)
	defer srv.Close()

	cat := newRecordingStore()
	result, err := newTestImporter(cat).Run(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Len(t, cat.products, 1)
}
