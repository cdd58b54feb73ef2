package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexaid/counsel/fault"
)

func TestStripTags(t *testing.T) {
	doc := `<html><head><title>Ordinance</title><style>p{color:red}</style></head>
	<body><script>var x = 1;</script><h1>Section 41</h1><p>Parking and waiting in prohibited areas</p></body></html>`

	text := StripTags(doc)
	assert.Contains(t, text, "Section 41")
	assert.Contains(t, text, "Parking and waiting in prohibited areas")
	assert.NotContains(t, text, "var x")
	assert.NotContains(t, text, "color:red")
	assert.NotContains(t, text, "<")
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>hello</p><p>world</p></body></html>"))
	}))
	defer srv.Close()

	s := New()

	text, err := s.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestFetchRemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	s := New()

	_, err := s.Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, fault.ErrUpstream)
}
