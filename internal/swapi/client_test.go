package swapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchPage(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/planets/":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"count":2,"next":"http://` + r.Host + `/planets/?page=2","results":[{"name":"Tatooine","population":200000,"climate":"arid","terrain":null}]}`))
		case "/broken/":
			_, _ = w.Write([]byte(`{"results":`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", "Mozilla/5.0", 2*time.Second)
	ctx := context.Background()

	t.Run("parses results and next", func(t *testing.T) {
		page, err := client.FetchPage(ctx, client.FirstPage(ResourcePlanets))
		require.NoError(t, err)
		require.Len(t, page.Results, 1)
		require.NotNil(t, page.Next)
		assert.True(t, strings.HasSuffix(*page.Next, "/planets/?page=2"))
		assert.Equal(t, "Tatooine", Text(page.Results[0]["name"]))
		assert.Equal(t, "200000", Text(page.Results[0]["population"]))
		assert.Equal(t, "", Text(page.Results[0]["terrain"]))
		assert.Equal(t, "", Text(page.Results[0]["missing"]))
		assert.Equal(t, "Mozilla/5.0", gotUA)
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		_, err := client.FetchPage(ctx, srv.URL+"/nope/")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status 404")
	})

	t.Run("malformed body is an error", func(t *testing.T) {
		_, err := client.FetchPage(ctx, srv.URL+"/broken/")
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := client.FetchPage(cctx, client.FirstPage(ResourcePlanets))
		assert.Error(t, err)
	})
}

func TestClient_FirstPage(t *testing.T) {
	client := NewClient("https://swapi.dev/api/", "", time.Second)
	assert.Equal(t, "https://swapi.dev/api/people/", client.FirstPage(ResourcePeople))
}

func TestDecodePage(t *testing.T) {
	page, err := DecodePage(strings.NewReader(`{"next":null,"results":[]}`))
	require.NoError(t, err)
	assert.Nil(t, page.Next)
	assert.Empty(t, page.Results)

	page, err = DecodePage(strings.NewReader(`{"next":"","results":[]}`))
	require.NoError(t, err)
	assert.Nil(t, page.Next)

	_, err = DecodePage(strings.NewReader(`{"next":null}`))
	assert.Error(t, err)
}

func TestText(t *testing.T) {
	assert.Equal(t, "1.5e3", Text(json.Number("1.5e3")))
	assert.Equal(t, "unknown", Text("unknown"))
	assert.Equal(t, "true", Text(true))
	assert.Equal(t, "172", Text(float64(172)))
	assert.Equal(t, "[a b]", Text([]any{"a", "b"}))
}
