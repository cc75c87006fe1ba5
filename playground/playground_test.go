package playground

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasdocs/document"
	"github.com/erraggy/oasdocs/internal/testutil"
	"github.com/erraggy/oasdocs/schema"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name   string
		server string
		path   string
		params []Param
		want   string
	}{
		{
			name:   "no params",
			server: "https://api.example.com/v1",
			path:   "/pets",
			want:   "https://api.example.com/v1/pets",
		},
		{
			name:   "trailing slash on server",
			server: "https://api.example.com/",
			path:   "/pets",
			want:   "https://api.example.com/pets",
		},
		{
			name:   "path substitution",
			server: "https://api.example.com",
			path:   "/pets/{petId}/toys/{toyId}",
			params: []Param{
				{Name: "petId", In: document.InPath, Values: []string{"42"}},
				{Name: "toyId", In: document.InPath, Values: []string{"a b"}},
			},
			want: "https://api.example.com/pets/42/toys/a%20b",
		},
		{
			name:   "array path value joined",
			server: "https://api.example.com",
			path:   "/pets/{ids}",
			params: []Param{{Name: "ids", In: document.InPath, Values: []string{"1", "2"}}},
			want:   "https://api.example.com/pets/1,2",
		},
		{
			name:   "query values repeat",
			server: "https://api.example.com",
			path:   "/pets",
			params: []Param{
				{Name: "status", In: document.InQuery, Values: []string{"available", "sold"}},
				{Name: "limit", In: document.InQuery, Values: []string{"20"}},
				{Name: "empty", In: document.InQuery},
			},
			want: "https://api.example.com/pets?limit=20&status=available&status=sold",
		},
		{
			name:   "missing path value left in place",
			server: "http://localhost:8080",
			path:   "/pets/{petId}",
			want:   "http://localhost:8080/pets/%7BpetId%7D",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildURL(tt.server, tt.path, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestBuildURLInvalid(t *testing.T) {
	_, err := BuildURL("http://[::1", "/x", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "playground: invalid URL")
}

func TestCurl(t *testing.T) {
	body := schema.NewOrderedMap()
	body.Set("name", "Rex's")
	body.Set("age", 3)

	tmpl := &RequestTemplate{
		Method:  "post",
		BaseURL: "https://api.example.com",
		Path:    "/pets",
		Params:  []Param{{Name: "dryRun", In: document.InQuery, Values: []string{"true"}}},
		Headers: []Header{{Name: "Content-Type", Value: "application/json"}},
		Body:    body,
	}

	got, err := tmpl.Curl()
	require.NoError(t, err)
	want := "curl --request POST \\\n" +
		"  --url 'https://api.example.com/pets?dryRun=true' \\\n" +
		"  --header 'Content-Type: application/json' \\\n" +
		"  --data '{\n  \"name\": \"Rex'\\''s\",\n  \"age\": 3\n}'"
	assert.Equal(t, want, got)
}

func TestCurlWithoutBody(t *testing.T) {
	tmpl := &RequestTemplate{Method: "GET", BaseURL: "https://api.example.com", Path: "/pets"}
	got, err := tmpl.Curl()
	require.NoError(t, err)
	assert.Equal(t, "curl --request GET \\\n  --url 'https://api.example.com/pets'", got)
}

func TestFromOperation(t *testing.T) {
	doc, err := document.Load(document.WithFilePath(testutil.PetstorePath(t)))
	require.NoError(t, err)

	t.Run("defaults and no body for GET", func(t *testing.T) {
		op, err := doc.Operation("/pets", "get")
		require.NoError(t, err)

		tmpl := FromOperation(op, doc.ServerURL())
		assert.Equal(t, "GET", tmpl.Method)
		assert.Nil(t, tmpl.Body)
		u, err := tmpl.URL()
		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com/v1/pets?limit=20", u.String())
	})

	t.Run("overrides", func(t *testing.T) {
		op, err := doc.Operation("/pets/{petId}", "get")
		require.NoError(t, err)

		tmpl := FromOperation(op, "http://localhost:8080", WithParam("petId", "7"), WithParam("X-Trace", "abc"))
		u, err := tmpl.URL()
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/pets/7", u.String())
		assert.Equal(t, []Header{{Name: "X-Trace", Value: "abc"}}, tmpl.Headers)
	})

	t.Run("first named example as body", func(t *testing.T) {
		op, err := doc.Operation("/pets", "post")
		require.NoError(t, err)

		tmpl := FromOperation(op, doc.ServerURL())
		body, ok := tmpl.Body.(*schema.OrderedMap)
		require.True(t, ok)
		name, _ := body.Get("name")
		assert.Equal(t, "Rex", name)
		assert.Contains(t, tmpl.Headers, Header{Name: "Content-Type", Value: "application/json"})
	})

	t.Run("selected example", func(t *testing.T) {
		op, err := doc.Operation("/pets", "post")
		require.NoError(t, err)

		tmpl := FromOperation(op, doc.ServerURL(), WithExample("shared"))
		curl, err := tmpl.Curl()
		require.NoError(t, err)
		assert.Contains(t, curl, `"name": "Tom"`)
		assert.Contains(t, curl, "--request POST")
	})

	t.Run("no request body", func(t *testing.T) {
		op, err := doc.Operation("/pets/{petId}", "delete")
		require.NoError(t, err)

		tmpl := FromOperation(op, doc.ServerURL())
		assert.Nil(t, tmpl.Body)
		assert.Empty(t, tmpl.Headers)
	})
}

func TestFormatValues(t *testing.T) {
	m := schema.NewOrderedMap()
	m.Set("a", 1)
	assert.Equal(t, []string{"x"}, formatValues("x"))
	assert.Equal(t, []string{"1", "true"}, formatValues([]any{1, true}))
	assert.Equal(t, []string{`{"a":1}`}, formatValues(m))
	assert.Equal(t, []string{"0.5"}, formatValues(0.5))
}
