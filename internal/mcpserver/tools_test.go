package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSpecYAML = `openapi: "3.0.3"
info:
  title: Pet Store
  version: "1.0.0"
servers:
  - url: https://api.example.com
paths:
  /pets:
    get:
      operationId: listPets
      summary: List pets
      tags: [pets]
      parameters:
        - name: limit
          in: query
          schema:
            type: integer
            default: 20
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: '#/components/schemas/Pet'
    post:
      operationId: createPet
      summary: Create a pet
      tags: [pets, admin]
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Pet'
            examples:
              rex:
                summary: A dog
                value:
                  name: Rex
                  tag: dog
      responses:
        "201":
          description: Created
  /pets/{id}:
    get:
      operationId: getPet
      deprecated: true
      parameters:
        - name: id
          in: path
          description: Pet identifier
          schema:
            type: string
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
components:
  schemas:
    Pet:
      type: object
      required: [name]
      properties:
        name:
          type: string
        tag:
          type: string
          enum: [dog, cat]
        owner:
          type: object
          properties:
            email:
              type: string
              format: email
`

func testSpec() specInput {
	return specInput{Content: testSpecYAML}
}

func TestOperationsTool(t *testing.T) {
	t.Run("all", func(t *testing.T) {
		_, output, err := handleOperations(context.Background(), &mcp.CallToolRequest{}, operationsInput{Spec: testSpec()})
		require.NoError(t, err)

		assert.Equal(t, "Pet Store", output.Title)
		assert.Equal(t, "3.0.3", output.OpenAPI)
		assert.Equal(t, "https://api.example.com", output.ServerURL)
		assert.Equal(t, 3, output.Total)
		assert.Equal(t, 3, output.Returned)
		require.Len(t, output.Operations, 3)
		assert.Equal(t, operationSummary{
			Method:      "POST",
			Path:        "/pets",
			OperationID: "createPet",
			Summary:     "Create a pet",
			Tags:        []string{"pets", "admin"},
			HasBody:     true,
		}, output.Operations[1])
		assert.True(t, output.Operations[2].Deprecated)
	})

	t.Run("tag filter and pagination", func(t *testing.T) {
		_, output, err := handleOperations(context.Background(), &mcp.CallToolRequest{}, operationsInput{
			Spec:   testSpec(),
			Tag:    "pets",
			Offset: 1,
			Limit:  5,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, output.Total)
		assert.Equal(t, 2, output.Matched)
		require.Len(t, output.Operations, 1)
		assert.Equal(t, "createPet", output.Operations[0].OperationID)
	})

	t.Run("bad document", func(t *testing.T) {
		result, _, err := handleOperations(context.Background(), &mcp.CallToolRequest{}, operationsInput{
			Spec: specInput{Content: "swagger: '2.0'"},
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.IsError)
	})
}

func TestExamplesTool(t *testing.T) {
	t.Run("named request examples", func(t *testing.T) {
		result, output, err := handleExamples(context.Background(), &mcp.CallToolRequest{}, examplesInput{
			Spec: testSpec(), Method: "post", Path: "/pets",
		})
		require.NoError(t, err)
		assert.Nil(t, result)
		assert.False(t, output.Generated)
		assert.Equal(t, []exampleEntry{{
			Name:    "rex",
			Label:   "rex",
			Summary: "A dog",
			JSON:    "{\n  \"name\": \"Rex\",\n  \"tag\": \"dog\"\n}",
		}}, output.Examples)
	})

	t.Run("generated response example", func(t *testing.T) {
		_, output, err := handleExamples(context.Background(), &mcp.CallToolRequest{}, examplesInput{
			Spec: testSpec(), Method: "GET", Path: "/pets/{id}", Response: "200",
		})
		require.NoError(t, err)
		assert.True(t, output.Generated)
		require.Len(t, output.Examples, 1)
		assert.Equal(t, "Schema", output.Examples[0].Label)
		assert.JSONEq(t, `{"name":"string","tag":"string","owner":{"email":"string"}}`, output.Examples[0].JSON)
	})

	t.Run("no request body", func(t *testing.T) {
		result, _, err := handleExamples(context.Background(), &mcp.CallToolRequest{}, examplesInput{
			Spec: testSpec(), Method: "get", Path: "/pets",
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.IsError)
	})

	t.Run("unknown response", func(t *testing.T) {
		result, _, err := handleExamples(context.Background(), &mcp.CallToolRequest{}, examplesInput{
			Spec: testSpec(), Method: "get", Path: "/pets", Response: "500",
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.IsError)
	})
}

func TestPropertyTreeTool(t *testing.T) {
	_, output, err := handlePropertyTree(context.Background(), &mcp.CallToolRequest{}, propertyTreeInput{
		Spec: testSpec(), Method: "post", Path: "/pets",
	})
	require.NoError(t, err)

	require.Len(t, output.Rows, 4)
	assert.Equal(t, treeRow{
		Section: "Request body", ID: "body-name", Depth: 0, Kind: kindField,
		Name: "name", Type: "string", Required: true,
	}, output.Rows[0])
	assert.Equal(t, []string{`"dog"`, `"cat"`}, output.Rows[1].Values)
	assert.Equal(t, "owner", output.Rows[2].Name)
	assert.Equal(t, treeRow{
		Section: "Request body", ID: "body-owner-email", Depth: 1, Kind: kindProperty,
		Name: "email", Type: "email",
	}, output.Rows[3])

	t.Run("parameters and responses", func(t *testing.T) {
		_, output, err := handlePropertyTree(context.Background(), &mcp.CallToolRequest{}, propertyTreeInput{
			Spec: testSpec(), Method: "get", Path: "/pets", IncludeResponses: true,
		})
		require.NoError(t, err)
		require.NotEmpty(t, output.Rows)
		assert.Equal(t, "Query parameters", output.Rows[0].Section)
		assert.Equal(t, "limit", output.Rows[0].Name)
		assert.Equal(t, "20", output.Rows[0].Default)

		last := output.Rows[len(output.Rows)-1]
		assert.Equal(t, "Response 200", last.Section)
	})
}

func TestPageTool(t *testing.T) {
	_, output, err := handlePage(context.Background(), &mcp.CallToolRequest{}, pageInput{
		Spec: testSpec(), Method: "get", Path: "/pets/{id}", ServerURL: "http://localhost:9000",
	})
	require.NoError(t, err)
	assert.Equal(t, "GET /pets/{id}", output.Title)
	assert.Contains(t, output.Markdown, "# GET /pets/{id} (deprecated)")
	assert.Contains(t, output.Markdown, "## Path parameters")
	assert.Contains(t, output.Markdown, "--url 'http://localhost:9000/pets/%7Bid%7D'")

	result, _, err := handlePage(context.Background(), &mcp.CallToolRequest{}, pageInput{
		Spec: testSpec(), Method: "put", Path: "/pets",
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestCurlTool(t *testing.T) {
	t.Run("body from first example", func(t *testing.T) {
		_, output, err := handleCurl(context.Background(), &mcp.CallToolRequest{}, curlInput{
			Spec: testSpec(), Method: "post", Path: "/pets",
		})
		require.NoError(t, err)
		assert.Equal(t, "POST", output.Method)
		assert.Equal(t, "https://api.example.com/pets", output.URL)
		assert.Equal(t, "{\n  \"name\": \"Rex\",\n  \"tag\": \"dog\"\n}", output.Body)
		assert.Contains(t, output.Curl, "--header 'Content-Type: application/json'")
	})

	t.Run("params", func(t *testing.T) {
		_, output, err := handleCurl(context.Background(), &mcp.CallToolRequest{}, curlInput{
			Spec:      testSpec(),
			Method:    "get",
			Path:      "/pets/{id}",
			ServerURL: "http://localhost:9000/",
			Params:    map[string][]string{"id": {"a1"}},
		})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9000/pets/a1", output.URL)
		assert.Empty(t, output.Body)
	})
}
