package sdk_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedgamal323/daleel/pkg/sdk"
)

const (
	domainID   = "7f1c2a6e-1d3b-4d8e-9a55-0c2b8f3e4a11"
	categoryID = "c0ffee00-1234-4abc-8def-0123456789ab"
	assetID    = "a55e7000-0000-4000-8000-000000000001"
)

func loggedInClient(t *testing.T, api *fakeAPI) *sdk.Client {
	t.Helper()
	store := sdk.NewMemoryStore()
	require.NoError(t, store.SaveCredentials(&sdk.Credentials{AccessToken: "T1"}))
	return api.client(store)
}

func TestListDomains_Paginated(t *testing.T) {
	api := newFakeAPI(t)
	api.handle(http.MethodGet, "/domains", respond(http.StatusOK, map[string]any{
		"items":       []map[string]any{{"id": domainID, "name": "Legal", "is_active": true}},
		"total":       11,
		"page":        2,
		"per_page":    10,
		"total_pages": 2,
	}))
	client := loggedInClient(t, api)

	page, err := client.ListDomains(context.Background(), sdk.ListOptions{Page: 2, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Legal", page.Items[0].Name)
	assert.Equal(t, 11, page.Total)
	assert.Equal(t, 2, page.TotalPages)

	req, _ := api.lastRequest(http.MethodGet, "/domains")
	assert.Equal(t, "limit=10&page=2", req.Query)
	assert.Equal(t, "Bearer T1", req.Authorization)
}

func TestListDomains_BareArrayAndEnvelope(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{"bare array", []map[string]any{{"id": domainID, "name": "Legal"}}},
		{"envelope", map[string]any{"success": true, "data": []map[string]any{{"id": domainID, "name": "Legal"}}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			api := newFakeAPI(t)
			api.handle(http.MethodGet, "/domains", respond(http.StatusOK, tc.body))
			page, err := loggedInClient(t, api).ListDomains(context.Background(), sdk.ListOptions{})
			require.NoError(t, err)
			require.Len(t, page.Items, 1)
			assert.Equal(t, domainID, page.Items[0].ID)
		})
	}
}

func TestGetDomain(t *testing.T) {
	api := newFakeAPI(t)
	api.handle(http.MethodGet, "/domains/"+domainID, respond(http.StatusOK, map[string]any{
		"success": true,
		"data":    map[string]any{"id": domainID, "name": "Legal", "created_at": "2024-03-01T10:00:00"},
	}))
	client := loggedInClient(t, api)

	d, err := client.GetDomain(context.Background(), domainID)
	require.NoError(t, err)
	assert.Equal(t, "Legal", d.Name)
	require.NotNil(t, d.CreatedAt)
	assert.Equal(t, 2024, d.CreatedAt.Year())
}

func TestGetCategory(t *testing.T) {
	api := newFakeAPI(t)
	api.handle(http.MethodGet, "/categories/"+categoryID, respond(http.StatusOK, map[string]any{
		"id": categoryID, "name": "Contracts", "domain_id": domainID, "is_active": true,
	}))
	client := loggedInClient(t, api)

	c, err := client.GetCategory(context.Background(), categoryID)
	require.NoError(t, err)
	assert.Equal(t, "Contracts", c.Name)
	assert.Equal(t, domainID, c.DomainID)

	_, err = client.GetCategory(context.Background(), "nope")
	assert.ErrorContains(t, err, "invalid category ID")
	_, ok := api.lastRequest(http.MethodGet, "/categories/nope")
	assert.False(t, ok)
}

func TestCatalog_RejectsInvalidIDs(t *testing.T) {
	api := newFakeAPI(t)
	client := loggedInClient(t, api)
	ctx := context.Background()

	_, err := client.GetDomain(ctx, "")
	assert.ErrorContains(t, err, "domain ID is required")
	_, err = client.GetDomain(ctx, "not-a-uuid")
	assert.ErrorContains(t, err, "invalid domain ID")
	assert.ErrorContains(t, client.DeleteCategory(ctx, "nope"), "invalid category ID")
	assert.ErrorContains(t, client.DeleteAsset(ctx, "nope"), "invalid asset ID")
	_, err = client.ListCategories(ctx, "nope", sdk.ListOptions{})
	assert.ErrorContains(t, err, "invalid domain ID")
	_, err = client.CreateCategory(ctx, sdk.CreateCategoryInput{Name: "x"})
	assert.ErrorContains(t, err, "domain ID is required")

	assert.Empty(t, api.recorded(), "invalid input never reaches the server")
}

func TestCreateDomain(t *testing.T) {
	api := newFakeAPI(t)
	api.handle(http.MethodPost, "/domains", respond(http.StatusCreated, map[string]any{"id": domainID, "name": "Legal"}))
	client := loggedInClient(t, api)

	_, err := client.CreateDomain(context.Background(), sdk.CreateDomainInput{Name: "  "})
	assert.ErrorContains(t, err, "domain name is required")

	d, err := client.CreateDomain(context.Background(), sdk.CreateDomainInput{Name: "Legal", Description: "contracts"})
	require.NoError(t, err)
	assert.Equal(t, domainID, d.ID)

	req, _ := api.lastRequest(http.MethodPost, "/domains")
	assert.Equal(t, "Legal", req.Body["name"])
	assert.Equal(t, "contracts", req.Body["description"])
}

func TestUpdateDomain_OnlySendsSetFields(t *testing.T) {
	api := newFakeAPI(t)
	api.handle(http.MethodPut, "/domains/"+domainID, respond(http.StatusOK, map[string]any{"id": domainID, "name": "Legal", "is_active": false}))
	client := loggedInClient(t, api)

	active := false
	d, err := client.UpdateDomain(context.Background(), domainID, sdk.UpdateDomainInput{IsActive: &active})
	require.NoError(t, err)
	assert.False(t, d.IsActive)

	req, _ := api.lastRequest(http.MethodPut, "/domains/"+domainID)
	assert.Equal(t, map[string]any{"is_active": false}, req.Body)
}

func TestDeleteDomain_Forbidden(t *testing.T) {
	api := newFakeAPI(t)
	api.handle(http.MethodDelete, "/domains/"+domainID, respond(http.StatusForbidden, map[string]any{"detail": "Insufficient permissions"}))
	client := loggedInClient(t, api)

	err := client.DeleteDomain(context.Background(), domainID)
	var apiErr *sdk.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "Insufficient permissions")
}

func TestListCategories_FilterByDomain(t *testing.T) {
	api := newFakeAPI(t)
	api.handle(http.MethodGet, "/categories", respond(http.StatusOK, []map[string]any{{"id": categoryID, "name": "Contracts", "domain_id": domainID}}))
	client := loggedInClient(t, api)

	page, err := client.ListCategories(context.Background(), domainID, sdk.ListOptions{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, domainID, page.Items[0].DomainID)

	req, _ := api.lastRequest(http.MethodGet, "/categories")
	assert.Equal(t, "domain_id="+domainID, req.Query)
}

func TestAssets(t *testing.T) {
	api := newFakeAPI(t)
	api.handle(http.MethodGet, "/assets", respond(http.StatusOK, []map[string]any{{"id": assetID, "title": "NDA", "asset_type": "document", "category_id": categoryID}}))
	api.handle(http.MethodGet, "/assets/"+assetID, respond(http.StatusOK, map[string]any{"id": assetID, "title": "NDA", "asset_type": "document", "metadata": map[string]any{"pages": 3}}))
	api.handle(http.MethodDelete, "/assets/"+assetID, respond(http.StatusOK, map[string]any{"success": true, "message": "deleted"}))
	client := loggedInClient(t, api)
	ctx := context.Background()

	page, err := client.ListAssets(ctx, categoryID, sdk.ListOptions{Limit: 5})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, sdk.AssetDocument, page.Items[0].AssetType)

	req, _ := api.lastRequest(http.MethodGet, "/assets")
	assert.Equal(t, "category_id="+categoryID+"&limit=5", req.Query)

	a, err := client.GetAsset(ctx, assetID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, a.Metadata["pages"])

	require.NoError(t, client.DeleteAsset(ctx, assetID))
}

func TestQuery(t *testing.T) {
	api := newFakeAPI(t)
	api.handle(http.MethodPost, "/query", respond(http.StatusOK, map[string]any{
		"query": "termination clause",
		"results": []map[string]any{{
			"asset_id":        assetID,
			"title":           "NDA",
			"content_snippet": "either party may terminate",
			"relevance_score": 0.92,
			"asset_type":      "document",
			"category_name":   "Contracts",
			"domain_name":     "Legal",
		}},
		"total_results": 1,
		"query_time":    0.013,
	}))
	client := loggedInClient(t, api)

	_, err := client.Query(context.Background(), sdk.QueryInput{Query: " "})
	assert.ErrorContains(t, err, "query text is required")
	_, err = client.Query(context.Background(), sdk.QueryInput{Query: "x", CategoryID: "bad"})
	assert.ErrorContains(t, err, "invalid category ID")

	resp, err := client.Query(context.Background(), sdk.QueryInput{Query: "termination clause", DomainID: domainID, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.TotalResults)
	require.Len(t, resp.Results, 1)
	assert.InDelta(t, 0.92, resp.Results[0].RelevanceScore, 1e-9)
	assert.Equal(t, "Legal", resp.Results[0].DomainName)

	req, _ := api.lastRequest(http.MethodPost, "/query")
	assert.Equal(t, domainID, req.Body["domain_id"])
	assert.NotContains(t, req.Body, "category_id")
}
