package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// ListDomains returns a page of domains visible to the caller.
func (c *Client) ListDomains(ctx context.Context, opts ListOptions) (*Page[Domain], error) {
	var page Page[Domain]
	if err := c.list(ctx, "/domains", pageQuery(opts, nil), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetDomain fetches a single domain.
func (c *Client) GetDomain(ctx context.Context, id string) (*Domain, error) {
	if err := requireID("domain", id); err != nil {
		return nil, err
	}
	var out Domain
	if err := c.call(ctx, http.MethodGet, "/domains/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateDomain creates a domain.
func (c *Client) CreateDomain(ctx context.Context, input CreateDomainInput) (*Domain, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("domain name is required")
	}
	var out Domain
	if err := c.call(ctx, http.MethodPost, "/domains", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateDomain changes the given fields of a domain.
func (c *Client) UpdateDomain(ctx context.Context, id string, input UpdateDomainInput) (*Domain, error) {
	if err := requireID("domain", id); err != nil {
		return nil, err
	}
	var out Domain
	if err := c.call(ctx, http.MethodPut, "/domains/"+id, nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteDomain soft-deletes a domain.
func (c *Client) DeleteDomain(ctx context.Context, id string) error {
	if err := requireID("domain", id); err != nil {
		return err
	}
	return c.call(ctx, http.MethodDelete, "/domains/"+id, nil, nil, nil)
}

// ListCategories returns a page of categories, optionally within one domain.
func (c *Client) ListCategories(ctx context.Context, domainID string, opts ListOptions) (*Page[Category], error) {
	filter := url.Values{}
	if domainID != "" {
		if err := requireID("domain", domainID); err != nil {
			return nil, err
		}
		filter.Set("domain_id", domainID)
	}
	var page Page[Category]
	if err := c.list(ctx, "/categories", pageQuery(opts, filter), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetCategory fetches a single category.
func (c *Client) GetCategory(ctx context.Context, id string) (*Category, error) {
	if err := requireID("category", id); err != nil {
		return nil, err
	}
	var out Category
	if err := c.call(ctx, http.MethodGet, "/categories/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCategory creates a category inside a domain.
func (c *Client) CreateCategory(ctx context.Context, input CreateCategoryInput) (*Category, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("category name is required")
	}
	if err := requireID("domain", input.DomainID); err != nil {
		return nil, err
	}
	var out Category
	if err := c.call(ctx, http.MethodPost, "/categories", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory soft-deletes a category.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	if err := requireID("category", id); err != nil {
		return err
	}
	return c.call(ctx, http.MethodDelete, "/categories/"+id, nil, nil, nil)
}

// ListAssets returns a page of assets, optionally within one category.
func (c *Client) ListAssets(ctx context.Context, categoryID string, opts ListOptions) (*Page[Asset], error) {
	filter := url.Values{}
	if categoryID != "" {
		if err := requireID("category", categoryID); err != nil {
			return nil, err
		}
		filter.Set("category_id", categoryID)
	}
	var page Page[Asset]
	if err := c.list(ctx, "/assets", pageQuery(opts, filter), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetAsset fetches a single asset.
func (c *Client) GetAsset(ctx context.Context, id string) (*Asset, error) {
	if err := requireID("asset", id); err != nil {
		return nil, err
	}
	var out Asset
	if err := c.call(ctx, http.MethodGet, "/assets/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAsset soft-deletes an asset.
func (c *Client) DeleteAsset(ctx context.Context, id string) error {
	if err := requireID("asset", id); err != nil {
		return err
	}
	return c.call(ctx, http.MethodDelete, "/assets/"+id, nil, nil, nil)
}

// Query runs a free-text query.
func (c *Client) Query(ctx context.Context, input QueryInput) (*QueryResponse, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, fmt.Errorf("query text is required")
	}
	if input.DomainID != "" {
		if err := requireID("domain", input.DomainID); err != nil {
			return nil, err
		}
	}
	if input.CategoryID != "" {
		if err := requireID("category", input.CategoryID); err != nil {
			return nil, err
		}
	}
	var out QueryResponse
	if err := c.call(ctx, http.MethodPost, "/query", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// call performs a request and decodes the (possibly enveloped) payload.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out any) error {
	opts := []RequestOption{WithEnvelope()}
	if len(query) > 0 {
		opts = append(opts, WithQuery(query))
	}
	return c.transport.Do(ctx, method, path, body, out, opts...)
}

// list decodes either a paginated object or a bare JSON array.
func (c *Client) list(ctx context.Context, path string, query url.Values, page any) error {
	var raw json.RawMessage
	if err := c.call(ctx, http.MethodGet, path, query, nil, &raw); err != nil {
		return err
	}
	if gjson.ParseBytes(raw).IsArray() {
		raw = json.RawMessage(`{"items":` + string(raw) + `}`)
	}
	if err := json.Unmarshal(raw, page); err != nil {
		return &MalformedResponseError{Endpoint: "GET " + path, Err: err}
	}
	return nil
}

// unwrapEnvelope strips a {"success": ..., "data": ...} envelope.
func unwrapEnvelope(body []byte) []byte {
	if !gjson.ValidBytes(body) {
		return body
	}
	if gjson.GetBytes(body, "success").Exists() {
		if data := gjson.GetBytes(body, "data"); data.Exists() {
			return []byte(data.Raw)
		}
		return nil
	}
	return body
}

func pageQuery(opts ListOptions, base url.Values) url.Values {
	q := url.Values{}
	for k, v := range base {
		q[k] = v
	}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	return q
}

func requireID(kind, id string) error {
	if id == "" {
		return fmt.Errorf("%s ID is required", kind)
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid %s ID %q: %w", kind, id, err)
	}
	return nil
}
