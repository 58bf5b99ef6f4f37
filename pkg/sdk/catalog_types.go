package sdk

// Domain is a top-level tenant of the catalog.
type Domain struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   *Timestamp `json:"created_at,omitempty"`
	UpdatedAt   *Timestamp `json:"updated_at,omitempty"`
	CreatedBy   string     `json:"created_by,omitempty"`
}

// Category groups assets inside a domain.
type Category struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	DomainID    string     `json:"domain_id"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   *Timestamp `json:"created_at,omitempty"`
	UpdatedAt   *Timestamp `json:"updated_at,omitempty"`
	CreatedBy   string     `json:"created_by,omitempty"`
}

// AssetType classifies an asset's content.
type AssetType string

const (
	AssetDocument AssetType = "document"
	AssetImage    AssetType = "image"
	AssetVideo    AssetType = "video"
	AssetAudio    AssetType = "audio"
	AssetOther    AssetType = "other"
)

// Asset is a catalog entry inside a category.
type Asset struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Content    string         `json:"content,omitempty"`
	AssetType  AssetType      `json:"asset_type"`
	CategoryID string         `json:"category_id"`
	FilePath   string         `json:"file_path,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	IsActive   bool           `json:"is_active"`
	CreatedAt  *Timestamp     `json:"created_at,omitempty"`
	UpdatedAt  *Timestamp     `json:"updated_at,omitempty"`
	CreatedBy  string         `json:"created_by,omitempty"`
}

// Page is one page of a paginated listing.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
}

// ListOptions selects a page of a listing.
type ListOptions struct {
	Page  int
	Limit int
}

// CreateDomainInput describes a new domain.
type CreateDomainInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateDomainInput carries the fields to change on a domain.
type UpdateDomainInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// CreateCategoryInput describes a new category.
type CreateCategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	DomainID    string `json:"domain_id"`
}

// QueryInput is a free-text query, optionally scoped to a domain and/or
// category.
type QueryInput struct {
	Query      string `json:"query"`
	DomainID   string `json:"domain_id,omitempty"`
	CategoryID string `json:"category_id,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// QueryResult is one ranked hit.
type QueryResult struct {
	AssetID        string    `json:"asset_id"`
	Title          string    `json:"title"`
	ContentSnippet string    `json:"content_snippet"`
	RelevanceScore float64   `json:"relevance_score"`
	AssetType      AssetType `json:"asset_type"`
	CategoryName   string    `json:"category_name"`
	DomainName     string    `json:"domain_name"`
}

// QueryResponse is the outcome of a query.
type QueryResponse struct {
	Query        string        `json:"query"`
	Results      []QueryResult `json:"results"`
	TotalResults int           `json:"total_results"`
	QueryTime    float64       `json:"query_time"`
}
