package order

// Sort fields accepted by the list endpoint.
const (
	SortByCreatedAt = "createdAt"
	SortByTotal     = "total"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// DefaultLimit is the page size used when the request does not specify one.
const DefaultLimit = 10

// MaxLimit caps the page size a single request can ask for.
const MaxLimit = 100

// Query represents filter, sort and pagination parameters for listing orders.
type Query struct {
	Cursor     string `json:"cursor,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	CustomerID string `json:"customerId,omitempty"`
	Status     Status `json:"status,omitempty"`
	MinPrice   int64  `json:"minPrice,omitempty"`
	MaxPrice   int64  `json:"maxPrice,omitempty"`
	SortBy     string `json:"sortBy,omitempty"`
	SortOrder  string `json:"sortOrder,omitempty"`
}

// Normalize fills in defaults for zero-valued query fields.
func (q *Query) Normalize() {
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.SortBy != SortByTotal {
		q.SortBy = SortByCreatedAt
	}
	if q.SortOrder != SortOrderAsc {
		q.SortOrder = SortOrderDesc
	}
}

// Filter holds the exact-match criteria pushed down to the repository.
type Filter struct {
	CustomerID string
	Status     Status
	MinPrice   int64
	MaxPrice   int64
}

// Pagination describes the cursor position of a returned page.
type Pagination struct {
	NextCursor string `json:"nextCursor"`
	PrevCursor string `json:"prevCursor"`
	HasMore    bool   `json:"hasMore"`
	Total      int    `json:"total"`
}

// Page is a single page of orders with its pagination envelope.
type Page struct {
	Data       []Order    `json:"data"`
	Pagination Pagination `json:"pagination"`
}
