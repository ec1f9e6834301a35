package models

// Page is the single list container handed to the UI, whatever shape the backend used.
type Page[T any] struct {
	Items       []T  `json:"items"`
	Count       int  `json:"count"`
	Page        int  `json:"page"`
	PageSize    int  `json:"page_size"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// NewPage derives page info from the requested page and the backend's total count.
func NewPage[T any](items []T, count, page, pageSize int) Page[T] {
	if items == nil {
		items = []T{}
	}

	if page < 1 {
		page = 1
	}

	if count < len(items) {
		count = len(items)
	}

	totalPages := 1
	if pageSize > 0 && count > 0 {
		totalPages = (count + pageSize - 1) / pageSize
	}

	return Page[T]{
		Items:       items,
		Count:       count,
		Page:        page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}
