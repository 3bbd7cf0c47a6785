package models

import "math"

// PaginationParams holds paging, search and sort parameters from the query
// string.
type PaginationParams struct {
	Page   int    `json:"page" query:"page"`
	Limit  int    `json:"limit" query:"limit"`
	Search string `json:"search" query:"search"`
	SortBy string `json:"sortBy" query:"sortBy"`
	Order  string `json:"order" query:"order"`
}

type PaginatedResponse struct {
	Data        interface{} `json:"data"`
	Total       int64       `json:"total"`
	Page        int         `json:"page"`
	Limit       int         `json:"limit"`
	TotalPages  int         `json:"totalPages"`
	HasNext     bool        `json:"hasNext"`
	HasPrevious bool        `json:"hasPrevious"`
}

func DefaultPagination() PaginationParams {
	return PaginationParams{
		Page:   1,
		Limit:  10,
		SortBy: "updatedAt",
		Order:  "desc",
	}
}

func NewPaginatedResponse(data interface{}, total int64, params PaginationParams) *PaginatedResponse {
	totalPages := int(math.Ceil(float64(total) / float64(params.Limit)))

	return &PaginatedResponse{
		Data:        data,
		Total:       total,
		Page:        params.Page,
		Limit:       params.Limit,
		TotalPages:  totalPages,
		HasNext:     params.Page < totalPages,
		HasPrevious: params.Page > 1,
	}
}

func (p *PaginationParams) GetSkip() int64 {
	return int64((p.Page - 1) * p.Limit)
}

func (p *PaginationParams) GetSortOrder() map[string]int {
	order := 1
	if p.Order == "desc" {
		order = -1
	}
	return map[string]int{p.SortBy: order}
}
