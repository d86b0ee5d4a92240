package http

import (
	"parcelmybox/internal/core/application/usecases/queries"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// PageParams are the limit/offset query parameters shared by list endpoints.
type PageParams struct {
	Limit  *int `form:"limit,omitempty" json:"limit,omitempty"`
	Offset *int `form:"offset,omitempty" json:"offset,omitempty"`
}

func (p PageParams) page() (queries.Page, error) {
	var limit, offset int
	if p.Limit != nil {
		limit = *p.Limit
	}
	if p.Offset != nil {
		offset = *p.Offset
	}
	return queries.NewPage(limit, offset)
}

type ListUsersParams struct {
	PageParams
	Role *string `form:"role,omitempty" json:"role,omitempty"`
}

// ListParams filter a list endpoint by lifecycle status.
type ListParams struct {
	PageParams
	Status *string `form:"status,omitempty" json:"status,omitempty"`
}

type ListSupportParams struct {
	ListParams
	Assignee *openapi_types.UUID `form:"assignee,omitempty" json:"assignee,omitempty"`
}

type ExportBillsParams struct {
	Status *string `form:"status,omitempty" json:"status,omitempty"`
}
