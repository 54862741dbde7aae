package models

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type PageInfo struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
}

// page is zero-based, matching the offset/size contract of the list APIs.
func NewPageInfo(page int, size int, totalCount int64) PageInfo {
	totalPages := int(totalCount) / size
	if int(totalCount)%size != 0 {
		totalPages++
	}
	return PageInfo{
		Page:       page,
		PageSize:   size,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}

// NormalizePage clamps page/size into usable limit & offset values.
func NormalizePage(page int, size int) (limit int, offset int, normPage int, normSize int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return size, page * size, page, size
}
