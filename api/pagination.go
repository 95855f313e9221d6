package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

type page struct {
	Number int `json:"page"`
	Size   int `json:"page_size"`
	Total  int `json:"total"`
	Pages  int `json:"total_pages"`
}

func (p page) offset() int {
	return (p.Number - 1) * p.Size
}

// paginate reads ?page= leniently: a missing or non-integer page is the first
// page and any number outside 1..pages is the last one.
func paginate(c *gin.Context, size, total int) page {
	pages := (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	n, err := strconv.Atoi(c.Query("page"))
	switch {
	case err != nil:
		n = 1
	case n < 1 || n > pages:
		n = pages
	}
	return page{Number: n, Size: size, Total: total, Pages: pages}
}

type pagedResponse[T any] struct {
	Items []T `json:"items"`
	page
}
