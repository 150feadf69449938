package main

import (
	"strconv"

	"fintrack/pkg/money"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// pageSize is the fixed number of records per listing page.
const pageSize = 10

// Page mirrors the mongoose-paginate response shape the front end consumes.
type Page struct {
	Docs          any   `json:"docs"`
	TotalDocs     int64 `json:"totalDocs"`
	Limit         int   `json:"limit"`
	Page          int   `json:"page"`
	TotalPages    int   `json:"totalPages"`
	PagingCounter int   `json:"pagingCounter"`
	HasPrevPage   bool  `json:"hasPrevPage"`
	HasNextPage   bool  `json:"hasNextPage"`
	PrevPage      *int  `json:"prevPage"`
	NextPage      *int  `json:"nextPage"`
}

// pageParam reads the ?page query parameter, defaulting to 1.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// pageMeta computes pagination metadata. Pages are 1-based; anything below 1
// clamps to 1, and a page past the end simply has no neighbours and no docs.
func pageMeta(totalDocs int64, page, limit int) Page {
	if page < 1 {
		page = 1
	}
	totalPages := int((totalDocs + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}
	p := Page{
		TotalDocs:     totalDocs,
		Limit:         limit,
		Page:          page,
		TotalPages:    totalPages,
		PagingCounter: (page-1)*limit + 1,
	}
	if page > 1 {
		prev := page - 1
		p.HasPrevPage = true
		p.PrevPage = &prev
	}
	if page < totalPages {
		next := page + 1
		p.HasNextPage = true
		p.NextPage = &next
	}
	return p
}

// paginate counts the query, then loads one page of rows into dest in
// insertion order. dest must be a pointer to a slice of the record type.
func paginate(q *gorm.DB, page int, dest any) (*Page, error) {
	if page < 1 {
		page = 1
	}
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}
	meta := pageMeta(total, page, pageSize)
	if err := q.Order("id asc").Offset((page - 1) * pageSize).Limit(pageSize).Find(dest).Error; err != nil {
		return nil, err
	}
	meta.Docs = dest
	return &meta, nil
}

// sumAmount folds the amount column of the given query. Empty sets sum to 0.
func sumAmount(q *gorm.DB) (money.Amount, error) {
	var total int64
	if err := q.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error; err != nil {
		return 0, err
	}
	return money.Amount(total), nil
}
