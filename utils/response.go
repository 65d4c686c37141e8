package utils

import "github.com/gin-gonic/gin"

// Pagination describes one page of a list response.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// NewPagination computes page metadata for a total row count.
func NewPagination(page, limit int, total int64) Pagination {
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// Success writes the uniform response envelope with a payload.
func Success(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// SuccessPage writes a paginated list inside the uniform envelope.
func SuccessPage(c *gin.Context, status int, data interface{}, pagination Pagination) {
	c.JSON(status, gin.H{
		"success":    true,
		"data":       data,
		"pagination": pagination,
	})
}

// Error writes the uniform failure envelope.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}
