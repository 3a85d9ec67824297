package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// BookAPIResponse 公开 JSON API 的响应结构
type BookAPIResponse struct {
	Title        string  `json:"title"`
	Author       string  `json:"author"`
	Year         int     `json:"year"`
	ISBN         string  `json:"isbn"`
	ReviewCount  int64   `json:"review_count"`
	AverageScore float64 `json:"average_score"`
}

// BookAPI 按 ISBN 返回图书信息与本地书评聚合
// 没有书评时返回零值；ISBN 未知时返回 422
func (h *Handler) BookAPI(c *gin.Context) {
	isbn := c.Param("isbn")

	book, err := h.Repos.Book.FindByISBN(isbn)
	if err != nil {
		log.Printf("[BookAPI] 查询失败 (ISBN: %s): %v", isbn, err)
		c.JSON(http.StatusInternalServerError, gin.H{"Error": "Internal server error"})
		return
	}
	if book == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"Error": "Invalid book ISBN"})
		return
	}

	stats := h.localStats(book.ISBN)

	c.JSON(http.StatusOK, BookAPIResponse{
		Title:        book.Title,
		Author:       book.Author,
		Year:         book.Year,
		ISBN:         book.ISBN,
		ReviewCount:  stats.ReviewCount,
		AverageScore: stats.AverageScore,
	})
}
