package model

import (
	"time"
)

// Book 图书模型（目录数据由外部导入，应用内只读）
type Book struct {
	ID     int    `json:"id" db:"id"`
	ISBN   string `json:"isbn" db:"isbn"`
	Title  string `json:"title" db:"title"`
	Author string `json:"author" db:"author"`
	Year   int    `json:"year" db:"year"`
}

// Review 书评模型，每次提交一条独立记录，聚合在读取时计算
type Review struct {
	ID        int       `json:"id" db:"id"`
	Review    string    `json:"review" db:"review"`
	UserID    int       `json:"user_id" db:"user_id"`
	BookID    int       `json:"book_id" db:"book_id"`
	Rating    int       `json:"rating" db:"rating"`
	Title     string    `json:"title" db:"title"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ReviewWithUser 书评 + 作者用户名（关联查询时填充）
type ReviewWithUser struct {
	Username  string    `json:"username" db:"username"`
	Review    string    `json:"review" db:"review"`
	Rating    int       `json:"rating" db:"rating"`
	Title     string    `json:"title" db:"title"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// BookStats 本地书评聚合（读取时按 ISBN 计算）
type BookStats struct {
	ReviewCount  int64   `json:"review_count" db:"review_count"`
	AverageScore float64 `json:"average_score" db:"average_score"`
}

// CartItem 购物车条目
type CartItem struct {
	ID     int    `json:"id" db:"id"`
	Title  string `json:"title" db:"title"`
	BookID int    `json:"book_id" db:"book_id"`
	UserID int    `json:"user_id" db:"user_id"`
	ISBN   string `json:"isbn" db:"isbn"`
}

func (CartItem) TableName() string {
	return "cart"
}
