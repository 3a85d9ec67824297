package repository

import (
	"errors"

	"github.com/user/bookslum/internal/model"
	"gorm.io/gorm"
)

type BookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

// FindByID 根据 ID 查找图书
func (r *BookRepository) FindByID(id int) (*model.Book, error) {
	var book model.Book
	err := r.db.First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &book, nil
}

// FindByISBN 根据 ISBN 查找图书
func (r *BookRepository) FindByISBN(isbn string) (*model.Book, error) {
	var book model.Book
	err := r.db.Where("isbn = ?", isbn).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &book, nil
}

// Search 按 ISBN/书名/作者模糊匹配，最多返回 15 条
// query 需已经过 utils.NormalizeQuery 处理（首字母大写 + 通配符包裹）
func (r *BookRepository) Search(query string) ([]model.Book, error) {
	var books []model.Book
	err := r.db.
		Where("isbn ILIKE ? OR title ILIKE ? OR author ILIKE ?", query, query, query).
		Limit(15).
		Find(&books).Error
	if err != nil {
		return nil, err
	}

	return books, nil
}

// StatsByISBN 按 ISBN 计算本地书评聚合（条数 + 平均分）
// 书评是独立事实行，聚合永远在读取时计算
func (r *BookRepository) StatsByISBN(isbn string) (*model.BookStats, error) {
	var stats model.BookStats
	err := r.db.
		Model(&model.Review{}).
		Select("COUNT(reviews.id) AS review_count, COALESCE(AVG(reviews.rating), 0) AS average_score").
		Joins("INNER JOIN books ON books.id = reviews.book_id").
		Where("books.isbn = ?", isbn).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
