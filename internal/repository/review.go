package repository

import (
	"time"

	"github.com/user/bookslum/internal/model"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create 创建书评，每次提交写入一条独立记录
func (r *ReviewRepository) Create(review *model.Review) error {
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(review).Error
	})
}

// ListByBook 获取某本书的全部书评（含作者用户名），按时间排序
func (r *ReviewRepository) ListByBook(bookID int) ([]model.ReviewWithUser, error) {
	var reviews []model.ReviewWithUser
	err := r.db.
		Model(&model.Review{}).
		Select("users.username, reviews.review, reviews.rating, reviews.title, reviews.created_at").
		Joins("INNER JOIN users ON users.id = reviews.user_id").
		Where("reviews.book_id = ?", bookID).
		Order("reviews.created_at").
		Scan(&reviews).Error
	if err != nil {
		return nil, err
	}

	return reviews, nil
}

// CountByBook 获取某本书的书评条数
func (r *ReviewRepository) CountByBook(bookID int) (int64, error) {
	var count int64
	err := r.db.Model(&model.Review{}).Where("book_id = ?", bookID).Count(&count).Error
	return count, err
}
