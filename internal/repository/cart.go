package repository

import (
	"errors"

	"github.com/user/bookslum/internal/model"
	"gorm.io/gorm"
)

// ErrAlreadyInCart 通过 error 区分"重复添加"与真正的写入失败
var ErrAlreadyInCart = errors.New("购物车中已存在该 ISBN")

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// Add 把图书加入购物车
// 去重检查与插入在同一事务内完成；按 ISBN 全表去重（沿用线上行为，
// 是否应改为按用户去重待产品确认）
func (r *CartRepository) Add(book *model.Book, userID int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.CartItem{}).Where("isbn = ?", book.ISBN).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyInCart
		}

		item := &model.CartItem{
			Title:  book.Title,
			BookID: book.ID,
			UserID: userID,
			ISBN:   book.ISBN,
		}
		return tx.Create(item).Error
	})
}

// ListByUser 获取用户购物车条目
func (r *CartRepository) ListByUser(userID int) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.Where("user_id = ?", userID).Find(&items).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}
