package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/user/bookslum/internal/utils"
	"golang.org/x/sync/singleflight"
)

const greadsBaseURL = "https://www.goodreads.com/book/review_counts.json"

// GreadsStats 外部评分服务返回的单本书聚合数据
type GreadsStats struct {
	ID               int    `json:"id"`
	ISBN             string `json:"isbn"`
	ISBN13           string `json:"isbn13"`
	RatingsCount     int    `json:"ratings_count"`
	ReviewsCount     int    `json:"reviews_count"`
	TextReviewsCount int    `json:"text_reviews_count"`
	WorkRatingsCount int    `json:"work_ratings_count"`
	AverageRating    string `json:"average_rating"`
}

type greadsResponse struct {
	Books []GreadsStats `json:"books"`
}

// GreadsService 按 ISBN 查询外部评分服务
// 响应走 LRU 缓存，同一 ISBN 的并发请求用 singleflight 合并为一次上游调用
type GreadsService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      *utils.TTLCache[GreadsStats]
	group      singleflight.Group
}

// NewGreadsService 创建评分服务客户端
func NewGreadsService(apiKey string) *GreadsService {
	return &GreadsService{
		apiKey:  apiKey,
		baseURL: greadsBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: utils.NewTTLCache[GreadsStats](1000, time.Hour),
	}
}

// GetByISBN 获取一本书的外部评分聚合
func (s *GreadsService) GetByISBN(isbn string) (*GreadsStats, error) {
	if cached, ok := s.cache.Get(isbn); ok {
		return &cached, nil
	}

	val, err, _ := s.group.Do(isbn, func() (interface{}, error) {
		return s.fetch(isbn)
	})
	if err != nil {
		return nil, err
	}

	stats := val.(*GreadsStats)
	s.cache.Set(isbn, *stats)
	return stats, nil
}

func (s *GreadsService) fetch(isbn string) (*GreadsStats, error) {
	params := url.Values{}
	params.Set("key", s.apiKey)
	params.Set("isbns", isbn)

	resp, err := s.httpClient.Get(s.baseURL + "?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("评分服务请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("评分服务返回异常状态码: %d", resp.StatusCode)
	}

	var result greadsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("解析评分服务响应失败: %w", err)
	}
	if len(result.Books) == 0 {
		return nil, fmt.Errorf("评分服务未返回 ISBN %s 的数据", isbn)
	}

	return &result.Books[0], nil
}
