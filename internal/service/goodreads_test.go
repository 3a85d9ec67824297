package service

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

const sampleGreadsBody = `{"books":[{"id":1,"isbn":"0441172717","isbn13":"9780441172719",` +
	`"ratings_count":12345,"reviews_count":23456,"text_reviews_count":789,` +
	`"work_ratings_count":34567,"average_rating":"4.23"}]}`

func newTestGreads(t *testing.T, handler http.HandlerFunc) (*GreadsService, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc := NewGreadsService("test-key")
	svc.baseURL = srv.URL
	return svc, srv
}

func TestGreadsGetByISBN(t *testing.T) {
	svc, _ := newTestGreads(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("isbns"); got != "0441172717" {
			t.Errorf("isbns = %q, want 0441172717", got)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("key = %q, want test-key", got)
		}
		w.Write([]byte(sampleGreadsBody))
	})

	stats, err := svc.GetByISBN("0441172717")
	if err != nil {
		t.Fatalf("GetByISBN: %v", err)
	}
	if stats.WorkRatingsCount != 34567 {
		t.Errorf("WorkRatingsCount = %d, want 34567", stats.WorkRatingsCount)
	}
	if stats.AverageRating != "4.23" {
		t.Errorf("AverageRating = %q, want 4.23", stats.AverageRating)
	}
}

func TestGreadsCacheHit(t *testing.T) {
	var calls int64
	svc, _ := newTestGreads(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Write([]byte(sampleGreadsBody))
	})

	for i := 0; i < 3; i++ {
		if _, err := svc.GetByISBN("0441172717"); err != nil {
			t.Fatalf("GetByISBN #%d: %v", i, err)
		}
	}

	// 第二次起命中缓存，上游只打一次
	if got := atomic.LoadInt64(&calls); got != 1 {
		t.Errorf("上游请求次数 = %d, want 1", got)
	}
}

func TestGreadsUpstreamError(t *testing.T) {
	svc, _ := newTestGreads(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := svc.GetByISBN("0441172717"); err == nil {
		t.Error("上游 500 应返回 error")
	}
}

func TestGreadsEmptyBooks(t *testing.T) {
	svc, _ := newTestGreads(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"books":[]}`))
	})

	if _, err := svc.GetByISBN("no-such-isbn"); err == nil {
		t.Error("空结果应返回 error")
	}
}
