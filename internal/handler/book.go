package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/bookslum/internal/middleware"
	"github.com/user/bookslum/internal/model"
	"github.com/user/bookslum/internal/repository"
	"github.com/user/bookslum/internal/utils"
)

// ==================== 图书检索 ====================

// Search 搜索结果页
func (h *Handler) Search(c *gin.Context) {
	keyword := c.Query("book")
	if keyword == "" {
		utils.SetFlash(c, "danger", "请输入要搜索的图书")
		c.HTML(http.StatusOK, "home.html", h.RenderData(c, gin.H{
			"Title": h.Config.SiteName,
		}))
		return
	}

	books, err := h.Repos.Book.Search(utils.NormalizeQuery(keyword))
	if err != nil {
		log.Printf("[Search] 查询失败: %v", err)
		utils.SetFlash(c, "danger", "搜索失败，请稍后重试")
		c.HTML(http.StatusOK, "home.html", h.RenderData(c, gin.H{
			"Title": h.Config.SiteName,
		}))
		return
	}

	// 空结果不是错误，只提示未找到
	if len(books) == 0 {
		utils.SetFlash(c, "danger", "没有找到符合描述的图书")
		c.HTML(http.StatusOK, "home.html", h.RenderData(c, gin.H{
			"Title": h.Config.SiteName,
		}))
		return
	}

	c.HTML(http.StatusOK, "query.html", h.RenderData(c, gin.H{
		"Title":   keyword + " - 搜索结果 - " + h.Config.SiteName,
		"Keyword": keyword,
		"Books":   books,
		"Results": len(books),
	}))
}

// ==================== 图书详情与书评 ====================

// ReviewForm 书评表单
type ReviewForm struct {
	Title  string `form:"title" binding:"required"`
	Stars  int    `form:"stars" binding:"required,min=1,max=5"`
	Review string `form:"review" binding:"required"`
}

// BookInfo 图书详情页：本地书评 + 外部评分聚合
func (h *Handler) BookInfo(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.SetFlash(c, "danger", "无效的图书编号")
		c.Redirect(http.StatusFound, "/home")
		return
	}

	book, err := h.Repos.Book.FindByID(id)
	if err != nil || book == nil {
		utils.SetFlash(c, "danger", "图书不存在")
		c.Redirect(http.StatusFound, "/home")
		return
	}

	// 外部评分服务不可用时降级：提示后回首页，不报硬错误
	greads, err := h.Greads.GetByISBN(book.ISBN)
	if err != nil {
		log.Printf("[BookInfo] 获取外部评分失败 (ISBN: %s): %v", book.ISBN, err)
		utils.SetFlash(c, "danger", "评分服务暂时不可用，请稍后再试")
		c.Redirect(http.StatusFound, "/home")
		return
	}

	reviews, err := h.Repos.Review.ListByBook(book.ID)
	if err != nil {
		log.Printf("[BookInfo] 获取书评失败: %v", err)
	}

	c.HTML(http.StatusOK, "book_info.html", h.RenderData(c, gin.H{
		"Title":   book.Title + " - " + h.Config.SiteName,
		"Book":    book,
		"Greads":  greads,
		"Reviews": reviews,
		"Num":     len(reviews),
		"Stats":   h.localStats(book.ISBN),
	}))
}

// SubmitReview 提交书评，每次提交保存一条独立记录
func (h *Handler) SubmitReview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.SetFlash(c, "danger", "无效的图书编号")
		c.Redirect(http.StatusFound, "/home")
		return
	}

	book, err := h.Repos.Book.FindByID(id)
	if err != nil || book == nil {
		utils.SetFlash(c, "danger", "图书不存在")
		c.Redirect(http.StatusFound, "/home")
		return
	}

	var form ReviewForm
	if err := c.ShouldBind(&form); err != nil {
		utils.SetFlash(c, "danger", "请填写完整的书评（标题、评分、内容）")
		c.Redirect(http.StatusFound, "/book_info/"+strconv.Itoa(book.ID))
		return
	}

	review := &model.Review{
		Review: form.Review,
		UserID: middleware.GetUserID(c),
		BookID: book.ID,
		Rating: form.Stars,
		Title:  form.Title,
	}
	if err := h.Repos.Review.Create(review); err != nil {
		log.Printf("[SubmitReview] 保存书评失败: %v", err)
		utils.SetFlash(c, "danger", "书评保存失败，请重试")
		c.Redirect(http.StatusFound, "/book_info/"+strconv.Itoa(book.ID))
		return
	}

	// 聚合缓存失效
	utils.CacheDelete("stats:" + book.ISBN)

	c.Redirect(http.StatusFound, "/book_info/"+strconv.Itoa(book.ID))
}

// localStats 本地书评聚合（短 TTL 缓存）
func (h *Handler) localStats(isbn string) *model.BookStats {
	if cached, ok := utils.CacheGet("stats:" + isbn); ok {
		if stats, ok := cached.(*model.BookStats); ok {
			return stats
		}
	}

	stats, err := h.Repos.Book.StatsByISBN(isbn)
	if err != nil {
		log.Printf("[localStats] 聚合查询失败 (ISBN: %s): %v", isbn, err)
		return &model.BookStats{}
	}
	stats.AverageScore = utils.Round2(stats.AverageScore)

	utils.CacheSet("stats:"+isbn, stats, 0)
	return stats
}

// ==================== 购物车 ====================

// AddToCart 加入购物车
func (h *Handler) AddToCart(c *gin.Context) {
	isbn := c.PostForm("add")
	if isbn == "" {
		utils.SetFlash(c, "danger", "缺少图书 ISBN")
		c.Redirect(http.StatusFound, "/home")
		return
	}

	book, err := h.Repos.Book.FindByISBN(isbn)
	if err != nil || book == nil {
		utils.SetFlash(c, "danger", "图书不存在")
		c.Redirect(http.StatusFound, "/home")
		return
	}

	userID := middleware.GetUserID(c)
	err = h.Repos.Cart.Add(book, userID)
	switch {
	case errors.Is(err, repository.ErrAlreadyInCart):
		utils.SetFlash(c, "info", "这本书已经在你的购物车里了")
	case err != nil:
		log.Printf("[AddToCart] 写入失败: %v", err)
		utils.SetFlash(c, "danger", "加入购物车失败，请重试")
	default:
		utils.SetFlash(c, "info", "已加入购物车，可在账户页查看")
	}

	// 回到来源页
	referer := c.Request.Referer()
	if referer == "" {
		referer = "/home"
	}
	c.Redirect(http.StatusFound, referer)
}
