package router

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
	"github.com/user/bookslum/internal/handler"
	"github.com/user/bookslum/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 所有请求都先尝试解析登录态（未登录不拦截）
	r.Use(middleware.OptionalAuth(h.Config.AppSecret))

	// ==================== 公开页面 ====================
	r.GET("/", h.Home)
	r.GET("/home", h.Home)
	r.GET("/register", h.RegisterPage)
	r.POST("/register", h.Register)
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)

	// 密码重置
	r.GET("/reset_password", h.ResetRequestPage)
	r.POST("/reset_password", h.ResetRequest)
	r.GET("/reset_password/:token", h.ResetTokenPage)
	r.POST("/reset_password/:token", h.ResetToken)

	// ==================== 需要登录 ====================
	authed := r.Group("")
	authed.Use(middleware.RequireAuth(h.Config.AppSecret))
	{
		authed.GET("/logout", h.Logout)
		authed.POST("/logout", h.Logout)
		authed.GET("/account", h.Account)
		authed.GET("/search", h.Search)
		authed.GET("/book_info/:id", h.BookInfo)
		authed.POST("/book_info/:id", h.SubmitReview)
		authed.POST("/add_to_cart/:id", h.AddToCart)
		authed.GET("/api/:isbn", h.BookAPI)
	}
}

// LoadTemplates 使用 multitemplate 加载模板，解决模板继承问题
func LoadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	// 获取布局和局部模板
	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	partials, err := filepath.Glob(templatesDir + "/partials/*.html")
	if err != nil {
		panic(err)
	}

	// 组装模板文件列表
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, partials...)
		files = append(files, view)
		return files
	}

	// 模板函数
	funcMap := template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"default": func(defaultValue, value interface{}) interface{} {
			switch v := value.(type) {
			case string:
				if v == "" {
					return defaultValue
				}
			case int:
				if v == 0 {
					return defaultValue
				}
			case nil:
				return defaultValue
			}
			return value
		},
	}

	// 注册所有页面模板
	pages := []string{
		"home", "query", "book_info",
		"login", "register", "account",
		"request_reset", "reset_password", "reset",
	}

	for _, page := range pages {
		viewPath := templatesDir + "/pages/" + page + ".html"
		r.AddFromFilesFuncs(page+".html", funcMap, assemble(viewPath)...)
	}

	return r
}
