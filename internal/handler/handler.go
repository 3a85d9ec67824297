package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/user/bookslum/internal/config"
	"github.com/user/bookslum/internal/middleware"
	"github.com/user/bookslum/internal/model"
	"github.com/user/bookslum/internal/repository"
	"github.com/user/bookslum/internal/service"
	"github.com/user/bookslum/internal/utils"
)

// Handler HTTP 处理器
type Handler struct {
	Repos  *repository.Repositories
	Config *config.Config
	Greads *service.GreadsService
	Tokens *service.TokenService
	Mailer *service.Mailer
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	// 重置令牌固定 1800 秒有效期
	tokens := service.NewTokenService(cfg.AppSecret, 1800*time.Second)

	mailer := service.NewMailer(cfg.MailHost, cfg.MailPort, cfg.MailUsername, cfg.MailPassword, cfg.SiteName)

	return &Handler{
		Repos:  repos,
		Config: cfg,
		Greads: service.NewGreadsService(cfg.GreadsAPIKey),
		Tokens: tokens,
		Mailer: mailer,
	}
}

// RenderData 统一封装公共渲染数据
func (h *Handler) RenderData(c *gin.Context, data gin.H) gin.H {
	// 基础数据
	res := gin.H{
		"SiteName": h.Config.SiteName,
		"SiteUrl":  h.Config.SiteUrl,
		"Path":     c.Request.URL.Path,
		"Keyword":  c.Query("book"),
		"Redirect": c.Query("redirect"),
	}

	// 注入用户信息
	session := sessions.Default(c)
	if userinfo := session.Get("userinfo"); userinfo != nil {
		if su, ok := userinfo.(model.SessionUser); ok {
			res["UserInfo"] = su
		}
	}

	// 取出 Flash 消息
	res["Flashes"] = utils.PopFlashes(c)

	// 合并传入的数据
	for k, v := range data {
		res[k] = v
	}

	return res
}

// ==================== 公开页面 ====================

// Home 首页
func (h *Handler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", h.RenderData(c, gin.H{
		"Title": h.Config.SiteName,
	}))
}

// ==================== 认证页面 ====================

// RegisterForm 注册表单
type RegisterForm struct {
	Name            string `form:"name" binding:"required,min=2,max=20"`
	Username        string `form:"username" binding:"required,min=2,max=20"`
	Email           string `form:"email" binding:"required,email"`
	Password        string `form:"password" binding:"required"`
	ConfirmPassword string `form:"confirm_password" binding:"required,eqfield=Password"`
}

// RegisterPage 注册页面
func (h *Handler) RegisterPage(c *gin.Context) {
	if middleware.GetUserID(c) > 0 {
		c.Redirect(http.StatusFound, "/home")
		return
	}
	c.HTML(http.StatusOK, "register.html", h.RenderData(c, gin.H{
		"Title": "注册 - " + h.Config.SiteName,
	}))
}

// Register 注册处理
func (h *Handler) Register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		utils.SetFlash(c, "danger", formErrorMessage(err))
		c.HTML(http.StatusOK, "register.html", h.RenderData(c, gin.H{
			"Title": "注册 - " + h.Config.SiteName,
		}))
		return
	}

	// 用户名/邮箱唯一性检查（区分大小写的精确匹配）
	if existing, _ := h.Repos.User.FindByUsername(form.Username); existing != nil {
		utils.SetFlash(c, "danger", "该用户名已被占用，请换一个")
		c.HTML(http.StatusOK, "register.html", h.RenderData(c, gin.H{
			"Title": "注册 - " + h.Config.SiteName,
		}))
		return
	}
	if existing, _ := h.Repos.User.FindByEmail(form.Email); existing != nil {
		utils.SetFlash(c, "danger", "该邮箱已被注册")
		c.HTML(http.StatusOK, "register.html", h.RenderData(c, gin.H{
			"Title": "注册 - " + h.Config.SiteName,
		}))
		return
	}

	if _, err := h.Repos.User.Create(form.Name, form.Username, form.Email, form.Password); err != nil {
		utils.SetFlash(c, "danger", "注册失败，请重试")
		c.HTML(http.StatusInternalServerError, "register.html", h.RenderData(c, gin.H{
			"Title": "注册 - " + h.Config.SiteName,
		}))
		return
	}

	utils.SetFlash(c, "success", "账号创建成功，现在可以登录了")
	c.Redirect(http.StatusFound, "/login")
}

// LoginPage 登录页面
func (h *Handler) LoginPage(c *gin.Context) {
	if middleware.GetUserID(c) > 0 {
		c.Redirect(http.StatusFound, "/home")
		return
	}
	c.HTML(http.StatusOK, "login.html", h.RenderData(c, gin.H{
		"Title":    "登录 - " + h.Config.SiteName,
		"Redirect": c.Query("redirect"),
	}))
}

// Login 登录处理
func (h *Handler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	redirect := c.PostForm("redirect")

	if redirect == "" {
		redirect = "/home"
	}

	// 先清掉旧会话
	session := sessions.Default(c)
	session.Clear()
	session.Save()

	// 查找用户并验证密码，失败统一提示，不区分"邮箱不存在"和"密码错误"
	user, err := h.Repos.User.FindByEmail(email)
	if err != nil || user == nil || !h.Repos.User.CheckPassword(user, password) {
		utils.SetFlash(c, "danger", "登录失败")
		c.HTML(http.StatusOK, "login.html", h.RenderData(c, gin.H{
			"Title": "登录 - " + h.Config.SiteName,
		}))
		return
	}

	// 生成 JWT
	token, err := h.generateToken(user)
	if err != nil {
		utils.SetFlash(c, "danger", "登录失败，请重试")
		c.HTML(http.StatusInternalServerError, "login.html", h.RenderData(c, gin.H{
			"Title": "登录 - " + h.Config.SiteName,
		}))
		return
	}

	// 设置 Cookie (JWT)
	c.SetCookie("token", token, int(h.Config.JWTExpiry.Seconds()), "/", "", false, true)

	// 保存 UserInfo 到 Session
	session.Set("userinfo", model.SessionUser{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
	session.Save()

	utils.SetFlash(c, "success", "登录成功")
	c.Redirect(http.StatusFound, redirect)
}

// Logout 登出
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)

	// 清理 Session
	session := sessions.Default(c)
	session.Clear()
	session.Save()

	utils.SetFlash(c, "success", "已退出登录")
	c.Redirect(http.StatusFound, "/home")
}

// generateToken 生成 JWT
func (h *Handler) generateToken(user *model.User) (string, error) {
	claims := &middleware.Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.Config.JWTExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.Config.AppSecret))
}

// ==================== 用户中心 ====================

// Account 账户页：基本信息 + 购物车
func (h *Handler) Account(c *gin.Context) {
	userID := middleware.GetUserID(c)

	user, err := h.Repos.User.FindByID(userID)
	if err != nil || user == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	items, _ := h.Repos.Cart.ListByUser(userID)

	c.HTML(http.StatusOK, "account.html", h.RenderData(c, gin.H{
		"Title":    "我的账户 - " + h.Config.SiteName,
		"User":     user,
		"Books":    items,
		"CartSize": len(items),
	}))
}

// formErrorMessage 把 validator 校验错误翻译成用户可读的提示
func formErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "表单填写有误，请检查后重试"
	}

	e := verrs[0]
	switch e.Tag() {
	case "required":
		return "请填写完整的表单"
	case "email":
		return "邮箱格式不正确"
	case "min", "max":
		return e.Field() + " 长度需在 2-20 个字符之间"
	case "eqfield":
		return "两次输入的密码不一致"
	default:
		return "表单填写有误，请检查后重试"
	}
}
