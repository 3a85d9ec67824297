package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/bookslum/internal/service"
	"github.com/user/bookslum/internal/utils"
)

// ==================== 密码重置 ====================

// ResetRequestForm 重置申请表单
type ResetRequestForm struct {
	Email string `form:"email" binding:"required,email"`
}

// ResetPasswordForm 重置密码表单
type ResetPasswordForm struct {
	Password        string `form:"password" binding:"required"`
	ConfirmPassword string `form:"confirm_password" binding:"required,eqfield=Password"`
}

// ResetRequestPage 重置申请页面
func (h *Handler) ResetRequestPage(c *gin.Context) {
	c.HTML(http.StatusOK, "request_reset.html", h.RenderData(c, gin.H{
		"Title": "重置密码 - " + h.Config.SiteName,
	}))
}

// ResetRequest 处理重置申请：校验邮箱存在后发送带令牌的邮件
func (h *Handler) ResetRequest(c *gin.Context) {
	var form ResetRequestForm
	if err := c.ShouldBind(&form); err != nil {
		utils.SetFlash(c, "danger", formErrorMessage(err))
		c.HTML(http.StatusOK, "request_reset.html", h.RenderData(c, gin.H{
			"Title": "重置密码 - " + h.Config.SiteName,
		}))
		return
	}

	user, err := h.Repos.User.FindByEmail(form.Email)
	if err != nil || user == nil {
		utils.SetFlash(c, "danger", "该邮箱尚未注册，请先注册")
		c.HTML(http.StatusOK, "request_reset.html", h.RenderData(c, gin.H{
			"Title": "重置密码 - " + h.Config.SiteName,
		}))
		return
	}

	token, err := h.Tokens.Generate(user.ID)
	if err != nil {
		log.Printf("[ResetRequest] 签发令牌失败: %v", err)
		utils.SetFlash(c, "danger", "操作失败，请稍后重试")
		c.HTML(http.StatusInternalServerError, "request_reset.html", h.RenderData(c, gin.H{
			"Title": "重置密码 - " + h.Config.SiteName,
		}))
		return
	}

	resetURL := h.Config.SiteUrl + "/reset_password/" + token
	if err := h.Mailer.SendResetMail(user.Email, resetURL); err != nil {
		// 邮件服务不可用时降级提示，不暴露内部错误
		log.Printf("[ResetRequest] %v", err)
		utils.SetFlash(c, "danger", "邮件发送失败，请稍后再试")
		c.HTML(http.StatusOK, "request_reset.html", h.RenderData(c, gin.H{
			"Title": "重置密码 - " + h.Config.SiteName,
		}))
		return
	}

	c.HTML(http.StatusOK, "reset.html", h.RenderData(c, gin.H{
		"Title":   "重置密码 - " + h.Config.SiteName,
		"Message": "重置邮件已发送，请按邮件中的说明操作",
	}))
}

// ResetTokenPage 带令牌的重置页面
func (h *Handler) ResetTokenPage(c *gin.Context) {
	token := c.Param("token")
	if _, status := h.Tokens.Verify(token); status != service.TokenValid {
		// 过期与篡改对外不区分，统一措辞避免成为签名试探的回声板
		utils.SetFlash(c, "warning", "重置链接无效或已过期")
		c.Redirect(http.StatusFound, "/reset_password")
		return
	}

	c.HTML(http.StatusOK, "reset_password.html", h.RenderData(c, gin.H{
		"Title": "设置新密码 - " + h.Config.SiteName,
		"Token": token,
	}))
}

// ResetToken 校验令牌并写入新密码
func (h *Handler) ResetToken(c *gin.Context) {
	token := c.Param("token")
	userID, status := h.Tokens.Verify(token)
	if status != service.TokenValid {
		utils.SetFlash(c, "warning", "重置链接无效或已过期")
		c.Redirect(http.StatusFound, "/reset_password")
		return
	}

	var form ResetPasswordForm
	if err := c.ShouldBind(&form); err != nil {
		utils.SetFlash(c, "danger", formErrorMessage(err))
		c.HTML(http.StatusOK, "reset_password.html", h.RenderData(c, gin.H{
			"Title": "设置新密码 - " + h.Config.SiteName,
			"Token": token,
		}))
		return
	}

	if err := h.Repos.User.UpdatePassword(userID, form.Password); err != nil {
		log.Printf("[ResetToken] 更新密码失败: %v", err)
		utils.SetFlash(c, "danger", "密码更新失败，请重试")
		c.HTML(http.StatusInternalServerError, "reset_password.html", h.RenderData(c, gin.H{
			"Title": "设置新密码 - " + h.Config.SiteName,
			"Token": token,
		}))
		return
	}

	c.HTML(http.StatusOK, "reset.html", h.RenderData(c, gin.H{
		"Title":   "重置密码 - " + h.Config.SiteName,
		"Message": "密码已更新，现在可以使用新密码登录",
	}))
}
