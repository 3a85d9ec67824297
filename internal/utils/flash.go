package utils

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Flash 一次性提示消息，写入 Session，下一次渲染页面时取出并清除
type Flash struct {
	Type    string // success / info / warning / danger
	Message string
}

const flashKey = "flashes"

// SetFlash 追加一条 Flash 消息
func SetFlash(c *gin.Context, flashType, message string) {
	session := sessions.Default(c)
	flashes, _ := session.Get(flashKey).([]Flash)
	flashes = append(flashes, Flash{Type: flashType, Message: message})
	session.Set(flashKey, flashes)
	session.Save()
}

// PopFlashes 取出全部 Flash 消息并清空
func PopFlashes(c *gin.Context) []Flash {
	session := sessions.Default(c)
	flashes, _ := session.Get(flashKey).([]Flash)
	if len(flashes) > 0 {
		session.Delete(flashKey)
		session.Save()
	}
	return flashes
}
