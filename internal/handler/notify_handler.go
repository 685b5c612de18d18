package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"wxpay-gateway-api/internal/callback"
)

type NotifyHandler struct{ proc *callback.Processor }

func NewNotifyHandler(proc *callback.Processor) *NotifyHandler {
	return &NotifyHandler{proc: proc}
}

// PayResultCallback 支付结果通知入口
// 契约：原始XML进，应答XML原样出；应答永远是合法报文，
// 非SUCCESS应答会触发网关按既定节奏重发
func (h *NotifyHandler) PayResultCallback(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		body = nil
	}
	ackXML := h.proc.Handle(c.Request.Context(), body)
	c.Data(http.StatusOK, "text/xml; charset=utf-8", []byte(ackXML))
}
