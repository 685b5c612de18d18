package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wxpay-gateway-api/internal/constant"
	"wxpay-gateway-api/internal/dto"
	"wxpay-gateway-api/internal/middleware"
	"wxpay-gateway-api/internal/service"
	"wxpay-gateway-api/internal/utils"
	"wxpay-gateway-api/internal/wxpay"
)

type PayHandler struct{ svc *service.PayService }

func NewPayHandler(svc *service.PayService) *PayHandler { return &PayHandler{svc: svc} }

// Create 统一下单
func (h *PayHandler) Create(c *gin.Context) {
	var req dto.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CustomError(constant.CodeInvalidParams, err.Error()))
		return
	}
	if req.ClientIP == "" {
		req.ClientIP = utils.GetClientIP(c)
	}
	resp, err := h.svc.CreateOrder(c.Request.Context(), req)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(resp))
}

// Query 查询订单
func (h *PayHandler) Query(c *gin.Context) {
	resp, err := h.svc.QueryOrder(c.Request.Context(), c.Query("transaction_id"), c.Query("out_trade_no"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(resp))
}

// Refund 申请退款
func (h *PayHandler) Refund(c *gin.Context) {
	var req dto.RefundReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CustomError(constant.CodeInvalidParams, err.Error()))
		return
	}
	resp, err := h.svc.Refund(c.Request.Context(), req)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(resp))
}

// AppPayParams 取已下单订单的 APP 调起支付参数
func (h *PayHandler) AppPayParams(c *gin.Context) {
	p, err := h.svc.AppPayParams(c.Query("transaction_id"), c.Query("out_trade_no"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(p))
}

// JSAPIPayParams 取已下单订单的 JSAPI/H5 调起支付参数
func (h *PayHandler) JSAPIPayParams(c *gin.Context) {
	p, err := h.svc.JSAPIPayParams(c.Query("transaction_id"), c.Query("out_trade_no"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(p))
}

// RefundQuery 查询退款
func (h *PayHandler) RefundQuery(c *gin.Context) {
	resp, err := h.svc.QueryRefund(c.Request.Context(),
		c.Query("refund_id"), c.Query("out_refund_no"),
		c.Query("transaction_id"), c.Query("out_trade_no"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(resp))
}

// DownloadBill 下载对账单，format=json 时返回解析后的结构
func (h *PayHandler) DownloadBill(c *gin.Context) {
	if c.Query("format") == "json" {
		bill, err := h.svc.DownloadBillParsed(c.Request.Context(), c.Query("bill_date"), c.Query("bill_type"))
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, utils.Success(bill))
		return
	}
	text, err := h.svc.DownloadBill(c.Request.Context(), c.Query("bill_date"), c.Query("bill_type"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

// writeErr 错误分层映射：参数类 400，网关/系统类 200 + 业务码
func writeErr(c *gin.Context, err error) {
	var vErr *wxpay.ValidationError
	if errors.As(err, &vErr) || errors.Is(err, wxpay.ErrInvalidAmount) {
		c.JSON(http.StatusBadRequest, utils.CustomError(constant.CodeInvalidParams, err.Error()))
		return
	}
	var tErr *wxpay.TransportError
	if errors.As(err, &tErr) {
		c.JSON(http.StatusOK, utils.ErrorWithData(constant.CodeGatewayTransport, string(tErr.Kind)))
		return
	}
	var pErr *wxpay.ProtocolError
	if errors.As(err, &pErr) {
		c.JSON(http.StatusOK, utils.ErrorWithData(constant.CodeGatewayProtocol, pErr.ReturnMsg))
		return
	}
	if errors.Is(err, wxpay.ErrSignatureInvalid) {
		c.JSON(http.StatusOK, utils.Error(constant.CodeGatewaySignError))
		return
	}
	var cErr constant.Error
	if errors.As(err, &cErr) {
		c.JSON(http.StatusOK, utils.ErrorWithTrace(cErr.Code(), c.GetString(middleware.TraceIDKey)))
		return
	}
	c.JSON(http.StatusOK, utils.CustomErrorWithTrace(constant.CodeSystemError, err.Error(), c.GetString(middleware.TraceIDKey)))
}
