// Package http 负责处理期权敏感度相关的 HTTP 请求
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/quantanalytics/internal/options/application"
	"github.com/wyfcoding/quantanalytics/pkg/response"
)

// GreeksHandler 期权接口 HTTP 处理器
type GreeksHandler struct {
	svc *application.GreeksService
}

// NewGreeksHandler 创建 HTTP 处理器
func NewGreeksHandler(svc *application.GreeksService) *GreeksHandler {
	return &GreeksHandler{svc: svc}
}

// RegisterRoutes 注册路由
func (h *GreeksHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/options")
	{
		api.POST("/greeks", h.CalculateGreeks)
		api.POST("/surface", h.GreeksSurface)
	}
}

// CalculateGreeks 计算单合约希腊字母
// 计算本身对任意输入总有定义的输出，只有报文解析可能失败
func (h *GreeksHandler) CalculateGreeks(c *gin.Context) {
	var req application.GreeksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	response.Success(c, h.svc.CalculateGreeks(c.Request.Context(), &req))
}

// GreeksSurface 批量计算曲面采样点的希腊字母
func (h *GreeksHandler) GreeksSurface(c *gin.Context) {
	var req application.SurfaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	dto, err := h.svc.GreeksSurface(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, application.ErrTooManyPoints) {
			response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, dto)
}
