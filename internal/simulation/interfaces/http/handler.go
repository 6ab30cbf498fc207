// Package http 负责处理蒙特卡洛模拟相关的 HTTP 请求
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/quantanalytics/internal/simulation/application"
	"github.com/wyfcoding/quantanalytics/internal/simulation/domain"
	"github.com/wyfcoding/quantanalytics/pkg/logger"
	"github.com/wyfcoding/quantanalytics/pkg/response"
)

// SimulationHandler 模拟接口 HTTP 处理器
type SimulationHandler struct {
	svc *application.SimulationService
}

// NewSimulationHandler 创建 HTTP 处理器
func NewSimulationHandler(svc *application.SimulationService) *SimulationHandler {
	return &SimulationHandler{svc: svc}
}

// RegisterRoutes 注册路由
func (h *SimulationHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/simulation")
	{
		api.POST("/monte-carlo", h.RunMonteCarlo)
		api.GET("/health", h.EngineHealth)
	}
}

// RunMonteCarlo 运行蒙特卡洛模拟
func (h *SimulationHandler) RunMonteCarlo(c *gin.Context) {
	var req application.SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	dto, err := h.svc.RunMonteCarlo(c.Request.Context(), &req)
	if err != nil {
		// 参数问题一律 400 并指明字段，引擎本身无中途失败路径
		if errors.Is(err, domain.ErrInvalidParameter) {
			response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		logger.Error(c.Request.Context(), "Failed to run simulation", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, dto)
}

// EngineHealth 引擎健康检查
func (h *SimulationHandler) EngineHealth(c *gin.Context) {
	health, err := h.svc.HealthCheck(c.Request.Context())
	if err != nil {
		logger.Error(c.Request.Context(), "Engine health check failed", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, health)
}
