// Package application 编排期权敏感度用例
package application

import (
	"context"
	"fmt"
	"time"

	"github.com/wyfcoding/quantanalytics/internal/options/domain"
	"github.com/wyfcoding/quantanalytics/pkg/metrics"
)

// ErrTooManyPoints 曲面批量点数超过配置上限
// 单点计算永不失败，这是期权侧唯一的错误出口
var ErrTooManyPoints = fmt.Errorf("too many surface points")

// 曲面点的最短剩余期限，当日到期的点夹到一天内，避免批量数据中的零期限尖刺
const minSurfaceExpiry = 0.001

// GreeksService 期权敏感度应用服务
type GreeksService struct {
	maxSurfacePoints int
	metrics          *metrics.Metrics // 可为 nil
}

// NewGreeksService 构造函数
func NewGreeksService(maxSurfacePoints int, m *metrics.Metrics) *GreeksService {
	return &GreeksService{maxSurfacePoints: maxSurfacePoints, metrics: m}
}

// CalculateGreeks 计算单合约敏感度，对任意输入总有定义的输出
func (s *GreeksService) CalculateGreeks(ctx context.Context, req *GreeksRequest) *GreeksResponse {
	start := time.Now()
	result := domain.CalculateGreeks(domain.GreeksParameters{
		Strike:       req.Strike,
		TimeToExpiry: req.TimeToExpiry,
		Spot:         req.Spot,
		RiskFreeRate: req.RiskFreeRate,
		Volatility:   req.Volatility,
		IsCall:       isCall(req.IsCall),
	})
	if s.metrics != nil {
		s.metrics.GreeksCalcsTotal.Inc()
		s.metrics.GreeksDuration.Observe(time.Since(start).Seconds())
	}
	return &GreeksResponse{GreeksResult: result}
}

// GreeksSurface 对 (strike, 剩余天数, IV) 采样点批量求敏感度
func (s *GreeksService) GreeksSurface(ctx context.Context, req *SurfaceRequest) (*SurfaceResponse, error) {
	n := len(req.Points)
	if s.maxSurfacePoints > 0 && n > s.maxSurfacePoints {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyPoints, n, s.maxSurfacePoints)
	}

	resp := &SurfaceResponse{
		Count: n,
		Delta: make([]float64, n),
		Gamma: make([]float64, n),
		Vega:  make([]float64, n),
		Theta: make([]float64, n),
		Rho:   make([]float64, n),
	}

	call := isCall(req.IsCall)
	for i, pt := range req.Points {
		expiry := pt.DaysToExpiry / 365.0
		if expiry < minSurfaceExpiry {
			expiry = minSurfaceExpiry
		}
		g := domain.CalculateGreeks(domain.GreeksParameters{
			Strike:       pt.Strike,
			TimeToExpiry: expiry,
			Spot:         req.Spot,
			RiskFreeRate: req.RiskFreeRate,
			Volatility:   pt.ImpliedVol,
			IsCall:       call,
		})
		resp.Delta[i] = g.Delta
		resp.Gamma[i] = g.Gamma
		resp.Vega[i] = g.Vega
		resp.Theta[i] = g.Theta
		resp.Rho[i] = g.Rho
	}

	if s.metrics != nil {
		s.metrics.GreeksCalcsTotal.Add(float64(n))
	}
	return resp, nil
}

func isCall(flag *bool) bool {
	if flag == nil {
		return true
	}
	return *flag
}
