package application

import "github.com/wyfcoding/quantanalytics/internal/options/domain"

// GreeksRequest 单合约希腊字母计算请求 DTO
type GreeksRequest struct {
	Strike       float64 `json:"strike"`
	TimeToExpiry float64 `json:"time_to_expiry"` // 年
	Spot         float64 `json:"spot"`
	RiskFreeRate float64 `json:"risk_free_rate"`
	Volatility   float64 `json:"volatility"`
	IsCall       *bool   `json:"is_call"` // 缺省为看涨
}

// GreeksResponse 五个敏感度，见领域层定义
type GreeksResponse struct {
	domain.GreeksResult
}

// SurfacePoint 波动率曲面上的一个采样点
type SurfacePoint struct {
	Strike       float64 `json:"strike"`
	DaysToExpiry float64 `json:"days_to_expiry"`
	ImpliedVol   float64 `json:"implied_vol"`
}

// SurfaceRequest 批量希腊字母计算请求，用于给 IV 曲面着色
type SurfaceRequest struct {
	Spot         float64        `json:"spot"`
	RiskFreeRate float64        `json:"risk_free_rate"`
	IsCall       *bool          `json:"is_call"`
	Points       []SurfacePoint `json:"points"`
}

// SurfaceResponse 与 Points 等长的逐点敏感度数组
type SurfaceResponse struct {
	Count int       `json:"count"`
	Delta []float64 `json:"delta"`
	Gamma []float64 `json:"gamma"`
	Vega  []float64 `json:"vega"`
	Theta []float64 `json:"theta"`
	Rho   []float64 `json:"rho"`
}
