// Package domain 包含期权敏感度 (Greeks) 的领域模型
// 采用 Black-Scholes 闭式解，退化输入映射为边界值而非错误
package domain

import (
	"math"

	"github.com/wyfcoding/quantanalytics/pkg/stat"
)

// GreeksParameters 期权敏感度计算输入
type GreeksParameters struct {
	Strike       float64 // 行权价 K
	TimeToExpiry float64 // 剩余期限 T (年)
	Spot         float64 // 标的现价 S
	RiskFreeRate float64 // 无风险利率 r
	Volatility   float64 // 年化波动率 sigma
	IsCall       bool    // true 为看涨，false 为看跌
}

// GreeksResult 五个敏感度相互独立
// Vega、Rho 按变动 1 个百分点计，Theta 按每日历日衰减计
type GreeksResult struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Vega  float64 `json:"vega"`
	Theta float64 `json:"theta"`
	Rho   float64 `json:"rho"`
}

// CalculateGreeks 计算期权希腊字母，对任意输入总是返回结果
//
// 已到期、零波动率等退化输入取 Black-Scholes 的极限值：
// Delta 取 0/±1，其余敏感度归零，避免对 log(S/K)/0 求值
func CalculateGreeks(p GreeksParameters) GreeksResult {
	var r GreeksResult

	if p.TimeToExpiry <= 0 || p.Volatility <= 0 || p.Strike <= 0 || p.Spot <= 0 {
		if p.IsCall {
			if p.Spot > p.Strike {
				r.Delta = 1.0
			}
		} else {
			if p.Spot < p.Strike {
				r.Delta = -1.0
			}
		}
		return r
	}

	sqrtT := math.Sqrt(p.TimeToExpiry)
	d1 := (math.Log(p.Spot/p.Strike) + (p.RiskFreeRate+0.5*p.Volatility*p.Volatility)*p.TimeToExpiry) / (p.Volatility * sqrtT)
	d2 := d1 - p.Volatility*sqrtT

	nd1 := stat.NormCDF(d1)
	nd2 := stat.NormCDF(d2)
	pd1 := stat.NormPDF(d1)
	expRT := math.Exp(-p.RiskFreeRate * p.TimeToExpiry)

	// Gamma 与 Vega 对 call/put 同形
	r.Gamma = pd1 / (p.Spot * p.Volatility * sqrtT)
	r.Vega = p.Spot * pd1 * sqrtT * 0.01

	decay := -(p.Spot * pd1 * p.Volatility) / (2 * sqrtT)
	if p.IsCall {
		r.Delta = nd1
		r.Theta = (decay - p.RiskFreeRate*p.Strike*expRT*nd2) / 365
		r.Rho = p.Strike * p.TimeToExpiry * expRT * nd2 * 0.01
	} else {
		// put 直接用自身公式而非平价关系换算，避免大数相减丢精度
		r.Delta = nd1 - 1
		r.Theta = (decay + p.RiskFreeRate*p.Strike*expRT*stat.NormCDF(-d2)) / 365
		r.Rho = -p.Strike * p.TimeToExpiry * expRT * stat.NormCDF(-d2) * 0.01
	}

	return r
}
