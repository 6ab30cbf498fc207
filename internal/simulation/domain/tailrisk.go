package domain

import "github.com/shopspring/decimal"

// TailRiskMetrics 尾部风险指标
// VaR 与 CVaR 以相对初始价格的损失额表示，正值代表亏损
type TailRiskMetrics struct {
	VaR95  decimal.Decimal // 95% 置信度 VaR
	VaR99  decimal.Decimal // 99% 置信度 VaR
	CVaR95 decimal.Decimal // 95% 置信度预期亏损 (Expected Shortfall)
	CVaR99 decimal.Decimal // 99% 置信度预期亏损
}

// ComputeTailRisk 从终值分布推导 VaR / CVaR
// VaR = s0 - 分位价格；CVaR = s0 - 分位阈值及以下终值的均值
func ComputeTailRisk(s0 float64, result *SimulationResult) TailRiskMetrics {
	return TailRiskMetrics{
		VaR95:  decimal.NewFromFloat(s0 - result.FinalPercentile05),
		VaR99:  decimal.NewFromFloat(s0 - result.FinalPercentile01),
		CVaR95: decimal.NewFromFloat(s0 - tailMean(result.FinalPrices, result.FinalPercentile05)),
		CVaR99: decimal.NewFromFloat(s0 - tailMean(result.FinalPrices, result.FinalPercentile01)),
	}
}

// tailMean 计算不超过 cutoff 的终值均值，入参已升序
// 尾部为空时退回 cutoff 本身
func tailMean(sorted []float64, cutoff float64) float64 {
	var sum float64
	n := 0
	for _, p := range sorted {
		if p > cutoff {
			break
		}
		sum += p
		n++
	}
	if n == 0 {
		return cutoff
	}
	return sum / float64(n)
}
