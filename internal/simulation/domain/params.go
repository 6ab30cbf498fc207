// Package domain 包含 GBM 蒙特卡洛路径模拟的领域模型
package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter 模拟参数校验失败，在任何模拟工作开始前同步返回
var ErrInvalidParameter = errors.New("invalid simulation parameter")

// DefaultHistogramBins 终值直方图默认分箱数
const DefaultHistogramBins = 50

// SimulationParameters 蒙特卡洛模拟输入参数
type SimulationParameters struct {
	S0             float64 // 初始价格，必须 > 0
	Mu             float64 // 年化漂移率
	Sigma          float64 // 年化波动率，必须 >= 0
	NumSimulations int     // 模拟路径数 (例如 10000)
	NumSteps       int     // 时间步数 (例如 252 个交易日)
	Dt             float64 // 单步时间增量 (年)，例如 1.0/252，必须保持 float64 精度
	HistogramBins  int     // 直方图分箱数，<=0 时取默认值 50
	Seed           uint64  // 随机种子，0 表示从系统时钟派生（不可复现）
	Workers        int     // 路径生成分片数，<=1 表示单随机流顺序执行
}

// Validate 校验参数并指明第一个不合法的字段
func (p *SimulationParameters) Validate() error {
	if p.NumSimulations < 1 {
		return fmt.Errorf("%w: num_simulations must be >= 1, got %d", ErrInvalidParameter, p.NumSimulations)
	}
	if p.NumSteps < 1 {
		return fmt.Errorf("%w: num_steps must be >= 1, got %d", ErrInvalidParameter, p.NumSteps)
	}
	if p.S0 <= 0 {
		return fmt.Errorf("%w: s0 must be > 0, got %g", ErrInvalidParameter, p.S0)
	}
	if p.Sigma < 0 {
		return fmt.Errorf("%w: sigma must be >= 0, got %g", ErrInvalidParameter, p.Sigma)
	}
	if p.Dt <= 0 {
		return fmt.Errorf("%w: dt must be > 0, got %g", ErrInvalidParameter, p.Dt)
	}
	return nil
}
