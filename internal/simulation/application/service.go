// Package application 编排蒙特卡洛模拟用例：参数边界校验、引擎调用、结果装配
package application

import (
	"context"
	"fmt"
	"time"

	"github.com/wyfcoding/quantanalytics/internal/simulation/domain"
	"github.com/wyfcoding/quantanalytics/pkg/logger"
	"github.com/wyfcoding/quantanalytics/pkg/metrics"
)

// 请求缺省值，与上游系统的日频约定一致
const (
	defaultNumSimulations = 10000
	defaultNumSteps       = 252
	defaultDt             = 1.0 / 252.0
)

// Limits 应用层请求边界，领域层校验之外的宿主侧防护
type Limits struct {
	MaxSimulations   int
	MaxSteps         int
	MinHistogramBins int
	MaxHistogramBins int
	// NumSimulations x NumSteps 的乘积上限
	MaxPathBudget int
}

// SimulationService 蒙特卡洛模拟应用服务
type SimulationService struct {
	limits  Limits
	workers int
	metrics *metrics.Metrics // 可为 nil（CLI 场景）
}

// NewSimulationService 构造函数
func NewSimulationService(limits Limits, workers int, m *metrics.Metrics) *SimulationService {
	return &SimulationService{limits: limits, workers: workers, metrics: m}
}

// RunMonteCarlo 运行一次模拟并装配响应
func (s *SimulationService) RunMonteCarlo(ctx context.Context, req *SimulationRequest) (*SimulationResponse, error) {
	params := s.buildParams(req)

	if err := s.checkLimits(&params); err != nil {
		if s.metrics != nil {
			s.metrics.SimulationErrorsTotal.Inc()
		}
		return nil, err
	}

	defer logger.LogDuration(ctx, "monte carlo simulation finished",
		"num_simulations", params.NumSimulations,
		"num_steps", params.NumSteps,
	)()

	start := time.Now()
	result, err := domain.RunMonteCarlo(params)
	if err != nil {
		if s.metrics != nil {
			s.metrics.SimulationErrorsTotal.Inc()
		}
		logger.Error(ctx, "simulation rejected", "error", err)
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.SimulationRunsTotal.Inc()
		s.metrics.SimulationPathsTotal.Add(float64(params.NumSimulations))
		s.metrics.SimulationDuration.Observe(time.Since(start).Seconds())
	}

	tail := domain.ComputeTailRisk(params.S0, result)

	return &SimulationResponse{
		Parameters: ParametersDTO{
			S0:             params.S0,
			Mu:             params.Mu,
			Sigma:          params.Sigma,
			NumSimulations: params.NumSimulations,
			NumSteps:       params.NumSteps,
			Dt:             params.Dt,
			HistogramBins:  params.HistogramBins,
			Seed:           result.Seed,
		},
		Results: ResultsDTO{
			MeanPath:     result.MeanPath,
			Percentile05: result.Percentile05,
			Percentile95: result.Percentile95,
			Histogram: HistogramDTO{
				Counts: result.HistogramData,
				Edges:  result.HistogramEdges,
			},
			FinalPrice: FinalPriceDTO{
				Mean: result.FinalPriceMean,
				Std:  result.FinalPriceStd,
				Min:  result.FinalPriceMin,
				Max:  result.FinalPriceMax,
			},
			TailRisk: TailRiskDTO{
				VaR95:  tail.VaR95.String(),
				VaR99:  tail.VaR99.String(),
				CVaR95: tail.CVaR95.String(),
				CVaR99: tail.CVaR99.String(),
			},
		},
	}, nil
}

// HealthCheck 用固定种子的小规模试跑验证引擎可用
func (s *SimulationService) HealthCheck(ctx context.Context) (*EngineHealth, error) {
	start := time.Now()
	result, err := domain.RunMonteCarlo(domain.SimulationParameters{
		S0:             100,
		Mu:             0.08,
		Sigma:          0.20,
		NumSimulations: 100,
		NumSteps:       10,
		Dt:             defaultDt,
		HistogramBins:  10,
		Seed:           42,
	})
	if err != nil {
		return nil, err
	}
	return &EngineHealth{
		Status:        "healthy",
		MeanFinal:     result.FinalPriceMean,
		StdFinal:      result.FinalPriceStd,
		DurationMicro: time.Since(start).Microseconds(),
	}, nil
}

func (s *SimulationService) buildParams(req *SimulationRequest) domain.SimulationParameters {
	params := domain.SimulationParameters{
		S0:             req.S0,
		Mu:             req.Mu,
		Sigma:          req.Sigma,
		NumSimulations: req.NumSimulations,
		NumSteps:       req.NumSteps,
		Dt:             req.Dt,
		HistogramBins:  req.HistogramBins,
		Seed:           req.Seed,
		Workers:        s.workers,
	}
	if params.NumSimulations == 0 {
		params.NumSimulations = defaultNumSimulations
	}
	if params.NumSteps == 0 {
		params.NumSteps = defaultNumSteps
	}
	if params.Dt == 0 {
		params.Dt = defaultDt
	}
	if params.HistogramBins == 0 {
		params.HistogramBins = domain.DefaultHistogramBins
	}
	return params
}

// checkLimits 宿主侧边界校验，超限与领域校验同样映射为参数错误
func (s *SimulationService) checkLimits(p *domain.SimulationParameters) error {
	if s.limits.MaxSimulations > 0 && p.NumSimulations > s.limits.MaxSimulations {
		return fmt.Errorf("%w: num_simulations %d exceeds limit %d",
			domain.ErrInvalidParameter, p.NumSimulations, s.limits.MaxSimulations)
	}
	if s.limits.MaxSteps > 0 && p.NumSteps > s.limits.MaxSteps {
		return fmt.Errorf("%w: num_steps %d exceeds limit %d",
			domain.ErrInvalidParameter, p.NumSteps, s.limits.MaxSteps)
	}
	if s.limits.MinHistogramBins > 0 && p.HistogramBins < s.limits.MinHistogramBins {
		return fmt.Errorf("%w: histogram_bins %d below limit %d",
			domain.ErrInvalidParameter, p.HistogramBins, s.limits.MinHistogramBins)
	}
	if s.limits.MaxHistogramBins > 0 && p.HistogramBins > s.limits.MaxHistogramBins {
		return fmt.Errorf("%w: histogram_bins %d exceeds limit %d",
			domain.ErrInvalidParameter, p.HistogramBins, s.limits.MaxHistogramBins)
	}
	if s.limits.MaxPathBudget > 0 && p.NumSimulations > 0 && p.NumSteps > 0 &&
		p.NumSimulations*p.NumSteps > s.limits.MaxPathBudget {
		return fmt.Errorf("%w: num_simulations*num_steps %d exceeds budget %d",
			domain.ErrInvalidParameter, p.NumSimulations*p.NumSteps, s.limits.MaxPathBudget)
	}
	return nil
}
