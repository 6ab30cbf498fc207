// Package metrics 提供 Prometheus helper，包含 HTTP 与计算引擎的 counter/gauge/histogram
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wyfcoding/quantanalytics/pkg/logger"
)

// Metrics 指标集合
type Metrics struct {
	// HTTP 请求计数
	HTTPRequestsTotal prometheus.Counter
	// HTTP 请求耗时
	HTTPRequestDuration prometheus.Histogram

	// 模拟运行计数
	SimulationRunsTotal prometheus.Counter
	// 模拟失败计数（参数校验失败等）
	SimulationErrorsTotal prometheus.Counter
	// 已生成的模拟路径总数
	SimulationPathsTotal prometheus.Counter
	// 单次模拟耗时
	SimulationDuration prometheus.Histogram

	// 希腊字母求值计数
	GreeksCalcsTotal prometheus.Counter
	// 单次希腊字母求值耗时
	GreeksDuration prometheus.Histogram
}

// New 创建指标实例
func New(serviceName string) *Metrics {
	return &Metrics{
		HTTPRequestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quant",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}),
		HTTPRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quant",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),

		SimulationRunsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quant",
			Subsystem: serviceName,
			Name:      "simulation_runs_total",
			Help:      "Total Monte Carlo simulation runs",
		}),
		SimulationErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quant",
			Subsystem: serviceName,
			Name:      "simulation_errors_total",
			Help:      "Total rejected or failed simulation runs",
		}),
		SimulationPathsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quant",
			Subsystem: serviceName,
			Name:      "simulation_paths_total",
			Help:      "Total simulated price paths",
		}),
		SimulationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quant",
			Subsystem: serviceName,
			Name:      "simulation_duration_seconds",
			Help:      "Monte Carlo simulation duration in seconds",
			// 交互式目标是亚秒到低秒级
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),

		GreeksCalcsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quant",
			Subsystem: serviceName,
			Name:      "greeks_calcs_total",
			Help:      "Total option greeks evaluations",
		}),
		GreeksDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quant",
			Subsystem: serviceName,
			Name:      "greeks_duration_seconds",
			Help:      "Greeks evaluation duration in seconds",
			Buckets:   []float64{1e-6, 1e-5, 1e-4, 1e-3, 1e-2, 0.1},
		}),
	}
}

// Register 注册所有指标
func (m *Metrics) Register() error {
	collectors := []prometheus.Collector{
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.SimulationRunsTotal,
		m.SimulationErrorsTotal,
		m.SimulationPathsTotal,
		m.SimulationDuration,
		m.GreeksCalcsTotal,
		m.GreeksDuration,
	}

	for _, c := range collectors {
		if err := prometheus.DefaultRegisterer.Register(c); err != nil {
			logger.Error(context.Background(), "Failed to register metric", "error", err)
			return err
		}
	}

	logger.Info(context.Background(), "Metrics registered successfully")
	return nil
}

// StartHTTPServer 启动独立的 Prometheus HTTP 服务器
func StartHTTPServer(port int, path string) {
	if path == "" {
		path = "/metrics"
	}

	mux := http.NewServeMux()
	mux.Handle(path, promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info(context.Background(), "Starting Prometheus HTTP server", "addr", addr, "path", path)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error(context.Background(), "Prometheus HTTP server exited", "error", err)
		}
	}()
}
