package application

// SimulationRequest 蒙特卡洛模拟请求 DTO
// 调用方负责给出已经算好的标量参数（漂移率、波动率等），核心不做任何数据获取
type SimulationRequest struct {
	S0             float64 `json:"s0"`              // 初始价格
	Mu             float64 `json:"mu"`              // 年化漂移率
	Sigma          float64 `json:"sigma"`           // 年化波动率
	NumSimulations int     `json:"num_simulations"` // 模拟路径数，0 取默认 10000
	NumSteps       int     `json:"num_steps"`       // 时间步数，0 取默认 252
	Dt             float64 `json:"dt"`              // 单步时间增量，0 取默认 1/252
	HistogramBins  int     `json:"histogram_bins"`  // 直方图分箱数，0 取默认 50
	Seed           uint64  `json:"seed"`            // 随机种子，0 表示取系统时钟
}

// ParametersDTO 实际生效的模拟参数回显
type ParametersDTO struct {
	S0             float64 `json:"s0"`
	Mu             float64 `json:"mu"`
	Sigma          float64 `json:"sigma"`
	NumSimulations int     `json:"num_simulations"`
	NumSteps       int     `json:"num_steps"`
	Dt             float64 `json:"dt"`
	HistogramBins  int     `json:"histogram_bins"`
	Seed           uint64  `json:"seed"` // 实际使用的种子，入参为 0 时为时钟派生值
}

// HistogramDTO 终值直方图
type HistogramDTO struct {
	Counts []int     `json:"counts"`
	Edges  []float64 `json:"edges"`
}

// FinalPriceDTO 终值分布标量摘要
type FinalPriceDTO struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// TailRiskDTO 尾部风险指标，金额以 decimal 字符串传输
type TailRiskDTO struct {
	VaR95  string `json:"var_95"`
	VaR99  string `json:"var_99"`
	CVaR95 string `json:"cvar_95"`
	CVaR99 string `json:"cvar_99"`
}

// ResultsDTO 聚合模拟结果
// 不包含逐路径原始数据：终值明细留在领域层，响应保持有界大小
type ResultsDTO struct {
	MeanPath     []float64     `json:"mean_path"`
	Percentile05 []float64     `json:"percentile_05"`
	Percentile95 []float64     `json:"percentile_95"`
	Histogram    HistogramDTO  `json:"histogram"`
	FinalPrice   FinalPriceDTO `json:"final_price"`
	TailRisk     TailRiskDTO   `json:"tail_risk"`
}

// SimulationResponse 蒙特卡洛模拟响应 DTO
type SimulationResponse struct {
	Parameters ParametersDTO `json:"parameters"`
	Results    ResultsDTO    `json:"results"`
}

// EngineHealth 引擎健康检查结果，由一次小规模确定性试跑得出
type EngineHealth struct {
	Status        string  `json:"status"`
	MeanFinal     float64 `json:"mean_final"`
	StdFinal      float64 `json:"std_final"`
	DurationMicro int64   `json:"duration_us"`
}
