package domain

import (
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/wyfcoding/quantanalytics/pkg/stat"
)

// SimulationResult 蒙特卡洛模拟聚合输出
// 不保留原始路径矩阵，只有排序后的终值分布 FinalPrices 保留逐路径数据，
// 供尾部风险统计使用
type SimulationResult struct {
	// 各时间步的横截面均值路径，长度 NumSteps+1，下标 0 即 S0
	MeanPath []float64
	// 各时间步的 5% / 95% 分位价格路径，长度同 MeanPath
	Percentile05 []float64
	Percentile95 []float64

	// 终值直方图：HistogramData 长度为分箱数，HistogramEdges 比其多一个元素
	HistogramData  []int
	HistogramEdges []float64

	// 终值分布的标量摘要，标准差为总体标准差 (除以 N)
	FinalPriceMean float64
	FinalPriceStd  float64
	FinalPriceMin  float64
	FinalPriceMax  float64

	// 升序排列的全部终值，长度 NumSimulations
	FinalPrices []float64
	// 终值分布的 5% / 1% 分位价格，供 VaR/CVaR 推导
	FinalPercentile05 float64
	FinalPercentile01 float64

	// 实际使用的随机种子；当入参 Seed 为 0 时记录时钟派生值，便于复现
	Seed uint64
}

// RunMonteCarlo 运行 GBM 蒙特卡洛模拟
//
// 离散化递推 S(t+dt) = S(t) * exp((mu - 0.5*sigma^2)*dt + sigma*sqrt(dt)*Z)，
// 漂移项中的 -0.5*sigma^2*dt 来自对数价格的 Ito 补偿。
// 分位数取排序后横截面在 floor(q*N) 处的顺序统计量（夹在 [0, N-1] 内），
// 不做插值，与参考实现保持一致。
//
// 路径生成按 Workers 分片并行，各分片持有独立派生的随机流；
// 固定 (Seed, Workers) 时输出逐位可复现。
func RunMonteCarlo(params SimulationParameters) (*SimulationResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	numSims := params.NumSimulations
	numSteps := params.NumSteps

	bins := params.HistogramBins
	if bins <= 0 {
		bins = DefaultHistogramBins
	}
	workers := params.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > numSims {
		workers = numSims
	}
	seed := params.Seed
	if seed == 0 {
		seed = stat.EntropySeed()
	}

	// 每步常量只算一次；dt 相关量必须保持 float64，单精度会把小 dt 的漂移下溢为零
	drift := (params.Mu - 0.5*params.Sigma*params.Sigma) * params.Dt
	diffusion := params.Sigma * math.Sqrt(params.Dt)

	// paths[step][sim]，聚合阶段按时间步横向访问，缓存友好
	paths := make([][]float64, numSteps+1)
	for step := range paths {
		paths[step] = make([]float64, numSims)
	}
	for sim := 0; sim < numSims; sim++ {
		paths[0][sim] = params.S0
	}

	var gen errgroup.Group
	chunk := (numSims + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, numSims)
		if lo >= hi {
			continue
		}
		rng := stat.NewRand(seed, w)
		gen.Go(func() error {
			for sim := lo; sim < hi; sim++ {
				price := params.S0
				for step := 1; step <= numSteps; step++ {
					z := rng.NormFloat64()
					price *= math.Exp(drift + diffusion*z)
					paths[step][sim] = price
				}
			}
			return nil
		})
	}
	// 各分片写入互不相交的列，不会出错
	_ = gen.Wait()

	result := &SimulationResult{
		MeanPath:     make([]float64, numSteps+1),
		Percentile05: make([]float64, numSteps+1),
		Percentile95: make([]float64, numSteps+1),
		Seed:         seed,
	}

	// 第 0 步全部等于 S0，直接赋值，保证 MeanPath[0] == S0 精确成立
	result.MeanPath[0] = params.S0
	result.Percentile05[0] = params.S0
	result.Percentile95[0] = params.S0

	idx05 := clampIndex(int(0.05*float64(numSims)), numSims)
	idx95 := clampIndex(int(0.95*float64(numSims)), numSims)

	// 各时间步的均值与分位数相互独立，可并行聚合，结果与串行一致
	var agg errgroup.Group
	agg.SetLimit(workers)
	for step := 1; step <= numSteps; step++ {
		step := step
		stepPrices := paths[step]
		agg.Go(func() error {
			var sum float64
			for _, p := range stepPrices {
				sum += p
			}
			sort.Float64s(stepPrices)
			result.MeanPath[step] = sum / float64(numSims)
			result.Percentile05[step] = stepPrices[idx05]
			result.Percentile95[step] = stepPrices[idx95]
			return nil
		})
	}
	_ = agg.Wait()

	// 终值统计：最后一步已排序
	finalPrices := paths[numSteps]
	result.FinalPrices = finalPrices
	result.FinalPriceMin = finalPrices[0]
	result.FinalPriceMax = finalPrices[numSims-1]
	result.FinalPriceMean = result.MeanPath[numSteps]

	var sqSum float64
	for _, p := range finalPrices {
		d := p - result.FinalPriceMean
		sqSum += d * d
	}
	result.FinalPriceStd = math.Sqrt(sqSum / float64(numSims))

	result.FinalPercentile05 = finalPrices[idx05]
	result.FinalPercentile01 = finalPrices[clampIndex(int(0.01*float64(numSims)), numSims)]

	buildHistogram(result, finalPrices, bins)

	return result, nil
}

// buildHistogram 在 [min-margin, max+margin] 上构建终值直方图
// 所有终值相等的退化分布回退到 [0.9*mean, 1.1*mean]，保证分箱边界严格递增
func buildHistogram(result *SimulationResult, finalPrices []float64, bins int) {
	margin := 0.05 * (result.FinalPriceMax - result.FinalPriceMin)
	histMin := result.FinalPriceMin - margin
	histMax := result.FinalPriceMax + margin
	if histMax <= histMin {
		histMin = result.FinalPriceMean * 0.9
		histMax = result.FinalPriceMean * 1.1
	}
	binWidth := (histMax - histMin) / float64(bins)

	result.HistogramEdges = make([]float64, bins+1)
	for i := range result.HistogramEdges {
		result.HistogramEdges[i] = histMin + float64(i)*binWidth
	}

	result.HistogramData = make([]int, bins)
	for _, p := range finalPrices {
		bin := clampIndex(int((p-histMin)/binWidth), bins)
		result.HistogramData[bin]++
	}
}

func clampIndex(idx, n int) int {
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}
