// Package stat 提供标准正态分布原语与随机数流派生，供蒙特卡洛模拟与期权定价共用
package stat

import (
	"math"
	"math/rand"
	"time"
)

// NormPDF 标准正态分布概率密度函数
func NormPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}

// NormCDF 标准正态分布累积分布函数
// 通过互补误差函数求值：Phi(x) = 0.5 * erfc(-x/sqrt(2))，尾部数值更稳定
func NormCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

// EntropySeed 从高精度时钟派生不可复现的种子，用于调用方未指定种子的场景
func EntropySeed() uint64 {
	return uint64(time.Now().UnixNano())
}

// DeriveSeed 用 splitmix64 从 (seed, stream) 派生第 stream 条随机流的种子
// 同一组合总是得到同一结果，不同 stream 之间相互独立
func DeriveSeed(seed uint64, stream int) int64 {
	z := seed + (uint64(stream)+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return int64(z ^ (z >> 31))
}

// NewRand 创建独立的随机数引擎
// NormFloat64 (ziggurat 变换) 提供标准正态变量
func NewRand(seed uint64, stream int) *rand.Rand {
	return rand.New(rand.NewSource(DeriveSeed(seed, stream)))
}
