package domain

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func TestBoundaryCases(t *testing.T) {
	t.Run("ExpiredCallInTheMoney", func(t *testing.T) {
		r := CalculateGreeks(GreeksParameters{
			Strike: 100, TimeToExpiry: 0, Spot: 110,
			RiskFreeRate: 0.05, Volatility: 0.2, IsCall: true,
		})
		if r.Delta != 1.0 {
			t.Errorf("Delta = %v, want exactly 1.0", r.Delta)
		}
		if r.Gamma != 0 || r.Vega != 0 || r.Theta != 0 || r.Rho != 0 {
			t.Errorf("non-delta greeks must be zero at expiry: %+v", r)
		}
	})

	t.Run("ExpiredCallOutOfTheMoney", func(t *testing.T) {
		r := CalculateGreeks(GreeksParameters{
			Strike: 100, TimeToExpiry: 0, Spot: 90,
			RiskFreeRate: 0.05, Volatility: 0.2, IsCall: true,
		})
		if r.Delta != 0 {
			t.Errorf("Delta = %v, want 0", r.Delta)
		}
	})

	t.Run("ExpiredPutInTheMoney", func(t *testing.T) {
		r := CalculateGreeks(GreeksParameters{
			Strike: 100, TimeToExpiry: 0, Spot: 90,
			RiskFreeRate: 0.05, Volatility: 0.2, IsCall: false,
		})
		if r.Delta != -1.0 {
			t.Errorf("Delta = %v, want exactly -1.0", r.Delta)
		}
		if r.Gamma != 0 || r.Vega != 0 || r.Theta != 0 || r.Rho != 0 {
			t.Errorf("non-delta greeks must be zero at expiry: %+v", r)
		}
	})

	t.Run("ZeroVolatility", func(t *testing.T) {
		r := CalculateGreeks(GreeksParameters{
			Strike: 100, TimeToExpiry: 1, Spot: 110,
			RiskFreeRate: 0.05, Volatility: 0, IsCall: true,
		})
		if r.Delta != 1.0 {
			t.Errorf("deep ITM call with zero vol: Delta = %v, want 1.0", r.Delta)
		}
	})

	t.Run("NeverPanicsOnGarbage", func(t *testing.T) {
		inputs := []GreeksParameters{
			{Strike: -5, TimeToExpiry: 1, Spot: 100, Volatility: 0.2},
			{Strike: 100, TimeToExpiry: -1, Spot: 100, Volatility: 0.2},
			{Strike: 100, TimeToExpiry: 1, Spot: 0, Volatility: 0.2},
			{},
		}
		for _, in := range inputs {
			_ = CalculateGreeks(in) // 任何输入都必须有定义的输出
		}
	})
}

func TestAtTheMoneyCall(t *testing.T) {
	r := CalculateGreeks(GreeksParameters{
		Strike: 100, TimeToExpiry: 1.0, Spot: 100,
		RiskFreeRate: 0.05, Volatility: 0.2, IsCall: true,
	})

	// d1 = (0 + (0.05 + 0.02)) / 0.2 = 0.35
	if !approxEqual(r.Delta, 0.636831, 1e-5) {
		t.Errorf("Delta = %v, want Phi(0.35)", r.Delta)
	}
	if r.Delta <= 0.5 || r.Delta >= 0.7 {
		t.Errorf("Delta = %v, want within (0.5, 0.7)", r.Delta)
	}
	if r.Gamma <= 0 {
		t.Errorf("Gamma = %v, want > 0", r.Gamma)
	}
	if r.Vega <= 0 {
		t.Errorf("Vega = %v, want > 0", r.Vega)
	}
	if r.Theta >= 0 {
		t.Errorf("Theta = %v, long call should decay", r.Theta)
	}
	if r.Rho <= 0 {
		t.Errorf("Rho = %v, call rho should be positive", r.Rho)
	}
}

func TestPutCallParity(t *testing.T) {
	cases := []struct {
		name string
		p    GreeksParameters
	}{
		{"ATM", GreeksParameters{Strike: 100, TimeToExpiry: 1, Spot: 100, RiskFreeRate: 0.05, Volatility: 0.2}},
		{"ITM", GreeksParameters{Strike: 80, TimeToExpiry: 0.5, Spot: 100, RiskFreeRate: 0.03, Volatility: 0.35}},
		{"OTM", GreeksParameters{Strike: 140, TimeToExpiry: 2, Spot: 100, RiskFreeRate: 0.01, Volatility: 0.15}},
		{"ShortDated", GreeksParameters{Strike: 100, TimeToExpiry: 1.0 / 52, Spot: 101, RiskFreeRate: 0.045, Volatility: 0.25}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			call := c.p
			call.IsCall = true
			put := c.p
			put.IsCall = false

			rc := CalculateGreeks(call)
			rp := CalculateGreeks(put)

			if !approxEqual(rc.Delta-rp.Delta, 1.0, tolerance) {
				t.Errorf("call delta - put delta = %v, want 1", rc.Delta-rp.Delta)
			}
			// Gamma 与 Vega 与方向无关
			if rc.Gamma != rp.Gamma {
				t.Errorf("call gamma %v != put gamma %v", rc.Gamma, rp.Gamma)
			}
			if rc.Vega != rp.Vega {
				t.Errorf("call vega %v != put vega %v", rc.Vega, rp.Vega)
			}
			// call rho 为正、put rho 为负
			if rc.Rho <= 0 || rp.Rho >= 0 {
				t.Errorf("rho signs wrong: call %v, put %v", rc.Rho, rp.Rho)
			}
		})
	}
}

func TestDeltaBounds(t *testing.T) {
	for _, spot := range []float64{20, 60, 100, 140, 500} {
		call := CalculateGreeks(GreeksParameters{
			Strike: 100, TimeToExpiry: 0.75, Spot: spot,
			RiskFreeRate: 0.04, Volatility: 0.3, IsCall: true,
		})
		if call.Delta < 0 || call.Delta > 1 {
			t.Errorf("call delta %v at spot %v outside [0,1]", call.Delta, spot)
		}
		put := CalculateGreeks(GreeksParameters{
			Strike: 100, TimeToExpiry: 0.75, Spot: spot,
			RiskFreeRate: 0.04, Volatility: 0.3, IsCall: false,
		})
		if put.Delta < -1 || put.Delta > 0 {
			t.Errorf("put delta %v at spot %v outside [-1,0]", put.Delta, spot)
		}
	}
}
