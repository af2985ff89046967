// Package langevin integrates the one-dimensional stochastic reaction-diffusion
// equation with multiplicative square-root noise,
//
//	dρ/dt = D∇²ρ + aρ − bρ² + σ√ρ η(x,t),
//
// using an exact split-step scheme. Each time step first solves the linear
// diffusion and growth part exactly, as a Poisson draw folded into the shape of
// a Gamma draw, and then applies the quadratic decay in closed form:
//
//	ρ* = Gamma(2α/σ² + Poisson(λ e^(β dt) ρ)) / λ
//	ρ(t+dt) = ρ* / (1 + b dt ρ*)
//
// with β = a − 2D/dx², λ = 2β / (σ²(e^(β dt) − 1)) and α = D/dx² (ρ_left + ρ_right).
//
// Key components:
//   - Config: run parameters, YAML loading and flag-style overrides
//   - Coefficients: run constants derived once from the parameters
//   - Simulation: shards the lattice over a fixed set of workers that meet at a
//     barrier twice per generation; the elected worker publishes the
//     generation and checks for the absorbing state at a thinning cadence
//   - Record and RecordSink: the (time, mean density) reports of a run
package langevin
