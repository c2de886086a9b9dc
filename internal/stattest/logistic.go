package stattest

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// probability clip bound; keeps log(p) and log(1-p) finite in the loss.
const logitEps = 1e-10

// LogisticResult reports test 5: logistic regression of brand mention on
// two binary predictors (Chinese-region LLM, recommendation query).
type LogisticResult struct {
	Test             string  `json:"test"`
	Intercept        float64 `json:"intercept"`
	BetaChineseLLM   float64 `json:"beta_chinese_llm"`
	ORChineseLLM     float64 `json:"odds_ratio_chinese_llm"`
	BetaRecQuery     float64 `json:"beta_rec_query"`
	ORRecQuery       float64 `json:"odds_ratio_rec_query"`
	NObservations    int     `json:"n_observations"`
	NMentions        int     `json:"n_mentions"`
	Converged        bool    `json:"converged"`
	NegLogLikelihood float64 `json:"neg_log_likelihood"`
}

// FitLogistic fits logit(P) = β0 + β1·x1 + β2·x2 by minimizing the negative
// log-likelihood with BFGS from [0,0,0]. Predicted probabilities are clipped
// to [ε, 1-ε] before the logs. Non-convergence is surfaced via the Converged
// field rather than silently returning the last iterate.
func FitLogistic(x1, x2, y []float64) (LogisticResult, error) {
	n := len(y)
	if n == 0 || len(x1) != n || len(x2) != n {
		return LogisticResult{}, fmt.Errorf("predictor/outcome lengths disagree: %d, %d, %d", len(x1), len(x2), n)
	}

	nll := func(beta []float64) float64 {
		var sum float64
		for i := 0; i < n; i++ {
			p := sigmoid(beta[0] + beta[1]*x1[i] + beta[2]*x2[i])
			p = clip(p, logitEps, 1-logitEps)
			sum -= y[i]*math.Log(p) + (1-y[i])*math.Log(1-p)
		}
		return sum
	}
	// The gradient clips probabilities the same way the objective does;
	// Func and Grad must describe the same surface or the line search can
	// fail on near-separable data.
	grad := func(g, beta []float64) {
		g[0], g[1], g[2] = 0, 0, 0
		for i := 0; i < n; i++ {
			p := clip(sigmoid(beta[0]+beta[1]*x1[i]+beta[2]*x2[i]), logitEps, 1-logitEps)
			residual := p - y[i]
			g[0] += residual
			g[1] += residual * x1[i]
			g[2] += residual * x2[i]
		}
	}

	problem := optimize.Problem{Func: nll, Grad: grad}
	result, err := optimize.Minimize(problem, []float64{0, 0, 0}, nil, &optimize.BFGS{})
	if result == nil {
		return LogisticResult{}, fmt.Errorf("logistic fit failed: %w", err)
	}

	var mentions int
	for _, v := range y {
		if v > 0 {
			mentions++
		}
	}
	return LogisticResult{
		Test:             "Logistic regression",
		Intercept:        result.X[0],
		BetaChineseLLM:   result.X[1],
		ORChineseLLM:     math.Exp(result.X[1]),
		BetaRecQuery:     result.X[2],
		ORRecQuery:       math.Exp(result.X[2]),
		NObservations:    n,
		NMentions:        mentions,
		Converged:        err == nil && result.Status != optimize.Failure,
		NegLogLikelihood: result.F,
	}, nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
