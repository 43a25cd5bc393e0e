package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged descriptor
// evaluation. Every evaluation is logged at debug level with the
// descriptor's fixed parts and the total.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each
// evaluation to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Evaluate rolls the descriptor against env and logs the result.
//
// Postcondition: result logged at debug level; returns the total or the
// descriptor's evaluation error.
func (r *Roller) Evaluate(d *Dice, env Env) (int, error) {
	total, err := d.Evaluate(env, r.src)
	if err != nil {
		return 0, err
	}
	r.logger.Debug("dice evaluation",
		zap.Int("base", d.Base),
		zap.Int("count", d.Count),
		zap.Int("sides", d.Sides),
		zap.Int("total", total),
	)
	return total, nil
}
