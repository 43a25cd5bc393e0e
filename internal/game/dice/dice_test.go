package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/gamedata/internal/parse"
)

// fixedSource always rolls the maximum face.
type fixedSource struct{}

func (fixedSource) Intn(n int) int { return n - 1 }

type testEnv struct {
	level int
	power int
}

func (e testEnv) Level() int { return e.level }
func (e testEnv) Power() int { return e.power }

func levelSelector(env Env) int { return env.Level() }

func TestParsePlainDice(t *testing.T) {
	d, err := Parse("2d6")
	require.NoError(t, err)
	assert.Equal(t, 0, d.Base)
	assert.Equal(t, 2, d.Count)
	assert.Equal(t, 6, d.Sides)

	total, err := d.Evaluate(testEnv{}, fixedSource{})
	require.NoError(t, err)
	assert.Equal(t, 12, total)
}

func TestParseBasePlusDice(t *testing.T) {
	d, err := Parse("2+1d4")
	require.NoError(t, err)
	assert.Equal(t, 2, d.Base)
	assert.Equal(t, 1, d.Count)
	assert.Equal(t, 4, d.Sides)
}

func TestParseBareSides(t *testing.T) {
	d, err := Parse("d8")
	require.NoError(t, err)
	assert.Equal(t, 1, d.Count)
	assert.Equal(t, 8, d.Sides)
}

func TestParseSymbolicAddTerm(t *testing.T) {
	d, err := Parse("1d4+L")
	require.NoError(t, err)
	require.True(t, d.HasTerm("L"))

	expr := NewExpression("PLAYER_LEVEL", levelSelector)
	require.NoError(t, d.BindExpression("L", expr))

	total, err := d.Evaluate(testEnv{level: 7}, fixedSource{})
	require.NoError(t, err)
	assert.Equal(t, 4+7, total)
}

func TestParseSymbolicCountAndSides(t *testing.T) {
	d, err := Parse("Ld8")
	require.NoError(t, err)
	require.NoError(t, d.BindExpression("L", NewExpression("PLAYER_LEVEL", levelSelector)))
	total, err := d.Evaluate(testEnv{level: 3}, fixedSource{})
	require.NoError(t, err)
	assert.Equal(t, 24, total)

	d, err = Parse("2dS")
	require.NoError(t, err)
	require.NoError(t, d.BindExpression("S", NewExpression("PLAYER_LEVEL", levelSelector)))
	total, err = d.Evaluate(testEnv{level: 10}, fixedSource{})
	require.NoError(t, err)
	assert.Equal(t, 20, total)
}

func TestParseMalformed(t *testing.T) {
	for _, in := range []string{"", "2x6", "+", "1d4+", "2d6+1d8", "-1d6", "1dx"} {
		_, err := Parse(in)
		require.Error(t, err, "notation %q should fail", in)
		assert.ErrorIs(t, err, parse.ErrInvalidDice, "notation %q", in)
	}
}

func TestBindExpressionUnknownTerm(t *testing.T) {
	d, err := Parse("1d4")
	require.NoError(t, err)
	err = d.BindExpression("L", NewExpression("PLAYER_LEVEL", levelSelector))
	assert.ErrorIs(t, err, parse.ErrUnboundExpression)
}

func TestEvaluateUnboundTerm(t *testing.T) {
	d, err := Parse("1d4+L")
	require.NoError(t, err)
	_, err = d.Evaluate(testEnv{}, fixedSource{})
	assert.ErrorIs(t, err, parse.ErrUnboundExpression)
}

func TestBindExpressionDeepCopies(t *testing.T) {
	d, err := Parse("1d4+L")
	require.NoError(t, err)

	expr := NewExpression("PLAYER_LEVEL", levelSelector)
	require.NoError(t, d.BindExpression("L", expr))

	// Mutating the caller's expression after binding must not change
	// the descriptor's evaluation.
	require.NoError(t, expr.AddOperations("* 100"))

	total, err := d.Evaluate(testEnv{level: 5}, fixedSource{})
	require.NoError(t, err)
	assert.Equal(t, 4+5, total)
}

func TestExpressionOperations(t *testing.T) {
	expr := NewExpression("PLAYER_LEVEL", levelSelector)
	require.NoError(t, expr.AddOperations("/ 4 + 1"))
	assert.Equal(t, 20/4+1, expr.Evaluate(testEnv{level: 20}))

	neg := NewExpression("PLAYER_LEVEL", levelSelector)
	require.NoError(t, neg.AddOperations("n"))
	assert.Equal(t, -8, neg.Evaluate(testEnv{level: 8}))
}

func TestExpressionBadOperations(t *testing.T) {
	expr := NewExpression("PLAYER_LEVEL", levelSelector)
	for _, in := range []string{"% 3", "+", "+ x", "/ 0"} {
		err := expr.AddOperations(in)
		require.Error(t, err, "operations %q should fail", in)
		assert.ErrorIs(t, err, parse.ErrBadExpressionString, "operations %q", in)
	}
	// Failed AddOperations calls leave the expression unchanged.
	assert.Equal(t, 5, expr.Evaluate(testEnv{level: 5}))
}

func TestCloneIndependence(t *testing.T) {
	d, err := Parse("2+1d6+L")
	require.NoError(t, err)
	require.NoError(t, d.BindExpression("L", NewExpression("PLAYER_LEVEL", levelSelector)))

	clone := d.Clone()
	total, err := clone.Evaluate(testEnv{level: 3}, fixedSource{})
	require.NoError(t, err)
	assert.Equal(t, 2+6+3, total)

	// Rebinding the original does not affect the clone.
	double := NewExpression("PLAYER_LEVEL", func(env Env) int { return env.Level() * 2 })
	require.NoError(t, d.BindExpression("L", double))
	total, err = clone.Evaluate(testEnv{level: 3}, fixedSource{})
	require.NoError(t, err)
	assert.Equal(t, 2+6+3, total)
}

func TestLoggedRoller(t *testing.T) {
	d, err := Parse("2+1d6+L")
	require.NoError(t, err)
	require.NoError(t, d.BindExpression("L", NewExpression("PLAYER_LEVEL", levelSelector)))

	r := NewLoggedRoller(fixedSource{}, zaptest.NewLogger(t))
	total, err := r.Evaluate(d, testEnv{level: 3})
	require.NoError(t, err)
	assert.Equal(t, 2+6+3, total)

	unbound, err := Parse("1d4+X")
	require.NoError(t, err)
	_, err = r.Evaluate(unbound, testEnv{})
	assert.ErrorIs(t, err, parse.ErrUnboundExpression)
}

func TestPropertyEvaluateBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(1, 10).Draw(t, "count")
		sides := rapid.IntRange(1, 20).Draw(t, "sides")
		d := &Dice{Count: count, Sides: sides}

		total, err := d.Evaluate(testEnv{}, NewCryptoSource())
		if err != nil {
			t.Fatalf("evaluate failed: %v", err)
		}
		if total < count || total > count*sides {
			t.Fatalf("total %d outside [%d, %d]", total, count, count*sides)
		}
	})
}

func TestCryptoSourceRange(t *testing.T) {
	src := NewCryptoSource()
	for i := 0; i < 100; i++ {
		v := src.Intn(6)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 6)
	}
	assert.Panics(t, func() { src.Intn(0) })
}
