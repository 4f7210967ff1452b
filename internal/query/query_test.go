package query

import (
	"testing"

	"github.com/jpl-au/igr/internal/condition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBareAndQuoted(t *testing.T) {
	conds, errs := Parse("hello")
	require.Empty(t, errs)
	require.Len(t, conds, 1)
	assert.Equal(t, condition.KindExact, conds[0].Kind)
	assert.Equal(t, "hello", conds[0].Arg)

	conds, errs = Parse("'a | b'")
	require.Empty(t, errs)
	require.Len(t, conds, 1)
	assert.Equal(t, "a | b", conds[0].Arg)
}

func TestParsePipeline(t *testing.T) {
	conds, errs := Parse("foo | line.ends_with(o)")
	require.Empty(t, errs)
	require.Len(t, conds, 2)
	assert.Equal(t, condition.KindExact, conds[0].Kind)
	assert.Equal(t, condition.KindLineEndsWith, conds[1].Kind)
	assert.Equal(t, "o", conds[1].Arg)
}

func TestParseNumberWithCompareTail(t *testing.T) {
	conds, errs := Parse("number() > 10")
	require.Empty(t, errs)
	require.Len(t, conds, 1)
	assert.Equal(t, condition.KindNumber, conds[0].Kind)
	require.True(t, conds[0].HasOp)
	ok, err := conds[0].Op.Compare(12)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestParseNumberWithoutTail(t *testing.T) {
	conds, errs := Parse("number()")
	require.Empty(t, errs)
	require.Len(t, conds, 1)
	assert.False(t, conds[0].HasOp)
}

func TestParseReplaceInsertDelete(t *testing.T) {
	conds, errs := Parse("replace(a, X) | insert(4, T) | delete(0, 4)")
	require.Empty(t, errs)
	require.Len(t, conds, 3)
	assert.Equal(t, "a", conds[0].From)
	assert.Equal(t, "X", conds[0].To)
	assert.Equal(t, 4, conds[1].Index)
	assert.Equal(t, "T", conds[1].Value)
	assert.Equal(t, 0, conds[2].Start)
	assert.Equal(t, 4, conds[2].End)
}

func TestTrimAliases(t *testing.T) {
	conds, errs := Parse("ts() | te()")
	require.Empty(t, errs)
	require.Len(t, conds, 2)
	assert.Equal(t, condition.KindTrimStart, conds[0].Kind)
	assert.Equal(t, condition.KindTrimEnd, conds[1].Kind)
}

func TestEnvValueInCompareTail(t *testing.T) {
	conds, errs := Parse("line.length() >= env.MIN_LEN")
	require.Empty(t, errs)
	require.Len(t, conds, 1)
	assert.Equal(t, "env.MIN_LEN", conds[0].Op.Value.String())
}

func TestPerConditionErrorIsolation(t *testing.T) {
	conds, errs := Parse("hello | insert(notanumber, X) | world")
	require.Len(t, errs, 1)
	require.Len(t, conds, 2)
	assert.Equal(t, "hello", conds[0].Arg)
	assert.Equal(t, "world", conds[1].Arg)
}
