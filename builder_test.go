package relata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/comalice/relata"
)

func TestBuilderRegistersConfiguredType(t *testing.T) {
	rt, err := BuildType[string]("builder.label").
		WriteOnce().
		Default(func(Relatable) string { return "none" }).
		Register()
	require.NoError(t, err)

	assert.Equal(t, "builder.label", rt.Name())
	assert.NotZero(t, rt.Modifiers()&ModifierWriteOnce)

	h := &host{}
	got, err := Get(h, rt)
	require.NoError(t, err)
	assert.Equal(t, "none", got)

	registered, ok := TypeByName("builder.label")
	require.True(t, ok)
	assert.Equal(t, Type(rt), registered)
}

func TestBuilderRejectsDuplicateName(t *testing.T) {
	_, err := BuildType[int]("builder.dup").Register()
	require.NoError(t, err)

	_, err = BuildType[int]("builder.dup").Register()
	assert.Error(t, err)
}

func TestBuilderRejectsEmptyNameAndNilFuncs(t *testing.T) {
	_, err := BuildType[int]("").Register()
	assert.Error(t, err)

	_, err = BuildType[int]("builder.nilfn").Default(nil).Register()
	assert.Error(t, err)
}

func TestBuilderAppliesAnnotations(t *testing.T) {
	unit := NewType[string]("builder.annotation.unit")

	b := BuildType[float64]("builder.annotated")
	rt, err := Annotate(b, unit, "meters").Register()
	require.NoError(t, err)

	got, err := Get(rt, unit)
	require.NoError(t, err)
	assert.Equal(t, "meters", got)
}
