package textfold

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold_QuitaTildesYMayusculas(t *testing.T) {
	assert.Equal(t, "jose nunez", Fold("José Núñez"))
	assert.Equal(t, "maria", Fold("MARÍA"))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("perez", "Ana Pérez", "+573001234567"))
	assert.True(t, Contains("300123", "Ana Pérez", "+573001234567"))
	assert.True(t, Contains("", "cualquier cosa"))
	assert.False(t, Contains("gomez", "Ana Pérez"))
}

func TestJoin_DescartaVacios(t *testing.T) {
	assert.Equal(t, "ana perez a1", Join("Ana Pérez", "", "  ", "A1"))
}
