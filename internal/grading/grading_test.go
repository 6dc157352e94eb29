package grading

import (
	"testing"

	"github.com/jalphad/qrcore/internal/layout"
	"github.com/jalphad/qrcore/internal/qrtables"
	"github.com/stretchr/testify/assert"
)

func TestFunctionalGradePerfectMatch(t *testing.T) {
	g := layout.NewGrid(3)
	g.WriteFormatInfo(qrtables.M, 2)
	g.WriteVersionInfo()
	assert.Equal(t, 4, FunctionalGrade(g, qrtables.M, 2))
}

func TestFunctionalGradeDegradesWithMismatch(t *testing.T) {
	g := layout.NewGrid(3)
	g.WriteFormatInfo(qrtables.M, 2)
	// Corrupt every function module: grade must drop to its floor.
	size := g.Size()
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if g.IsFunction(row, col) {
				g.SetRaw(row, col, !g.Get(row, col))
			}
		}
	}
	grade := FunctionalGrade(g, qrtables.M, 2)
	assert.Equal(t, 0, grade)
}

func TestErrorGradeNoErrors(t *testing.T) {
	assert.Equal(t, 4, ErrorGrade(0, 10))
}

func TestErrorGradeFullBudgetConsumed(t *testing.T) {
	assert.Equal(t, 0, ErrorGrade(10, 10))
}

func TestErrorGradeHalfBudget(t *testing.T) {
	assert.Equal(t, 2, ErrorGrade(5, 10))
}

func TestErrorGradeZeroCorrectable(t *testing.T) {
	assert.Equal(t, 4, ErrorGrade(0, 0))
	assert.Equal(t, 0, ErrorGrade(1, 0))
}

func TestErrorGradeClampsToZero(t *testing.T) {
	assert.Equal(t, 0, ErrorGrade(40, 10))
}
