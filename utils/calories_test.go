package utils

import (
	"testing"

	"github.com/petrepopa00/gurmaio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTargetCalories(t *testing.T) {
	t.Run("male moderate maintain", func(t *testing.T) {
		// BMR = 10*70 + 6.25*175 - 5*30 + 5 = 1648.75; TDEE = 1648.75*1.55
		got, err := CalculateTargetCalories(70, 175, 30, "male", "moderate", "maintain")
		require.NoError(t, err)
		assert.Equal(t, 2556, got)
	})

	t.Run("female offset", func(t *testing.T) {
		male, err := CalculateTargetCalories(60, 165, 25, "male", "sedentary", "maintain")
		require.NoError(t, err)
		female, err := CalculateTargetCalories(60, 165, 25, "female", "sedentary", "maintain")
		require.NoError(t, err)
		// male +5 vs female -161 on BMR, times the 1.2 multiplier
		assert.Equal(t, 200, male-female)
	})

	t.Run("objective shifts target", func(t *testing.T) {
		maintain, err := CalculateTargetCalories(80, 180, 40, "male", "active", "maintain")
		require.NoError(t, err)
		lose, err := CalculateTargetCalories(80, 180, 40, "male", "active", "lose_weight")
		require.NoError(t, err)
		gain, err := CalculateTargetCalories(80, 180, 40, "male", "active", "gain_muscle")
		require.NoError(t, err)
		assert.Equal(t, maintain-500, lose)
		assert.Equal(t, maintain+300, gain)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := CalculateTargetCalories(0, 175, 30, "male", "moderate", "maintain")
		assert.Error(t, err)
		_, err = CalculateTargetCalories(70, 175, 30, "other", "moderate", "maintain")
		assert.Error(t, err)
		_, err = CalculateTargetCalories(70, 175, 30, "male", "extreme", "maintain")
		assert.Error(t, err)
		_, err = CalculateTargetCalories(70, 175, 30, "male", "moderate", "bulk")
		assert.Error(t, err)
	})
}

func TestCalculateMacroGrams(t *testing.T) {
	p, c, f := CalculateMacroGrams(2000, models.MacroTargets{
		ProteinPercentage: 30, CarbsPercentage: 40, FatsPercentage: 30,
	})
	assert.Equal(t, 150, p) // 600 kcal / 4
	assert.Equal(t, 200, c) // 800 kcal / 4
	assert.Equal(t, 67, f)  // 600 kcal / 9, rounded
}

func TestNormalizeMacroTargets(t *testing.T) {
	t.Run("valid split unchanged", func(t *testing.T) {
		in := models.MacroTargets{ProteinPercentage: 30, CarbsPercentage: 40, FatsPercentage: 30}
		assert.Equal(t, in, NormalizeMacroTargets(in))
	})

	t.Run("rescales to 100", func(t *testing.T) {
		got := NormalizeMacroTargets(models.MacroTargets{
			ProteinPercentage: 30, CarbsPercentage: 30, FatsPercentage: 30,
		})
		total := got.ProteinPercentage + got.CarbsPercentage + got.FatsPercentage
		assert.InDelta(t, 100, total, 1)
	})

	t.Run("zero split falls back to balanced", func(t *testing.T) {
		got := NormalizeMacroTargets(models.MacroTargets{})
		assert.Equal(t, MacroPresets["balanced"], got)
	})
}
