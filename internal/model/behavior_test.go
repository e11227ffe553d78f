package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextBehavior(t *testing.T) {
	behavior := BehaviorFor(AttributeSet{Type: AttributeText})
	assert.Equal(t, AttributeText, behavior.AttributeType())

	assert.True(t, behavior.ValidateValue("41"))
	assert.False(t, behavior.ValidateValue(""))
	assert.False(t, behavior.ValidateValue("   "))

	assert.Equal(t, "41", behavior.FormatDisplayValue("41"))
}

func TestSwatchBehavior(t *testing.T) {
	behavior := BehaviorFor(AttributeSet{Type: AttributeSwatch})
	assert.Equal(t, AttributeSwatch, behavior.AttributeType())

	t.Run("Validation", func(t *testing.T) {
		assert.True(t, behavior.ValidateValue("#FFFFFF"))
		assert.True(t, behavior.ValidateValue("#FFF"))
		assert.True(t, behavior.ValidateValue("#abc123"))
		assert.False(t, behavior.ValidateValue("FFFFFF"))
		assert.False(t, behavior.ValidateValue("notacolor"))
		assert.False(t, behavior.ValidateValue("#FFFF"))
	})

	t.Run("Display value is the hex code itself", func(t *testing.T) {
		assert.Equal(t, "#030BFF", behavior.FormatDisplayValue("#030BFF"))
	})

	t.Run("Color name lookup never affects validation", func(t *testing.T) {
		swatch := SwatchBehavior{}
		assert.Equal(t, "Black", swatch.ColorName("#000000"))
		assert.Equal(t, "Green", swatch.ColorName("#44FF03"))
		assert.Equal(t, "Unknown", swatch.ColorName("#123456"))
		// An unmapped but well-formed hex code still validates.
		assert.True(t, swatch.ValidateValue("#123456"))
	})
}

func TestSelectBehavior(t *testing.T) {
	set := AttributeSet{
		Type: AttributeSelect,
		Items: []AttributeItem{
			{Value: "M", DisplayValue: "Medium"},
			{Value: "L", DisplayValue: "Large"},
		},
	}
	behavior := BehaviorFor(set)
	assert.Equal(t, AttributeSelect, behavior.AttributeType())

	t.Run("Valid values are the item values", func(t *testing.T) {
		assert.True(t, behavior.ValidateValue("M"))
		assert.True(t, behavior.ValidateValue("L"))
		assert.False(t, behavior.ValidateValue("X"))
		assert.False(t, behavior.ValidateValue("Medium"))
	})

	t.Run("Display value maps to the item, falling back to the raw value", func(t *testing.T) {
		assert.Equal(t, "Medium", behavior.FormatDisplayValue("M"))
		assert.Equal(t, "X", behavior.FormatDisplayValue("X"))
	})

	t.Run("Available options", func(t *testing.T) {
		options := behavior.(SelectBehavior).AvailableOptions()
		assert.Len(t, options, 2)
		assert.Equal(t, "M", options[0]["value"])
		assert.Equal(t, "Medium", options[0]["displayValue"])
	})
}

func TestBehaviorForUnknownTypeFallsBackToText(t *testing.T) {
	behavior := BehaviorFor(AttributeSet{Type: "mystery"})
	assert.Equal(t, AttributeText, behavior.AttributeType())
}
