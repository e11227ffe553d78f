package model

import (
	"regexp"
	"strings"
)

// Behavior is the type-specific validation and display logic of an attribute
// set. It is selected by the set's type at the point of consumption; nothing
// about it is stored per item.
type Behavior interface {
	// AttributeType returns the type tag the behavior implements.
	AttributeType() string
	// ValidateValue reports whether the value is a legal selection.
	ValidateValue(value string) bool
	// FormatDisplayValue returns the human-readable form of the value.
	FormatDisplayValue(value string) string
}

// BehaviorFor returns the behavior for the set's type. Unknown types fall
// back to text, the most permissive behavior.
func BehaviorFor(set AttributeSet) Behavior {
	switch set.Type {
	case AttributeSwatch:
		return SwatchBehavior{}
	case AttributeSelect:
		return SelectBehavior{Items: set.Items}
	default:
		return TextBehavior{}
	}
}

// TextBehavior accepts any non-blank value and displays it verbatim.
type TextBehavior struct{}

func (TextBehavior) AttributeType() string { return AttributeText }

func (TextBehavior) ValidateValue(value string) bool {
	return strings.TrimSpace(value) != ""
}

func (TextBehavior) FormatDisplayValue(value string) string { return value }

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// SwatchBehavior accepts 3- or 6-digit hex color codes and displays the code
// itself. ColorName offers a best-effort name lookup for presentation only.
type SwatchBehavior struct{}

func (SwatchBehavior) AttributeType() string { return AttributeSwatch }

func (SwatchBehavior) ValidateValue(value string) bool {
	return hexColorPattern.MatchString(value)
}

func (SwatchBehavior) FormatDisplayValue(value string) string { return value }

var swatchColorNames = map[string]string{
	"#000000": "Black",
	"#FFFFFF": "White",
	"#44FF03": "Green",
	"#03FFF7": "Cyan",
	"#030BFF": "Blue",
	"#FF0000": "Red",
	"#FFFF00": "Yellow",
	"#FF00FF": "Magenta",
	"#00FF00": "Lime",
	"#FFA500": "Orange",
	"#800080": "Purple",
	"#A52A2A": "Brown",
}

// ColorName maps a hex code to a color name for a small fixed palette,
// defaulting to "Unknown". It never participates in validation.
func (SwatchBehavior) ColorName(hexValue string) string {
	if name, ok := swatchColorNames[strings.ToUpper(hexValue)]; ok {
		return name
	}
	return "Unknown"
}

// SelectBehavior accepts only values present in the set's items and displays
// the matching item's display value, falling back to the raw value.
type SelectBehavior struct {
	Items []AttributeItem
}

func (SelectBehavior) AttributeType() string { return AttributeSelect }

func (b SelectBehavior) ValidateValue(value string) bool {
	for _, item := range b.Items {
		if item.Value == value {
			return true
		}
	}
	return false
}

func (b SelectBehavior) FormatDisplayValue(value string) string {
	for _, item := range b.Items {
		if item.Value == value {
			return item.DisplayValue
		}
	}
	return value
}

// AvailableOptions lists the selectable value/display pairs.
func (b SelectBehavior) AvailableOptions() []map[string]string {
	options := make([]map[string]string, 0, len(b.Items))
	for _, item := range b.Items {
		options = append(options, map[string]string{
			"value":        item.Value,
			"displayValue": item.DisplayValue,
		})
	}
	return options
}
