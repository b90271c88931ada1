package domain

import (
	"fmt"
	"strings"
)

// Character class literals, in charset order.
const (
	LowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	UppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	NumberChars    = "0123456789"
	SymbolChars    = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// CharClass names one of the selectable character classes.
type CharClass string

const (
	ClassLowercase CharClass = "lower"
	ClassUppercase CharClass = "upper"
	ClassNumbers   CharClass = "numbers"
	ClassSymbols   CharClass = "symbols"
)

// CharClasses lists every class in charset order.
var CharClasses = []CharClass{ClassLowercase, ClassUppercase, ClassNumbers, ClassSymbols}

// ParseCharClass accepts the canonical names plus a few common aliases.
func ParseCharClass(name string) (CharClass, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lower", "lowercase", "l":
		return ClassLowercase, nil
	case "upper", "uppercase", "u":
		return ClassUppercase, nil
	case "numbers", "number", "digits", "n", "d":
		return ClassNumbers, nil
	case "symbols", "symbol", "s":
		return ClassSymbols, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownClass, name)
	}
}

// Chars returns the literal characters of the class.
func (c CharClass) Chars() string {
	switch c {
	case ClassLowercase:
		return LowercaseChars
	case ClassUppercase:
		return UppercaseChars
	case ClassNumbers:
		return NumberChars
	case ClassSymbols:
		return SymbolChars
	default:
		return ""
	}
}

// GenerationOptions selects the password length and enabled character classes.
type GenerationOptions struct {
	Length           int  `yaml:"length"`
	IncludeUppercase bool `yaml:"include_uppercase"`
	IncludeLowercase bool `yaml:"include_lowercase"`
	IncludeNumbers   bool `yaml:"include_numbers"`
	IncludeSymbols   bool `yaml:"include_symbols"`
}

// DefaultGenerationOptions enables every class at the default length.
func DefaultGenerationOptions() GenerationOptions {
	return GenerationOptions{
		Length:           DefaultPasswordLength,
		IncludeUppercase: true,
		IncludeLowercase: true,
		IncludeNumbers:   true,
		IncludeSymbols:   true,
	}
}

// Enabled reports whether the class is switched on.
func (o GenerationOptions) Enabled(class CharClass) bool {
	switch class {
	case ClassLowercase:
		return o.IncludeLowercase
	case ClassUppercase:
		return o.IncludeUppercase
	case ClassNumbers:
		return o.IncludeNumbers
	case ClassSymbols:
		return o.IncludeSymbols
	default:
		return false
	}
}

// Set switches a class on or off.
func (o *GenerationOptions) Set(class CharClass, enabled bool) error {
	switch class {
	case ClassLowercase:
		o.IncludeLowercase = enabled
	case ClassUppercase:
		o.IncludeUppercase = enabled
	case ClassNumbers:
		o.IncludeNumbers = enabled
	case ClassSymbols:
		o.IncludeSymbols = enabled
	default:
		return fmt.Errorf("%w: %q", ErrUnknownClass, class)
	}
	return nil
}

// Toggle flips a class and returns its new state.
func (o *GenerationOptions) Toggle(class CharClass) (bool, error) {
	next := !o.Enabled(class)
	if err := o.Set(class, next); err != nil {
		return false, err
	}
	return next, nil
}

// Charset concatenates the enabled classes in the fixed order
// lowercase, uppercase, numbers, symbols.
func (o GenerationOptions) Charset() string {
	var b strings.Builder
	for _, class := range CharClasses {
		if o.Enabled(class) {
			b.WriteString(class.Chars())
		}
	}
	return b.String()
}

// Validate reports ErrEmptyCharset before ErrInvalidLength so that the
// "no class selected" notice wins when both are wrong.
func (o GenerationOptions) Validate() error {
	if o.Charset() == "" {
		return ErrEmptyCharset
	}
	if o.Length < MinPasswordLength || o.Length > MaxPasswordLength {
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrInvalidLength, o.Length, MinPasswordLength, MaxPasswordLength)
	}
	return nil
}

// String renders the options in a compact, human readable form.
func (o GenerationOptions) String() string {
	var classes []string
	for _, class := range CharClasses {
		if o.Enabled(class) {
			classes = append(classes, string(class))
		}
	}
	if len(classes) == 0 {
		classes = append(classes, "none")
	}
	return fmt.Sprintf("length=%d classes=%s", o.Length, strings.Join(classes, ","))
}
