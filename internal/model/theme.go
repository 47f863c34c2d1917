package model

// Theme is the display color scheme preference
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ValidTheme reports whether t is one of the two enumerated themes
func ValidTheme(t Theme) bool {
	return t == ThemeLight || t == ThemeDark
}

// Opposite returns the other theme
func (t Theme) Opposite() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
