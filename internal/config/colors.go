package config

import (
	"fmt"

	"github.com/derailed/tcell/v2"
)

// Color represents a color in the application
type Color string

const (
	// DefaultColor represents a default color
	DefaultColor Color = "default"

	// TransparentColor represents the terminal bg color
	TransparentColor Color = "-"
)

// NewColor returns a new color
func NewColor(c string) Color {
	return Color(c)
}

// String returns color as string
func (c Color) String() string {
	if c.isHex() {
		return string(c)
	}
	if c == DefaultColor || c == TransparentColor {
		return "-"
	}
	col := c.Color().TrueColor().Hex()
	if col < 0 {
		return "-"
	}
	return fmt.Sprintf("#%06x", col)
}

func (c Color) isHex() bool {
	return len(c) == 7 && c[0] == '#'
}

// Color returns a view color
func (c Color) Color() tcell.Color {
	if c == DefaultColor || c == TransparentColor {
		return tcell.ColorDefault
	}
	return tcell.GetColor(string(c)).TrueColor()
}

// BodyColors defines colors for body elements
type BodyColors struct {
	FgColor   Color `yaml:"fgColor"`
	BgColor   Color `yaml:"bgColor"`
	LogoColor Color `yaml:"logoColor"`
}

// FrameColors defines colors for borders and titles
type FrameColors struct {
	BorderColor Color `yaml:"borderColor"`
	FocusColor  Color `yaml:"focusColor"`
	TitleColor  Color `yaml:"titleColor"`
}

// ListingColors defines colors for listing rows
type ListingColors struct {
	HeaderColor      Color `yaml:"headerColor"`
	FolderColor      Color `yaml:"folderColor"`
	FileColor        Color `yaml:"fileColor"`
	CheckedColor     Color `yaml:"checkedColor"`
	PreviewableColor Color `yaml:"previewableColor"`
	DisabledColor    Color `yaml:"disabledColor"`
}

// StatusColors defines colors for status bar messages
type StatusColors struct {
	Info    Color `yaml:"info"`
	Warning Color `yaml:"warning"`
	Error   Color `yaml:"error"`
	Success Color `yaml:"success"`
}

// ColorsConfig defines the complete color configuration
type ColorsConfig struct {
	Body    BodyColors    `yaml:"body"`
	Frame   FrameColors   `yaml:"frame"`
	Listing ListingColors `yaml:"listing"`
	Status  StatusColors  `yaml:"status"`
}

// DefaultColors returns the default color configuration
func DefaultColors() *ColorsConfig {
	return &ColorsConfig{
		Body: BodyColors{
			FgColor:   NewColor("#f8f8f2"),
			BgColor:   NewColor("#282a36"),
			LogoColor: NewColor("#bd93f9"),
		},
		Frame: FrameColors{
			BorderColor: NewColor("#44475a"),
			FocusColor:  NewColor("#6272a4"),
			TitleColor:  NewColor("#f8f8f2"),
		},
		Listing: ListingColors{
			HeaderColor:      NewColor("#50fa7b"),
			FolderColor:      NewColor("#8be9fd"),
			FileColor:        NewColor("#f8f8f2"),
			CheckedColor:     NewColor("#f1fa8c"),
			PreviewableColor: NewColor("#ff79c6"),
			DisabledColor:    NewColor("#6272a4"),
		},
		Status: StatusColors{
			Info:    NewColor("#8be9fd"),
			Warning: NewColor("#ffb86c"),
			Error:   NewColor("#ff5555"),
			Success: NewColor("#50fa7b"),
		},
	}
}
