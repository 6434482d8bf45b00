// Package icon renders the symbols of the workspace and the CLI in the variant
// selected with icons.variant: emoji, nerd-font glyphs, plain ASCII, kaomoji or squares.
package icon

import (
	"github.com/speechmark/speechmark/key"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

var variants = []string{emoji, nerd, plain, kaomoji, squares}

// AvailableVariants lists the accepted values of icons.variant.
func AvailableVariants() []string {
	return slices.Clone(variants)
}

// iconDef holds one rendering per variant.
type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

func (d *iconDef) in(variant string) string {
	return map[string]string{
		emoji:   d.emoji,
		nerd:    d.nerd,
		plain:   d.plain,
		kaomoji: d.kaomoji,
		squares: d.squares,
	}[variant]
}

// Get renders i in the configured variant. Unknown variants render nothing.
func Get(i Icon) string {
	def, ok := icons[i]
	if !ok {
		return ""
	}
	return def.in(viper.GetString(key.IconsVariant))
}
