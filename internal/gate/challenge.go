package gate

import (
	"slices"
	"strings"
)

// Kind tags a challenge variant. The catalogue is a fixed, ordered list of
// kinds; verification walks it front to back, training draws one at random.
type Kind string

const (
	// KindRecipeBuild asks the player to assemble a drink from a pool of
	// ingredients.
	KindRecipeBuild Kind = "recipe_build"
	// KindNameThatCoffee shows a recipe and asks which drink it makes.
	KindNameThatCoffee Kind = "name_that_coffee"
)

// Challenge is one quiz instance with a pass/fail outcome. The correct
// answer lives in unexported fields so it never leaks through JSON.
type Challenge struct {
	Kind        Kind     `json:"kind"`
	Prompt      string   `json:"prompt"`
	Target      string   `json:"target,omitempty"`      // recipe_build: the drink to assemble
	Ingredients []string `json:"ingredients,omitempty"` // recipe_build: the selectable pool
	Recipe      string   `json:"recipe,omitempty"`      // name_that_coffee: the recipe text
	Options     []string `json:"options,omitempty"`     // name_that_coffee: the choices

	wantIngredients []string
	wantOption      string
}

// Answer carries the player's submission. Ingredients is read for
// recipe_build challenges, Choice for name_that_coffee.
type Answer struct {
	Ingredients []string `json:"ingredients,omitempty"`
	Choice      string   `json:"choice,omitempty"`
}

// Check evaluates the answer. Ingredient selection is order-insensitive but
// must match the recipe exactly, no extras.
func (c Challenge) Check(a Answer) bool {
	switch c.Kind {
	case KindRecipeBuild:
		if len(a.Ingredients) != len(c.wantIngredients) {
			return false
		}
		got := slices.Clone(a.Ingredients)
		want := slices.Clone(c.wantIngredients)
		slices.Sort(got)
		slices.Sort(want)
		return slices.Equal(got, want)
	case KindNameThatCoffee:
		return strings.EqualFold(a.Choice, c.wantOption)
	default:
		return false
	}
}

// Catalogue returns the fixed, ordered challenge list. Verification mode
// requires passing every entry in this order.
func Catalogue() []Challenge {
	return []Challenge{
		{
			Kind:            KindRecipeBuild,
			Prompt:          "Select the correct ingredients to make a Latte.",
			Target:          "Latte",
			Ingredients:     []string{"Espresso", "Milk", "Sugar", "Foam", "Ice"},
			wantIngredients: []string{"Espresso", "Milk"},
		},
		{
			Kind:       KindNameThatCoffee,
			Prompt:     "Read the recipe and choose the correct coffee type.",
			Recipe:     "2 shots espresso + steamed milk + thin layer of foam.",
			Options:    []string{"Latte", "Cappuccino", "Americano", "Espresso"},
			wantOption: "Latte",
		},
	}
}
