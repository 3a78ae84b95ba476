package domain

import "time"

type CoffeeType string

const (
	CoffeeEspresso   CoffeeType = "Espresso"
	CoffeeLatte      CoffeeType = "Latte"
	CoffeeCappuccino CoffeeType = "Cappuccino"
	CoffeeAmericano  CoffeeType = "Americano"
	CoffeeMocha      CoffeeType = "Mocha"
	CoffeeColdBrew   CoffeeType = "Cold Brew"
	CoffeeFlatWhite  CoffeeType = "Flat White"
)

type SugarLevel string

const (
	SugarNone   SugarLevel = "None"
	SugarLight  SugarLevel = "Light"
	SugarMedium SugarLevel = "Medium"
	SugarExtra  SugarLevel = "Extra"
)

type CupSize string

const (
	SizeSmall  CupSize = "Small"
	SizeMedium CupSize = "Medium"
	SizeLarge  CupSize = "Large"
)

var coffeeTypes = map[CoffeeType]bool{
	CoffeeEspresso:   true,
	CoffeeLatte:      true,
	CoffeeCappuccino: true,
	CoffeeAmericano:  true,
	CoffeeMocha:      true,
	CoffeeColdBrew:   true,
	CoffeeFlatWhite:  true,
}

var sugarLevels = map[SugarLevel]bool{
	SugarNone:   true,
	SugarLight:  true,
	SugarMedium: true,
	SugarExtra:  true,
}

var cupSizes = map[CupSize]bool{
	SizeSmall:  true,
	SizeMedium: true,
	SizeLarge:  true,
}

func (c CoffeeType) Valid() bool { return coffeeTypes[c] }
func (s SugarLevel) Valid() bool { return sugarLevels[s] }
func (s CupSize) Valid() bool    { return cupSizes[s] }

// Order is never mutated after creation.
type Order struct {
	ID         string     `json:"id"`
	Username   string     `json:"username"`
	CoffeeType CoffeeType `json:"coffeeType"`
	Sugar      SugarLevel `json:"sugar"`
	Size       CupSize    `json:"size"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Validate rejects bad input before anything touches the store.
func (o *Order) Validate() error {
	if o.Username == "" {
		return &ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if !o.CoffeeType.Valid() {
		return &ValidationError{Field: "coffeeType", Reason: "unknown coffee type"}
	}
	if !o.Sugar.Valid() {
		return &ValidationError{Field: "sugar", Reason: "unknown sugar level"}
	}
	if !o.Size.Valid() {
		return &ValidationError{Field: "size", Reason: "unknown cup size"}
	}
	return nil
}
