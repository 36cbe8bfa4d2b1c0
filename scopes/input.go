package scopes

import "offertetool/reference"

// Input is the sealed sum of scope variants. Only this package implements it.
type Input interface {
	Key() Key
	// Present is false for maintenance variants whose presence flag is off;
	// such inputs estimate to zero.
	Present() bool
	Validate() error

	isInput()
}

// FactorSource is implemented by variants that carry their own correction
// levels (border intensity, paving cut complexity).
type FactorSource interface {
	FactorLevels() map[reference.Category]reference.Level
}

var (
	_ Input = Earthworks{}
	_ Input = Paving{}
	_ Input = PlantingBorder{}
	_ Input = Lawn{}
	_ Input = Woodwork{}
	_ Input = Utilities{}
	_ Input = LawnMaintenance{}
	_ Input = BorderMaintenance{}
	_ Input = HedgeMaintenance{}
	_ Input = TreeMaintenance{}
	_ Input = OtherMaintenance{}

	_ FactorSource = Paving{}
	_ FactorSource = PlantingBorder{}
	_ FactorSource = BorderMaintenance{}
)
