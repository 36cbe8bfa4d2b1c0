package scopes

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"offertetool/reference"
)

// LawnMaintenance estimates only the sub-tasks whose flags are set.
type LawnMaintenance struct {
	Included bool    `json:"gazonAanwezig"`
	Area     float64 `json:"oppervlakte"`
	Mow      bool    `json:"maaien"`
	Edges    bool    `json:"kantenSteken"`
	Dethatch bool    `json:"verticuteren"`
}

func (LawnMaintenance) Key() Key        { return GrasOnderhoud }
func (m LawnMaintenance) Present() bool { return m.Included }
func (LawnMaintenance) isInput()        {}

func (m LawnMaintenance) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Area, validation.When(m.Included, positive()...).Else(validation.Min(0.0))),
	)
}

type BorderMaintenance struct {
	Included  bool            `json:"bordersAanwezig"`
	Area      float64         `json:"oppervlakte"`
	Intensity reference.Level `json:"intensiteit"`
	Pruning   bool            `json:"snoeien"`
}

func (BorderMaintenance) Key() Key        { return BordersOnderhoud }
func (m BorderMaintenance) Present() bool { return m.Included }
func (BorderMaintenance) isInput()        {}

func (m BorderMaintenance) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Area, validation.When(m.Included, positive()...).Else(validation.Min(0.0))),
		validation.Field(&m.Intensity, validation.In(reference.LevelLaag, reference.LevelNormaal, reference.LevelHoog)),
	)
}

func (m BorderMaintenance) FactorLevels() map[reference.Category]reference.Level {
	return map[reference.Category]reference.Level{reference.Intensiteit: m.Intensity}
}

type HedgeCut string

const (
	CutBoth  HedgeCut = "beide"
	CutSides HedgeCut = "zijkanten"
	CutTop   HedgeCut = "bovenkant"
)

// HedgeMaintenance requires length, height and width once the hedge is present.
type HedgeMaintenance struct {
	Included bool     `json:"heggenAanwezig"`
	Length   float64  `json:"lengte"`
	Height   float64  `json:"hoogte"`
	Width    float64  `json:"breedte"`
	Cut      HedgeCut `json:"snoei"`
	Disposal bool     `json:"afvoerSnoeisel"`
}

func (HedgeMaintenance) Key() Key        { return Heggen }
func (h HedgeMaintenance) Present() bool { return h.Included }
func (HedgeMaintenance) isInput()        {}

func (h HedgeMaintenance) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.Length, validation.When(h.Included, positive()...)),
		validation.Field(&h.Height, validation.When(h.Included, positive()...)),
		validation.Field(&h.Width, validation.When(h.Included, positive()...)),
		validation.Field(&h.Cut, validation.When(h.Included, validation.Required), validation.In(CutBoth, CutSides, CutTop)),
	)
}

// Volume is the trimmed hedge volume in m³.
func (h HedgeMaintenance) Volume() float64 {
	return h.Length * h.Height * h.Width
}

type TreeSize string

const (
	TreeSmall  TreeSize = "klein"
	TreeMedium TreeSize = "middel"
	TreeLarge  TreeSize = "groot"
)

type TreeMaintenance struct {
	Included bool     `json:"bomenAanwezig"`
	Count    int      `json:"aantal"`
	Size     TreeSize `json:"grootte"`
	Disposal bool     `json:"afvoer"`
}

func (TreeMaintenance) Key() Key        { return Bomen }
func (t TreeMaintenance) Present() bool { return t.Included }
func (TreeMaintenance) isInput()        {}

func (t TreeMaintenance) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Count, validation.When(t.Included, validation.Required, validation.Min(1))),
		validation.Field(&t.Size, validation.When(t.Included, validation.Required), validation.In(TreeSmall, TreeMedium, TreeLarge)),
	)
}

// AreaWork is an optional sub-work measured in m². A nil *AreaWork means the
// work is not part of the quote.
type AreaWork struct {
	Area float64 `json:"oppervlakte"`
}

func (a AreaWork) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Area, positive()...),
	)
}

type OtherMaintenance struct {
	LeafClearing    *AreaWork `json:"bladruimen,omitempty"`
	TerraceCleaning *AreaWork `json:"terrasReinigen,omitempty"`
}

func (OtherMaintenance) Key() Key { return Overig }
func (OtherMaintenance) isInput() {}

func (o OtherMaintenance) Present() bool {
	return o.LeafClearing != nil || o.TerraceCleaning != nil
}

func (o OtherMaintenance) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.LeafClearing),
		validation.Field(&o.TerraceCleaning),
	)
}
