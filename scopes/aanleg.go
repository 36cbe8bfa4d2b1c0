package scopes

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"offertetool/reference"
)

func positive() []validation.Rule {
	return []validation.Rule{validation.Required, validation.Min(0.0).Exclusive()}
}

type DepthClass string

const (
	DepthShallow  DepthClass = "ondiep"
	DepthStandard DepthClass = "standaard"
	DepthDeep     DepthClass = "diep"
)

var depthMeters = map[DepthClass]float64{
	DepthShallow:  0.2,
	DepthStandard: 0.4,
	DepthDeep:     0.6,
}

// Earthworks is excavation over an area, optionally with soil disposal.
type Earthworks struct {
	Area     float64    `json:"oppervlakte"`
	Depth    DepthClass `json:"diepte"`
	Disposal bool       `json:"afvoer"`
}

func (Earthworks) Key() Key      { return Grondwerk }
func (Earthworks) Present() bool { return true }
func (Earthworks) isInput()      {}

func (e Earthworks) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Area, positive()...),
		validation.Field(&e.Depth, validation.Required, validation.In(DepthShallow, DepthStandard, DepthDeep)),
	)
}

// DepthMeters is the excavation depth the depth class stands for.
func (e Earthworks) DepthMeters() float64 {
	return depthMeters[e.Depth]
}

// Volume is the excavated volume in m³.
func (e Earthworks) Volume() float64 {
	return e.Area * e.DepthMeters()
}

type PavingType string

const (
	PavingTiles    PavingType = "tegels"
	PavingBricks   PavingType = "klinkers"
	PavingNatStone PavingType = "natuursteen"
)

type BaseLayer string

const (
	BaseSand      BaseLayer = "zand"
	BaseAggregate BaseLayer = "granulaat"
)

// PavingBase is the mandatory base under any paving.
type PavingBase struct {
	Layer        BaseLayer `json:"type"`
	ThicknessCm  float64   `json:"dikteCm"`
	EdgingMeters float64   `json:"opsluitbandenMeter"`
}

func (b PavingBase) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Layer, validation.Required, validation.In(BaseSand, BaseAggregate)),
		validation.Field(&b.ThicknessCm, validation.Required, validation.Min(0.0).Exclusive(), validation.Max(100.0)),
		validation.Field(&b.EdgingMeters, validation.Min(0.0)),
	)
}

type Paving struct {
	Area          float64         `json:"oppervlakte"`
	Type          PavingType      `json:"type"`
	CutComplexity reference.Level `json:"snijwerk"`
	Base          PavingBase      `json:"onderbouw"`
}

func (Paving) Key() Key      { return Bestrating }
func (Paving) Present() bool { return true }
func (Paving) isInput()      {}

func (p Paving) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Area, positive()...),
		validation.Field(&p.Type, validation.Required, validation.In(PavingTiles, PavingBricks, PavingNatStone)),
		validation.Field(&p.CutComplexity, validation.In(reference.LevelLaag, reference.LevelGemiddeld, reference.LevelHoog)),
		validation.Field(&p.Base),
	)
}

func (p Paving) FactorLevels() map[reference.Category]reference.Level {
	return map[reference.Category]reference.Level{reference.Snijwerk: p.CutComplexity}
}

// BaseVolume is the base-layer volume in m³.
func (p Paving) BaseVolume() float64 {
	return p.Area * p.Base.ThicknessCm / 100
}

type PlantingType string

const (
	PlantingPerennials PlantingType = "vaste_planten"
	PlantingShrubs     PlantingType = "heesters"
	PlantingMixed      PlantingType = "gemengd"
)

type Finish string

const (
	FinishNone   Finish = "geen"
	FinishBark   Finish = "schors"
	FinishGravel Finish = "grind"
)

type PlantingBorder struct {
	Area            float64         `json:"oppervlakte"`
	Planting        PlantingType    `json:"beplanting"`
	Intensity       reference.Level `json:"intensiteit"`
	SoilImprovement bool            `json:"bodemverbetering"`
	Finish          Finish          `json:"afwerking"`
}

func (PlantingBorder) Key() Key      { return Borders }
func (PlantingBorder) Present() bool { return true }
func (PlantingBorder) isInput()      {}

func (b PlantingBorder) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Area, positive()...),
		validation.Field(&b.Planting, validation.Required, validation.In(PlantingPerennials, PlantingShrubs, PlantingMixed)),
		validation.Field(&b.Intensity, validation.In(reference.LevelLaag, reference.LevelNormaal, reference.LevelHoog)),
		validation.Field(&b.Finish, validation.In(FinishNone, FinishBark, FinishGravel)),
	)
}

func (b PlantingBorder) FactorLevels() map[reference.Category]reference.Level {
	return map[reference.Category]reference.Level{reference.Intensiteit: b.Intensity}
}

type LawnType string

const (
	LawnSeed LawnType = "zaaien"
	LawnSod  LawnType = "graszoden"
)

type Lawn struct {
	Area        float64  `json:"oppervlakte"`
	Type        LawnType `json:"type"`
	PrepareSoil bool     `json:"grondVoorbereiden"`
}

func (Lawn) Key() Key      { return Gras }
func (Lawn) Present() bool { return true }
func (Lawn) isInput()      {}

func (l Lawn) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Area, positive()...),
		validation.Field(&l.Type, validation.Required, validation.In(LawnSeed, LawnSod)),
	)
}

type WoodworkType string

const (
	WoodFence   WoodworkType = "schutting"
	WoodDeck    WoodworkType = "vlonder"
	WoodPergola WoodworkType = "pergola"
)

type Foundation string

const (
	FoundationNone     Foundation = "geen"
	FoundationFootings Foundation = "poeren"
	FoundationConcrete Foundation = "beton"
)

// Woodwork sizes fences in running meters and decks and pergolas in m².
type Woodwork struct {
	Type       WoodworkType `json:"type"`
	Size       float64      `json:"afmeting"`
	Foundation Foundation   `json:"fundering"`
}

func (Woodwork) Key() Key      { return Houtwerk }
func (Woodwork) Present() bool { return true }
func (Woodwork) isInput()      {}

func (w Woodwork) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.Type, validation.Required, validation.In(WoodFence, WoodDeck, WoodPergola)),
		validation.Field(&w.Size, positive()...),
		validation.Field(&w.Foundation, validation.Required, validation.In(FoundationNone, FoundationFootings, FoundationConcrete)),
	)
}

func (w Woodwork) Unit() string {
	if w.Type == WoodFence {
		return "m"
	}
	return "m²"
}

type SoilType string

const (
	SoilSand SoilType = "zand"
	SoilClay SoilType = "klei"
)

// Utilities covers garden lighting, cable and water trenches and taps.
type Utilities struct {
	LightPoints  int      `json:"verlichtingspunten"`
	TrenchMeters float64  `json:"sleuflengte"`
	Taps         int      `json:"aftappunten"`
	Soil         SoilType `json:"grondsoort"`
}

func (Utilities) Key() Key      { return WaterElectra }
func (Utilities) Present() bool { return true }
func (Utilities) isInput()      {}

func (u Utilities) Validate() error {
	err := validation.ValidateStruct(&u,
		validation.Field(&u.LightPoints, validation.Min(0)),
		validation.Field(&u.TrenchMeters, validation.Min(0.0)),
		validation.Field(&u.Taps, validation.Min(0)),
		validation.Field(&u.Soil, validation.Required, validation.In(SoilSand, SoilClay)),
	)
	if err != nil {
		return err
	}
	if u.LightPoints == 0 && u.TrenchMeters == 0 && u.Taps == 0 {
		return validation.Errors{
			"verlichtingspunten": errors.New("at least one of verlichtingspunten, sleuflengte or aftappunten is required"),
		}
	}
	return nil
}
