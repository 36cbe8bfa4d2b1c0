package estimation

import (
	"fmt"
	"math"

	"offertetool/reference"
	"offertetool/scopes"
)

// Calculator estimates one scope variant.
type Calculator interface {
	Scope() scopes.Key
	Calculate(in scopes.Input, norms *reference.NormTable) (Result, error)
}

type calculator[T scopes.Input] struct {
	scope scopes.Key
	fn    func(T, *reference.NormTable) Result
}

// NewCalculator adapts a typed scope function to a Calculator.
func NewCalculator[T scopes.Input](scope scopes.Key, fn func(T, *reference.NormTable) Result) Calculator {
	return calculator[T]{scope: scope, fn: fn}
}

func (c calculator[T]) Scope() scopes.Key { return c.scope }

func (c calculator[T]) Calculate(in scopes.Input, norms *reference.NormTable) (Result, error) {
	v, ok := in.(T)
	if !ok {
		return Result{}, fmt.Errorf("estimation: %s calculator cannot handle %T", c.scope, in)
	}
	return c.fn(v, norms), nil
}

// DefaultCalculators returns one calculator per known scope.
func DefaultCalculators() []Calculator {
	return []Calculator{
		NewCalculator(scopes.Grondwerk, EstimateEarthworks),
		NewCalculator(scopes.WaterElectra, EstimateUtilities),
		NewCalculator(scopes.Bestrating, EstimatePaving),
		NewCalculator(scopes.Houtwerk, EstimateWoodwork),
		NewCalculator(scopes.Borders, EstimatePlantingBorder),
		NewCalculator(scopes.Gras, EstimateLawn),
		NewCalculator(scopes.GrasOnderhoud, EstimateLawnMaintenance),
		NewCalculator(scopes.BordersOnderhoud, EstimateBorderMaintenance),
		NewCalculator(scopes.Heggen, EstimateHedgeMaintenance),
		NewCalculator(scopes.Bomen, EstimateTreeMaintenance),
		NewCalculator(scopes.Overig, EstimateOtherMaintenance),
	}
}

var pavingProducts = map[scopes.PavingType]string{
	scopes.PavingTiles:    "Betontegel 30x30",
	scopes.PavingBricks:   "Betonklinker",
	scopes.PavingNatStone: "Natuursteen",
}

var baseProducts = map[scopes.BaseLayer]string{
	scopes.BaseSand:      "Straatzand",
	scopes.BaseAggregate: "Menggranulaat",
}

var plantProducts = map[scopes.PlantingType]string{
	scopes.PlantingPerennials: "Vaste plant",
	scopes.PlantingShrubs:     "Heester",
	scopes.PlantingMixed:      "Gemengde beplanting",
}

var woodProducts = map[scopes.WoodworkType]string{
	scopes.WoodFence:   "Schuttingscherm",
	scopes.WoodDeck:    "Vlonderplank",
	scopes.WoodPergola: "Pergola hout",
}

const (
	fencePostSpacing = 1.8   // m
	seedPerM2        = 0.035 // kg
	topsoilPerM2     = 0.05  // m³, 5 cm
	improverPerM2    = 0.1   // m³
	mulchPerM2       = 0.05  // m³
	clippingsRatio   = 0.1   // m³ green waste per m³ hedge
	treeWastePerTree = 0.5   // m³ for a medium tree
	hedgeHeightLimit = 2.0   // m
)

func EstimateEarthworks(in scopes.Earthworks, norms *reference.NormTable) Result {
	s := newSheet(scopes.Grondwerk, norms)
	dig := s.activity("ontgraven", in.Area, s.multiplier("diepte", string(in.Depth)))
	s.equipment("Minigraver", dig)
	if in.Disposal {
		volume := in.Volume()
		s.activity("afvoeren", volume, 1)
		s.material("grond", "Grondafvoer", volume, "m³")
	}
	return s.result()
}

func EstimatePaving(in scopes.Paving, norms *reference.NormTable) Result {
	s := newSheet(scopes.Bestrating, norms)
	s.activity("bestraten", in.Area, s.multiplier("type", string(in.Type)))
	base := s.activity("onderbouw", in.BaseVolume(), 1)
	s.equipment("Trilplaat", base)
	s.activity("opsluitbanden", in.Base.EdgingMeters, 1)

	s.material("bestrating", pavingProducts[in.Type], in.Area, "m²")
	s.material("onderbouw", baseProducts[in.Base.Layer], in.BaseVolume(), "m³")
	s.material("opsluitbanden", "Opsluitband", in.Base.EdgingMeters, "m")
	return s.result()
}

func EstimatePlantingBorder(in scopes.PlantingBorder, norms *reference.NormTable) Result {
	s := newSheet(scopes.Borders, norms)
	s.activity("planten", in.Area, s.multiplier("beplanting", string(in.Planting)))
	plants := math.Ceil(in.Area * s.multiplier("dichtheid", string(in.Planting)))
	s.material("planten", plantProducts[in.Planting], plants, "stuks")

	if in.SoilImprovement {
		s.activity("grondverbetering", in.Area, 1)
		s.material("grond", "Bodemverbeteraar", in.Area*improverPerM2, "m³")
	}
	switch in.Finish {
	case scopes.FinishBark:
		s.activity("afwerklaag", in.Area, 1)
		s.material("afwerking", "Boomschors", in.Area*mulchPerM2, "m³")
	case scopes.FinishGravel:
		s.activity("afwerklaag", in.Area, 1)
		s.material("afwerking", "Siergrind", in.Area*mulchPerM2, "m³")
	}
	return s.result()
}

func EstimateLawn(in scopes.Lawn, norms *reference.NormTable) Result {
	s := newSheet(scopes.Gras, norms)
	s.activity("aanleggen", in.Area, s.multiplier("type", string(in.Type)))
	if in.Type == scopes.LawnSeed {
		s.material("gras", "Graszaad", in.Area*seedPerM2, "kg")
	} else {
		s.material("gras", "Graszoden", in.Area, "m²")
	}
	if in.PrepareSoil {
		s.activity("grond_voorbereiden", in.Area, 1)
		s.material("grond", "Teelaarde", in.Area*topsoilPerM2, "m³")
	}
	return s.result()
}

// woodworkSupports is the number of posts or footings a structure stands on.
func woodworkSupports(in scopes.Woodwork) float64 {
	switch in.Type {
	case scopes.WoodFence:
		return math.Ceil(in.Size/fencePostSpacing) + 1
	case scopes.WoodDeck:
		return math.Ceil(in.Size / 1.5)
	default:
		return math.Ceil(in.Size/4) + 2
	}
}

func EstimateWoodwork(in scopes.Woodwork, norms *reference.NormTable) Result {
	s := newSheet(scopes.Houtwerk, norms)
	s.activity(string(in.Type), in.Size, s.multiplier("fundering", string(in.Foundation)))
	s.material("hout", woodProducts[in.Type], in.Size, in.Unit())

	supports := woodworkSupports(in)
	if in.Type == scopes.WoodFence {
		s.material("hout", "Schuttingpaal", supports, "stuks")
	}
	if in.Foundation != scopes.FoundationNone {
		s.material("fundering", "Betonpoer", supports, "stuks")
	}
	return s.result()
}

func EstimateUtilities(in scopes.Utilities, norms *reference.NormTable) Result {
	s := newSheet(scopes.WaterElectra, norms)
	s.activity("armatuur", float64(in.LightPoints), 1)
	s.activity("sleuf", in.TrenchMeters, s.multiplier("grondsoort", string(in.Soil)))
	s.activity("aftappunt", float64(in.Taps), 1)

	s.material("verlichting", "Tuinlamp", float64(in.LightPoints), "stuks")
	if in.LightPoints > 0 {
		s.material("elektra", "Grondkabel", in.TrenchMeters, "m")
	}
	if in.Taps > 0 {
		s.material("water", "Waterleiding PE", in.TrenchMeters, "m")
		s.material("water", "Aftappunt", float64(in.Taps), "stuks")
	}
	return s.result()
}

func EstimateLawnMaintenance(in scopes.LawnMaintenance, norms *reference.NormTable) Result {
	s := newSheet(scopes.GrasOnderhoud, norms)
	if !in.Present() {
		return s.result()
	}
	if in.Mow {
		s.activity("maaien", in.Area, 1)
	}
	if in.Edges {
		s.activity("kanten_steken", math.Sqrt(in.Area)*4, 1)
	}
	if in.Dethatch {
		s.activity("verticuteren", in.Area, 1)
	}
	return s.result()
}

func EstimateBorderMaintenance(in scopes.BorderMaintenance, norms *reference.NormTable) Result {
	s := newSheet(scopes.BordersOnderhoud, norms)
	if !in.Present() {
		return s.result()
	}
	s.activity("wieden", in.Area, 1)
	if in.Pruning {
		s.activity("snoeien", in.Area, 1)
	}
	return s.result()
}

func EstimateHedgeMaintenance(in scopes.HedgeMaintenance, norms *reference.NormTable) Result {
	s := newSheet(scopes.Heggen, norms)
	if !in.Present() {
		return s.result()
	}
	volume := in.Volume()
	height := 1.0
	if in.Height > hedgeHeightLimit {
		height = s.multiplier("hoogte", "boven_2m")
		s.note("hoogte %.2f m boven %.0f m: toeslag ×%.2f", in.Height, hedgeHeightLimit, height)
	}
	s.activity("snoeien_"+string(in.Cut), volume, height)
	if in.Disposal {
		s.material("afvoer", "Groenafval", volume*clippingsRatio, "m³")
	}
	return s.result()
}

func EstimateTreeMaintenance(in scopes.TreeMaintenance, norms *reference.NormTable) Result {
	s := newSheet(scopes.Bomen, norms)
	if !in.Present() {
		return s.result()
	}
	size := s.multiplier("grootte", string(in.Size))
	s.activity("snoeien", float64(in.Count), size)
	if in.Disposal {
		s.material("afvoer", "Groenafval", float64(in.Count)*treeWastePerTree*size, "m³")
	}
	return s.result()
}

func EstimateOtherMaintenance(in scopes.OtherMaintenance, norms *reference.NormTable) Result {
	s := newSheet(scopes.Overig, norms)
	if in.LeafClearing != nil {
		s.activity("bladruimen", in.LeafClearing.Area, 1)
	}
	if in.TerraceCleaning != nil {
		s.activity("terras_reinigen", in.TerraceCleaning.Area, 1)
	}
	return s.result()
}
