package reference

// DefaultNorms is the seeded labor-norm table.
func DefaultNorms() []Normuur {
	return []Normuur{
		{"grondwerk", "ontgraven", 0.25, "m²", "Ontgraven tot gewenste diepte"},
		{"grondwerk", "afvoeren", 0.15, "m³", "Grond laden en afvoeren"},

		{"bestrating", "bestraten", 0.4, "m²", "Bestrating leggen"},
		{"bestrating", "onderbouw", 0.5, "m³", "Onderbouw aanbrengen en verdichten"},
		{"bestrating", "opsluitbanden", 0.2, "m", "Opsluitbanden zetten"},

		{"borders", "planten", 0.3, "m²", "Beplanting aanbrengen"},
		{"borders", "grondverbetering", 0.05, "m²", "Bodemverbeteraar inwerken"},
		{"borders", "afwerklaag", 0.04, "m²", "Afwerklaag aanbrengen"},

		{"gras", "aanleggen", 0.12, "m²", "Gazon aanleggen"},
		{"gras", "grond_voorbereiden", 0.08, "m²", "Grond frezen en egaliseren"},

		{"houtwerk", "schutting", 1.2, "m", "Schutting plaatsen"},
		{"houtwerk", "vlonder", 1.5, "m²", "Vlonder leggen"},
		{"houtwerk", "pergola", 2.0, "m²", "Pergola bouwen"},

		{"water_electra", "armatuur", 0.75, "stuks", "Verlichtingspunt plaatsen en aansluiten"},
		{"water_electra", "sleuf", 0.3, "m", "Sleuf graven en dichten"},
		{"water_electra", "aftappunt", 1.0, "stuks", "Aftappunt plaatsen"},

		{"gras_onderhoud", "maaien", 0.02, "m²", "Gazon maaien"},
		{"gras_onderhoud", "kanten_steken", 0.01, "m", "Graskanten steken"},
		{"gras_onderhoud", "verticuteren", 0.03, "m²", "Gazon verticuteren"},

		{"borders_onderhoud", "wieden", 0.05, "m²", "Borders wieden"},
		{"borders_onderhoud", "snoeien", 0.02, "m²", "Heesters in borders snoeien"},

		{"heggen", "snoeien_beide", 0.5, "m³", "Haag snoeien, zijkanten en bovenkant"},
		{"heggen", "snoeien_zijkanten", 0.35, "m³", "Haag snoeien, alleen zijkanten"},
		{"heggen", "snoeien_bovenkant", 0.25, "m³", "Haag snoeien, alleen bovenkant"},

		{"bomen", "snoeien", 1.0, "stuks", "Boom snoeien"},

		{"overig", "bladruimen", 0.01, "m²", "Blad ruimen"},
		{"overig", "terras_reinigen", 0.05, "m²", "Terras reinigen"},
	}
}

// DefaultMultipliers is the seeded categorical multiplier table.
func DefaultMultipliers() []Multiplier {
	return []Multiplier{
		{"grondwerk", "diepte", "ondiep", 0.6},
		{"grondwerk", "diepte", "standaard", 1.0},
		{"grondwerk", "diepte", "diep", 1.6},

		{"bestrating", "type", "tegels", 1.0},
		{"bestrating", "type", "klinkers", 1.2},
		{"bestrating", "type", "natuursteen", 1.5},

		{"borders", "beplanting", "vaste_planten", 1.0},
		{"borders", "beplanting", "heesters", 1.2},
		{"borders", "beplanting", "gemengd", 1.1},
		{"borders", "dichtheid", "vaste_planten", 7},
		{"borders", "dichtheid", "heesters", 3},
		{"borders", "dichtheid", "gemengd", 5},

		{"gras", "type", "zaaien", 0.4},
		{"gras", "type", "graszoden", 1.0},

		{"houtwerk", "fundering", "geen", 1.0},
		{"houtwerk", "fundering", "poeren", 1.15},
		{"houtwerk", "fundering", "beton", 1.3},

		{"water_electra", "grondsoort", "zand", 1.0},
		{"water_electra", "grondsoort", "klei", 1.3},

		{"heggen", "hoogte", "boven_2m", 1.3},

		{"bomen", "grootte", "klein", 0.5},
		{"bomen", "grootte", "middel", 1.0},
		{"bomen", "grootte", "groot", 2.0},
	}
}

// DefaultNormTable builds a NormTable from the seeded defaults.
func DefaultNormTable() *NormTable {
	return NewNormTable(DefaultNorms(), DefaultMultipliers())
}

func DefaultCorrectionFactors() []CorrectionFactor {
	return []CorrectionFactor{
		{Bereikbaarheid, LevelGoed, 1.0, "Goed bereikbaar, machines tot aan de tuin"},
		{Bereikbaarheid, LevelBeperkt, 1.2, "Beperkt bereikbaar, kruiwagen door smalle doorgang"},
		{Bereikbaarheid, LevelSlecht, 1.5, "Slecht bereikbaar, alles met de hand door het huis"},

		{Achterstand, LevelGeen, 1.0, "Regulier onderhouden"},
		{Achterstand, LevelLicht, 1.15, "Eén seizoen achterstand"},
		{Achterstand, LevelMatig, 1.3, "Meerdere seizoenen achterstand"},
		{Achterstand, LevelZwaar, 1.6, "Verwilderd"},

		{Complexiteit, LevelLaag, 1.0, "Rechte vlakken"},
		{Complexiteit, LevelGemiddeld, 1.15, "Enkele rondingen en niveauverschillen"},
		{Complexiteit, LevelHoog, 1.3, "Veel rondingen, hoogteverschillen en aansluitingen"},

		{Intensiteit, LevelLaag, 0.85, "Extensieve beplanting"},
		{Intensiteit, LevelNormaal, 1.0, "Normale beplanting"},
		{Intensiteit, LevelHoog, 1.3, "Intensieve beplanting"},

		{Snijwerk, LevelLaag, 1.0, "Nauwelijks zaagwerk"},
		{Snijwerk, LevelGemiddeld, 1.15, "Zaagwerk langs randen"},
		{Snijwerk, LevelHoog, 1.3, "Veel passtukken en rondingen"},
	}
}

func DefaultCorrectionTable() *CorrectionTable {
	return NewCorrectionTable(DefaultCorrectionFactors())
}

// DefaultProducts is the shared demo price book.
func DefaultProducts() []Product {
	p := func(category, name, unit string, purchase, sale, loss float64) Product {
		return Product{
			Name: name, Category: category, Unit: unit,
			PurchasePrice: purchase, SalePrice: sale, LossPercent: loss, Active: true,
		}
	}
	return []Product{
		p("grond", "Grondafvoer", "m³", 18, 27.5, 0),
		p("grond", "Bodemverbeteraar", "m³", 32, 48, 5),
		p("grond", "Teelaarde", "m³", 24, 36, 5),

		p("bestrating", "Betontegel 30x30", "m²", 14, 21, 5),
		p("bestrating", "Betonklinker", "m²", 19, 28, 5),
		p("bestrating", "Natuursteen", "m²", 48, 72, 10),
		p("onderbouw", "Straatzand", "m³", 21, 32, 10),
		p("onderbouw", "Menggranulaat", "m³", 26, 39, 10),
		p("opsluitbanden", "Opsluitband", "m", 4.5, 7.25, 5),

		p("planten", "Vaste plant", "stuks", 2.1, 3.95, 0),
		p("planten", "Heester", "stuks", 7.5, 12.95, 0),
		p("planten", "Gemengde beplanting", "stuks", 4.2, 7.5, 0),
		p("afwerking", "Boomschors", "m³", 38, 55, 5),
		p("afwerking", "Siergrind", "m³", 65, 95, 5),

		p("gras", "Graszaad", "kg", 6.5, 11, 0),
		p("gras", "Graszoden", "m²", 3.1, 5.25, 5),

		p("hout", "Schuttingscherm", "m", 38, 59, 5),
		p("hout", "Vlonderplank", "m²", 42, 64, 10),
		p("hout", "Pergola hout", "m²", 35, 55, 10),
		p("hout", "Schuttingpaal", "stuks", 14, 22.5, 0),
		p("fundering", "Betonpoer", "stuks", 8, 13.5, 0),

		p("verlichting", "Tuinlamp", "stuks", 45, 79, 0),
		p("elektra", "Grondkabel", "m", 2.2, 3.6, 10),
		p("water", "Waterleiding PE", "m", 1.8, 3.1, 10),
		p("water", "Aftappunt", "stuks", 32, 55, 0),

		p("afvoer", "Groenafval", "m³", 22, 35, 0),

		p("machines", "Minigraver", "uur", 35, 55, 0),
		p("machines", "Trilplaat", "uur", 9, 15, 0),
	}
}
