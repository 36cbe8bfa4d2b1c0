package services

import (
	"fmt"

	"go.uber.org/zap"

	"offertetool/estimation"
	"offertetool/reference"
)

// CorrectionCategory lists the levels of one correction table in the order
// the table sorts them.
type CorrectionCategory struct {
	Category reference.Category         `json:"categorie"`
	Levels   []estimation.AppliedFactor `json:"niveaus"`
}

// ReferenceOverview is the read-only reference data a quote is built on.
type ReferenceOverview struct {
	Norms       []reference.Normuur  `json:"normen"`
	Corrections []CorrectionCategory `json:"correctiefactoren"`
}

type ReferenceService struct {
	ref ReferenceStore
	log *zap.Logger
}

func NewReferenceService(ref ReferenceStore, log *zap.Logger) *ReferenceService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReferenceService{ref: ref, log: log}
}

// SearchProducts queries the price book visible to owner. An empty category
// or term matches everything.
func (s *ReferenceService) SearchProducts(owner, category, term string) ([]reference.Product, error) {
	book, err := s.ref.PriceBook(owner)
	if err != nil {
		return nil, fmt.Errorf("load price book: %w", err)
	}
	found := book.Search(category, term)
	if found == nil {
		found = []reference.Product{}
	}
	return found, nil
}

func (s *ReferenceService) Overview() (ReferenceOverview, error) {
	norms, err := s.ref.NormTable()
	if err != nil {
		return ReferenceOverview{}, fmt.Errorf("load norms: %w", err)
	}
	factors, err := s.ref.CorrectionTable()
	if err != nil {
		return ReferenceOverview{}, fmt.Errorf("load correction factors: %w", err)
	}

	out := ReferenceOverview{Norms: norms.Norms()}
	for _, cat := range reference.Categories() {
		cc := CorrectionCategory{Category: cat, Levels: []estimation.AppliedFactor{}}
		for _, l := range factors.Levels(cat) {
			cc.Levels = append(cc.Levels, estimation.ResolveFactor(factors, cat, l))
		}
		out.Corrections = append(out.Corrections, cc)
	}
	return out, nil
}
