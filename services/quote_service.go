package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"offertetool/config"
	"offertetool/estimation"
	"offertetool/scopes"
)

// QuoteResult is everything one calculation produces for a quote.
type QuoteResult struct {
	QuoteID        string                     `json:"offerteId"`
	Estimates      []estimation.ScopeEstimate `json:"scopes"`
	Quote          Quote                      `json:"offerte"`
	Voorcalculatie Voorcalculatie             `json:"voorcalculatie"`
	UnknownScopes  []scopes.Key               `json:"onbekendeScopes,omitempty"`
}

// MissingNorms lists every missing norm across all scopes.
func (r QuoteResult) MissingNorms() []string {
	var out []string
	for _, est := range r.Estimates {
		out = append(out, est.MissingNorms...)
	}
	return out
}

type QuoteService struct {
	ref      ReferenceStore
	quotes   QuoteStore
	defaults config.Calculation
	log      *zap.Logger
}

func NewQuoteService(ref ReferenceStore, quotes QuoteStore, defaults config.Calculation, log *zap.Logger) *QuoteService {
	if log == nil {
		log = zap.NewNop()
	}
	return &QuoteService{ref: ref, quotes: quotes, defaults: defaults, log: log}
}

// Preview calculates a draft without persisting anything.
func (s *QuoteService) Preview(draft QuoteDraft) (QuoteResult, error) {
	inputs, unknown, err := scopes.ParseAll(draft.Scopes)
	if err != nil {
		return QuoteResult{}, err
	}
	for _, l := range draft.ManualLines {
		if err := l.Validate(); err != nil {
			return QuoteResult{}, fmt.Errorf("manual line %q: %w", l.Description, err)
		}
	}
	pricing, team, cond, err := ResolveSettings(s.defaults, draft.Settings)
	if err != nil {
		return QuoteResult{}, err
	}

	norms, err := s.ref.NormTable()
	if err != nil {
		return QuoteResult{}, fmt.Errorf("load norms: %w", err)
	}
	factors, err := s.ref.CorrectionTable()
	if err != nil {
		return QuoteResult{}, fmt.Errorf("load correction factors: %w", err)
	}
	book, err := s.ref.PriceBook(draft.Owner)
	if err != nil {
		return QuoteResult{}, fmt.Errorf("load price book: %w", err)
	}

	estimates, err := estimation.NewDefaultEngine(norms, factors).Estimate(inputs, cond)
	if err != nil {
		return QuoteResult{}, err
	}
	q := AggregateQuote(estimates, draft.ManualLines, book, pricing)

	res := QuoteResult{
		QuoteID:        draft.ID,
		Estimates:      estimates,
		Quote:          q,
		Voorcalculatie: BuildVoorcalculatie(estimates, team, q.Totals.Equipment),
		UnknownScopes:  unknown,
	}

	log := s.log.With(zap.String("quote", draft.ID))
	if len(unknown) > 0 {
		log.Info("scopes without calculator ignored", zap.Any("scopes", unknown))
	}
	if missing := res.MissingNorms(); len(missing) > 0 {
		log.Warn("norms missing from reference table", zap.Strings("norms", missing))
	}
	if len(q.MissingProducts) > 0 {
		log.Warn("products missing from price book", zap.Strings("products", q.MissingProducts))
	}
	return res, nil
}

// Calculate recomputes a stored quote and persists lines, totals and the
// voorcalculatie. Running it twice on unchanged data stores identical values.
func (s *QuoteService) Calculate(quoteID string) (QuoteResult, error) {
	draft, err := s.quotes.LoadQuote(quoteID)
	if err != nil {
		return QuoteResult{}, fmt.Errorf("load quote %s: %w", quoteID, err)
	}
	res, err := s.Preview(draft)
	if err != nil {
		return QuoteResult{}, err
	}
	if err := s.quotes.SaveQuoteResult(draft, res); err != nil {
		return QuoteResult{}, fmt.Errorf("save quote %s: %w", quoteID, err)
	}
	s.log.Info("quote calculated",
		zap.String("quote", quoteID),
		zap.Int("lines", len(res.Quote.Lines)),
		zap.Float64("totalInclVAT", RoundMoney(res.Quote.Totals.TotalInclVAT)),
	)
	return res, nil
}

// RecalculateAll recomputes every stored quote. A failing quote is logged
// and skipped; the joined errors are returned with the number that succeeded.
func (s *QuoteService) RecalculateAll() (int, error) {
	ids, err := s.quotes.QuoteIDs()
	if err != nil {
		return 0, fmt.Errorf("list quotes: %w", err)
	}
	var (
		done int
		errs []error
	)
	for _, id := range ids {
		if _, err := s.Calculate(id); err != nil {
			s.log.Error("recalculation failed", zap.String("quote", id), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		done++
	}
	return done, errors.Join(errs...)
}

// ExportExcel calculates a stored quote and renders it as xlsx.
func (s *QuoteService) ExportExcel(quoteID string) ([]byte, error) {
	draft, err := s.quotes.LoadQuote(quoteID)
	if err != nil {
		return nil, fmt.Errorf("load quote %s: %w", quoteID, err)
	}
	res, err := s.Preview(draft)
	if err != nil {
		return nil, err
	}
	return GenerateQuoteExcel(draft, res)
}
