// Package styles is the brand-aware style recommendation service. It ties the
// brand color analyzer, the score calculator, and the history booster together
// over the catalog store.
package styles

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/Maiuran1404/brandmatch/internal/brand"
	"github.com/Maiuran1404/brandmatch/internal/db"
	"github.com/Maiuran1404/brandmatch/internal/history"
	"github.com/Maiuran1404/brandmatch/internal/scoring"
	"github.com/Maiuran1404/brandmatch/pkg/models"
)

// DefaultLimit is the number of styles returned when no limit is requested.
const DefaultLimit = 8

// Options controls result shaping for GetBrandAwareStyles.
type Options struct {
	// Limit caps the result length. Zero means DefaultLimit.
	Limit int
	// IncludeAllAxes collapses the result to at most one style per axis,
	// keeping the highest-scoring entry of each. When set with Limit == 0 the
	// result is exactly one entry per distinct axis, untruncated.
	IncludeAllAxes bool
}

// Service scores and ranks catalog styles for a user's brand.
type Service struct {
	catalog   db.CatalogReader
	companies db.CompanyReader
	booster   history.Booster
	calc      *scoring.Calculator

	// Collapses concurrent catalog fetches for the same deliverable type.
	catalogGroup singleflight.Group
}

// NewService creates a style recommendation service. The booster may be nil;
// scoring then runs unboosted.
func NewService(catalog db.CatalogReader, companies db.CompanyReader, booster history.Booster, calc *scoring.Calculator) *Service {
	if calc == nil {
		calc = scoring.NewCalculator(nil, nil)
	}
	return &Service{
		catalog:   catalog,
		companies: companies,
		booster:   booster,
		calc:      calc,
	}
}

// GetBrandAwareStyles returns the ranked styles of a deliverable type for a
// user.
//
// The company and catalog fetches run concurrently and their failures
// propagate; an empty catalog is a valid empty result, and a missing company
// yields flat neutral scores rather than an error.
func (s *Service) GetBrandAwareStyles(ctx context.Context, deliverableType models.DeliverableType, userID string, opts Options) ([]models.ScoredStyle, error) {
	var (
		company *models.Company
		refs    []*models.StyleReference
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		company, err = s.companies.GetCompanyByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("fetch company: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		refs, err = s.fetchCatalog(gctx, deliverableType)
		if err != nil {
			return fmt.Errorf("fetch catalog: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(refs) == 0 {
		return []models.ScoredStyle{}, nil
	}

	scored := s.scoreAll(ctx, refs, company, userID, deliverableType)

	if opts.IncludeAllAxes {
		scored = diversifyByAxis(scored)
		if opts.Limit > 0 && len(scored) > opts.Limit {
			scored = scored[:opts.Limit]
		}
		return scored, nil
	}

	sortByScore(scored)
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// GetBrandAwareStylesOfAxis returns a page of styles for one axis, scored the
// same way but never diversified. Used by "more of this style" fetches.
func (s *Service) GetBrandAwareStylesOfAxis(ctx context.Context, deliverableType models.DeliverableType, axis, userID string, offset, limit int) ([]models.ScoredStyle, error) {
	refs, err := s.catalog.ListStyleReferences(ctx, db.CatalogQuery{
		DeliverableType: deliverableType,
		StyleAxis:       axis,
		Offset:          offset,
		Limit:           limit,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch catalog page: %w", err)
	}
	if len(refs) == 0 {
		return []models.ScoredStyle{}, nil
	}

	company, err := s.companies.GetCompanyByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch company: %w", err)
	}

	scored := s.scoreAll(ctx, refs, company, userID, deliverableType)
	sortByScore(scored)
	return scored, nil
}

// scoreAll computes ScoredStyle entries in catalog order.
func (s *Service) scoreAll(ctx context.Context, refs []*models.StyleReference, company *models.Company, userID string, deliverableType models.DeliverableType) []models.ScoredStyle {
	cfg := s.calc.Config()

	// No brand profile: flat neutral score, skip the reason ladder entirely.
	if company == nil {
		scored := make([]models.ScoredStyle, len(refs))
		for i, ref := range refs {
			scored[i] = models.ScoredStyle{
				StyleReference:  *ref,
				BrandMatchScore: cfg.NoProfileScore,
				MatchReason:     scoring.ReasonNoProfile,
				MatchReasons:    []string{scoring.ReasonNoProfile},
			}
		}
		return scored
	}

	profile := brand.Analyze(brand.PaletteFromCompany(company))
	boosts := s.boostScores(ctx, userID, deliverableType)

	scored := make([]models.ScoredStyle, len(refs))
	for i, ref := range refs {
		comp := s.calc.ScoreComponents(ref.StyleAxis, profile, company.Industry)
		boost := boosts[ref.StyleAxis]
		total := s.calc.Clamp(float64(comp.FinalScore) + boost)

		in := scoring.ReasonInput{
			Components:   comp,
			Profile:      profile,
			Industry:     company.Industry,
			HistoryBoost: boost,
			TotalScore:   total,
		}

		scored[i] = models.ScoredStyle{
			StyleReference:  *ref,
			BrandMatchScore: total,
			MatchReason:     s.calc.Reason(in),
			MatchReasons:    s.calc.Reasons(in),
			HistoryBoost:    boost,
			ScoreFactors:    map[string]float64{"brand": float64(comp.FinalScore)},
		}
	}
	return scored
}

// boostScores fetches the history boost map. The booster is a best-effort
// signal: any failure becomes an empty map, logged and never surfaced.
func (s *Service) boostScores(ctx context.Context, userID string, deliverableType models.DeliverableType) map[string]float64 {
	if s.booster == nil {
		return nil
	}
	boosts, err := s.booster.BoostScores(ctx, userID, deliverableType)
	if err != nil {
		log.Warn().
			Err(err).
			Str("user_id", userID).
			Str("deliverable_type", string(deliverableType)).
			Msg("History boost unavailable, scoring unboosted")
		return nil
	}
	return boosts
}

// fetchCatalog lists the active styles of a deliverable type, collapsing
// concurrent fetches into one store query. The flight runs detached from the
// caller's context so one canceled request cannot fail the collapsed callers.
func (s *Service) fetchCatalog(ctx context.Context, deliverableType models.DeliverableType) ([]*models.StyleReference, error) {
	flightCtx := context.WithoutCancel(ctx)
	v, err, _ := s.catalogGroup.Do(string(deliverableType), func() (interface{}, error) {
		return s.catalog.ListStyleReferences(flightCtx, db.CatalogQuery{DeliverableType: deliverableType})
	})
	if err != nil {
		return nil, err
	}
	return v.([]*models.StyleReference), nil
}
