package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/moundworks/pitchlab/internal/domain/badge"
	"github.com/moundworks/pitchlab/internal/domain/outing"
	"github.com/moundworks/pitchlab/internal/domain/pitch"
)

// BadgeService evaluates the ten-rule badge catalog. Each rule is an
// independent pure function over the supplied records, so rules run on a
// shared worker pool with no ordering dependency.
type BadgeService struct {
	outingRepo outing.Repository
	pitchRepo  pitch.Repository
	pool       *ants.Pool
	logger     *slog.Logger
}

const defaultBadgeWorkers = 4

func NewBadgeService(
	outingRepo outing.Repository,
	pitchRepo pitch.Repository,
	workers int,
	logger *slog.Logger,
) (*BadgeService, error) {
	if workers <= 0 {
		workers = defaultBadgeWorkers
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create badge worker pool: %w", err)
	}

	return &BadgeService{
		outingRepo: outingRepo,
		pitchRepo:  pitchRepo,
		pool:       pool,
		logger:     logger,
	}, nil
}

func (s *BadgeService) Close() {
	s.pool.Release()
}

// EvaluationInput carries everything a single evaluation needs. TeamOutings
// is the full roster's sessions and backs the cross-pitcher percentile rule;
// it may be empty, in which case the pitcher is compared against themselves.
type EvaluationInput struct {
	Outings     []outing.Outing
	Events      []pitch.Event
	TeamOutings []outing.Outing
}

// EvaluateForPitcher loads a pitcher's records plus the roster context and
// scores all rules.
func (s *BadgeService) EvaluateForPitcher(ctx context.Context, pitcherID string) ([]badge.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BadgeService.EvaluateForPitcher")
	defer span.End()

	if pitcherID == "" {
		return nil, fmt.Errorf("%w: pitcher id is required", ErrInvalidInput)
	}

	outings, err := s.outingRepo.ListByPitcher(ctx, pitcherID)
	if err != nil {
		return nil, fmt.Errorf("list outings for badges: %w", err)
	}
	events, err := s.pitchRepo.ListByPitcher(ctx, pitcherID)
	if err != nil {
		return nil, fmt.Errorf("list pitches for badges: %w", err)
	}
	teamOutings, err := s.outingRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roster outings for badges: %w", err)
	}

	results := s.Evaluate(ctx, EvaluationInput{
		Outings:     outings,
		Events:      events,
		TeamOutings: teamOutings,
	})

	earned := 0
	for _, result := range results {
		if result.Earned {
			earned++
		}
	}
	s.logger.DebugContext(ctx, "badges evaluated",
		"pitcher_id", pitcherID,
		"earned", earned,
		"outings", len(outings),
		"pitches", len(events),
	)

	return results, nil
}

// Evaluate scores every rule in catalog order. It never fails: sparse data
// degrades to earned=false with a detail naming the shortfall.
func (s *BadgeService) Evaluate(ctx context.Context, input EvaluationInput) []badge.Result {
	_, span := startUsecaseSpan(ctx, "usecase.BadgeService.Evaluate")
	defer span.End()

	definitions := badge.Definitions()
	results := make([]badge.Result, len(definitions))

	var wg sync.WaitGroup
	for i, def := range definitions {
		i, def := i, def
		wg.Add(1)
		task := func() {
			defer wg.Done()
			results[i] = evaluateRule(def, input)
		}
		if err := s.pool.Submit(task); err != nil {
			// Pool exhausted or released; evaluation still has to complete.
			task()
		}
	}
	wg.Wait()

	return results
}

type ruleOutcome struct {
	earned   bool
	progress float64
	detail   string
}

func evaluateRule(def badge.Definition, input EvaluationInput) badge.Result {
	var outcome ruleOutcome
	switch def.ID {
	case badge.IDZoneMaster:
		outcome = zoneMasterRule(input.Outings)
	case badge.IDSniperStatus:
		outcome = sniperStatusRule(input.Events)
	case badge.IDBridgeBuilder:
		outcome = bridgeBuilderRule(input.Events)
	case badge.IDDownAndAway:
		outcome = downAndAwayRule(input.Events)
	case badge.IDVelocityJump:
		outcome = velocityJumpRule(input.Outings)
	case badge.IDTerminator:
		outcome = terminatorRule(input.Outings)
	case badge.IDPowerPrecision:
		outcome = powerPrecisionRule(input.Outings, input.TeamOutings)
	case badge.IDStratosphere:
		outcome = stratosphereRule(input.Events)
	case badge.IDRepeatableMotion:
		outcome = repeatableMotionRule(input.Outings)
	case badge.IDEarlyCountKiller:
		outcome = earlyCountKillerRule(input.Events)
	default:
		outcome = ruleOutcome{detail: "unknown rule"}
	}

	return badge.Result{
		BadgeID:  def.ID,
		Name:     def.Name,
		Earned:   outcome.earned,
		Progress: badge.ClampProgress(outcome.progress),
		Detail:   outcome.detail,
	}
}

// overallStrikePercent aggregates strike percentage across tracked outings
// only. Untracked sessions never enter numerator or denominator.
func overallStrikePercent(outings []outing.Outing) (float64, bool) {
	strikes, pitches := 0, 0
	for _, item := range outings {
		if !item.TracksStrikes() {
			continue
		}
		strikes += *item.Strikes
		pitches += item.PitchCount
	}
	if pitches == 0 {
		return 0, false
	}
	return float64(strikes) / float64(pitches) * 100, true
}

func groupEventsByOuting(events []pitch.Event) map[string][]pitch.Event {
	grouped := make(map[string][]pitch.Event)
	for _, event := range events {
		grouped[event.OutingID] = append(grouped[event.OutingID], event)
	}
	return grouped
}

func bestGroupCount(events []pitch.Event, match func(pitch.Event) bool) int {
	best := 0
	for _, group := range groupEventsByOuting(events) {
		count := 0
		for _, event := range group {
			if match(event) {
				count++
			}
		}
		if count > best {
			best = count
		}
	}
	return best
}

func zoneMasterRule(outings []outing.Outing) ruleOutcome {
	pct, ok := overallStrikePercent(outings)
	if !ok {
		return ruleOutcome{detail: "No tracked strike data yet"}
	}
	return ruleOutcome{
		earned:   pct >= 65,
		progress: pct / 65 * 100,
		detail:   fmt.Sprintf("%.1f%% strikes across tracked outings", pct),
	}
}

func sniperStatusRule(events []pitch.Event) ruleOutcome {
	if len(events) == 0 {
		return ruleOutcome{detail: "No charted pitches yet"}
	}
	best := bestGroupCount(events, func(e pitch.Event) bool {
		return pitch.InShadowZone(e.X, e.Y)
	})
	return ruleOutcome{
		earned:   best >= 5,
		progress: float64(best) / 5 * 100,
		detail:   fmt.Sprintf("%d shadow-zone pitches in best outing", best),
	}
}

func bridgeBuilderRule(events []pitch.Event) ruleOutcome {
	offSpeed, strikes := 0, 0
	for _, event := range events {
		if event.PitchType == pitch.TypeFastball {
			continue
		}
		offSpeed++
		if event.IsStrike {
			strikes++
		}
	}
	if offSpeed == 0 {
		return ruleOutcome{detail: "No off-speed pitches charted yet"}
	}

	pct := float64(strikes) / float64(offSpeed) * 100
	return ruleOutcome{
		earned:   pct >= 50,
		progress: pct / 50 * 100,
		detail:   fmt.Sprintf("%.1f%% strikes on off-speed pitches", pct),
	}
}

func downAndAwayRule(events []pitch.Event) ruleOutcome {
	if len(events) == 0 {
		return ruleOutcome{detail: "No charted pitches yet"}
	}
	best := bestGroupCount(events, func(e pitch.Event) bool {
		return pitch.InBottomThird(e.X, e.Y)
	})
	return ruleOutcome{
		earned:   best >= 5,
		progress: float64(best) / 5 * 100,
		detail:   fmt.Sprintf("%d bottom-third pitches in best outing", best),
	}
}

// velocityJumpRule compares the latest recorded velocity against the average
// of readings more than 30 days older than it. The baseline window anchors on
// the latest outing date, not the wall clock, so evaluation is deterministic.
func velocityJumpRule(outings []outing.Outing) ruleOutcome {
	withVelo := make([]outing.Outing, 0, len(outings))
	for _, item := range outings {
		if item.MaxVelo != nil && *item.MaxVelo > 0 {
			withVelo = append(withVelo, item)
		}
	}
	if len(withVelo) == 0 {
		return ruleOutcome{detail: "No velocity data yet"}
	}

	sort.SliceStable(withVelo, func(i, j int) bool {
		if !withVelo[i].Date.Equal(withVelo[j].Date) {
			return withVelo[i].Date.After(withVelo[j].Date)
		}
		return withVelo[i].ID < withVelo[j].ID
	})

	latest := withVelo[0]
	cutoff := latest.Date.AddDate(0, 0, -30)

	baselineSum, baselineCount := 0.0, 0
	for _, item := range withVelo[1:] {
		if item.Date.After(cutoff) {
			continue
		}
		baselineSum += *item.MaxVelo
		baselineCount++
	}
	if baselineCount == 0 {
		return ruleOutcome{detail: "Need 30+ days of velocity history"}
	}

	baseline := baselineSum / float64(baselineCount)
	jump := *latest.MaxVelo - baseline
	return ruleOutcome{
		earned:   jump >= 2,
		progress: math.Max(0, jump) / 2 * 100,
		detail:   fmt.Sprintf("%+.1f mph vs 30-day baseline", jump),
	}
}

func terminatorRule(outings []outing.Outing) ruleOutcome {
	best, qualified := 0.0, false
	for _, item := range outings {
		if item.PitchCount < 30 {
			continue
		}
		pct, ok := item.StrikePercent()
		if !ok {
			continue
		}
		if !qualified || pct > best {
			best = pct
		}
		qualified = true
	}
	if !qualified {
		return ruleOutcome{detail: "Log a 30+ pitch outing with tracked strikes"}
	}
	return ruleOutcome{
		earned:   best >= 70,
		progress: best / 70 * 100,
		detail:   fmt.Sprintf("%.1f%% strikes in best qualifying outing", best),
	}
}

// powerPrecisionRule needs the roster context: the pitcher's top velocity
// must sit in the top quartile of per-pitcher maxima while their overall
// strike rate holds 60%.
func powerPrecisionRule(own []outing.Outing, team []outing.Outing) ruleOutcome {
	ownVelo, ownPitcherID := 0.0, ""
	for _, item := range own {
		if item.MaxVelo != nil && *item.MaxVelo > ownVelo {
			ownVelo = *item.MaxVelo
		}
		if ownPitcherID == "" {
			ownPitcherID = item.PitcherID
		}
	}
	if ownVelo <= 0 {
		return ruleOutcome{detail: "No velocity data yet"}
	}

	strikePct, hasStrikes := overallStrikePercent(own)
	if !hasStrikes {
		return ruleOutcome{detail: "No tracked strike data yet"}
	}

	maxByPitcher := map[string]float64{ownPitcherID: ownVelo}
	for _, item := range team {
		if item.MaxVelo == nil || *item.MaxVelo <= 0 {
			continue
		}
		if *item.MaxVelo > maxByPitcher[item.PitcherID] {
			maxByPitcher[item.PitcherID] = *item.MaxVelo
		}
	}

	atOrBelow := 0
	for _, velo := range maxByPitcher {
		if velo <= ownVelo {
			atOrBelow++
		}
	}
	percentile := float64(atOrBelow) / float64(len(maxByPitcher))

	veloHalf := math.Min(1, percentile/0.75) * 50
	strikeHalf := math.Min(1, strikePct/60) * 50
	return ruleOutcome{
		earned:   percentile >= 0.75 && strikePct >= 60,
		progress: veloHalf + strikeHalf,
		detail:   fmt.Sprintf("velocity percentile %.0f, %.1f%% strikes", percentile*100, strikePct),
	}
}

func stratosphereRule(events []pitch.Event) ruleOutcome {
	if len(events) == 0 {
		return ruleOutcome{detail: "No charted pitches yet"}
	}
	best := bestGroupCount(events, func(e pitch.Event) bool {
		return e.PitchType == pitch.TypeFastball && pitch.InTopThird(e.X, e.Y)
	})
	return ruleOutcome{
		earned:   best >= 4,
		progress: float64(best) / 4 * 100,
		detail:   fmt.Sprintf("%d top-third fastballs in best outing", best),
	}
}

func repeatableMotionRule(outings []outing.Outing) ruleOutcome {
	tracked := make([]outing.Outing, 0, len(outings))
	for _, item := range outings {
		if item.TracksStrikes() {
			tracked = append(tracked, item)
		}
	}
	if len(tracked) == 0 {
		return ruleOutcome{detail: "No tracked strike data yet"}
	}

	sort.SliceStable(tracked, func(i, j int) bool {
		if !tracked[i].Date.Equal(tracked[j].Date) {
			return tracked[i].Date.Before(tracked[j].Date)
		}
		return tracked[i].ID < tracked[j].ID
	})

	best, current := 1, 1
	prev, _ := tracked[0].StrikePercent()
	for _, item := range tracked[1:] {
		pct, _ := item.StrikePercent()
		if math.Abs(pct-prev) <= 5 {
			current++
		} else {
			current = 1
		}
		if current > best {
			best = current
		}
		prev = pct
	}

	return ruleOutcome{
		earned:   best >= 3,
		progress: float64(best) / 3 * 100,
		detail:   fmt.Sprintf("%d consecutive consistent outings", best),
	}
}

func earlyCountKillerRule(events []pitch.Event) ruleOutcome {
	best, qualified := 0.0, false
	for _, group := range groupEventsByOuting(events) {
		if len(group) < 5 {
			continue
		}
		strikes := 0
		for _, event := range group {
			if event.IsStrike {
				strikes++
			}
		}
		pct := float64(strikes) / float64(len(group)) * 100
		if !qualified || pct > best {
			best = pct
		}
		qualified = true
	}
	if !qualified {
		return ruleOutcome{detail: "Chart at least 5 pitches in an outing"}
	}
	return ruleOutcome{
		earned:   best >= 60,
		progress: best / 60 * 100,
		detail:   fmt.Sprintf("%.1f%% zone rate in best charted outing", best),
	}
}
