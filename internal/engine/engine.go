// Package engine implements the recomputation pipeline: canonical mapping,
// category and lifecycle annotation, metrics, filtering and breakdowns.
package engine

import (
	"log/slog"

	"github.com/procflow/procflow/internal/classify"
	"github.com/procflow/procflow/internal/ingest"
	"github.com/procflow/procflow/internal/mapper"
	"github.com/procflow/procflow/internal/model"
)

// Engine runs full recomputation passes over the current input tables
// under one configuration snapshot. It is the single entry point for both
// the unfiltered and the filtered view.
type Engine struct {
	settings  model.Settings
	resolver  *classify.Resolver
	lifecycle *classify.Lifecycle
	cache     *resultCache
	baseKey   string
}

// Result is the output of one recomputation pass: annotated tables plus
// the four headline counts.
type Result struct {
	PRs     []model.PR
	POs     []model.PO
	Metrics model.Metrics
}

// New creates an engine over a settings and category-lookup snapshot.
func New(settings model.Settings, lookup model.CategoryLookup) *Engine {
	return &Engine{
		settings:  settings,
		resolver:  classify.NewResolver(lookup),
		lifecycle: classify.NewLifecycle(settings),
		cache:     newResultCache(),
		baseKey:   configFingerprint(settings, lookup),
	}
}

// Recompute maps, annotates and counts both datasets. Absent or empty
// inputs degrade to zero counts and empty tables; there is no failure
// path. Identical inputs are served from the pass cache.
func (e *Engine) Recompute(prTable, poTable *ingest.Table, prMap, poMap model.FieldMapping) Result {
	key := inputFingerprint(e.baseKey, prTable, poTable, prMap, poMap)
	if result, ok := e.cache.get(key); ok {
		slog.Debug("Serving recomputation from cache")
		return result
	}

	prs, pos := e.Annotate(prTable, poTable, prMap, poMap)
	result := Result{
		PRs:     prs,
		POs:     pos,
		Metrics: Metrics(prs, pos),
	}
	e.cache.put(key, result)
	return result
}

// Annotate unifies both raw tables onto the canonical schema and attaches
// the derived category and lifecycle flags. The PO pass runs first so PR
// openness can consult the PR numbers referenced by POs.
func (e *Engine) Annotate(prTable, poTable *ingest.Table, prMap, poMap model.FieldMapping) ([]model.PR, []model.PO) {
	pos := mapper.UnifyPOs(poTable, poMap, e.settings)
	for i := range pos {
		pos[i].Category = e.resolver.Resolve(classify.CategoryInputs{Explicit: pos[i].RawCategory})
		pos[i].IsOpenDelivery = e.lifecycle.IsOpenDelivery(pos[i])
	}

	linked := classify.LinkedPRNumbers(pos)

	prs := mapper.UnifyPRs(prTable, prMap, e.settings)
	for i := range prs {
		prs[i].Category = e.resolver.Resolve(classify.CategoryInputs{
			Explicit:      prs[i].RawCategory,
			MaterialGroup: prs[i].MaterialGroup,
			CostCenter:    prs[i].CostCenter,
			ItemType:      prs[i].ItemType,
		})
		prs[i].IsOpen = e.lifecycle.IsOpenPR(prs[i], linked)
	}

	return prs, pos
}

// Metrics counts totals and open records over annotated tables. Safe on
// any subset: the filtered view reuses it unchanged.
func Metrics(prs []model.PR, pos []model.PO) model.Metrics {
	m := model.Metrics{TotalPRs: len(prs), TotalPOs: len(pos)}
	for _, pr := range prs {
		if pr.IsOpen {
			m.OpenPRs++
		}
	}
	for _, po := range pos {
		if po.IsOpenDelivery {
			m.OpenDeliveryPOs++
		}
	}
	return m
}

// Health reports unmapped required fields per dataset kind and the rows no
// resolution tier could categorize.
func Health(prMap, poMap model.FieldMapping, prs []model.PR, pos []model.PO) model.HealthReport {
	report := model.HealthReport{
		MissingPRFields: model.MissingRequiredFields(model.KindPR, prMap),
		MissingPOFields: model.MissingRequiredFields(model.KindPO, poMap),
	}
	for _, pr := range prs {
		if pr.Category == model.CategoryUnknown {
			report.UnknownCategoryPRs++
		}
	}
	for _, po := range pos {
		if po.Category == model.CategoryUnknown {
			report.UnknownCategoryPOs++
		}
	}
	return report
}
