// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"context"
	"io"
	"iter"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/configdoc"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/skintemplate"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

type (
	// Registry is the set of vehicles skins can be built for. It is safe for
	// concurrent use; mutations are serialized and persisted before they
	// become visible.
	Registry struct {
		mu       sync.RWMutex
		base     map[types.VehicleID]*VehicleRecord
		override map[types.VehicleID]*VehicleRecord
		skipped  []SkippedVehicle

		store   *Store
		cache   *configdoc.Cache
		logger  *log.Logger
		catalog []byte
	}

	// Option configures a Registry.
	Option func(*Registry)

	// SkippedVehicle is a stored custom vehicle that could not be loaded.
	// It stays listed in the index until it is registered again or
	// unregistered.
	SkippedVehicle struct {
		ID          types.VehicleID
		DisplayName string
		Err         error
	}
)

// WithStore persists custom vehicles in s and loads them on construction.
// Without a store the registry only lives in memory.
func WithStore(s *Store) Option {
	return func(r *Registry) { r.store = s }
}

// WithLogger sets the logger used for debug and warning output.
func WithLogger(l *log.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithParseCache reuses parsed input files across registrations.
func WithParseCache(c *configdoc.Cache) Option {
	return func(r *Registry) { r.cache = c }
}

// WithCatalog replaces the built-in catalog with a TOML catalog document.
// An empty document yields an empty base layer.
func WithCatalog(data []byte) Option {
	return func(r *Registry) { r.catalog = data }
}

// New builds a registry from the built-in catalog and, with WithStore, the
// persisted custom vehicles. Custom vehicles that fail to load are skipped
// and reported by Skipped.
func New(opts ...Option) (*Registry, error) {
	r := &Registry{
		override: make(map[types.VehicleID]*VehicleRecord),
		logger:   log.New(io.Discard),
		catalog:  builtinCatalog,
	}
	for _, opt := range opts {
		opt(r)
	}

	base, err := loadCatalog(r.catalog)
	if err != nil {
		return nil, err
	}
	r.base = base

	if r.store != nil {
		if err := r.load(); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// load merges the stored custom vehicles over the base layer. The base layer
// is not modified; a custom ID equal to a built-in ID shadows it.
func (r *Registry) load() error {
	entries, err := r.store.ReadIndex()
	if err != nil {
		return err
	}
	for _, e := range entries {
		rec, err := r.loadVehicle(e)
		if err != nil {
			r.logger.Warn("skipping stored vehicle", "id", e.ID, "err", err)
			r.skipped = append(r.skipped, SkippedVehicle{ID: e.ID, DisplayName: e.DisplayName, Err: err})
			continue
		}
		if _, shadowed := r.base[e.ID]; shadowed {
			r.logger.Debug("custom vehicle shadows built-in", "id", e.ID)
		}
		r.override[e.ID] = rec
	}
	r.logger.Debug("registry loaded", "builtin", len(r.base), "custom", len(r.override), "skipped", len(r.skipped))
	return nil
}

func (r *Registry) loadVehicle(e IndexEntry) (*VehicleRecord, error) {
	if err := e.ID.Validate(); err != nil {
		return nil, err
	}
	mat, part, preview, err := r.store.ReadVehicle(e.ID, r.cache)
	if err != nil {
		return nil, err
	}
	tmpl, err := r.normalize(e.ID, mat, part)
	if err != nil {
		return nil, err
	}
	return &VehicleRecord{ID: e.ID, DisplayName: e.DisplayName, Template: tmpl, PreviewImagePath: preview}, nil
}

func (r *Registry) normalize(id types.VehicleID, mat, part *configdoc.Document) (*skintemplate.NormalizedTemplate, error) {
	sel, err := skintemplate.SelectCanonical(mat, part)
	if err != nil {
		return nil, err
	}
	if len(sel.DiscardedMaterials) > 0 || len(sel.DiscardedParts) > 0 {
		r.logger.Debug("discarded alternative skin entries",
			"id", id,
			"material", sel.Material.Key,
			"discarded_materials", sel.DiscardedMaterials,
			"part", sel.Part.Key,
			"discarded_parts", sel.DiscardedParts)
	}
	return skintemplate.Normalize(id, sel)
}

// lookup is the single resolution rule: override first, then base.
// Callers must hold r.mu.
func (r *Registry) lookup(id types.VehicleID) (*VehicleRecord, bool) {
	if rec, ok := r.override[id]; ok {
		return rec, true
	}
	rec, ok := r.base[id]
	return rec, ok
}

// Lookup returns a copy of the record registered under id.
func (r *Registry) Lookup(id types.VehicleID) (*VehicleRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.lookup(id)
	if !ok {
		return nil, false
	}
	return rec.clone(), true
}

// Register parses, normalizes, persists, and adds a custom vehicle.
func (r *Registry) Register(ctx context.Context, req RegisterRequest) (*VehicleRecord, error) {
	if err := req.ID.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.lookup(req.ID); ok {
		return nil, &DuplicateVehicleIDError{ID: req.ID, Builtin: existing.Builtin}
	}

	mat, err := r.cache.ParseFile(string(req.MaterialPath))
	if err != nil {
		return nil, err
	}
	part, err := r.cache.ParseFile(string(req.PartPath))
	if err != nil {
		return nil, err
	}
	tmpl, err := r.normalize(req.ID, mat, part)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		name = string(req.ID)
	}
	rec := &VehicleRecord{ID: req.ID, DisplayName: name, Template: tmpl}

	if r.store != nil {
		preview, err := r.store.WriteVehicle(rec, req.PreviewImagePath)
		if err != nil {
			_ = r.store.RemoveVehicle(req.ID)
			return nil, err
		}
		rec.PreviewImagePath = preview
		if err := r.store.WriteIndex(r.indexWith(rec)); err != nil {
			_ = r.store.RemoveVehicle(req.ID)
			return nil, err
		}
	} else {
		rec.PreviewImagePath = req.PreviewImagePath
	}

	r.override[req.ID] = rec
	r.dropSkipped(req.ID)
	r.logger.Info("vehicle registered", "id", rec.ID, "name", rec.DisplayName)
	return rec.clone(), nil
}

// Unregister removes a custom vehicle. If it shadowed a built-in vehicle, the
// built-in record becomes visible again.
func (r *Registry) Unregister(id types.VehicleID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.override[id]; !ok && !r.isSkipped(id) {
		if _, builtin := r.base[id]; builtin {
			return &BuiltinVehicleError{ID: id}
		}
		return &UnknownVehicleIDError{ID: id}
	}

	if r.store != nil {
		if err := r.store.WriteIndex(r.indexWithout(id)); err != nil {
			return err
		}
		// The index no longer lists the vehicle, so leftover files are
		// ignored on the next load.
		if err := r.store.RemoveVehicle(id); err != nil {
			r.logger.Warn("failed to remove vehicle files", "id", id, "err", err)
		}
	}

	delete(r.override, id)
	r.dropSkipped(id)
	r.logger.Info("vehicle unregistered", "id", id)
	return nil
}

func (r *Registry) indexWith(rec *VehicleRecord) []IndexEntry {
	return append(r.indexWithout(rec.ID), IndexEntry{ID: rec.ID, DisplayName: rec.DisplayName})
}

func (r *Registry) indexWithout(id types.VehicleID) []IndexEntry {
	entries := make([]IndexEntry, 0, len(r.override)+len(r.skipped)+1)
	for _, rec := range r.override {
		if rec.ID != id {
			entries = append(entries, IndexEntry{ID: rec.ID, DisplayName: rec.DisplayName})
		}
	}
	// Skipped vehicles keep their index entry so a transient load failure
	// does not drop them on the next write.
	for _, s := range r.skipped {
		if s.ID != id {
			entries = append(entries, IndexEntry{ID: s.ID, DisplayName: s.DisplayName})
		}
	}
	return entries
}

func (r *Registry) isSkipped(id types.VehicleID) bool {
	return slices.ContainsFunc(r.skipped, func(s SkippedVehicle) bool { return s.ID == id })
}

func (r *Registry) dropSkipped(id types.VehicleID) {
	r.skipped = slices.DeleteFunc(r.skipped, func(s SkippedVehicle) bool { return s.ID == id })
}

// Search yields the records whose ID or display name contains query,
// case-insensitively, in ID order. Each iteration takes a fresh snapshot, so
// the sequence can be restarted and the loop body may mutate the registry.
func (r *Registry) Search(query string) iter.Seq[*VehicleRecord] {
	return func(yield func(*VehicleRecord) bool) {
		for _, rec := range r.snapshot() {
			if rec.Matches(query) && !yield(rec.clone()) {
				return
			}
		}
	}
}

// All returns every visible record in ID order.
func (r *Registry) All() []*VehicleRecord {
	return slices.Collect(r.Search(""))
}

// Len returns the number of visible vehicles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := len(r.base)
	for id := range r.override {
		if _, shadows := r.base[id]; !shadows {
			n++
		}
	}
	return n
}

// Custom returns the custom records in ID order.
func (r *Registry) Custom() []*VehicleRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*VehicleRecord, 0, len(r.override))
	for _, id := range slices.Sorted(maps.Keys(r.override)) {
		out = append(out, r.override[id].clone())
	}
	return out
}

// Skipped returns the stored vehicles that failed to load.
func (r *Registry) Skipped() []SkippedVehicle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.skipped)
}

func (r *Registry) snapshot() []*VehicleRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make(map[types.VehicleID]struct{}, len(r.base)+len(r.override))
	for id := range r.base {
		ids[id] = struct{}{}
	}
	for id := range r.override {
		ids[id] = struct{}{}
	}
	out := make([]*VehicleRecord, 0, len(ids))
	for _, id := range slices.Sorted(maps.Keys(ids)) {
		rec, _ := r.lookup(id)
		out = append(out, rec)
	}
	return out
}

// Resolve is Lookup with an error for unknown IDs.
func (r *Registry) Resolve(id types.VehicleID) (*VehicleRecord, error) {
	rec, ok := r.Lookup(id)
	if !ok {
		return nil, &UnknownVehicleIDError{ID: id}
	}
	return rec, nil
}
