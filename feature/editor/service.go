package editor

import (
	"context"
	"errors"
	"fmt"

	"table-editor/core/changeset"
	"table-editor/core/table"

	"go.uber.org/zap"
)

var (
	// ErrStale is returned when a submission was made on an outdated grid instance.
	ErrStale = errors.New("the editor was refreshed, reload it and try again")
	// ErrNoChanges is returned when a review finds nothing to write.
	ErrNoChanges = errors.New("no changes detected")
	// ErrNothingPending is returned when confirm or cancel is used outside the confirming state.
	ErrNothingPending = errors.New("there are no changes waiting for confirmation")
	// ErrNotLoaded is returned when the workspace has no snapshot to edit.
	ErrNotLoaded = errors.New("table data is not loaded")
)

// AnyInstance skips the grid instance check. Used by API clients that do not track it.
const AnyInstance = -1

// Service drives the review and confirm flow of each workspace.
type Service struct {
	cache    *table.Cache
	archiver Archiver
	store    *WorkspaceStore
	cfg      Config
	logger   *zap.Logger
}

// NewService creates a new editor service.
func NewService(cache *table.Cache, archiver Archiver, store *WorkspaceStore, cfg Config, logger *zap.Logger) *Service {
	if archiver == nil {
		archiver = NopArchiver{}
	}
	return &Service{
		cache:    cache,
		archiver: archiver,
		store:    store,
		cfg:      cfg,
		logger:   logger,
	}
}

// Config returns the editor configuration.
func (s *Service) Config() Config {
	return s.cfg
}

// Workspace returns the workspace for id, creating a fresh one when needed.
func (s *Service) Workspace(id string) *Workspace {
	return s.store.GetOrCreate(id)
}

func (s *Service) options() changeset.Options {
	return changeset.Options{
		TimestampColumns: s.cfg.TimestampColumns,
		PKGenerated:      s.cfg.PKGenerated,
	}
}

// Load reads the snapshot into a workspace that does not have one yet.
// The caller must hold the workspace lock.
func (s *Service) Load(ctx context.Context, ws *Workspace) error {
	if ws.Original != nil {
		return nil
	}
	return s.reload(ctx, ws)
}

func (s *Service) reload(ctx context.Context, ws *Workspace) error {
	snap, err := s.cache.Get(ctx, s.cfg.RowLimit)
	if err != nil {
		s.logger.Error("Failed to fetch table data",
			zap.String("table", s.cfg.Table),
			zap.String("workspace", ws.ID),
			zap.Error(err),
		)
		ws.SetFlash(FlashError, fmt.Sprintf("Error fetching data: %v", err))
		return fmt.Errorf("failed to fetch %s: %w", s.cfg.Table, err)
	}

	ws.Original = snap
	if snap.IsEmpty() {
		ws.SetFlash(FlashWarning, fmt.Sprintf("Table '%s' appears to be empty.", s.cfg.Table))
	}
	s.logger.Debug("Loaded table data",
		zap.String("table", snap.Table),
		zap.String("workspace", ws.ID),
		zap.Int("rows", snap.Len()),
	)
	return nil
}

func checkInstance(ws *Workspace, instance int) error {
	if instance != AnyInstance && instance != ws.InstanceID {
		return ErrStale
	}
	return nil
}

// Review extracts the change set of a grid submission and, when it is not
// empty, moves the workspace into the confirming state.
// The caller must hold the workspace lock.
func (s *Service) Review(ws *Workspace, changes changeset.EditorChanges, instance int) (*changeset.ChangeSet, error) {
	if err := checkInstance(ws, instance); err != nil {
		return nil, err
	}
	if ws.Original == nil {
		return nil, ErrNotLoaded
	}

	cs, err := changeset.Extract(ws.Original, changes, s.options())
	if err != nil {
		ws.SetFlash(FlashError, err.Error())
		return nil, err
	}

	if cs.IsEmpty() {
		ws.ShowConfirmation = false
		ws.Pending = nil
		ws.SetFlash(FlashWarning, "No changes detected.")
		return nil, ErrNoChanges
	}

	ws.Pending = cs
	ws.ShowConfirmation = true
	ws.SetFlash(FlashInfo, "Changes detected. Please review below.")

	counts := cs.Counts()
	s.logger.Info("Changes ready for confirmation",
		zap.String("workspace", ws.ID),
		zap.Int("added", counts.Added),
		zap.Int("edited", counts.Edited),
		zap.Int("deleted", counts.Deleted),
	)
	return cs, nil
}

// Confirm writes the pending change set, archives it and reloads the snapshot.
// Failed operations are reported in the result, not as an error.
// The caller must hold the workspace lock.
func (s *Service) Confirm(ctx context.Context, ws *Workspace, instance int) (*changeset.Result, error) {
	if err := checkInstance(ws, instance); err != nil {
		return nil, err
	}
	if !ws.ShowConfirmation || ws.Pending.IsEmpty() {
		return nil, ErrNothingPending
	}

	cs := ws.Pending
	opts := s.options()
	opts.Confirmed = true

	res := changeset.Apply(ctx, s.cache.Table(), cs, opts)
	ws.LastResult = &res

	fields := []zap.Field{
		zap.String("table", cs.Table),
		zap.String("workspace", ws.ID),
		zap.Int64("added", res.Added),
		zap.Int64("edited", res.Edited),
		zap.Int64("deleted", res.Deleted),
	}
	if res.OK() {
		s.logger.Info("Changes applied", fields...)
	} else {
		s.logger.Warn("Changes applied with errors", append(fields, zap.Strings("errors", res.Errors))...)
	}

	s.archive(ctx, ws, cs, res)

	s.cache.Invalidate()
	ws.reset()
	if err := s.reload(ctx, ws); err != nil {
		// The writes happened; the next render retries the load.
		ws.Original = nil
	}

	if res.OK() {
		ws.SetFlash(FlashSuccess, "Changes applied!")
	} else {
		ws.SetFlash(FlashError, fmt.Sprintf("Changes applied with %d error(s).", len(res.Errors)))
	}
	return &res, nil
}

func (s *Service) archive(ctx context.Context, ws *Workspace, cs *changeset.ChangeSet, res changeset.Result) {
	rec := NewRecord(ws.ID, cs, res)
	key, err := s.archiver.Archive(ctx, rec)
	if err != nil {
		s.logger.Error("Failed to archive change set", zap.String("workspace", ws.ID), zap.Error(err))
		return
	}
	if key != "" {
		s.logger.Info("Archived change set", zap.String("key", key))
	}
}

// Cancel drops the pending change set and reverts the grid.
// The caller must hold the workspace lock.
func (s *Service) Cancel(ws *Workspace, instance int) error {
	if err := checkInstance(ws, instance); err != nil {
		return err
	}
	if !ws.ShowConfirmation {
		return ErrNothingPending
	}
	ws.reset()
	ws.SetFlash(FlashInfo, "Changes Canceled. Editor reverted.")
	s.logger.Info("Changes cancelled", zap.String("workspace", ws.ID))
	return nil
}

// Records returns the current rows of the table, shared between sessions.
func (s *Service) Records(ctx context.Context) (*table.Snapshot, error) {
	return s.cache.Get(ctx, s.cfg.RowLimit)
}

// History lists the newest archived change sets of the table.
func (s *Service) History(ctx context.Context, limit int) ([]string, error) {
	return s.archiver.List(ctx, s.cfg.Table, limit)
}

// HistoryRecord loads one archived change set.
func (s *Service) HistoryRecord(ctx context.Context, key string) (*Record, error) {
	return s.archiver.Get(ctx, key)
}
