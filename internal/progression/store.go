// Package progression owns the learner's durable progression state (the
// program join date and the set of completed modules) and answers every
// derived unlock query through the engine package. All fallible I/O lives
// at this boundary; the engine and catalog below it never fail.
package progression

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/klareapp/progression/internal/catalog"
	"github.com/klareapp/progression/internal/engine"
	"github.com/klareapp/progression/internal/remote"
)

// Local storage keys for the persisted progression record.
const (
	keyCompletedModules = "progression/completed_modules"
	keyJoinDate         = "progression/join_date"
)

// defaultRemoteTimeout bounds the remote fetch during Load so the caller
// is never blocked indefinitely by network loss.
const defaultRemoteTimeout = 5 * time.Second

// LocalStore is the on-device persistence collaborator. Failures are
// non-fatal; in-memory state stays authoritative for the session.
type LocalStore interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	DeleteItem(ctx context.Context, key string) error
}

// State is the store's storage-readiness state.
type State int

const (
	StateInitializing State = iota
	StateReady
	// StateError means local rehydration failed; the store is still
	// usable with empty defaults.
	StateError
)

// Store owns a single user's progression record.
type Store struct {
	userID        string
	local         LocalStore
	remote        remote.Client // nil = offline mode
	log           *zap.Logger
	now           func() time.Time
	remoteTimeout time.Duration

	mu              sync.Mutex
	state           State
	joinDate        time.Time // zero = not initialized
	completed       map[string]bool
	progressCache   map[string]float64
	joinDateDirty   bool // join date changed locally, not yet pushed
	lastErr         error

	syncWG sync.WaitGroup
}

// New creates a progression store for userID. remoteClient may be nil for
// a purely local (offline) store.
func New(userID string, local LocalStore, remoteClient remote.Client, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		userID:        userID,
		local:         local,
		remote:        remoteClient,
		log:           logger,
		now:           time.Now,
		remoteTimeout: defaultRemoteTimeout,
		state:         StateInitializing,
		completed:     make(map[string]bool),
		progressCache: make(map[string]float64),
	}
}

// SetRemoteTimeout overrides the bound on individual remote calls.
// Must be called before Load.
func (s *Store) SetRemoteTimeout(d time.Duration) {
	if d > 0 {
		s.remoteTimeout = d
	}
}

// SetClock overrides the time source, for tests. Must be called before
// any other method.
func (s *Store) SetClock(clock func() time.Time) {
	if clock != nil {
		s.now = clock
	}
}

// State returns the store's readiness state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the most recent background error (remote sync or persistence),
// kept for diagnostics. It never reflects catalog misses.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Load rehydrates the store: local state first, applied immediately, then a
// remote fetch bounded by the store's timeout. Remote failure or timeout
// keeps the already-applied local state and is never returned to the caller.
func (s *Store) Load(ctx context.Context) {
	s.loadLocal(ctx)

	if s.remote == nil {
		return
	}

	rctx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
	defer cancel()

	if err := s.reconcileRemote(rctx); err != nil {
		s.log.Warn("remote fetch failed, keeping local state", zap.Error(err))
		s.setErr(err)
		return
	}

	// Re-persist the merged record locally.
	if err := s.persistLocal(ctx); err != nil {
		s.log.Warn("persist merged state", zap.Error(err))
	}
}

// loadLocal reads the persisted record and applies it. A read failure moves
// the store to StateError but leaves it usable with empty defaults.
func (s *Store) loadLocal(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.local.GetItem(ctx, keyCompletedModules)
	if err != nil {
		s.log.Warn("read completed modules", zap.Error(err))
		s.state = StateError
		s.lastErr = err
		return
	}
	if ok {
		var ids []string
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			s.log.Warn("decode completed modules, starting empty", zap.Error(err))
		} else {
			for _, id := range ids {
				s.completed[id] = true
			}
		}
	}

	raw, ok, err = s.local.GetItem(ctx, keyJoinDate)
	if err != nil {
		s.log.Warn("read join date", zap.Error(err))
		s.state = StateError
		s.lastErr = err
		return
	}
	if ok {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			s.log.Warn("decode join date, leaving unset", zap.Error(err))
		} else {
			s.joinDate = t
		}
	}

	s.state = StateReady
}

// reconcileRemote merges the remote record into local state: join_date from
// the remote wins, completed modules are the union of both sides.
func (s *Store) reconcileRemote(ctx context.Context) error {
	joinDate, found, err := s.remote.JoinDate(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("fetch join date: %w", err)
	}

	rows, err := s.remote.CompletedModules(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("fetch completed modules: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if found {
		s.joinDate = joinDate
		s.joinDateDirty = false
	} else if !s.joinDate.IsZero() {
		// Local has a join date the remote lacks; push it on next save.
		s.joinDateDirty = true
	}

	changed := false
	for _, row := range rows {
		if !s.completed[row.ModuleID] {
			s.completed[row.ModuleID] = true
			changed = true
		}
	}
	if changed {
		s.progressCache = make(map[string]float64)
	}
	return nil
}

// CompleteModule marks a module as completed. It is idempotent: repeating
// the call for an already-completed module does nothing and triggers no
// remote write. The in-memory state is updated before any I/O, local
// persistence is best-effort, and the remote insert runs asynchronously
// with failures recorded in Err rather than returned.
func (s *Store) CompleteModule(ctx context.Context, moduleID string) error {
	if _, err := catalog.GetModule(moduleID); err != nil {
		return err
	}

	s.mu.Lock()
	if s.completed[moduleID] {
		s.mu.Unlock()
		return nil
	}
	s.completed[moduleID] = true
	s.progressCache = make(map[string]float64)
	completedAt := s.now()
	s.mu.Unlock()

	if err := s.persistLocal(ctx); err != nil {
		s.log.Warn("persist completion locally", zap.Error(err))
		s.setErr(err)
	}

	if s.remote == nil {
		return nil
	}

	s.syncWG.Add(1)
	go func() {
		defer s.syncWG.Done()
		rctx, cancel := context.WithTimeout(context.Background(), s.remoteTimeout)
		defer cancel()

		err := s.remote.InsertCompletedModule(rctx, remote.CompletedModule{
			UserID:      s.userID,
			ModuleID:    moduleID,
			CompletedAt: completedAt,
		})
		if err != nil {
			s.log.Warn("push completion to remote", zap.String("module", moduleID), zap.Error(err))
			s.setErr(err)
		}
	}()
	return nil
}

// ResetJoinDate restarts the program clock at now. The new date is persisted
// locally and flagged for remote sync on the next Save.
func (s *Store) ResetJoinDate(ctx context.Context) {
	s.mu.Lock()
	s.joinDate = s.now()
	s.joinDateDirty = true
	s.progressCache = make(map[string]float64)
	s.mu.Unlock()

	if err := s.persistLocal(ctx); err != nil {
		s.log.Warn("persist join date", zap.Error(err))
		s.setErr(err)
	}
}

// Save persists the current state locally and pushes to the remote any
// completed modules it does not already have (diff-based, append-only)
// plus a dirty join date. The returned error is also kept in Err.
func (s *Store) Save(ctx context.Context) error {
	if err := s.persistLocal(ctx); err != nil {
		s.setErr(err)
		return err
	}
	if s.remote == nil {
		return nil
	}

	rows, err := s.remote.CompletedModules(ctx, s.userID)
	if err != nil {
		err = fmt.Errorf("fetch remote completions: %w", err)
		s.setErr(err)
		return err
	}
	remoteSet := make(map[string]bool, len(rows))
	for _, row := range rows {
		remoteSet[row.ModuleID] = true
	}

	s.mu.Lock()
	var missing []string
	for id := range s.completed {
		if !remoteSet[id] {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	joinDate := s.joinDate
	joinDirty := s.joinDateDirty
	now := s.now()
	s.mu.Unlock()

	for _, id := range missing {
		err := s.remote.InsertCompletedModule(ctx, remote.CompletedModule{
			UserID:      s.userID,
			ModuleID:    id,
			CompletedAt: now,
		})
		if err != nil {
			err = fmt.Errorf("push completion %q: %w", id, err)
			s.setErr(err)
			return err
		}
	}

	if joinDirty && !joinDate.IsZero() {
		if err := s.remote.UpdateJoinDate(ctx, s.userID, joinDate); err != nil {
			err = fmt.Errorf("push join date: %w", err)
			s.setErr(err)
			return err
		}
		s.mu.Lock()
		s.joinDateDirty = false
		s.mu.Unlock()
	}
	return nil
}

// Reset clears all progression state and the local record, returning the
// store to an empty, ready state. Used on sign-out and account deletion;
// remote rows are removed by the backend, not from here.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.joinDate = time.Time{}
	s.completed = make(map[string]bool)
	s.progressCache = make(map[string]float64)
	s.joinDateDirty = false
	s.lastErr = nil
	s.state = StateReady
	s.mu.Unlock()

	if err := s.local.DeleteItem(ctx, keyCompletedModules); err != nil {
		return fmt.Errorf("clear completed modules: %w", err)
	}
	if err := s.local.DeleteItem(ctx, keyJoinDate); err != nil {
		return fmt.Errorf("clear join date: %w", err)
	}
	return nil
}

// WaitForSync blocks until all in-flight asynchronous remote writes have
// settled. Callers that exit right after CompleteModule should wait first.
func (s *Store) WaitForSync() {
	s.syncWG.Wait()
}

// persistLocal writes the current record to local storage.
func (s *Store) persistLocal(ctx context.Context) error {
	s.mu.Lock()
	ids := s.completedIDsLocked()
	joinDate := s.joinDate
	s.mu.Unlock()

	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode completed modules: %w", err)
	}
	if err := s.local.SetItem(ctx, keyCompletedModules, string(raw)); err != nil {
		return err
	}
	if !joinDate.IsZero() {
		if err := s.local.SetItem(ctx, keyJoinDate, joinDate.UTC().Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) completedIDsLocked() []string {
	ids := make([]string, 0, len(s.completed))
	for id := range s.completed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Store) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

// --- Derived queries -------------------------------------------------------

// JoinDate returns the program join date; ok is false before initialization.
func (s *Store) JoinDate() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.joinDate, !s.joinDate.IsZero()
}

// CompletedModules returns the completed module IDs, sorted.
func (s *Store) CompletedModules() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completedIDsLocked()
}

// IsModuleCompleted reports whether the module has been completed.
func (s *Store) IsModuleCompleted(moduleID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed[moduleID]
}

// DaysInProgram returns whole days since the join date, 0 when unset.
func (s *Store) DaysInProgram() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.ElapsedDays(s.joinDate, s.now())
}

// CurrentStage returns the most advanced active stage.
func (s *Store) CurrentStage() (catalog.Stage, bool) {
	days, completed := s.snapshot()
	return engine.CurrentStage(days, completed)
}

// NextStage returns the stage following the current one.
func (s *Store) NextStage() (catalog.Stage, bool) {
	days, completed := s.snapshot()
	return engine.NextStage(days, completed)
}

// AvailableModules returns all currently unlocked module IDs.
func (s *Store) AvailableModules() []string {
	days, completed := s.snapshot()
	return engine.AvailableModules(days, completed)
}

// IsModuleAvailable reports whether a module is currently unlocked.
func (s *Store) IsModuleAvailable(moduleID string) bool {
	days, completed := s.snapshot()
	return engine.IsModuleAvailable(moduleID, days, completed)
}

// ModuleUnlockDate returns the earliest unlock date for a module.
// ok is false when the join date is unset or the module is not stage-gated.
func (s *Store) ModuleUnlockDate(moduleID string) (time.Time, bool) {
	joinDate, ok := s.JoinDate()
	if !ok {
		return time.Time{}, false
	}
	return engine.ModuleUnlockDate(moduleID, joinDate)
}

// DaysUntilUnlock returns the countdown for a module, with ok=false for
// modules no stage gates (distinct from an answer of 0).
func (s *Store) DaysUntilUnlock(moduleID string) (int, bool) {
	joinDate, ok := s.JoinDate()
	if !ok {
		return 0, false
	}
	return engine.DaysUntilUnlock(moduleID, joinDate, s.now())
}

// ModuleProgress returns the completed fraction of a phase, memoized on the
// phase and the completed-module snapshot. Any completion invalidates the
// whole cache.
func (s *Store) ModuleProgress(phase catalog.Phase) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := string(phase) + "|" + strings.Join(s.completedIDsLocked(), ",")
	if v, ok := s.progressCache[key]; ok {
		return v
	}
	v := engine.PhaseProgress(phase, s.completed)
	s.progressCache[key] = v
	return v
}

// snapshot copies the inputs the engine needs under the lock.
func (s *Store) snapshot() (int, map[string]bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	days := engine.ElapsedDays(s.joinDate, s.now())
	completed := make(map[string]bool, len(s.completed))
	for id := range s.completed {
		completed[id] = true
	}
	return days, completed
}
