// Package synccontroller implements the SyncController (spec.md §4.9,
// component C9): the per-side state machine that drives a session
// through the cold-sync, delta-sync, and reply cycle by calling the
// Differ, DiffAccumulator, Merger, and Updater in the order spec.md §4.9
// describes.
//
// The state machine is symmetric: nothing in Controller is tagged
// "Host" or "Peer". Whichever side calls RequestInitialBoard first plays
// the requesting role for that session; whichever side answers REQPCB/
// REQDIF plays the serving role. A single implementation covers both,
// matching spec.md §4.9's "the Host behaves symmetrically" note.
package synccontroller

import (
	"errors"
	"fmt"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/boardbridge/sync/accumulator"
	"github.com/boardbridge/sync/adapter"
	"github.com/boardbridge/sync/board"
	"github.com/boardbridge/sync/diff"
	"github.com/boardbridge/sync/merge"
	"github.com/boardbridge/sync/protocol"
	"github.com/boardbridge/sync/session"
	"github.com/boardbridge/sync/update"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrHashMismatch is returned (wrapped alongside session.ErrSessionClosed)
// when the local BoardModel's post-reply hash disagrees with the hash
// carried in a REP message (spec.md §7).
var ErrHashMismatch = errors.New("synccontroller: board hash mismatch after reply")

// errNoModel is logged, not returned, whenever a message requiring a
// BoardModel arrives before one has been established.
var errNoModel = errors.New("synccontroller: no board model established yet")

type versionPayload struct {
	Version string `json:"version"`
}

// Controller holds one side's BoardModel, its DiffAccumulator, and its
// place in the state machine, and implements session.Handler.
type Controller struct {
	mu    sync.Mutex
	state State

	sess    *session.Session
	scanner adapter.Scanner
	drawer  adapter.Drawer
	updater *update.Updater
	accum   *accumulator.Accumulator
	diag    *Diagnostics

	model   *board.Board
	tol     diff.Tolerances
	version string
	log     *zap.Logger
}

// New returns a Controller in StateConnected, ready to either request
// the initial board (RequestInitialBoard) or answer one (HandleReqPCB).
func New(sess *session.Session, scanner adapter.Scanner, drawer adapter.Drawer, tol diff.Tolerances, version string, log *zap.Logger) *Controller {
	return &Controller{
		sess:    sess,
		scanner: scanner,
		drawer:  drawer,
		updater: update.New(drawer, log),
		accum:   accumulator.New(),
		diag:    NewDiagnostics(),
		tol:     tol,
		version: version,
		log:     log,
		state:   StateConnected,
	}
}

// State returns the controller's current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Model returns the controller's current BoardModel, or nil before one
// has been established.
func (c *Controller) Model() *board.Board {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model
}

// Diagnostics returns the controller's running AdapterFailure log.
func (c *Controller) Diagnostics() *Diagnostics {
	return c.diag
}

// SendVersion emits the additive VER handshake ahead of the first
// REQPCB (SPEC_FULL.md §4).
func (c *Controller) SendVersion() error {
	payload, err := jsonAPI.Marshal(versionPayload{Version: c.version})
	if err != nil {
		return fmt.Errorf("synccontroller: encoding VER payload: %w", err)
	}
	return c.sess.Send(protocol.TypeVER, payload)
}

// RequestInitialBoard sends REQPCB and transitions Connected -> AwaitingPcb
// (spec.md §4.9).
func (c *Controller) RequestInitialBoard() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateConnected {
		return fmt.Errorf("synccontroller: RequestInitialBoard from state %s", c.state)
	}
	if err := c.sess.Send(protocol.TypeReqPCB, nil); err != nil {
		return err
	}
	c.state = StateAwaitingPcb
	return nil
}

// RequestResync re-requests the full board from HasModel, the named
// transition SPEC_FULL.md §4 adds for the original's reconnection/
// re-request idempotence behavior: a second REQPCB after a model already
// exists is a full resync, not a diff.
func (c *Controller) RequestResync() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateHasModel {
		return fmt.Errorf("synccontroller: RequestResync from state %s", c.state)
	}
	if err := c.sess.Send(protocol.TypeReqPCB, nil); err != nil {
		return err
	}
	c.state = StateAwaitingPcb
	return nil
}

// TriggerSync sends REQDIF and transitions HasModel -> InSyncCycle
// (spec.md §4.9, "user 'sync'").
func (c *Controller) TriggerSync() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateHasModel {
		return fmt.Errorf("synccontroller: TriggerSync from state %s", c.state)
	}
	if err := c.sess.Send(protocol.TypeReqDIF, nil); err != nil {
		return err
	}
	c.state = StateInSyncCycle
	return nil
}

// HandleReqPCB answers a REQPCB by scanning the full native document and
// replying with PCB (spec.md §4.9's Host-side prose: "on REQ_PCB ->
// scan-and-send"). If this side had no model yet, it now does.
func (c *Controller) HandleReqPCB(s *session.Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, err := c.scanner.Scan()
	if err != nil {
		c.log.Warn("synccontroller: scan failed answering REQPCB", zap.Error(err))
		return nil
	}
	c.model = b

	payload, err := jsonAPI.Marshal(b)
	if err != nil {
		return fmt.Errorf("synccontroller: encoding PCB payload: %w", err)
	}
	if err := s.Send(protocol.TypePCB, payload); err != nil {
		return err
	}

	if c.state == StateConnected {
		c.state = StateHasModel
	}
	return nil
}

// HandlePCB accepts the initial board, draws it, and transitions
// AwaitingPcb -> HasModel (spec.md §4.9).
func (c *Controller) HandlePCB(s *session.Session, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateAwaitingPcb {
		c.log.Warn("synccontroller: PCB received outside AwaitingPcb", zap.String("state", c.state.String()))
		return nil
	}

	b := board.NewBoard()
	if err := jsonAPI.Unmarshal(payload, b); err != nil {
		return fmt.Errorf("%w: decoding PCB payload: %v", protocol.ErrBadFrame, err)
	}

	if err := c.drawer.DrawInitial(b); err != nil {
		c.log.Warn("synccontroller: adapter failure drawing initial board", zap.Error(err))
	}

	c.model = b
	c.state = StateHasModel
	return nil
}

// HandleReqDIF answers a REQDIF with the accumulated pending Diff, then
// clears it (spec.md §4.9's Host-side prose: "on REQ_DIF ->
// accumulate-and-send current pending Diff, then clear").
func (c *Controller) HandleReqDIF(s *session.Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.model == nil {
		c.log.Warn("synccontroller: REQDIF received with no model established", zap.Error(errNoModel))
		return nil
	}

	scanResult, err := c.scanner.ScanDelta(c.model)
	if err != nil {
		c.log.Warn("synccontroller: differential scan failed answering REQDIF", zap.Error(err))
		return nil
	}
	fresh := diff.DiffBoard(c.model, scanResult, c.tol)
	c.diag.RecordAll(fresh.SkippedEntities)
	c.accum.Fold(fresh)

	payload, err := jsonAPI.Marshal(c.accum.Pending())
	if err != nil {
		return fmt.Errorf("synccontroller: encoding DIF payload: %w", err)
	}
	if err := s.Send(protocol.TypeDIF, payload); err != nil {
		return err
	}
	c.accum.Clear()
	return nil
}

// HandleDIF reacts to an incoming DIF per current state (spec.md §4.9):
//   - InSyncCycle (this side initiated via REQDIF and is seeing the
//     other side's answer): apply the incoming Diff to its own model so
//     both replicas agree on it, scan its own document, diff it against
//     the model, merge with the incoming Diff, and send the merged Diff
//     back as a new DIF — the InSyncCycle self-loop.
//   - HasModel (this side did not initiate; it is serving the other
//     side's cycle): apply the incoming Diff, perform identity repair,
//     and reply with REP carrying the repair Diff and the post-update
//     hash — the Host-side prose's "on DIF -> apply, identity-repair,
//     reply REP".
func (c *Controller) HandleDIF(s *session.Session, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.model == nil {
		c.log.Warn("synccontroller: DIF received with no model established", zap.Error(errNoModel))
		return nil
	}

	var incoming diff.Diff
	if err := jsonAPI.Unmarshal(payload, &incoming); err != nil {
		return fmt.Errorf("%w: decoding DIF payload: %v", protocol.ErrBadFrame, err)
	}

	switch c.state {
	case StateInSyncCycle:
		// Fold the other side's diff into our own model and native
		// document first, so both replicas already agree on its content
		// before we look for anything additionally changed locally.
		_, skipped := c.updater.Apply(&incoming, c.model)
		c.diag.RecordAll(skipped)

		scanResult, err := c.scanner.ScanDelta(c.model)
		if err != nil {
			c.log.Warn("synccontroller: differential scan failed mid-cycle", zap.Error(err))
			return nil
		}
		local := diff.DiffBoard(c.model, scanResult, c.tol)
		c.diag.RecordAll(local.SkippedEntities)

		merged := merge.Merge(&incoming, local)
		out, err := jsonAPI.Marshal(merged)
		if err != nil {
			return fmt.Errorf("synccontroller: encoding merged DIF payload: %w", err)
		}
		return s.Send(protocol.TypeDIF, out)

	case StateHasModel:
		repair, skipped := c.updater.Apply(&incoming, c.model)
		c.diag.RecordAll(skipped)

		// Open Question 3 (SPEC_FULL.md §6): hash the model strictly
		// after identity repair has been folded in.
		hash := c.model.HashBoard()

		repairJSON, err := jsonAPI.Marshal(repair)
		if err != nil {
			return fmt.Errorf("synccontroller: encoding REP repair diff: %w", err)
		}
		return s.Send(protocol.TypeREP, protocol.EncodeReply(repairJSON, hash))

	default:
		c.log.Warn("synccontroller: DIF received in unexpected state", zap.String("state", c.state.String()))
		return nil
	}
}

// HandleReply applies the Host's identity-repair Diff, checks the
// replicas' hashes for agreement, and transitions InSyncCycle ->
// HasModel (spec.md §4.9). A hash disagreement is fatal: it sends !DIS
// and transitions to Disconnected, discarding the pending diff
// (spec.md §7).
func (c *Controller) HandleReply(s *session.Session, diffJSON []byte, hash string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateInSyncCycle {
		c.log.Warn("synccontroller: REP received outside InSyncCycle", zap.String("state", c.state.String()))
		return nil
	}

	var repair diff.Diff
	if err := jsonAPI.Unmarshal(diffJSON, &repair); err != nil {
		return fmt.Errorf("%w: decoding REP diff: %v", protocol.ErrBadFrame, err)
	}

	_, skipped := c.updater.Apply(&repair, c.model)
	c.diag.RecordAll(skipped)
	c.accum.Clear()

	localHash := c.model.HashBoard()
	if localHash != hash {
		c.log.Error("synccontroller: hash mismatch after reply",
			zap.String("want", hash), zap.String("got", localHash))
		if sendErr := s.SendDisconnect(); sendErr != nil {
			c.log.Warn("synccontroller: failed to send !DIS after hash mismatch", zap.Error(sendErr))
		}
		c.state = StateDisconnected
		return fmt.Errorf("%w: %w", session.ErrSessionClosed, ErrHashMismatch)
	}

	c.state = StateHasModel
	return nil
}

// HandleVER logs the other side's advertised tool version. A malformed
// or absent VER is a non-fatal AdapterFailure-class warning
// (SPEC_FULL.md §4): spec.md's six core wire types are unaffected.
func (c *Controller) HandleVER(s *session.Session, payload []byte) error {
	var v versionPayload
	if err := jsonAPI.Unmarshal(payload, &v); err != nil {
		c.log.Warn("synccontroller: malformed VER payload, ignoring", zap.Error(err))
		return nil
	}
	c.log.Info("synccontroller: peer version", zap.String("version", v.Version))
	return nil
}
