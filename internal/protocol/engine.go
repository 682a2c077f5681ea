// Package protocol implements the hierarchical reasoning protocol: a small
// state machine over a textual state and aim that routes every state change
// through a backup step and a content guard.
package protocol

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gzhole/dlprotocol/internal/backup"
	"github.com/gzhole/dlprotocol/internal/guardian"
	"github.com/gzhole/dlprotocol/internal/logger"
	"github.com/gzhole/dlprotocol/internal/reasoning"
)

const (
	InitialState = "Initial"
	BlockedState = "[DLP-BLOCKED]"
	DefaultAim   = "General Reasoning"
)

// StateInterface manages and exposes the current state.
type StateInterface interface {
	GetCurrentState() string
	UpdateState(newState string)
}

// AimInterface is the goal-directed layer.
type AimInterface interface {
	SetAim(goal string) string
	PursueAim(currentInput string) string
}

// DepthInterface applies core reasoning a given number of times.
type DepthInterface interface {
	ProcessAtDepth(input string, depthLevel int) string
}

// Backup persists a prior state. Implementations must not fail loudly.
type Backup interface {
	Persist(content string)
}

// Recorder receives one audit event per UpdateState call.
type Recorder interface {
	Record(event logger.AuditEvent) error
}

// Engine owns the protocol state. It is not safe for concurrent use; give
// each session its own Engine.
type Engine struct {
	currentState string
	aim          string

	core     reasoning.Processor
	guard    guardian.Guard
	backup   Backup
	recorder Recorder
	log      *zap.Logger
	now      func() time.Time
}

var (
	_ StateInterface = (*Engine)(nil)
	_ AimInterface   = (*Engine)(nil)
	_ DepthInterface = (*Engine)(nil)
)

// Option configures an Engine.
type Option func(*Engine)

// WithCore replaces the reasoning core.
func WithCore(p reasoning.Processor) Option {
	return func(e *Engine) { e.core = p }
}

// WithGuard replaces the content guard.
func WithGuard(g guardian.Guard) Option {
	return func(e *Engine) { e.guard = g }
}

// WithBackup replaces the backup store.
func WithBackup(b Backup) Option {
	return func(e *Engine) { e.backup = b }
}

// WithRecorder attaches an audit recorder.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithLogger sets the logger used for state notifications.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New builds an engine in the initial state. Without options it uses the
// default core, the heuristic guard and a backup store in backup.DefaultDir.
func New(opts ...Option) *Engine {
	e := &Engine{
		currentState: InitialState,
		aim:          DefaultAim,
		log:          zap.NewNop(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.core == nil {
		e.core = reasoning.NewCore()
	}
	if e.guard == nil {
		e.guard = guardian.NewHeuristicGuard()
	}
	if e.backup == nil {
		e.backup = backup.New(backup.DefaultDir)
	}
	return e
}

// GetCurrentState returns the current state verbatim.
func (e *Engine) GetCurrentState() string {
	return e.currentState
}

// Aim returns the goal currently being pursued.
func (e *Engine) Aim() string {
	return e.aim
}

// UpdateState is the only way the state changes. The previous state is
// backed up first, then newState is either adopted or replaced by
// BlockedState if the guard flags it.
func (e *Engine) UpdateState(newState string) {
	previous := e.currentState
	e.backup.Persist(previous)

	verdict := e.guard.Analyze(newState)
	decision := logger.DecisionAccept
	if verdict.Suspicious {
		decision = logger.DecisionBlock
		e.currentState = BlockedState
		e.log.Warn("DLP: potential meme-like content detected, state update blocked",
			zap.Strings("signals", verdict.SignalIDs()))
	} else {
		e.currentState = newState
		e.log.Info("State updated", zap.String("state", e.currentState))
	}

	e.record(logger.AuditEvent{
		Timestamp: e.now().UTC().Format(time.RFC3339Nano),
		Previous:  previous,
		Proposed:  newState,
		Decision:  decision,
		Signals:   verdict.SignalIDs(),
		State:     e.currentState,
	})
}

func (e *Engine) record(event logger.AuditEvent) {
	if e.recorder == nil {
		return
	}
	if err := e.recorder.Record(event); err != nil {
		e.log.Debug("audit record failed", zap.Error(err))
	}
}

// SetAim changes the aim and moves the state to "Aiming: <goal>". The aim is
// kept even if the guard blocks the resulting state.
func (e *Engine) SetAim(goal string) string {
	e.aim = goal
	e.UpdateState("Aiming: " + goal)
	return "Aim set to: " + goal
}

// PursueAim runs one core pass over currentInput and tags it with the aim.
func (e *Engine) PursueAim(currentInput string) string {
	coreResult := e.core.ProcessCoreReasoning(currentInput)
	return fmt.Sprintf("[Aim Pursuit] %s towards %s", coreResult, e.aim)
}

// ProcessAtDepth applies core reasoning depthLevel times. Negative depths
// behave like zero.
func (e *Engine) ProcessAtDepth(input string, depthLevel int) string {
	processed := reasoning.Apply(e.core, input, depthLevel)
	e.UpdateState(fmt.Sprintf("Depth %d processed", depthLevel))
	return fmt.Sprintf("[Depth %d] %s", depthLevel, processed)
}

// ExecuteProtocol sets the aim, processes initialInput at depth and pursues
// the aim with the bracketed depth output.
func (e *Engine) ExecuteProtocol(initialInput, goal string, depth int) string {
	e.SetAim(goal)
	depthOutput := e.ProcessAtDepth(initialInput, depth)
	return e.PursueAim(depthOutput)
}
