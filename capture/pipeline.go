package capture

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/wiresock/netwatch/decode"
	"github.com/wiresock/netwatch/emit"
	"github.com/wiresock/netwatch/frame"
	"github.com/wiresock/netwatch/stats"
)

// PipelineState tracks the supervisor's lifecycle. Transitions are
// monotonic: Running -> Stopping -> Stopped.
type PipelineState int

const (
	StateRunning PipelineState = iota
	StateStopping
	StateStopped
)

func (s PipelineState) String() string {
	switch s {
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "running"
	}
}

const (
	baseShutdownTimeout = 10 * time.Second
	perFrameDrainDelay  = 10 * time.Millisecond
	maxShutdownTimeout  = 5 * time.Minute
)

// PipelineSupervisor owns the capture handle, the bounded queue between the
// capture callback and the analyzer goroutine, and the persistence worker.
// It is the process's single point of control for starting and draining a
// capture session.
type PipelineSupervisor struct {
	handle   Handle
	queue    *Queue
	registry *stats.Registry
	emitter  *emit.Emitter
	persist  *stats.PersistenceWorker

	mu    sync.Mutex
	state PipelineState

	analyzerDone chan struct{}
	persistDone  chan struct{}
	persistStop  context.CancelFunc
}

// NewPipelineSupervisor wires a capture handle to an analyzer goroutine and
// a persistence worker. Run starts all three.
func NewPipelineSupervisor(handle Handle, registry *stats.Registry, emitter *emit.Emitter, persist *stats.PersistenceWorker) *PipelineSupervisor {
	return &PipelineSupervisor{
		handle:       handle,
		queue:        NewQueue(),
		registry:     registry,
		emitter:      emitter,
		persist:      persist,
		analyzerDone: make(chan struct{}),
		persistDone:  make(chan struct{}),
	}
}

// Run starts the persistence worker and analyzer goroutine, then blocks the
// calling goroutine inside the capture handle's dispatch loop. It returns
// when the handle's Loop returns, which normally happens only after
// Shutdown calls BreakLoop.
func (p *PipelineSupervisor) Run() error {
	persistCtx, cancel := context.WithCancel(context.Background())
	p.persistStop = cancel

	go func() {
		defer close(p.persistDone)
		p.persist.Run(persistCtx)
	}()

	go p.analyze()

	err := p.handle.Loop(p.onPacket)

	p.mu.Lock()
	if p.state == StateRunning {
		p.state = StateStopping
	}
	p.mu.Unlock()
	p.queue.Stop()

	return err
}

// onPacket is the capture callback. It implements the reserve-before-copy
// discipline: a full queue is detected before any bytes are copied, so a
// dropped frame costs nothing beyond a counter increment.
func (p *PipelineSupervisor) onPacket(hdr CaptureHeader, data []byte) {
	if !p.queue.TryReserve() {
		return
	}
	owned := make([]byte, len(data))
	copy(owned, data)
	p.queue.Push(&frame.Frame{
		Data:      owned,
		WireLen:   hdr.WireLen,
		Timestamp: hdr.Timestamp,
	})
}

// analyze pops frames off the queue, decodes them, emits their records, and
// bumps nothing itself — decode.DecodeFrame bumps the registry as it goes.
// It returns once Pop reports the queue is draining and empty.
func (p *PipelineSupervisor) analyze() {
	defer close(p.analyzerDone)
	for {
		f, ok := p.queue.Pop()
		if !ok {
			return
		}
		records, err := decode.DecodeFrame(f, p.registry)
		for _, r := range records {
			p.emitter.Record(r)
		}
		if err != nil {
			p.emitter.Linef(emit.LevelWarn, "decode: %v", err)
		}
	}
}

// Shutdown stops capture, drains whatever is already queued, and waits for
// the persistence worker to write a final snapshot. The drain deadline
// scales with queue depth at the moment shutdown begins, so a deep queue
// gets proportionally more time, capped so shutdown never hangs forever.
func (p *PipelineSupervisor) Shutdown() {
	p.mu.Lock()
	if p.state == StateStopped {
		p.mu.Unlock()
		return
	}
	p.state = StateStopping
	p.mu.Unlock()

	depth := p.queue.Depth()
	timeout := baseShutdownTimeout + time.Duration(depth)*perFrameDrainDelay
	if timeout > maxShutdownTimeout {
		timeout = maxShutdownTimeout
	}

	p.handle.BreakLoop()
	p.queue.Stop()

	select {
	case <-p.analyzerDone:
	case <-time.After(timeout):
		log.Printf("capture: shutdown timeout after %s with %d frames still queued", timeout, p.queue.Depth())
	}

	if p.persistStop != nil {
		p.persistStop()
	}
	select {
	case <-p.persistDone:
	case <-time.After(baseShutdownTimeout):
		log.Printf("capture: persistence worker did not stop within %s", baseShutdownTimeout)
	}

	p.handle.Close()

	p.mu.Lock()
	p.state = StateStopped
	p.mu.Unlock()
}

// State reports the supervisor's current lifecycle phase.
func (p *PipelineSupervisor) State() PipelineState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}
