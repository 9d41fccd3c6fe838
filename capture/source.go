package capture

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/gopacket/pcap"
)

// Interface names one capture-capable network adapter.
type Interface struct {
	Name        string
	Description string
}

// CaptureHeader is the per-frame metadata a capture source delivers
// alongside the frame bytes. The byte slice handed to a Handle.Loop
// callback is valid only for the callback's lifetime — the caller must
// copy before returning, per the capture-source contract spec.md fixes.
type CaptureHeader struct {
	CapturedLen int
	WireLen     int
	Timestamp   time.Time
}

// Handle is one opened live-capture session.
type Handle interface {
	// Loop dispatches captured frames to cb until BreakLoop is called or
	// the underlying source is closed. It returns promptly after
	// BreakLoop, per the capture-source contract.
	Loop(cb func(CaptureHeader, []byte)) error
	BreakLoop()
	Close()
}

//go:generate mockgen -source=source.go -destination=mock/source_mock.go -package=mock_capture

// Source enumerates interfaces and opens one for live capture. The
// production implementation, PcapSource, is a thin wrapper over
// github.com/google/gopacket/pcap — the raw-capture driver itself is an
// external collaborator, out of scope for this module's design per
// spec.md §1/§6.1.
type Source interface {
	Interfaces() ([]Interface, error)
	Open(name string, snaplen int32, timeout time.Duration) (Handle, error)
}

// PcapSource is the production Source backed by libpcap/npcap through
// gopacket/pcap.
type PcapSource struct{}

// NewPcapSource constructs the production capture source.
func NewPcapSource() *PcapSource { return &PcapSource{} }

func (PcapSource) Interfaces() ([]Interface, error) {
	devs, err := pcap.FindAllDevs()
	if err != nil {
		return nil, fmt.Errorf("enumerate capture interfaces: %w", err)
	}
	out := make([]Interface, 0, len(devs))
	for _, d := range devs {
		out = append(out, Interface{Name: d.Name, Description: d.Description})
	}
	return out, nil
}

func (PcapSource) Open(name string, snaplen int32, timeout time.Duration) (Handle, error) {
	handle, err := pcap.OpenLive(name, snaplen, true, timeout)
	if err != nil {
		return nil, fmt.Errorf("open %s for live capture: %w", name, err)
	}
	return &pcapHandle{handle: handle}, nil
}

type pcapHandle struct {
	handle    *pcap.Handle
	closeOnce sync.Once
}

func (h *pcapHandle) Loop(cb func(CaptureHeader, []byte)) error {
	for {
		data, ci, err := h.handle.ZeroCopyReadPacketData()
		if err == pcap.NextErrorTimeoutExpired {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		cb(CaptureHeader{
			CapturedLen: len(data),
			WireLen:     ci.Length,
			Timestamp:   ci.Timestamp,
		}, data)
	}
}

func (h *pcapHandle) BreakLoop() {
	// ZeroCopyReadPacketData has no separate breakloop primitive; closing
	// the handle is what unblocks a pending read, mirroring the capture
	// source contract's "dispatch call returns promptly" requirement.
	h.closeOnce.Do(h.handle.Close)
}

func (h *pcapHandle) Close() {
	h.closeOnce.Do(h.handle.Close)
}
