package devices

import (
	"time"

	"github.com/floofi-org/vixen/core"
)

const rtcPortCount = 5
const rtcBaseOffset = 0x0C

// RTC is a 5-port real-time clock sitting just past the terminal's
// window: current wall-clock seconds/nanoseconds (ports 0/1, writable
// to rebase the clock), and an optional countdown timer (ports 2/3/4)
// that raises Rtc once its deadline passes.
type RTC struct {
	secs, nanos uint32

	hasTimer              bool
	timerSecs, timerNanos uint32

	lastTick time.Time
}

// NewRTC starts the clock at the host's current wall-clock time.
func NewRTC() *RTC {
	now := time.Now()
	return &RTC{
		secs:     uint32(now.Unix()),
		nanos:    uint32(now.Nanosecond()),
		lastTick: now,
	}
}

func (r *RTC) Name() string        { return "rtc" }
func (r *RTC) BaseAddress() uint32 { return core.DeviceBusBase + rtcBaseOffset }
func (r *RTC) PortCount() uint32   { return rtcPortCount }

func (r *RTC) advance(d time.Duration) {
	total := int64(r.nanos) + d.Nanoseconds()
	r.secs += uint32(total / 1e9)
	r.nanos = uint32(total % 1e9)
	if r.hasTimer {
		timerTotal := int64(r.timerNanos) - d.Nanoseconds()
		for timerTotal < 0 && r.timerSecs > 0 {
			r.timerSecs--
			timerTotal += 1e9
		}
		if timerTotal < 0 {
			timerTotal = 0
		}
		r.timerNanos = uint32(timerTotal)
	}
}

func (r *RTC) timerExpired() bool {
	return r.hasTimer && r.timerSecs == 0 && r.timerNanos == 0
}

// ReadPort implements core.BusDevice.
func (r *RTC) ReadPort(port uint32) (uint32, error) {
	switch port {
	case 0:
		return r.secs, nil
	case 1:
		return r.nanos, nil
	case 2:
		return r.timerSecs, nil
	case 3:
		return r.timerNanos, nil
	case 4:
		if r.hasTimer {
			return 1, nil
		}
		return 0, nil
	}
	return 0, core.PortOutOfRange
}

// WritePort implements core.BusDevice.
func (r *RTC) WritePort(port uint32, value uint32) error {
	switch port {
	case 0:
		r.secs = value
	case 1:
		r.nanos = value
	case 2:
		r.timerSecs = value
		r.hasTimer = true
	case 3:
		r.timerNanos = value
		r.hasTimer = true
	case 4:
		r.hasTimer = false
		r.timerSecs, r.timerNanos = 0, 0
	default:
		return core.PortOutOfRange
	}
	return nil
}

// Tick advances the clock by elapsed wall time and raises Rtc the
// first tick after the countdown timer reaches zero, then clears it
// so the interrupt only fires once.
func (r *RTC) Tick() error {
	now := time.Now()
	elapsed := now.Sub(r.lastTick)
	r.lastTick = now
	r.advance(elapsed)
	if r.timerExpired() {
		r.hasTimer = false
		return core.Rtc
	}
	return nil
}
