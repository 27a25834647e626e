package simd

import (
	"os"
	"runtime"
	"strings"
)

// ISA represents the kernel family selected for the current CPU.
type ISA uint8

const (
	// Generic represents the scalar Go implementation.
	Generic ISA = iota
	// POPCNT represents x86-64 with the hardware population count instruction.
	POPCNT
	// NEON represents ARM64 ASIMD (CNT on vector registers).
	NEON
)

// String returns the string representation of an ISA.
func (i ISA) String() string {
	switch i {
	case Generic:
		return "generic"
	case POPCNT:
		return "popcnt"
	case NEON:
		return "neon"
	default:
		return "unknown"
	}
}

// ParseISA parses a string into an ISA value.
func ParseISA(s string) (ISA, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generic":
		return Generic, true
	case "popcnt":
		return POPCNT, true
	case "neon":
		return NEON, true
	default:
		return Generic, false
	}
}

// Package-level state, written once from init.
var (
	activeISA ISA

	hasPOPCNT bool // x86-64
	hasASIMD  bool // ARM64
)

// initCapabilities is called from the platform init after CPU features are detected.
func initCapabilities() {
	if override := os.Getenv("ROWMAP_SIMD"); override != "" {
		if isa, ok := ParseISA(override); ok && isISAAvailable(isa) {
			activeISA = isa
			installKernels(isa)
			return
		}
	}

	activeISA = selectBestISA()
	installKernels(activeISA)
}

func isISAAvailable(isa ISA) bool {
	switch isa {
	case Generic:
		return true
	case POPCNT:
		return hasPOPCNT
	case NEON:
		return hasASIMD
	default:
		return false
	}
}

func selectBestISA() ISA {
	switch runtime.GOARCH {
	case "amd64":
		if hasPOPCNT {
			return POPCNT
		}
	case "arm64":
		if hasASIMD {
			return NEON
		}
	}
	return Generic
}

// ActiveISA returns the currently active ISA.
func ActiveISA() ISA {
	return activeISA
}
