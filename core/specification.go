package core

// Specification describes the machine identity written into the
// self-describing blob at address 0 on every ROM load.
type Specification struct {
	Name                  string
	ID                    uint32
	Microarchitecture     string
	MicroarchitectureName string
	DataWidth             uint8
	AddressWidth          uint8
	MicrocodeID           uint32
}

// DefaultSpecification is the identity every NewCPU machine reports.
var DefaultSpecification = Specification{
	Name:                  "Floofi(TM) Vixen(TM) Coyote",
	ID:                    0x00000002,
	Microarchitecture:     "vx2",
	MicroarchitectureName: "Kitsune",
	DataWidth:             32,
	AddressWidth:          32,
	MicrocodeID:           0x00000005,
}

func clampString(s string) string {
	if len(s) > 255 {
		return s[:255]
	}
	return s
}

func appendLengthPrefixed(buf []byte, s string) []byte {
	s = clampString(s)
	buf = append(buf, byte(len(s)))
	return append(buf, s...)
}

func appendU32(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// Bytes serializes the spec plus the runtime facts (available RAM,
// top of addressable memory) into the blob format: length-prefixed
// name, 32-bit id, length-prefixed microarch code, length-prefixed
// microarch name, data width byte, address width byte, 32-bit
// available RAM, 32-bit microcode id, 32-bit VM-end address.
func (s Specification) Bytes(availableRAM, vmEnd uint32) []byte {
	buf := make([]byte, 0, 64)
	buf = appendLengthPrefixed(buf, s.Name)
	buf = appendU32(buf, s.ID)
	buf = appendLengthPrefixed(buf, s.Microarchitecture)
	buf = appendLengthPrefixed(buf, s.MicroarchitectureName)
	buf = append(buf, s.DataWidth, s.AddressWidth)
	buf = appendU32(buf, availableRAM)
	buf = appendU32(buf, s.MicrocodeID)
	buf = appendU32(buf, vmEnd)
	return buf
}

// writeSpecBlob writes the specification into the low SpecBlobSize
// bytes of memory, zero-padding the remainder.
func writeSpecBlob(mem []byte, spec Specification) {
	blob := spec.Bytes(uint32(len(mem)), uint32(len(mem)))
	n := copy(mem[SpecBlobBase:SpecBlobBase+SpecBlobSize], blob)
	for i := SpecBlobBase + n; i < SpecBlobBase+SpecBlobSize; i++ {
		mem[i] = 0
	}
}
