package core

// BusError is the vocabulary a BusDevice's ReadPort/WritePort use to
// report port-level problems, distinct from the Interrupt a device's
// Tick raises. The IOController folds every BusError into Hardware at
// the bus boundary; user code only ever sees interrupts.
type BusError uint8

const (
	PortOutOfRange BusError = iota
	ReadOnly
	WriteOnly
	EmptyBuffer
	InternalSystem
	DeviceEvent
)

var busErrorNames = map[BusError]string{
	PortOutOfRange: "port out of range",
	ReadOnly:       "port is read-only",
	WriteOnly:      "port is write-only",
	EmptyBuffer:    "buffer empty",
	InternalSystem: "internal device failure",
	DeviceEvent:    "device event pending",
}

func (e BusError) Error() string {
	if name, ok := busErrorNames[e]; ok {
		return name
	}
	return "unknown bus error"
}

// translateBusError folds a device's raw port error onto the CPU's
// interrupt vocabulary. A port error that is already an Interrupt
// passes through unchanged.
func translateBusError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(Interrupt); ok {
		return err
	}
	if _, ok := err.(BusError); ok {
		return Hardware
	}
	return err
}
