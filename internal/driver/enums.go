package driver

import "fmt"

// S7MemoryArea selects the S7 address space of a tag.
type S7MemoryArea int

const (
	S7DataBlock S7MemoryArea = iota
	S7Input
	S7Output
	S7Merker
	S7Timer
	S7Counter
)

var s7MemoryAreaNames = []string{"DataBlock", "Input", "Output", "Merker", "Timer", "Counter"}

func (a S7MemoryArea) String() string {
	return enumName(s7MemoryAreaNames, int(a), "S7MemoryArea")
}

func ParseS7MemoryArea(s string) (S7MemoryArea, error) {
	i, err := parseEnum(s7MemoryAreaNames, s, "S7MemoryArea")
	return S7MemoryArea(i), err
}

// ModbusMemoryArea selects the Modbus table of a tag.
type ModbusMemoryArea int

const (
	ModbusCoil ModbusMemoryArea = iota
	ModbusDiscreteInput
	ModbusHoldingRegister
	ModbusInputRegister
)

var modbusMemoryAreaNames = []string{"Coil", "DiscreteInput", "HoldingRegister", "InputRegister"}

func (a ModbusMemoryArea) String() string {
	return enumName(modbusMemoryAreaNames, int(a), "ModbusMemoryArea")
}

func ParseModbusMemoryArea(s string) (ModbusMemoryArea, error) {
	i, err := parseEnum(modbusMemoryAreaNames, s, "ModbusMemoryArea")
	return ModbusMemoryArea(i), err
}

// ArrayUpdateMode controls whether an array tag is read element-wise or as a whole.
type ArrayUpdateMode int

const (
	ArrayUpdateElement ArrayUpdateMode = iota
	ArrayUpdateFull
)

var arrayUpdateModeNames = []string{"Element", "Full"}

func (m ArrayUpdateMode) String() string {
	return enumName(arrayUpdateModeNames, int(m), "ArrayUpdateMode")
}

func ParseArrayUpdateMode(s string) (ArrayUpdateMode, error) {
	i, err := parseEnum(arrayUpdateModeNames, s, "ArrayUpdateMode")
	return ArrayUpdateMode(i), err
}

func enumName(names []string, i int, typeName string) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("%s(%d)", typeName, i)
	}

	return names[i]
}

func parseEnum(names []string, s, typeName string) (int, error) {
	for i, name := range names {
		if name == s {
			return i, nil
		}
	}

	return 0, fmt.Errorf("%q is not a valid %s", s, typeName)
}
