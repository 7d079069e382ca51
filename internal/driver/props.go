package driver

// Props is the set of driver-specific properties carried by a tag.
type Props interface {
	Kind() Kind
	Clone() Props
}

// S7TCPTag addresses a value in a Siemens S7 controller over ISO-on-TCP.
type S7TCPTag struct {
	MemoryArea   S7MemoryArea
	BlockNumber  uint16
	Position     uint32
	BitOffset    uint8
	StringLength int16
}

func (*S7TCPTag) Kind() Kind { return KindS7TCP }

func (t *S7TCPTag) Clone() Props {
	c := *t
	return &c
}

var s7tcpFields = []Field{
	newField("MemoryArea", enumCodec(ParseS7MemoryArea),
		func(t *S7TCPTag) S7MemoryArea { return t.MemoryArea },
		func(t *S7TCPTag, v S7MemoryArea) { t.MemoryArea = v }),
	newField("BlockNumber", uint16Codec,
		func(t *S7TCPTag) uint16 { return t.BlockNumber },
		func(t *S7TCPTag, v uint16) { t.BlockNumber = v }),
	newField("Position", uint32Codec,
		func(t *S7TCPTag) uint32 { return t.Position },
		func(t *S7TCPTag, v uint32) { t.Position = v }),
	newField("BitOffset", uint8Codec,
		func(t *S7TCPTag) uint8 { return t.BitOffset },
		func(t *S7TCPTag, v uint8) { t.BitOffset = v }),
	newField("StringLength", int16Codec,
		func(t *S7TCPTag) int16 { return t.StringLength },
		func(t *S7TCPTag, v int16) { t.StringLength = v }),
}

// CODESYSTag addresses a symbol exported by a CODESYS runtime.
type CODESYSTag struct {
	SymbolName   string
	StringLength int16
}

func (*CODESYSTag) Kind() Kind { return KindCODESYS }

func (t *CODESYSTag) Clone() Props {
	c := *t
	return &c
}

var codesysFields = []Field{
	newField("SymbolName", stringCodec,
		func(t *CODESYSTag) string { return t.SymbolName },
		func(t *CODESYSTag, v string) { t.SymbolName = v }),
	newField("StringLength", int16Codec,
		func(t *CODESYSTag) int16 { return t.StringLength },
		func(t *CODESYSTag, v int16) { t.StringLength = v }),
}

// ModbusTag addresses a register or coil of a Modbus slave.
type ModbusTag struct {
	MemoryArea     ModbusMemoryArea
	Address        uint16
	BitOffset      uint8
	UnitIdentifier uint8
	SwapBytes      bool
	SwapWords      bool
}

func (*ModbusTag) Kind() Kind { return KindModbus }

func (t *ModbusTag) Clone() Props {
	c := *t
	return &c
}

var modbusFields = []Field{
	newField("MemoryArea", enumCodec(ParseModbusMemoryArea),
		func(t *ModbusTag) ModbusMemoryArea { return t.MemoryArea },
		func(t *ModbusTag, v ModbusMemoryArea) { t.MemoryArea = v }),
	newField("Address", uint16Codec,
		func(t *ModbusTag) uint16 { return t.Address },
		func(t *ModbusTag, v uint16) { t.Address = v }),
	newField("BitOffset", uint8Codec,
		func(t *ModbusTag) uint8 { return t.BitOffset },
		func(t *ModbusTag, v uint8) { t.BitOffset = v }),
	newField("UnitIdentifier", uint8Codec,
		func(t *ModbusTag) uint8 { return t.UnitIdentifier },
		func(t *ModbusTag, v uint8) { t.UnitIdentifier = v }),
	newField("SwapBytes", boolCodec,
		func(t *ModbusTag) bool { return t.SwapBytes },
		func(t *ModbusTag, v bool) { t.SwapBytes = v }),
	newField("SwapWords", boolCodec,
		func(t *ModbusTag) bool { return t.SwapWords },
		func(t *ModbusTag, v bool) { t.SwapWords = v }),
}

// RAEtherNetIPTag addresses a controller tag of a Rockwell Logix controller.
type RAEtherNetIPTag struct {
	SymbolName      string
	ArrayUpdateMode ArrayUpdateMode
	Deadband        float64
	ReadOnly        bool
	ElementCount    int32
}

func (*RAEtherNetIPTag) Kind() Kind { return KindRAEtherNetIP }

func (t *RAEtherNetIPTag) Clone() Props {
	c := *t
	return &c
}

var raEtherNetIPFields = []Field{
	newField("SymbolName", stringCodec,
		func(t *RAEtherNetIPTag) string { return t.SymbolName },
		func(t *RAEtherNetIPTag, v string) { t.SymbolName = v }),
	newField("ArrayUpdateMode", enumCodec(ParseArrayUpdateMode),
		func(t *RAEtherNetIPTag) ArrayUpdateMode { return t.ArrayUpdateMode },
		func(t *RAEtherNetIPTag, v ArrayUpdateMode) { t.ArrayUpdateMode = v }),
	newField("Deadband", float64Codec,
		func(t *RAEtherNetIPTag) float64 { return t.Deadband },
		func(t *RAEtherNetIPTag, v float64) { t.Deadband = v }),
	newField("ReadOnly", boolCodec,
		func(t *RAEtherNetIPTag) bool { return t.ReadOnly },
		func(t *RAEtherNetIPTag, v bool) { t.ReadOnly = v }),
	newField("ElementCount", int32Codec,
		func(t *RAEtherNetIPTag) int32 { return t.ElementCount },
		func(t *RAEtherNetIPTag, v int32) { t.ElementCount = v }),
}
