package emu

// MemSize is the number of addressable 16-bit words.
const MemSize = 1 << 16

// Memory-mapped device register addresses.
const (
	MRKBSR uint16 = 0xFE00 // keyboard status
	MRKBDR uint16 = 0xFE02 // keyboard data
)

// kbsrReady is the high-bit-set value KBSR takes when a key is pending.
const kbsrReady uint16 = 0x8000

// Memory is the LC-3's flat 65,536-word address space. Reads are not
// pure array loads: a read of MRKBSR polls the console for a pending
// keystroke and updates both KBSR and KBDR as a side effect. All other
// reads, and all writes, are plain array accesses.
type Memory struct {
	cells   [MemSize]uint16
	console Console
}

// NewMemory returns a zero-filled Memory. console may be nil, in which
// case KBSR always reads as not-ready (no pending key).
func NewMemory(console Console) *Memory {
	return &Memory{console: console}
}

// Read reads the word at addr, honoring KBSR's memory-mapped polling
// side effect.
func (m *Memory) Read(addr uint16) uint16 {
	if addr == MRKBSR {
		m.pollKeyboard()
	}
	return m.cells[addr]
}

// Write stores value at addr. Writes are always plain array stores, even
// to device-register addresses.
func (m *Memory) Write(addr uint16, value uint16) {
	m.cells[addr] = value
}

func (m *Memory) pollKeyboard() {
	if m.console == nil {
		m.cells[MRKBSR] = 0
		return
	}

	b, ok, err := m.console.PollByte()
	if err != nil || !ok {
		m.cells[MRKBSR] = 0
		return
	}

	m.cells[MRKBSR] = kbsrReady
	m.cells[MRKBDR] = uint16(b)
}

// LoadProgram stores words into memory starting at origin, word i at
// origin+i (wrapping per the machine's 16-bit address space, exactly as
// any other memory write would).
func (m *Memory) LoadProgram(origin uint16, words []uint16) {
	addr := origin
	for _, w := range words {
		m.cells[addr] = w
		addr++
	}
}
