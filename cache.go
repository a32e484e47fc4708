package vectortext

// codepointMap maps codepoints >= 128 to glyph array indices. It is an
// open-addressed table with linear probing, power-of-two capacity and a
// 0.7 load factor. Key 0 marks an empty slot, which is fine: codepoint 0
// is served by the ASCII fast path and never reaches the map.
//
// Values are indices, never pointers; the glyph array reallocates on
// growth.
type codepointMap struct {
	keys  []uint32
	vals  []uint32
	count int
}

// mapInitialCapacity is the starting table size; must be a power of two.
const mapInitialCapacity = 256

// mapMaxLoad is the numerator/denominator of the 0.7 load threshold.
const (
	mapMaxLoadNum = 7
	mapMaxLoadDen = 10
)

func newCodepointMap() codepointMap {
	return codepointMap{
		keys: make([]uint32, mapInitialCapacity),
		vals: make([]uint32, mapInitialCapacity),
	}
}

// scramble mixes the codepoint before probing: three rounds of
// xor-shift and multiply.
func scramble(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// lookup returns the value stored for cp.
func (m *codepointMap) lookup(cp uint32) (uint32, bool) {
	if len(m.keys) == 0 {
		return 0, false
	}
	mask := uint32(len(m.keys) - 1)
	for i := scramble(cp) & mask; ; i = (i + 1) & mask {
		switch m.keys[i] {
		case cp:
			return m.vals[i], true
		case 0:
			return 0, false
		}
	}
}

// insert stores cp -> val, growing first if the insertion would push the
// load factor past 0.7.
func (m *codepointMap) insert(cp, val uint32) {
	if len(m.keys) == 0 {
		*m = newCodepointMap()
	}
	if (m.count+1)*mapMaxLoadDen > len(m.keys)*mapMaxLoadNum {
		m.grow()
	}
	if m.place(cp, val) {
		m.count++
	}
}

// place writes cp -> val into the table and reports whether a new slot
// was used.
func (m *codepointMap) place(cp, val uint32) bool {
	mask := uint32(len(m.keys) - 1)
	for i := scramble(cp) & mask; ; i = (i + 1) & mask {
		switch m.keys[i] {
		case cp:
			m.vals[i] = val
			return false
		case 0:
			m.keys[i] = cp
			m.vals[i] = val
			return true
		}
	}
}

// grow doubles capacity and rehashes every live entry.
func (m *codepointMap) grow() {
	oldKeys, oldVals := m.keys, m.vals
	m.keys = make([]uint32, len(oldKeys)*2)
	m.vals = make([]uint32, len(oldVals)*2)
	for i, k := range oldKeys {
		if k != 0 {
			m.place(k, oldVals[i])
		}
	}
}

// len returns the number of live entries.
func (m *codepointMap) len() int { return m.count }
