package hw

import "github.com/linxisa/pycircuit-go/pkg/bitvec"

// Memory is a byte-addressable, synchronous-read/synchronous-write memory
// (spec.md §3). Reads are registered (the value returned reflects the
// memory's contents as of the start of the current cycle, i.e. one cycle
// after the address was presented); writes commit at the end of the cycle
// in which write-valid is asserted, gated per byte by the write-strobe.
//
// Resolved Open Question (spec.md §9): same-address read/write contention
// uses "old data" semantics — a read addressed at the same location a
// concurrent write targets observes the pre-write value, since the read
// port is registered from the *previous* cycle's address and memory state,
// while the write commits for cycles after. This matches the common
// one-read/one-write-port memory macro convention and is the simplest
// semantics a downstream simulator can pin down unambiguously.
type Memory struct {
	id         uint32
	Name       string
	DepthBytes uint64
	DataType   bitvec.BitVec
	Clock      Signal
	Reset      Signal
	ReadAddr   Signal
	WriteValid Signal
	WriteAddr  Signal
	WriteData  Signal
	WriteStrobe Signal
	ReadData   Signal
}

// NewByteMemory declares a byte-addressable memory. raddr/waddr address in
// bytes; wdata's width must be a multiple of 8, and wstrb must carry exactly
// wdata.Width/8 bits (one strobe bit per byte lane), per spec.md §3/§4.3.
func (g *Graph) NewByteMemory(
	clk, rst Signal,
	raddr, wvalid, waddr, wdata, wstrb Signal,
	depth uint64,
	name string,
) (*Memory, error) {
	sameGraph(raddr, wvalid)
	sameGraph(raddr, waddr)
	sameGraph(raddr, wdata)
	sameGraph(raddr, wstrb)

	if wvalid.Type.Width != 1 {
		return nil, widthError("byte_mem", "write-valid width must be 1", wvalid.Type.Width)
	}

	if wdata.Type.Width%8 != 0 {
		return nil, widthError("byte_mem", "write-data width must be a multiple of 8", wdata.Type.Width)
	}

	expectedStrobe := wdata.Type.Width / 8
	if wstrb.Type.Width != expectedStrobe {
		return nil, widthError("byte_mem", "write-strobe width must equal data width/8", wstrb.Type.Width, expectedStrobe)
	}

	if raddr.Type.Width != waddr.Type.Width {
		return nil, widthError("byte_mem", "read and write address widths must match", raddr.Type.Width, waddr.Type.Width)
	}

	id := uint32(len(g.memories))
	rID := g.intern(Node{Op: OpMemoryRead, Type: wdata.Type, Operands: []NodeID{raddr.id}, Attrs: Attrs{MemoryID: id}})
	readData := g.wrap(rID, wdata.Type)

	mem := &Memory{
		id:          id,
		Name:        name,
		DepthBytes:  depth,
		DataType:    wdata.Type,
		Clock:       clk,
		Reset:       rst,
		ReadAddr:    raddr,
		WriteValid:  wvalid,
		WriteAddr:   waddr,
		WriteData:   wdata,
		WriteStrobe: wstrb,
		ReadData:    readData,
	}

	g.memories = append(g.memories, mem)

	return mem, nil
}

// ID returns this memory's index within its owning graph's registry.
func (m *Memory) ID() uint32 { return m.id }
