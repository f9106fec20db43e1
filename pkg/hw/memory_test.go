package hw

import "testing"

func newByteMemInputs(g *Graph, addrWidth, dataWidth uint32) (clk, rst, raddr, wvalid, waddr, wdata, wstrb Signal) {
	clk = g.Clock("clk")
	rst = g.Reset("rst")
	raddr, _ = g.InputPort("raddr", addrWidth, false)
	wvalid, _ = g.InputPort("wvalid", 1, false)
	waddr, _ = g.InputPort("waddr", addrWidth, false)
	wdata, _ = g.InputPort("wdata", dataWidth, false)
	wstrb, _ = g.InputPort("wstrb", dataWidth/8, false)

	return
}

func Test_ByteMemory_ValidConfiguration(t *testing.T) {
	g := NewGraph()
	clk, rst, raddr, wvalid, waddr, wdata, wstrb := newByteMemInputs(g, 10, 32)

	mem, err := g.NewByteMemory(clk, rst, raddr, wvalid, waddr, wdata, wstrb, 1024, "mem")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mem.ReadData.Type.Width != 32 {
		t.Fatalf("expected read-data width 32, got %d", mem.ReadData.Type.Width)
	}
}

func Test_ByteMemory_RejectsBadStrobeWidth(t *testing.T) {
	g := NewGraph()
	clk, rst, raddr, wvalid, waddr, wdata, _ := newByteMemInputs(g, 10, 32)

	badStrobe, _ := g.InputPort("bad_strobe", 1, false)

	if _, err := g.NewByteMemory(clk, rst, raddr, wvalid, waddr, wdata, badStrobe, 1024, "mem"); err == nil {
		t.Fatalf("expected an error for a mismatched strobe width")
	}
}

func Test_ByteMemory_RejectsNonByteMultipleData(t *testing.T) {
	g := NewGraph()
	clk, rst, raddr, wvalid, waddr, _, _ := newByteMemInputs(g, 10, 32)

	badData, _ := g.InputPort("bad_data", 7, false)
	wstrb, _ := g.InputPort("wstrb2", 1, false)

	if _, err := g.NewByteMemory(clk, rst, raddr, wvalid, waddr, badData, wstrb, 1024, "mem"); err == nil {
		t.Fatalf("expected an error for a non-byte-multiple data width")
	}
}

func Test_ByteMemory_RejectsMismatchedAddrWidths(t *testing.T) {
	g := NewGraph()
	clk := g.Clock("clk")
	rst := g.Reset("rst")
	raddr, _ := g.InputPort("raddr", 10, false)
	wvalid, _ := g.InputPort("wvalid", 1, false)
	waddr, _ := g.InputPort("waddr", 12, false)
	wdata, _ := g.InputPort("wdata", 32, false)
	wstrb, _ := g.InputPort("wstrb", 4, false)

	if _, err := g.NewByteMemory(clk, rst, raddr, wvalid, waddr, wdata, wstrb, 1024, "mem"); err == nil {
		t.Fatalf("expected an error for mismatched read/write address widths")
	}
}
