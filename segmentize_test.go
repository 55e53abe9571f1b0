package qrcodegen

import "testing"

func TestMakeOptimalSegmentsEmpty(t *testing.T) {
	segs, err := MakeOptimalSegments("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segs) != 0 {
		t.Errorf("expected no segments for empty text, got %d", len(segs))
	}
}

func TestMakeOptimalSegmentsSingleMode(t *testing.T) {
	segs, err := MakeOptimalSegments("0123456789")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segs) != 1 || segs[0].Mode != Numeric {
		t.Errorf("expected a single Numeric segment, got %d segments", len(segs))
	}
}

func TestMakeOptimalSegmentsSplitsByMode(t *testing.T) {
	segs, err := MakeOptimalSegments("HELLO12345lowercase")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segs) < 2 {
		t.Fatalf("expected multiple segments for mixed-mode text, got %d", len(segs))
	}
	if segs[0].Mode != Alphanumeric {
		t.Errorf("first segment mode = %v, want Alphanumeric", segs[0].Mode)
	}
	last := segs[len(segs)-1]
	if last.Mode != Byte {
		t.Errorf("last segment mode = %v, want Byte", last.Mode)
	}
}

func TestMakeOptimalSegmentsSmoothsShortIslands(t *testing.T) {
	// A lone digit sandwiched between lowercase Byte-mode runs costs more
	// to break out into its own Numeric segment than to fold into Byte.
	segs, err := MakeOptimalSegments("abc1def")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("expected the short numeric island to fold into one Byte segment, got %d", len(segs))
	}
	if segs[0].Mode != Byte {
		t.Errorf("mode = %v, want Byte", segs[0].Mode)
	}
}

func TestMakeOptimalSegmentsKeepsLongIsland(t *testing.T) {
	segs, err := MakeOptimalSegments("abc123456def")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments (byte, numeric, byte), got %d", len(segs))
	}
	if segs[1].Mode != Numeric {
		t.Errorf("middle segment mode = %v, want Numeric", segs[1].Mode)
	}
}

func TestMakeOptimalSegmentsRoundTripsThroughEncode(t *testing.T) {
	segs, err := MakeOptimalSegments("Mixed123Text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := EncodeSegments(segs, Medium); err != nil {
		t.Fatalf("EncodeSegments: %v", err)
	}
}
