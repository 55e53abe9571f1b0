package detect

import (
	"testing"

	"github.com/qrforge/qrcodec/qrcodegen"
	"github.com/qrforge/qrcodec/raster"
)

func paintSymbol(sym *qrcodegen.Symbol, moduleSize, border int) *raster.Bitmap {
	painter := raster.ModulePainter{
		ModuleSize: moduleSize,
		Border:     border,
		Black:      [3]uint8{0, 0, 0},
		White:      [3]uint8{255, 255, 255},
	}
	return painter.Paint(sym.Side(), func(i, j int) bool { return sym.Module(i, j) })
}

func TestDetectRoundTripSmallSymbol(t *testing.T) {
	sym, err := qrcodegen.NewBuilder("HELLO WORLD, THIS IS A SCANNER TEST").WithECL(qrcodegen.Quartile).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	bm := paintSymbol(sym, 6, 4)
	result, err := Detect(bm)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(result.Symbols) == 0 {
		t.Fatal("expected at least one detected symbol")
	}

	decoded, err := result.Symbols[0].Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if string(decoded.Payload) != "HELLO WORLD, THIS IS A SCANNER TEST" {
		t.Errorf("payload = %q, want original text", decoded.Payload)
	}
	if decoded.Version != sym.Metadata().Version {
		t.Errorf("version = %v, want %v", decoded.Version, sym.Metadata().Version)
	}
	if decoded.ECL != qrcodegen.Quartile {
		t.Errorf("ecl = %v, want Quartile", decoded.ECL)
	}
}

func TestDetectRoundTripHigherVersion(t *testing.T) {
	sym, err := qrcodegen.NewBuilder("https://example.com/a/reasonably/long/path?with=query&params=1234567890").
		WithECL(qrcodegen.Medium).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	bm := paintSymbol(sym, 4, 4)
	result, err := Detect(bm)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(result.Symbols) == 0 {
		t.Fatal("expected at least one detected symbol")
	}

	decoded, err := result.Symbols[0].Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if string(decoded.Payload) != "https://example.com/a/reasonably/long/path?with=query&params=1234567890" {
		t.Errorf("payload mismatch: %q", decoded.Payload)
	}
}

func TestDetectNoFinders(t *testing.T) {
	blank := raster.NewBitmap(50, 50)
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			blank.Set(x, y, 255, 255, 255)
		}
	}
	if _, err := Detect(blank); err != ErrNoFinders {
		t.Errorf("expected ErrNoFinders on a blank image, got %v", err)
	}
}
