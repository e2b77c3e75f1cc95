package rasterlib

import (
	"errors"
	"testing"

	gdal "github.com/airbusgeo/godal"
)

func TestDTypeGdalType(t *testing.T) {
	cases := map[DType]gdal.DataType{
		DT_Int16:   gdal.Int16,
		DT_UInt16:  gdal.UInt16,
		DT_Int32:   gdal.Int32,
		DT_UInt32:  gdal.UInt32,
		DT_Float32: gdal.Float32,
		DT_Float64: gdal.Float64,
		DT_Byte:    gdal.Byte,
		DT_UByte:   gdal.Byte,
	}
	for d, want := range cases {
		got, err := d.gdalType()
		if err != nil {
			t.Fatal(d, err)
		}
		if got != want {
			t.Fatalf("%s: got %v, want %v", d, got, want)
		}
	}
	for _, d := range []DType{"", "int64", "complex64"} {
		if _, err := d.gdalType(); !errors.Is(err, ErrUnsupportedDType) {
			t.Fatalf("%q: expected ErrUnsupportedDType, got %v", d, err)
		}
	}
}

func TestDTypeCastTruncates(t *testing.T) {
	src := []float64{1.9, -1.9, 300.5, 0}
	buf, err := DT_Int16.castBuf(src)
	if err != nil {
		t.Fatal(err)
	}
	got := buf.([]int16)
	want := []int16{1, -1, 300, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("idx %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestDTypeCastSignedByte(t *testing.T) {
	buf, err := DT_Byte.castBuf([]float64{-1, 127, -128, 3})
	if err != nil {
		t.Fatal(err)
	}
	got := buf.([]uint8)
	want := []uint8{0xFF, 127, 0x80, 3} // 补码位型
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("idx %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestDTypeCastFloat(t *testing.T) {
	src := []float64{-99999, 1.5, 2.25}
	buf, err := DT_Float32.castBuf(src)
	if err != nil {
		t.Fatal(err)
	}
	got := buf.([]float32)
	for i, v := range src {
		if got[i] != float32(v) {
			t.Fatalf("idx %d: got %v, want %v", i, got[i], float32(v))
		}
	}
	buf, err = DT_Float64.castBuf(src)
	if err != nil {
		t.Fatal(err)
	}
	if g64 := buf.([]float64); g64[0] != -99999 || g64[2] != 2.25 {
		t.Fatalf("unexpected float64 buf: %v", g64)
	}
}

func TestDTypeGdalName(t *testing.T) {
	name, err := DT_Float32.gdalName()
	if err != nil || name != "Float32" {
		t.Fatal(name, err)
	}
	name, err = DT_UByte.gdalName()
	if err != nil || name != "Byte" {
		t.Fatal(name, err)
	}
}

func TestDTypePixelTypeOptions(t *testing.T) {
	if opts := DT_Byte.pixelTypeOptions(); len(opts) != 1 || opts[0] != "PIXELTYPE=SIGNEDBYTE" {
		t.Fatalf("unexpected options: %v", opts)
	}
	if opts := DT_UByte.pixelTypeOptions(); len(opts) != 0 {
		t.Fatalf("unexpected options: %v", opts)
	}
}
