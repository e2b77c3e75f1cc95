package rasterlib

import (
	"testing"
)

const wkt4326 = `GEOGCS["WGS 84",DATUM["WGS_1984",SPHEROID["WGS 84",6378137,298.257223563,AUTHORITY["EPSG","7030"]],AUTHORITY["EPSG","6326"]],PRIMEM["Greenwich",0,AUTHORITY["EPSG","8901"]],UNIT["degree",0.0174532925199433,AUTHORITY["EPSG","9122"]],AUTHORITY["EPSG","4326"]]`

func TestGetSridRefCache(t *testing.T) {
	g := NewRasterToolbox()
	ref, err := g.getSridRef(4326)
	if err != nil {
		t.Fatal(err)
	}
	again, err := g.getSridRef(4326)
	if err != nil {
		t.Fatal(err)
	}
	if !ref.IsSame(again) {
		t.Fatal("cached ref should describe the same crs")
	}
	if len(g.refMap) != 1 {
		t.Fatalf("expected one cached ref, got %d", len(g.refMap))
	}
	if _, err = g.getSridRef(-1); err == nil {
		t.Fatal("expected error for invalid srid")
	}
	if len(g.refMap) != 1 {
		t.Fatal("invalid srid should not be cached")
	}
}
