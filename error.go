package rasterlib

import "errors"

var (
	ErrRasterOpen       = errors.New("raster open err")
	ErrRasterCreate     = errors.New("raster create err")
	ErrVectorOpen       = errors.New("vector open err")
	ErrGridMismatch     = errors.New("raster grids mismatch")
	ErrTifReadFailed    = errors.New("tif read failed")
	ErrTifWriteFailed   = errors.New("tif write failed")
	ErrWarpFailed       = errors.New("gdal warp failed")
	ErrRasterizeFailed  = errors.New("gdal rasterize failed")
	ErrUnsupportedDType = errors.New("unsupported dtype")
	ErrLayerNotFound    = errors.New("layer not found in vector")
	ErrVoidSrid         = errors.New("vector with void srid")
)
