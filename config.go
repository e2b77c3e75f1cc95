package rasterlib

const (
	BLOCK_X = 512
	BLOCK_Y = 512

	// worker数 = CPU数 x 系数，掩膜为I/O密集型任务，放大以提升I/O重叠度
	WORKER_FACTOR = 5

	DEFAULT_NODATA     = -99999
	DEFAULT_GUARD      = -9999999999
	DEFAULT_RESAMPLING = "bilinear"

	RASTERIZE_NODATA = 9999

	// 仿射变换参数比对容差
	GT_EPSILON = 1e-6

	SHP_DRIVER_NAME     = "ESRI Shapefile"
	GPKG_DRIVER_NAME    = "GPKG"
	GEOJSON_DRIVER_NAME = "GeoJSON"

	COMPRESS_OPTION  = "COMPRESS=LZW"
	PREDICTOR_OPTION = "PREDICTOR=2"
	TILED_OPTION     = "TILED=YES"
	BLOCKX_OPTION    = "BLOCKXSIZE=512"
	BLOCKY_OPTION    = "BLOCKYSIZE=512"
	BIGTIFF_OPTION   = "BIGTIFF=IF_SAFER"

	ErrFieldMissingTemplate = `矢量文件中缺失【%s】字段`
	ErrFieldTypeTemplate    = `矢量文件中【%s】字段非数值型`

	TMP_WARP_TIF = "warp_%s.tif"
	TMP_OUT_TIF  = "out_%s.tif"
)
