package rasterlib

import (
	gdal "github.com/airbusgeo/godal"
)

// godal数据集别名
type Dataset = gdal.Dataset

type Band = gdal.Band

// 全球栅格按掩膜提取任务
type ExtractTask struct {
	GlobRaster string  `json:"glob_raster"` // 待提取的全球栅格
	MaskRaster string  `json:"mask_raster"` // 掩膜栅格（mastergrid）
	OutRaster  string  `json:"out_raster"`  // 输出栅格
	NoData     float64 `json:"nodata"`      // 输出无效值，零值取默认-99999
	DType      DType   `json:"dtype"`       // 输出像素类型，空值取默认float32
	Resampling string  `json:"resampling"`  // 重采样方法，空值取默认bilinear
	Guard      float64 `json:"guard"`       // 极小值哨兵阈值，零值取默认-9999999999
	Workers    int     `json:"workers"`     // 并发worker数，零值取默认CPU数x5
}

// 矢量按mastergrid栅格化任务
type RasterizeTask struct {
	Vector     string  `json:"vector"`     // 待栅格化的矢量文件（shp或gpkg）
	Mastergrid string  `json:"mastergrid"` // 模板栅格
	OutRaster  string  `json:"out_raster"` // 输出栅格
	Field      string  `json:"field"`      // 栅格化取值的属性字段（需为数值型）
	DType      DType   `json:"dtype"`      // 输出像素类型，空值取默认int32
	NoData     float64 `json:"nodata"`     // 输出无效值，零值取默认9999
	Layer      string  `json:"layer"`      // gpkg多图层时指定图层名，可为空
}
