package rasterlib

import (
	"math"

	"github.com/wgdzlh/rasterlib/log"

	gdal "github.com/airbusgeo/godal"
	"go.uber.org/zap"
)

// 输出栅格的完整profile：空间网格来自掩膜栅格，类型、无效值与存储参数由任务指定
type Profile struct {
	Width      int
	Height     int
	Transform  [6]float64
	Projection string
	DType      DType
	NoData     float64
	BlockX     int
	BlockY     int
}

// 输出GTiff创建选项：512x512分块，LZW压缩加水平预测
func (p Profile) creationOptions() []string {
	opts := []string{
		TILED_OPTION,
		BLOCKX_OPTION,
		BLOCKY_OPTION,
		COMPRESS_OPTION,
		PREDICTOR_OPTION,
		BIGTIFF_OPTION,
	}
	return append(opts, p.DType.pixelTypeOptions()...)
}

// 左、下、右、上边界
// 两组仿射变换参数是否在容差内一致
func gtAligned(a, b [6]float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > GT_EPSILON {
			return false
		}
	}
	return true
}

func (p Profile) bounds() (span [4]float64) {
	gt := p.Transform
	span[0] = gt[0]
	span[3] = gt[3]
	span[2] = gt[0] + float64(p.Width)*gt[1]
	span[1] = gt[3] + float64(p.Height)*gt[5]
	if span[0] > span[2] {
		span[0], span[2] = span[2], span[0]
	}
	if span[1] > span[3] {
		span[1], span[3] = span[3], span[1]
	}
	return
}

// 解析后的参考网格：输出profile加掩膜栅格自身的原始无效值
type gridRef struct {
	profile       Profile
	origNoData    float64
	hasOrigNoData bool
}

// 读取掩膜栅格元数据，生成输出profile。空间网格逐项复制，仅覆盖类型、
// 无效值与存储参数；掩膜原始无效值单独记下，供后续替换规则使用
func (g *RasterToolbox) resolveProfile(mask string, dtype DType, noData float64) (ref gridRef, err error) {
	sds, err := gdal.Open(mask, gdal.RasterOnly())
	if err != nil {
		log.Error(g.logTag+"open mask raster failed", zap.String("mask", mask), zap.Error(err))
		err = ErrRasterOpen
		return
	}
	defer sds.Close()
	st := sds.Structure()
	gt, err := sds.GeoTransform()
	if err != nil {
		log.Error(g.logTag+"mask raster has no geotransform", zap.String("mask", mask), zap.Error(err))
		err = ErrRasterOpen
		return
	}
	bands := sds.Bands()
	if len(bands) == 0 {
		err = ErrRasterOpen
		return
	}
	ref.origNoData, ref.hasOrigNoData = bands[0].NoData()
	ref.profile = Profile{
		Width:      st.SizeX,
		Height:     st.SizeY,
		Transform:  gt,
		Projection: sds.Projection(),
		DType:      dtype,
		NoData:     noData,
		BlockX:     BLOCK_X,
		BlockY:     BLOCK_Y,
	}
	log.Info(g.logTag+"resolved output profile", zap.String("mask", mask),
		zap.Int("width", st.SizeX), zap.Int("height", st.SizeY),
		zap.Bool("hasNoData", ref.hasOrigNoData), zap.Float64("origNoData", ref.origNoData))
	return
}
