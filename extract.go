package rasterlib

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/wgdzlh/rasterlib/log"
	"github.com/wgdzlh/rasterlib/utils"

	gdal "github.com/airbusgeo/godal"
	"go.uber.org/zap"
)

// 填充任务默认值，并预先校验像素类型，避免无效类型进入I/O阶段
func (t *ExtractTask) normalize() (err error) {
	if t.NoData == 0 {
		t.NoData = DEFAULT_NODATA
	}
	if t.DType == "" {
		t.DType = DT_Float32
	}
	if t.Resampling == "" {
		t.Resampling = DEFAULT_RESAMPLING
	}
	if t.Guard == 0 {
		t.Guard = DEFAULT_GUARD
	}
	_, err = t.DType.gdalType()
	return
}

// 将全球栅格提取到掩膜栅格的范围和网格：先重采样到掩膜网格生成中间栅格，
// 再分块并发应用掩膜，最后统计输出波段。输出先写到同目录下的临时文件，
// 全部成功后才改名到最终路径，失败不会留下看似完整的输出
func (g *RasterToolbox) ExtractByRasterMask(task ExtractTask) (err error) {
	if err = task.normalize(); err != nil {
		log.Error(g.logTag+"bad extract task", zap.String("dtype", string(task.DType)), zap.Error(err))
		return
	}
	log.Info(g.logTag+"start extract", zap.String("glob", task.GlobRaster),
		zap.String("mask", task.MaskRaster), zap.String("out", task.OutRaster))
	ref, err := g.resolveProfile(task.MaskRaster, task.DType, task.NoData)
	if err != nil {
		return
	}
	outDir := filepath.Dir(task.OutRaster)
	if err = os.MkdirAll(outDir, os.ModePerm); err != nil {
		return
	}
	tmpDir := g.tmpDir
	if tmpDir == "" {
		tmpDir = outDir
	}
	var (
		tmpWarp = utils.TmpFile(tmpDir, TMP_WARP_TIF)
		tmpOut  = utils.TmpFile(outDir, TMP_OUT_TIF) // 和输出同目录，保证rename原子生效
	)
	defer func() {
		os.Remove(tmpWarp)
		if err != nil {
			os.Remove(tmpOut)
		}
	}()
	if err = g.resampleToGrid(task.GlobRaster, tmpWarp, ref, task.Resampling); err != nil {
		return
	}
	if err = g.maskToGrid(tmpWarp, task.MaskRaster, tmpOut, ref, task.Guard, task.Workers); err != nil {
		return
	}
	if err = g.computeBandStats(tmpOut); err != nil {
		return
	}
	if err = os.Rename(tmpOut, task.OutRaster); err != nil {
		return
	}
	log.Info(g.logTag+"extract done", zap.String("out", task.OutRaster))
	return
}

// 重采样阶段：将源栅格warp到参考网格的范围与尺寸，生成Float32中间栅格
func (g *RasterToolbox) resampleToGrid(srcTif, outTif string, ref gridRef, resampling string) (err error) {
	sds, err := gdal.Open(srcTif, gdal.RasterOnly())
	if err != nil {
		log.Error(g.logTag+"open glob raster failed", zap.String("tif", srcTif), zap.Error(err))
		err = ErrRasterOpen
		return
	}
	defer sds.Close()
	p := ref.profile
	span := p.bounds()
	switches := []string{
		"-ot", "Float32",
		"-te", ftoa(span[0]), ftoa(span[1]), ftoa(span[2]), ftoa(span[3]),
		"-ts", strconv.Itoa(p.Width), strconv.Itoa(p.Height),
		"-r", resampling,
		"-dstnodata", ftoa(p.NoData),
		"-co", COMPRESS_OPTION, "-co", PREDICTOR_OPTION, "-co", "BIGTIFF=YES",
		"-co", TILED_OPTION, "-co", BLOCKX_OPTION, "-co", BLOCKY_OPTION,
	}
	if ref.hasOrigNoData {
		switches = append(switches, "-srcnodata", ftoa(ref.origNoData))
	}
	ods, err := gdal.Warp(outTif, []*Dataset{sds}, switches)
	if err != nil {
		log.Error(g.logTag+"warp to grid failed", zap.String("out", outTif), zap.Error(err))
		err = ErrWarpFailed
		return
	}
	ods.Close()
	log.Info(g.logTag+"resampled to grid", zap.String("out", outTif), zap.String("method", resampling))
	return
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
