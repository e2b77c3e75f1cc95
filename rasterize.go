package rasterlib

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wgdzlh/rasterlib/log"
	"github.com/wgdzlh/rasterlib/utils"

	godal "github.com/airbusgeo/godal"
	"github.com/lukeroth/gdal"
	"go.uber.org/zap"
)

// 填充栅格化任务默认值
func (t *RasterizeTask) normalize() (err error) {
	if t.NoData == 0 {
		t.NoData = RASTERIZE_NODATA
	}
	if t.DType == "" {
		t.DType = DT_Int32
	}
	_, err = t.DType.gdalType()
	return
}

func vectorDriverName(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gpkg":
		return GPKG_DRIVER_NAME
	case ".json", ".geojson":
		return GEOJSON_DRIVER_NAME
	default:
		return SHP_DRIVER_NAME
	}
}

// 校验矢量数据源：指定图层需存在，属性字段需存在且为数值型。
// 字段名直接找不到时，再按GBK编码名回退查找一次（老shp文件常见）
func (g *RasterToolbox) validateVector(task *RasterizeTask) (srid int, err error) {
	driver := gdal.OGRDriverByName(vectorDriverName(task.Vector))
	ds, ok := driver.Open(task.Vector, 0)
	if !ok {
		log.Error(g.logTag+"open vector failed", zap.String("vector", task.Vector))
		err = ErrVectorOpen
		return
	}
	defer ds.Destroy()
	var layer gdal.Layer
	if task.Layer != "" {
		found := false
		for i, n := 0, ds.LayerCount(); i < n; i++ {
			if l := ds.LayerByIndex(i); l.Name() == task.Layer {
				layer, found = l, true
				break
			}
		}
		if !found {
			log.Error(g.logTag+"layer not found", zap.String("vector", task.Vector), zap.String("layer", task.Layer))
			err = ErrLayerNotFound
			return
		}
	} else {
		layer = ds.LayerByIndex(0)
	}
	def := layer.Definition()
	idx := def.FieldIndex(task.Field)
	if idx < 0 {
		if gbkField, e := utils.Utf8StrToGbk(task.Field); e == nil {
			idx = def.FieldIndex(gbkField)
		}
	}
	if idx < 0 {
		err = fmt.Errorf(ErrFieldMissingTemplate, task.Field)
		return
	}
	switch def.FieldDefinition(idx).Type() {
	case gdal.FT_Integer, gdal.FT_Integer64, gdal.FT_Real:
	default:
		err = fmt.Errorf(ErrFieldTypeTemplate, task.Field)
		return
	}
	if s, e := g.getSrid(layer.SpatialReference()); e == nil {
		srid = s
		log.Info(g.logTag+"vector srid", zap.String("vector", task.Vector), zap.Int("srid", srid))
	}
	return
}

// 将矢量文件按mastergrid模板的范围、尺寸与网格栅格化，像素值取指定属性字段
func (g *RasterToolbox) RasteriseToMastergrid(task RasterizeTask) (err error) {
	if err = task.normalize(); err != nil {
		log.Error(g.logTag+"bad rasterize task", zap.String("dtype", string(task.DType)), zap.Error(err))
		return
	}
	vecSrid, err := g.validateVector(&task)
	if err != nil {
		return
	}
	ref, err := g.resolveProfile(task.Mastergrid, task.DType, task.NoData)
	if err != nil {
		return
	}
	if vecSrid > 0 && ref.profile.Projection != "" {
		g.checkSridAligned(vecSrid, ref.profile.Projection)
	}
	if err = os.MkdirAll(filepath.Dir(task.OutRaster), os.ModePerm); err != nil {
		return
	}
	otName, _ := task.DType.gdalName() // normalize已校验过类型
	sds, err := godal.Open(task.Vector, godal.VectorOnly())
	if err != nil {
		log.Error(g.logTag+"open vector for rasterize failed", zap.String("vector", task.Vector), zap.Error(err))
		err = ErrVectorOpen
		return
	}
	defer sds.Close()
	p := ref.profile
	span := p.bounds()
	switches := []string{
		"-a", task.Field,
		"-ot", otName,
		"-a_nodata", ftoa(task.NoData),
		"-te", ftoa(span[0]), ftoa(span[1]), ftoa(span[2]), ftoa(span[3]),
		"-ts", strconv.Itoa(p.Width), strconv.Itoa(p.Height),
		"-co", COMPRESS_OPTION, "-co", PREDICTOR_OPTION, "-co", "BIGTIFF=YES",
		"-co", TILED_OPTION, "-co", BLOCKX_OPTION, "-co", BLOCKY_OPTION,
	}
	if task.Layer != "" {
		switches = append(switches, "-l", task.Layer)
	}
	ods, err := sds.Rasterize(task.OutRaster, switches)
	if err != nil {
		log.Error(g.logTag+"rasterize failed", zap.String("out", task.OutRaster), zap.Error(err))
		err = ErrRasterizeFailed
		return
	}
	ods.Close()
	log.Info(g.logTag+"rasterize done", zap.String("out", task.OutRaster), zap.String("field", task.Field))
	return
}
