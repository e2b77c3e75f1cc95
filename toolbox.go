package rasterlib

import (
	"strconv"
	"strings"
	"sync"

	"github.com/wgdzlh/rasterlib/log"

	godal "github.com/airbusgeo/godal"
	"github.com/lukeroth/gdal"
	"go.uber.org/zap"
)

var registerOnce sync.Once

type RasterToolbox struct {
	refMap map[int]gdal.SpatialReference
	rLock  sync.Mutex
	tmpDir string
	logTag string
}

// 初始化栅格提取工具箱，tmpDir为可选的临时目录路径（未提供的话为输出目录）
func NewRasterToolbox(tmpDir ...string) *RasterToolbox {
	registerOnce.Do(godal.RegisterAll)
	g := &RasterToolbox{
		refMap: map[int]gdal.SpatialReference{},
		logTag: "RasterToolbox:",
	}
	if len(tmpDir) > 0 && tmpDir[0] != "" {
		g.tmpDir = tmpDir[0]
	}
	return g
}

// 获取srid对应的坐标系（可复用，故无需回收）
func (g *RasterToolbox) getSridRef(srid int) (ref gdal.SpatialReference, err error) {
	g.rLock.Lock()
	defer g.rLock.Unlock()
	ref, ok := g.refMap[srid]
	if ok {
		return
	}
	ref = gdal.CreateSpatialReference("")
	if err = ref.FromEPSG(srid); err != nil {
		log.Error(g.logTag+"set ref srid failed", zap.Int("srid", srid), zap.Error(err))
		ref.Destroy()
		return
	}
	// 数据轴次序固定为传统GIS的(经度,纬度)，避免转换时出现次序倒置
	ref.SetAxisMappingStrategy(gdal.OAMS_TraditionalGisOrder)
	g.refMap[srid] = ref
	return
}

// 比对矢量图层与mastergrid模板的坐标系，不一致仅告警，不阻断任务
func (g *RasterToolbox) checkSridAligned(vecSrid int, gridWkt string) {
	ref, err := g.getSridRef(vecSrid)
	if err != nil {
		return
	}
	sp := gdal.CreateSpatialReference(gridWkt)
	defer sp.Destroy()
	if !ref.IsSame(sp) {
		gridSrid, _ := g.getSrid(sp)
		log.Warn(g.logTag+"vector srid differs from mastergrid",
			zap.Int("vector", vecSrid), zap.Int("grid", gridSrid))
	}
}

func (g *RasterToolbox) getSrid(sp gdal.SpatialReference) (srid int, err error) {
	wkt, _ := sp.ToWKT()
	rawId, ok := sp.AttrValue("AUTHORITY", 1)
	if !ok {
		if strings.Contains(wkt, "CGCS_2000") {
			rawId = "4490"
		} else {
			err = ErrVoidSrid
			return
		}
	}
	srid, err = strconv.Atoi(rawId)
	log.Info(g.logTag+"got srid from sp", zap.String("id", rawId))
	return
}
