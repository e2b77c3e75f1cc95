package rasterlib

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/wgdzlh/rasterlib/log"

	gdal "github.com/airbusgeo/godal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// 无效值替换规则，固定按A、B、C顺序应用
type noDataRules struct {
	mskNoData     float64 // 掩膜栅格自身的无效值
	hasMskNoData  bool
	origNoData    float64 // 参考栅格的原始无效值（profile覆盖前记下的）
	hasOrigNoData bool
	guard         float64 // 极小值哨兵阈值，低于此值视为重采样产生的坏值
	target        float64 // 输出无效值
}

// 规则A：掩膜像素为掩膜无效值处，置为target
// 规则B：源像素等于原始无效值处，置为target
// 规则C：源像素低于guard阈值处，置为target
func (r noDataRules) apply(data, msk []float64) {
	if r.hasMskNoData {
		for i, v := range msk {
			if v == r.mskNoData {
				data[i] = r.target
			}
		}
	}
	if r.hasOrigNoData {
		for i, v := range data {
			if v == r.origNoData {
				data[i] = r.target
			}
		}
	}
	for i, v := range data {
		if v < r.guard {
			data[i] = r.target
		}
	}
}

// 分块并发地对重采样中间栅格应用掩膜，结果写入新建的输出栅格。
// 三个数据集句柄由全部worker共享，源和掩膜共用一把读锁，输出单独一把写锁，
// 保证单个句柄上不会并发I/O。任一窗口失败即停止调度并返回首个错误
func (g *RasterToolbox) maskToGrid(srcTif, maskTif, outTif string, ref gridRef, guard float64, workers int) (err error) {
	p := ref.profile
	dt, err := p.DType.gdalType()
	if err != nil {
		return
	}
	src, err := gdal.Open(srcTif, gdal.RasterOnly())
	if err != nil {
		log.Error(g.logTag+"open resampled tif failed", zap.String("tif", srcTif), zap.Error(err))
		err = ErrRasterOpen
		return
	}
	defer src.Close()
	mst, err := gdal.Open(maskTif, gdal.RasterOnly())
	if err != nil {
		log.Error(g.logTag+"open mask tif failed", zap.String("tif", maskTif), zap.Error(err))
		err = ErrRasterOpen
		return
	}
	defer mst.Close()
	srcSt := src.Structure()
	mstSt := mst.Structure()
	if srcSt.SizeX != p.Width || srcSt.SizeY != p.Height ||
		mstSt.SizeX != p.Width || mstSt.SizeY != p.Height {
		log.Error(g.logTag+"grids disagree", zap.Ints("src", []int{srcSt.SizeX, srcSt.SizeY}),
			zap.Ints("mask", []int{mstSt.SizeX, mstSt.SizeY}), zap.Ints("out", []int{p.Width, p.Height}))
		err = ErrGridMismatch
		return
	}
	srcGT, _ := src.GeoTransform()
	mstGT, _ := mst.GeoTransform()
	if !gtAligned(srcGT, p.Transform) || !gtAligned(mstGT, p.Transform) {
		log.Error(g.logTag+"transforms disagree", zap.Float64s("src", srcGT[:]),
			zap.Float64s("mask", mstGT[:]), zap.Float64s("out", p.Transform[:]))
		err = ErrGridMismatch
		return
	}
	dst, err := gdal.Create(gdal.GTiff, outTif, 1, dt, p.Width, p.Height,
		gdal.CreationOption(p.creationOptions()...))
	if err != nil {
		log.Error(g.logTag+"create out tif failed", zap.String("tif", outTif), zap.Error(err))
		err = ErrRasterCreate
		return
	}
	defer func() {
		if dst != nil {
			dst.Close()
		}
	}()
	if p.Projection != "" {
		if err = dst.SetProjection(p.Projection); err != nil {
			err = ErrRasterCreate
			return
		}
	}
	if err = dst.SetGeoTransform(p.Transform); err != nil {
		err = ErrRasterCreate
		return
	}
	srcBand := src.Bands()[0]
	mskBand := mst.Bands()[0]
	dstBand := dst.Bands()[0]
	if err = dstBand.SetNoData(p.NoData); err != nil {
		err = ErrRasterCreate
		return
	}
	mskNoData, hasMskNoData := mskBand.NoData()
	rules := noDataRules{
		mskNoData:     mskNoData,
		hasMskNoData:  hasMskNoData,
		origNoData:    ref.origNoData,
		hasOrigNoData: ref.hasOrigNoData,
		guard:         guard,
		target:        p.NoData,
	}
	wins := blockWindows(p.Width, p.Height, p.BlockX, p.BlockY)
	if workers <= 0 {
		workers = runtime.NumCPU() * WORKER_FACTOR
	}
	if workers > len(wins) {
		workers = len(wins)
	}
	log.Info(g.logTag+"start masking", zap.String("out", outTif),
		zap.Int("windows", len(wins)), zap.Int("workers", workers))
	var (
		readLock  sync.Mutex
		writeLock sync.Mutex
	)
	eg, ctx := errgroup.WithContext(context.Background())
	eg.SetLimit(workers)
	for _, win := range wins {
		if ctx.Err() != nil { // 已有窗口失败，停止调度
			break
		}
		win := win
		eg.Go(func() error {
			return g.maskWindow(win, srcBand, mskBand, dstBand, p.DType, rules, &readLock, &writeLock)
		})
	}
	if err = eg.Wait(); err != nil {
		log.Error(g.logTag+"masking failed", zap.Error(err))
		return
	}
	err = dst.Close() // 刷掉缓存块并落盘
	dst = nil
	if err != nil {
		log.Error(g.logTag+"close out tif failed", zap.Error(err))
		err = ErrTifWriteFailed
	}
	return
}

// 单窗口变换：读源块和掩膜块，应用替换规则，转目标类型后写入输出。
// 只有读写持锁，窗口内计算不加锁
func (g *RasterToolbox) maskWindow(win Window, srcBand, mskBand, dstBand Band, dtype DType,
	rules noDataRules, readLock, writeLock *sync.Mutex) (err error) {
	n := win.XSize * win.YSize
	data := make([]float64, n)
	msk := make([]float64, n)
	readLock.Lock()
	err = srcBand.Read(win.XOff, win.YOff, data, win.XSize, win.YSize)
	readLock.Unlock()
	if err != nil {
		log.Error(g.logTag+"read src window failed", zap.Ints("window", win.slice()), zap.Error(err))
		return fmt.Errorf("src window %v: %w", win, ErrTifReadFailed)
	}
	readLock.Lock()
	err = mskBand.Read(win.XOff, win.YOff, msk, win.XSize, win.YSize)
	readLock.Unlock()
	if err != nil {
		log.Error(g.logTag+"read mask window failed", zap.Ints("window", win.slice()), zap.Error(err))
		return fmt.Errorf("mask window %v: %w", win, ErrTifReadFailed)
	}
	rules.apply(data, msk)
	buf, err := dtype.castBuf(data)
	if err != nil {
		return
	}
	writeLock.Lock()
	err = dstBand.Write(win.XOff, win.YOff, buf, win.XSize, win.YSize)
	writeLock.Unlock()
	if err != nil {
		log.Error(g.logTag+"write out window failed", zap.Ints("window", win.slice()), zap.Error(err))
		return fmt.Errorf("out window %v: %w", win, ErrTifWriteFailed)
	}
	return nil
}
