package rasterlib

import (
	gdal "github.com/airbusgeo/godal"
)

// 输出像素类型名，与mastergrid产品约定保持一致
type DType string

const (
	DT_Int16   DType = "int16"
	DT_UInt16  DType = "uint16"
	DT_Int32   DType = "int32"
	DT_UInt32  DType = "uint32"
	DT_Float32 DType = "float32"
	DT_Float64 DType = "float64"
	DT_Byte    DType = "byte"  // 有符号8位
	DT_UByte   DType = "ubyte" // 无符号8位
)

// 转为GDAL存储类型；两种8位类型都落在GDAL的Byte上
func (d DType) gdalType() (dt gdal.DataType, err error) {
	switch d {
	case DT_Int16:
		dt = gdal.Int16
	case DT_UInt16:
		dt = gdal.UInt16
	case DT_Int32:
		dt = gdal.Int32
	case DT_UInt32:
		dt = gdal.UInt32
	case DT_Float32:
		dt = gdal.Float32
	case DT_Float64:
		dt = gdal.Float64
	case DT_Byte, DT_UByte:
		dt = gdal.Byte
	default:
		err = ErrUnsupportedDType
	}
	return
}

// GDAL命令行开关（-ot）使用的类型名
func (d DType) gdalName() (name string, err error) {
	dt, err := d.gdalType()
	if err != nil {
		return
	}
	name = dt.String()
	return
}

// 创建GTiff时的类型附加选项，有符号8位需标记SIGNEDBYTE
func (d DType) pixelTypeOptions() []string {
	if d == DT_Byte {
		return []string{"PIXELTYPE=SIGNEDBYTE"}
	}
	return nil
}

// 将float64计算缓冲转为目标类型的存储缓冲，float转整型时向零截断；
// 有符号8位按补码位型存入Byte
func (d DType) castBuf(src []float64) (buf interface{}, err error) {
	switch d {
	case DT_Int16:
		b := make([]int16, len(src))
		for i, v := range src {
			b[i] = int16(v)
		}
		buf = b
	case DT_UInt16:
		b := make([]uint16, len(src))
		for i, v := range src {
			b[i] = uint16(v)
		}
		buf = b
	case DT_Int32:
		b := make([]int32, len(src))
		for i, v := range src {
			b[i] = int32(v)
		}
		buf = b
	case DT_UInt32:
		b := make([]uint32, len(src))
		for i, v := range src {
			b[i] = uint32(v)
		}
		buf = b
	case DT_Float32:
		b := make([]float32, len(src))
		for i, v := range src {
			b[i] = float32(v)
		}
		buf = b
	case DT_Float64:
		buf = src
	case DT_Byte:
		b := make([]uint8, len(src))
		for i, v := range src {
			b[i] = uint8(int8(v))
		}
		buf = b
	case DT_UByte:
		b := make([]uint8, len(src))
		for i, v := range src {
			b[i] = uint8(v)
		}
		buf = b
	default:
		err = ErrUnsupportedDType
	}
	return
}
