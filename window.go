package rasterlib

// 栅格像素空间中的一个矩形窗口
type Window struct {
	XOff  int
	YOff  int
	XSize int
	YSize int
}

func (w Window) slice() []int {
	return []int{w.XOff, w.YOff, w.XSize, w.YSize}
}

// 按块大小行优先划分整个栅格，边缘窗口裁剪到栅格边界。
// 各窗口互不重叠，并集恰好覆盖整个栅格
func blockWindows(width, height, blockX, blockY int) (wins []Window) {
	if width <= 0 || height <= 0 || blockX <= 0 || blockY <= 0 {
		return
	}
	nx := (width + blockX - 1) / blockX
	ny := (height + blockY - 1) / blockY
	wins = make([]Window, 0, nx*ny)
	for y := 0; y < height; y += blockY {
		h := blockY
		if y+h > height {
			h = height - y
		}
		for x := 0; x < width; x += blockX {
			w := blockX
			if x+w > width {
				w = width - x
			}
			wins = append(wins, Window{XOff: x, YOff: y, XSize: w, YSize: h})
		}
	}
	return
}
