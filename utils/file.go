package utils

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
)

// 按模板在dir下生成唯一临时文件路径，模板需含一个%s占位
func TmpFile(dir, pattern string) string {
	return filepath.Join(dir, fmt.Sprintf(pattern, uuid.NewString()))
}
