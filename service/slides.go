package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// 投影片目录工具：只做页数核对，不做图片处理。

var slideImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
}

// ListSlideImages 列出目录下的投影片图片，按文件名排序
func ListSlideImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("读取投影片目录失败: %w", err)
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if slideImageExts[ext] {
			images = append(images, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(images)
	return images, nil
}

// CountSlideImages 统计目录下的投影片图片数量
func CountSlideImages(dir string) (int, error) {
	images, err := ListSlideImages(dir)
	if err != nil {
		return 0, err
	}
	return len(images), nil
}
