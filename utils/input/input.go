package input

import (
	"fmt"
	"os"
)

// LoadNetwork 读取并解析路网文件
// 功能：读取路网文件，启用缓存时优先从缓存加载，否则解析后写入缓存
// 参数：path-路网文件路径，cacheDir-缓存目录（为空则禁用缓存）
// 返回：路网数据
// 算法说明：
// 1. 读取原始文件内容
// 2. 缓存检查：以内容的SHA-256为键查找缓存文件
// 3. 缓存未命中时解析文本，并将结果写入缓存
func LoadNetwork(path string, cacheDir string) (*Network, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read network %s: %w", path, err)
	}
	useCache := preCheckCache(cacheDir)
	var cacheFile string
	if useCache {
		cacheFile = cachePath(cacheDir, raw)
		if n := loadCache(cacheFile); n != nil {
			log.Infof("load network %s from cache %s", path, cacheFile)
			return n, nil
		}
	}
	log.Infof("parsing %s", path)
	n, err := ParseNetwork(path, string(raw))
	if err != nil {
		return nil, err
	}
	if useCache {
		saveCache(cacheFile, n)
	}
	return n, nil
}

// LoadSchedule 读取并解析信号灯排程文件
func LoadSchedule(path string) (*Schedule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule %s: %w", path, err)
	}
	log.Infof("parsing %s", path)
	return ParseSchedule(path, string(raw))
}
