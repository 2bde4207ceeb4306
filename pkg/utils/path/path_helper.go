package pathutil

import (
	"strings"
)

// JoinRemote 拼接媒体库中的文件夹路径,媒体库统一使用"/"分隔
// 与filepath.Join不同,这里不做任何清理,保持与远端folder字段逐字节一致
func JoinRemote(root string, parts ...string) string {
	return strings.Join(append([]string{root}, parts...), "/")
}

// Segment 返回路径按"/"切分后的第index段,不存在时返回空字符串
func Segment(p string, index int) string {
	if index < 0 {
		return ""
	}
	segments := strings.Split(p, "/")
	if index >= len(segments) {
		return ""
	}
	return segments[index]
}

// LastSegment 返回路径最后一段
func LastSegment(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
