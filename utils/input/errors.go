package input

import "fmt"

// ParseError 文档格式错误
// 功能：指出出错的文档、行号（从1开始）和语法位置
type ParseError struct {
	Doc     string // 文档名（通常为文件路径）
	Line    int    // 行号
	Context string // 语法位置，如header、street、car path
	Msg     string // 错误描述
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s: %s", e.Doc, e.Line, e.Context, e.Msg)
}
