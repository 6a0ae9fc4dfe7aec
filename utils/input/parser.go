package input

import (
	"fmt"
	"strconv"
	"strings"
)

// lineReader 按行读取文档
// 说明：字段之间必须是单个空格，每行以\n结尾（最后一行可以省略\n）
type lineReader struct {
	doc   string
	lines []string
	pos   int // 下一个待读取行的下标
}

func newLineReader(doc, text string) *lineReader {
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return &lineReader{doc: doc, lines: lines}
}

// errorf 在当前行（最近一次读取的行）上构造错误
func (r *lineReader) errorf(context string, format string, args ...any) *ParseError {
	line := r.pos
	if line == 0 {
		line = 1
	}
	return &ParseError{
		Doc:     r.doc,
		Line:    line,
		Context: context,
		Msg:     fmt.Sprintf(format, args...),
	}
}

// next 读取下一行并按单个空格切分
func (r *lineReader) next(context string) ([]string, error) {
	if r.pos >= len(r.lines) {
		r.pos = len(r.lines) + 1
		return nil, r.errorf(context, "unexpected end of document")
	}
	line := r.lines[r.pos]
	r.pos++
	fields := strings.Split(line, " ")
	for _, f := range fields {
		if f == "" {
			return nil, r.errorf(context, "expected non-empty fields separated by a single space, got %q", line)
		}
	}
	return fields, nil
}

// nextN 读取下一行，并要求恰好有n个字段
func (r *lineReader) nextN(context string, n int) ([]string, error) {
	fields, err := r.next(context)
	if err != nil {
		return nil, err
	}
	if len(fields) != n {
		return nil, r.errorf(context, "expected %d fields, got %d", n, len(fields))
	}
	return fields, nil
}

// nextNumber 读取只包含一个数字的行
func (r *lineReader) nextNumber(context string) (int32, error) {
	fields, err := r.nextN(context, 1)
	if err != nil {
		return 0, err
	}
	return r.number(context, fields[0])
}

// number 解析非负十进制整数
func (r *lineReader) number(context string, field string) (int32, error) {
	for _, c := range field {
		if c < '0' || c > '9' {
			return 0, r.errorf(context, "expected a non-negative number, got %q", field)
		}
	}
	v, err := strconv.ParseInt(field, 10, 32)
	if err != nil {
		return 0, r.errorf(context, "number %q out of range", field)
	}
	return int32(v), nil
}

// capacity 预分配容量，不超过剩余行数
// 说明：数量来自文档本身，截断的文档不能导致按声明数量分配内存
func (r *lineReader) capacity(count int32) int {
	return max(0, min(int(count), len(r.lines)-r.pos))
}

// finish 确认文档已读取完毕
func (r *lineReader) finish(context string) error {
	if r.pos < len(r.lines) {
		r.pos++
		return r.errorf(context, "unexpected trailing content %q", r.lines[r.pos-1])
	}
	return nil
}

// ParseNetwork 解析路网文档
// 功能：解析首行、道路行和车辆路线行，任何格式错误均返回*ParseError
// 参数：doc-文档名（用于错误定位），text-文档内容
// 返回：完整的路网数据，出错时不返回部分结果
func ParseNetwork(doc, text string) (*Network, error) {
	r := newLineReader(doc, text)

	fields, err := r.nextN("header", 5)
	if err != nil {
		return nil, err
	}
	var nums [5]int32
	for i, f := range fields {
		if nums[i], err = r.number("header", f); err != nil {
			return nil, err
		}
	}
	n := &Network{
		Header: Header{
			Duration:      nums[0],
			Intersections: nums[1],
			Streets:       nums[2],
			Cars:          nums[3],
			Bonus:         nums[4],
		},
	}

	n.Streets = make([]Street, 0, r.capacity(n.Header.Streets))
	for i := int32(0); i < n.Header.Streets; i++ {
		fields, err := r.nextN("street", 4)
		if err != nil {
			return nil, err
		}
		start, err := r.number("street", fields[0])
		if err != nil {
			return nil, err
		}
		end, err := r.number("street", fields[1])
		if err != nil {
			return nil, err
		}
		length, err := r.number("street", fields[3])
		if err != nil {
			return nil, err
		}
		if start >= n.Header.Intersections || end >= n.Header.Intersections {
			return nil, r.errorf("street", "intersection out of range [0, %d): %d -> %d", n.Header.Intersections, start, end)
		}
		if length < 1 {
			return nil, r.errorf("street", "street %s must have a positive length", fields[2])
		}
		n.Streets = append(n.Streets, Street{
			Start:  start,
			End:    end,
			Name:   fields[2],
			Length: length,
		})
	}

	n.CarPaths = make([]CarPath, 0, r.capacity(n.Header.Cars))
	for i := int32(0); i < n.Header.Cars; i++ {
		fields, err := r.next("car path")
		if err != nil {
			return nil, err
		}
		count, err := r.number("car path", fields[0])
		if err != nil {
			return nil, err
		}
		if count < 1 {
			return nil, r.errorf("car path", "a car path needs at least one street")
		}
		if int(count) != len(fields)-1 {
			return nil, r.errorf("car path", "expected %d street names, got %d", count, len(fields)-1)
		}
		n.CarPaths = append(n.CarPaths, CarPath{Streets: fields[1:]})
	}

	if err := r.finish("car paths"); err != nil {
		return nil, err
	}
	return n, nil
}

// ParseSchedule 解析信号灯排程文档
// 功能：解析路口数量以及每个路口的(道路名, 绿灯时长)列表
// 参数：doc-文档名（用于错误定位），text-文档内容
// 返回：完整的排程数据，出错时不返回部分结果
func ParseSchedule(doc, text string) (*Schedule, error) {
	r := newLineReader(doc, text)

	count, err := r.nextNumber("schedules")
	if err != nil {
		return nil, err
	}
	s := &Schedule{
		Intersections: make([]IntersectionSchedule, 0, r.capacity(count)),
	}
	for i := int32(0); i < count; i++ {
		id, err := r.nextNumber("intersection_id")
		if err != nil {
			return nil, err
		}
		incoming, err := r.nextNumber("incoming_streets")
		if err != nil {
			return nil, err
		}
		block := IntersectionSchedule{
			IntersectionID: id,
			Lights:         make([]Light, 0, r.capacity(incoming)),
		}
		for j := int32(0); j < incoming; j++ {
			fields, err := r.nextN("light schedules", 2)
			if err != nil {
				return nil, err
			}
			duration, err := r.number("light schedules", fields[1])
			if err != nil {
				return nil, err
			}
			if duration < 1 {
				return nil, r.errorf("light schedules", "green duration of %s must be at least 1", fields[0])
			}
			block.Lights = append(block.Lights, Light{Street: fields[0], Duration: duration})
		}
		s.Intersections = append(s.Intersections, block)
	}

	if err := r.finish("intersection schedules"); err != nil {
		return nil, err
	}
	return s, nil
}
