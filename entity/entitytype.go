package entity

import (
	"errors"
	"fmt"
)

// 整数ID，名称只在加载阶段用于交叉引用，模拟过程中只使用ID
type (
	StreetID       int32 // 道路ID，等于道路在路网文件中的序号
	CarID          int32 // 车辆ID，等于路线在路网文件中的序号
	IntersectionID int32 // 路口ID
	Tick           int32 // 离散时间步
)

var (
	ErrUnknownStreet     = errors.New("unknown street")
	ErrDuplicateStreet   = errors.New("duplicate street")
	ErrDuplicateLight    = errors.New("street scheduled more than once")
	ErrDuplicateJunction = errors.New("intersection scheduled more than once")
	ErrDisconnectedRoute = errors.New("disconnected route")
)

// UnknownStreet 构造引用了不存在道路的错误
func UnknownStreet(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownStreet, name)
}

// entity/street/street.go的依赖倒置
type IStreet interface {
	ID() StreetID          // 道路ID
	Name() string          // 道路名
	Start() IntersectionID // 起点路口
	End() IntersectionID   // 终点路口（信号灯所在路口）
	Length() int32         // 通行所需tick数

	String() string
}
