package input

// Header 路网文件首行
type Header struct {
	Duration      int32 // 模拟时长（tick）
	Intersections int32 // 路口数量
	Streets       int32 // 道路数量
	Cars          int32 // 车辆数量
	Bonus         int32 // 每辆按时到达车辆的固定奖励
}

// Street 有向道路，从Start路口驶向End路口，通行需要Length个tick
type Street struct {
	Start  int32
	End    int32
	Name   string
	Length int32
}

// CarPath 车辆行驶路线，第一条道路为车辆出发时所在（已位于末端排队）的道路
type CarPath struct {
	Streets []string
}

// Network 路网文件解析结果
type Network struct {
	Header   Header
	Streets  []Street
	CarPaths []CarPath
}

// Light 某条入口道路的绿灯时长
type Light struct {
	Street   string
	Duration int32
}

// IntersectionSchedule 一个路口的信号灯排程，Lights按循环顺序排列
type IntersectionSchedule struct {
	IntersectionID int32
	Lights         []Light
}

// Schedule 信号灯排程文件解析结果
type Schedule struct {
	Intersections []IntersectionSchedule
}
