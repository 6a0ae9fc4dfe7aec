package config

// SingleStreetRoute 只有一条道路的行程的处理策略
type SingleStreetRoute string

const (
	// SingleStreetFinish 车辆已位于唯一（也是最后）一条道路的末端，在第0步视为完成
	SingleStreetFinish SingleStreetRoute = "finish"
	// SingleStreetStall 车辆排队并在首个绿灯被放行，但永远不会被标记为完成（得分为0）
	SingleStreetStall SingleStreetRoute = "stall"
)

// Control 评分过程控制配置
// 功能：定义模拟评分的核心控制参数
// 说明：包含单道路行程策略、路线连通性检查、模拟时长覆盖等
type Control struct {
	SingleStreetRoute SingleStreetRoute `yaml:"single_street_route,omitempty"` // 单道路行程处理策略（finish|stall）
	StrictRoutes      bool              `yaml:"strict_routes,omitempty"`       // 路线中相邻道路不连通时报错（否则仅告警）
	Horizon           int32             `yaml:"horizon,omitempty"`             // 大于0时覆盖路网文件中的模拟时长
}

// Output 评分结果输出配置（MongoDB）
// 说明：URI为空时不记录结果
type Output struct {
	URI string `yaml:"uri,omitempty"` // MongoDB连接字符串
	DB  string `yaml:"db,omitempty"`  // 数据库名
	Col string `yaml:"col,omitempty"` // 集合名
}

// Config YAML配置文件的根结构
type Config struct {
	Control Control `yaml:"control"` // 评分过程控制
	Output  Output  `yaml:"output"`  // 输出
}
