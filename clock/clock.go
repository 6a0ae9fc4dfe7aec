package clock

import (
	"fmt"
)

// Clock 模拟时钟管理器
// 功能：管理离散时间步的推进，模拟区间为[START_STEP, END_STEP)
// 说明：时间步即tick，一个tick完整结束后到达事件才可被观察到
type Clock struct {
	START_STEP int32 // 起始步
	END_STEP   int32 // 结束步，模拟区间[START, END)

	InternalStep int32 // 当前步数
}

// New 根据模拟时长创建新的时钟实例
// 功能：以0为起始步、duration为结束步初始化时钟
// 参数：duration-模拟时长（tick数）
// 返回：初始化完成的时钟实例
func New(duration int32) *Clock {
	c := &Clock{
		START_STEP: 0,
		END_STEP:   duration,
	}
	c.Init()
	return c
}

// Init 重置时钟状态到起始步
func (c *Clock) Init() {
	c.InternalStep = c.START_STEP
}

// Running 当前步是否仍在模拟区间内
func (c *Clock) Running() bool {
	return c.InternalStep < c.END_STEP
}

// Next 推进到下一步
func (c *Clock) Next() {
	c.InternalStep++
}

// Duration 模拟总步数
func (c *Clock) Duration() int32 {
	return c.END_STEP - c.START_STEP
}

// String 获取时钟的字符串表示，格式为 step/end
func (c *Clock) String() string {
	return fmt.Sprintf("%d/%d", c.InternalStep, c.END_STEP)
}
