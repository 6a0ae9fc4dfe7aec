package input

import (
	"fmt"
	"strings"
)

// FormatNetwork 将路网输出为路网文件格式
func FormatNetwork(n *Network) string {
	var b strings.Builder
	h := n.Header
	fmt.Fprintf(&b, "%d %d %d %d %d\n", h.Duration, h.Intersections, h.Streets, h.Cars, h.Bonus)
	for _, s := range n.Streets {
		fmt.Fprintf(&b, "%d %d %s %d\n", s.Start, s.End, s.Name, s.Length)
	}
	for _, p := range n.CarPaths {
		fmt.Fprintf(&b, "%d %s\n", len(p.Streets), strings.Join(p.Streets, " "))
	}
	return b.String()
}

// FormatSchedule 将排程输出为排程文件格式
func FormatSchedule(s *Schedule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d\n", len(s.Intersections))
	for _, i := range s.Intersections {
		fmt.Fprintf(&b, "%d\n%d\n", i.IntersectionID, len(i.Lights))
		for _, l := range i.Lights {
			fmt.Fprintf(&b, "%s %d\n", l.Street, l.Duration)
		}
	}
	return b.String()
}
