package container

import (
	"fmt"
	"log"
)

// ListNode 双向链表中的节点
// 功能：表示双向链表中的一个节点
// 说明：支持泛型，可以存储任意类型的值
type ListNode[T any] struct {
	parent     *List[T]     // 所属链表
	prev, next *ListNode[T] // 前驱和后继节点
	Value      T            // 节点值
}

// String 获取节点的字符串表示
func (n *ListNode[T]) String() string {
	return fmt.Sprintf("Node{Value:%+v}", n.Value)
}

// InsertAfter 在节点后插入新节点
// 功能：在当前节点之后插入一个新节点
// 参数：add-要插入的新节点
// 算法说明：
// 1. 检查新节点是否已经在其他链表中
// 2. 设置新节点的父链表和前后指针
// 3. 如果新节点成为最后一个节点，更新链表尾指针
func (n *ListNode[T]) InsertAfter(add *ListNode[T]) {
	if add.parent != nil {
		log.Panic("insert node who already in list")
	}
	add.parent = n.parent
	add.prev = n
	add.next = n.next
	n.next = add
	if add.next != nil {
		add.next.prev = add
	} else {
		add.parent.tail = add
	}
	n.parent.length++
}

// List 双向链表
// 功能：通用的双向链表，两端插入与删除均为O(1)
// 说明：作为FIFO队列使用时从尾部PushBack、从头部PopFront，保持到达顺序
type List[T any] struct {
	ID         string       // 链表标识符
	head, tail *ListNode[T] // 头尾节点指针
	length     int          // 链表长度
}

// NewList 创建带标识符的空链表
func NewList[T any](id string) *List[T] {
	return &List[T]{ID: id}
}

func (l *List[T]) String() string {
	return fmt.Sprintf("List{ID:%v, Len:%d}", l.ID, l.length)
}

// Values 按从头到尾的顺序获取所有节点的值
func (l *List[T]) Values() []T {
	values := make([]T, l.length)
	for i, node := 0, l.head; node != nil; i, node = i+1, node.next {
		values[i] = node.Value
	}
	return values
}

// Empty 链表是否为空
func (l *List[T]) Empty() bool {
	return l.length == 0
}

// PushBack 向链表尾部插入节点
// 功能：在链表尾部添加一个新节点
// 参数：add-要插入的新节点
func (l *List[T]) PushBack(add *ListNode[T]) {
	if add.parent != nil {
		log.Panic("push back node who already in list")
	}
	add.next = nil
	add.prev = nil
	if l.tail == nil {
		add.parent = l
		l.head = add
		l.tail = add
		l.length++
	} else {
		// length++和add.parent在InsertAfter中处理
		l.tail.InsertAfter(add)
	}
}

// PushBackValue 将值包装为新节点插入链表尾部
func (l *List[T]) PushBackValue(value T) *ListNode[T] {
	node := &ListNode[T]{Value: value}
	l.PushBack(node)
	return node
}

// Remove 从链表中移除节点
// 功能：从链表中删除指定的节点
// 参数：node-要删除的节点
// 算法说明：
// 1. 检查节点是否属于当前链表
// 2. 更新前驱、后继节点的指针，必要时更新头尾指针
// 3. 清空被删除节点的指针并减少长度计数
func (l *List[T]) Remove(node *ListNode[T]) {
	if node.parent != l {
		log.Panic("remove node from wrong list")
	}
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	node.prev = nil
	node.next = nil
	node.parent = nil
	l.length--
}

// PopFront 移除并返回头部节点的值，链表为空时ok为false
func (l *List[T]) PopFront() (value T, ok bool) {
	node := l.head
	if node == nil {
		return value, false
	}
	l.Remove(node)
	return node.Value, true
}

// First 获取链表头部节点，如果链表为空则返回nil
func (l *List[T]) First() *ListNode[T] {
	return l.head
}
