/*
 * @Description: 一个带固定Worker池的异步事件总线
 * @Author: 安知鱼
 * @Date: 2026-09-05 19:06:12
 * @LastEditTime: 2026-09-18 18:20:05
 * @LastEditors: 安知鱼
 */
package event

import (
	"log"
	"sync"
)

// 定义事件类型
type Topic string

const (
	// ContentUpdated 内容源中的文章或主题发生变化，payload 为 ContentUpdatedPayload
	ContentUpdated Topic = "content:updated"
)

// ContentUpdatedPayload 内容变更事件的负载
type ContentUpdatedPayload struct {
	// Collection 变更的集合名称，例如 post、theme；为空表示未知
	Collection string
	// Reason 触发来源，例如 webhook、manual
	Reason string
}

// 事件处理器函数类型
type Handler func(payload interface{})

// Event 是在通道中传递的事件结构
type Event struct {
	Topic   Topic
	Payload interface{}
}

// EventBus 实现了基于Worker池的异步事件总线
type EventBus struct {
	mu       sync.RWMutex
	handlers map[Topic][]Handler
	// closed 与 eventChan 的发送都在 mu 保护下进行，Shutdown 后 Publish 不会向已关闭的通道写入
	closed    bool
	eventChan chan Event
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// 定义Worker池和通道的配置
const (
	DefaultWorkerCount = 4    // 默认启动4个后台Worker
	DefaultChannelSize = 1024 // 默认事件通道缓冲区大小
)

// NewEventBus 创建并启动一个新的事件总线
func NewEventBus() *EventBus {
	return NewEventBusWithSize(DefaultWorkerCount, DefaultChannelSize)
}

// NewEventBusWithSize 按指定的 worker 数和通道容量创建事件总线
func NewEventBusWithSize(workerCount, channelSize int) *EventBus {
	if workerCount <= 0 {
		workerCount = DefaultWorkerCount
	}
	if channelSize < 0 {
		channelSize = DefaultChannelSize
	}
	bus := &EventBus{
		handlers:  make(map[Topic][]Handler),
		eventChan: make(chan Event, channelSize),
	}
	for i := 1; i <= workerCount; i++ {
		bus.wg.Add(1)
		go bus.worker(i)
	}
	return bus
}

// worker 不断从通道中读取并处理事件
func (b *EventBus) worker(workerID int) {
	defer b.wg.Done()
	log.Printf("[EventBus] Worker %d started", workerID)

	for event := range b.eventChan {
		b.mu.RLock()
		handlers := append([]Handler(nil), b.handlers[event.Topic]...)
		b.mu.RUnlock()

		for _, handler := range handlers {
			b.dispatch(workerID, event, handler)
		}
	}
	log.Printf("[EventBus] Worker %d stopped", workerID)
}

// dispatch 执行单个处理器，处理器 panic 不会终止 worker
func (b *EventBus) dispatch(workerID int, event Event, handler Handler) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[EventBus] Worker %d: handler for topic '%s' panicked: %v", workerID, event.Topic, r)
		}
	}()
	handler(event.Payload)
}

// Subscribe 订阅一个事件
func (b *EventBus) Subscribe(topic Topic, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], handler)
}

// Publish 非阻塞地发布事件，返回值表示事件是否进入队列。
// 队列已满或总线已关闭时返回 false。
func (b *EventBus) Publish(topic Topic, payload interface{}) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		log.Printf("[EventBus] WARN: Bus is shut down. Dropping event for topic '%s'.", topic)
		return false
	}

	select {
	case b.eventChan <- Event{Topic: topic, Payload: payload}:
		return true
	default:
		log.Printf("[EventBus] WARN: Event channel is full. Dropping event for topic '%s'.", topic)
		return false
	}
}

// Shutdown 关闭事件总线并等待已入队的事件处理完毕，可重复调用
func (b *EventBus) Shutdown() {
	b.closeOnce.Do(func() {
		log.Println("[EventBus] Shutting down...")
		b.mu.Lock()
		b.closed = true
		close(b.eventChan)
		b.mu.Unlock()
		b.wg.Wait()
		log.Println("[EventBus] All workers have stopped.")
	})
}
