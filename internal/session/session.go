// Package session 管理当前打开文档的对话会话：
// 转录归属、提问提交、单活动流句柄与事件对账。
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"k8s.io/klog/v2"

	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/eventbus"
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/outline"
	"github.com/Team-Lightning-LLC/MarketLens-Sarah/internal/pkg/research"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// 提交与流错误的兜底话术，保持和前端一致
const (
	submitErrorMessage = "Sorry, there was an error processing your question."
	streamErrorMessage = "Sorry, there was an error with the response stream."
)

var (
	ErrNoDocument    = errors.New("no document open")
	ErrEmptyQuestion = errors.New("question is empty")
	ErrInputDisabled = errors.New("input disabled while a question is in flight")
)

// Message 一条对话消息，只追加，随上下文关闭而清空
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Submitter 提问提交协作方
type Submitter interface {
	SubmitQuestion(ctx context.Context, req research.QuestionRequest) (*research.QuestionTicket, error)
}

// Streamer 流式通道协作方。回调由后台协程触发，取消后不再回调。
type Streamer interface {
	OpenStream(ctx context.Context, workflowID, runID string, h research.StreamHandlers)
}

// StreamHandle 一轮回答的活动流句柄。每个文档上下文同一时刻至多一个。
type StreamHandle struct {
	WorkflowID string
	RunID      string
	cancel     context.CancelFunc
	answered   bool // 已接受过 answer 事件（重复终止事件幂等保护）
	terminal   bool // 已收到终止事件（防止二次终结）
}

// DocumentContext 当前打开的文档及其会话归属
type DocumentContext struct {
	UID     string
	Title   string
	Markup  string
	Outline []outline.Entry

	messages     []Message
	thinking     bool
	inputEnabled bool
	state        State
	handle       *StreamHandle
}

// Snapshot 会话状态的只读快照，供展示层使用
type Snapshot struct {
	DocUID       string          `json:"doc_uid"`
	Title        string          `json:"title"`
	Outline      []outline.Entry `json:"outline"`
	State        State           `json:"state"`
	Thinking     bool            `json:"thinking"`
	InputEnabled bool            `json:"input_enabled"`
	Messages     []Message       `json:"messages"`
}

// Controller 会话控制器：文档上下文的唯一写入方。
// 所有流回调先重新校验活动文档标识，再应用任何延迟效果。
type Controller struct {
	mu        sync.Mutex
	sm        *StateMachine
	submitter Submitter
	streamer  Streamer
	bus       *eventbus.ViewerEventBus
	now       func() time.Time

	doc *DocumentContext
}

func NewController(submitter Submitter, streamer Streamer, bus *eventbus.ViewerEventBus) *Controller {
	return &Controller{
		sm:        NewStateMachine(),
		submitter: submitter,
		streamer:  streamer,
		bus:       bus,
		now:       time.Now,
	}
}

// Open 打开一个文档上下文。切换（或重开）时先取消残留的活动流，
// 再填充新上下文：旧流绝不允许把事件送进新上下文。
func (c *Controller) Open(uid, title, markup string, entries []outline.Entry) {
	c.mu.Lock()
	if c.doc != nil {
		if c.doc.UID != uid {
			klog.V(6).Infof("切换文档，关闭现有流: %s -> %s", c.doc.UID, uid)
		}
		c.closeStreamLocked()
	}
	c.doc = &DocumentContext{
		UID:          uid,
		Title:        title,
		Markup:       markup,
		Outline:      entries,
		inputEnabled: true,
		state:        StateIdle,
	}
	c.mu.Unlock()

	c.publish(eventbus.ViewerEventDocOpened, eventbus.ViewerEvent{
		Type:   eventbus.ViewerEventDocOpened,
		DocUID: uid,
		Title:  title,
	})
}

// Close 关闭查看器：取消活动流并清空上下文字段
func (c *Controller) Close() {
	c.mu.Lock()
	if c.doc == nil {
		c.mu.Unlock()
		return
	}
	uid := c.doc.UID
	c.closeStreamLocked()
	c.doc = nil
	c.mu.Unlock()

	c.publish(eventbus.ViewerEventDocClosed, eventbus.ViewerEvent{
		Type:   eventbus.ViewerEventDocClosed,
		DocUID: uid,
	})
}

// CloseStream 取消当前活动流。没有活动流时安全无操作。
func (c *Controller) CloseStream() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeStreamLocked()
}

func (c *Controller) closeStreamLocked() {
	if c.doc == nil || c.doc.handle == nil {
		return
	}
	klog.V(6).Infof("取消活动流: workflowId=%s", c.doc.handle.WorkflowID)
	c.doc.handle.cancel()
	c.doc.handle = nil
	c.doc.thinking = false
	c.doc.inputEnabled = true
	if c.doc.state == StateStreaming || c.doc.state == StateAwaitingSubmission {
		c.doc.state = StateIdle
	}
}

// SubmitQuestion 提交一个问题。空白问题静默拒绝。
// 用户消息同步追加；受理成功后为本轮打开一条全新的流。
func (c *Controller) SubmitQuestion(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyQuestion
	}

	c.mu.Lock()
	if c.doc == nil {
		c.mu.Unlock()
		return ErrNoDocument
	}
	if !c.doc.inputEnabled {
		c.mu.Unlock()
		return ErrInputDisabled
	}
	docUID := c.doc.UID

	c.appendMessageLocked(RoleUser, text)
	c.doc.thinking = true
	c.doc.inputEnabled = false
	c.setStateLocked(StateAwaitingSubmission)

	history := flattenHistory(c.doc.messages)
	c.mu.Unlock()

	ticket, err := c.submitter.SubmitQuestion(ctx, research.QuestionRequest{
		DocumentID:          docUID,
		Question:            text,
		ConversationHistory: history,
	})

	c.mu.Lock()
	// 提交期间文档可能已被切换或关闭：任何延迟效果前先重新校验标识
	if c.doc == nil || c.doc.UID != docUID {
		c.mu.Unlock()
		klog.V(6).Infof("提交完成但文档已切换，丢弃结果: doc=%s", docUID)
		return nil
	}

	if err != nil {
		klog.Errorf("提问提交失败: doc=%s, err=%v", docUID, err)
		c.doc.thinking = false
		c.appendMessageLocked(RoleAssistant, submitErrorMessage)
		c.doc.inputEnabled = true
		c.setStateLocked(StateIdle)
		c.mu.Unlock()
		return err
	}

	// 每条消息都开一条全新的流；上一轮残留句柄先取消，
	// 保证同一上下文至多一条活动流
	if c.doc.handle != nil {
		c.doc.handle.cancel()
	}

	streamCtx, cancel := context.WithCancel(context.Background())
	handle := &StreamHandle{
		WorkflowID: ticket.WorkflowID,
		RunID:      ticket.RunID,
		cancel:     cancel,
	}
	c.doc.handle = handle
	c.setStateLocked(StateStreaming)
	c.mu.Unlock()

	c.streamer.OpenStream(streamCtx, ticket.WorkflowID, ticket.RunID, research.StreamHandlers{
		OnEvent: func(ev research.StreamEvent) {
			c.reconcileEvent(docUID, handle, ev)
		},
		OnComplete: func() {
			c.finishStream(docUID, handle, nil)
		},
		OnError: func(err error) {
			c.finishStream(docUID, handle, err)
		},
	})
	return nil
}

// reconcileEvent 将流事件对账到用户可见的消息状态。
// 只接受第一条非空 answer 事件；句柄在显式终止事件前保持打开。
func (c *Controller) reconcileEvent(docUID string, handle *StreamHandle, ev research.StreamEvent) {
	if ev.Type != research.EventAnswer || ev.Message == "" {
		return
	}

	c.mu.Lock()
	if !c.turnAliveLocked(docUID, handle) || handle.answered {
		c.mu.Unlock()
		return
	}
	handle.answered = true
	c.doc.thinking = false
	c.appendMessageLocked(RoleAssistant, ev.Message)
	c.doc.inputEnabled = true
	title := c.doc.Title
	c.mu.Unlock()

	c.publish(eventbus.ViewerEventAnswerReceived, eventbus.ViewerEvent{
		Type:      eventbus.ViewerEventAnswerReceived,
		DocUID:    docUID,
		Title:     title,
		Succeeded: true,
	})
}

// finishStream 处理终止事件（完成或错误），句柄就此废弃
func (c *Controller) finishStream(docUID string, handle *StreamHandle, streamErr error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.turnAliveLocked(docUID, handle) || handle.terminal {
		return
	}
	handle.terminal = true

	if streamErr != nil {
		klog.Errorf("流终止于错误: doc=%s, err=%v", docUID, streamErr)
		c.doc.thinking = false
		c.appendMessageLocked(RoleAssistant, streamErrorMessage)
		c.doc.inputEnabled = true
		c.setStateLocked(StateErrored)
		c.setStateLocked(StateIdle)
	} else {
		klog.V(6).Infof("流正常完成: doc=%s, workflowId=%s", docUID, handle.WorkflowID)
		c.setStateLocked(StateIdle)
	}

	handle.cancel()
	c.doc.handle = nil
}

// turnAliveLocked 延迟效果守卫：文档未切换且句柄仍是当前活动句柄
func (c *Controller) turnAliveLocked(docUID string, handle *StreamHandle) bool {
	return c.doc != nil && c.doc.UID == docUID && c.doc.handle == handle
}

// Snapshot 返回会话的只读快照；无打开文档时返回 nil
func (c *Controller) Snapshot() *Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.doc == nil {
		return nil
	}
	msgs := make([]Message, len(c.doc.messages))
	copy(msgs, c.doc.messages)
	return &Snapshot{
		DocUID:       c.doc.UID,
		Title:        c.doc.Title,
		Outline:      c.doc.Outline,
		State:        c.doc.state,
		Thinking:     c.doc.thinking,
		InputEnabled: c.doc.inputEnabled,
		Messages:     msgs,
	}
}

// Messages 当前转录的只读拷贝
func (c *Controller) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.doc == nil {
		return nil
	}
	msgs := make([]Message, len(c.doc.messages))
	copy(msgs, c.doc.messages)
	return msgs
}

func (c *Controller) appendMessageLocked(role, content string) {
	c.doc.messages = append(c.doc.messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: c.now(),
	})
}

func (c *Controller) setStateLocked(to State) {
	from := c.doc.state
	if err := c.sm.Transition(from, to, c.doc.UID); err != nil {
		// 非法迁移说明控制流有缺陷，记录后仍强制推进，避免卡死输入
		klog.Errorf("强制会话状态迁移: %v", err)
	}
	c.doc.state = to
}

func (c *Controller) publish(eventType eventbus.ViewerEventType, event eventbus.ViewerEvent) {
	if c.bus == nil {
		return
	}
	if err := c.bus.Publish(context.Background(), eventType, event); err != nil {
		klog.Warningf("事件发布失败: type=%s, err=%v", eventType, err)
	}
}

// flattenHistory 把既有轮次拍平成提问上下文
func flattenHistory(messages []Message) string {
	parts := make([]string, 0, len(messages))
	for _, m := range messages {
		label := "Assistant"
		if m.Role == RoleUser {
			label = "User"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", label, m.Content))
	}
	return strings.Join(parts, "\n")
}
