package session

import (
	"fmt"

	"k8s.io/klog/v2"
)

// State 会话控制器状态
type State string

const (
	StateIdle               State = "idle"                // 空闲，可输入
	StateAwaitingSubmission State = "awaiting_submission" // 提问已发出，等待受理
	StateStreaming          State = "streaming"           // 流式通道已打开
	StateErrored            State = "errored"             // 流出错（瞬态，随即回到 idle）
)

// Transition 定义状态迁移
type Transition struct {
	From State
	To   State
}

// StateMachine 会话状态机
type StateMachine struct {
	allowedTransitions map[Transition]bool
}

// NewStateMachine 创建会话状态机
func NewStateMachine() *StateMachine {
	sm := &StateMachine{
		allowedTransitions: make(map[Transition]bool),
	}

	// idle -> awaiting -> streaming -> idle
	// awaiting -> idle（提交失败）
	// streaming -> errored -> idle（流错误）
	// streaming -> awaiting（流中继续提问，叠加新一轮）
	transitions := []Transition{
		{StateIdle, StateAwaitingSubmission},
		{StateAwaitingSubmission, StateStreaming},
		{StateAwaitingSubmission, StateIdle},
		{StateStreaming, StateIdle},
		{StateStreaming, StateErrored},
		{StateStreaming, StateAwaitingSubmission},
		{StateErrored, StateIdle},
	}

	for _, t := range transitions {
		sm.allowedTransitions[t] = true
	}

	return sm
}

// CanTransition 检查状态迁移是否合法
func (sm *StateMachine) CanTransition(from, to State) bool {
	if from == to {
		return false
	}
	return sm.allowedTransitions[Transition{From: from, To: to}]
}

// ValidateTransition 验证状态迁移并返回错误
func (sm *StateMachine) ValidateTransition(from, to State) error {
	if !sm.CanTransition(from, to) {
		return &InvalidStateTransitionError{From: string(from), To: string(to)}
	}
	return nil
}

// Transition 执行状态迁移（带日志）
func (sm *StateMachine) Transition(from, to State, docUID string) error {
	if err := sm.ValidateTransition(from, to); err != nil {
		klog.V(6).Infof("会话状态迁移被拒绝: doc=%s, %s -> %s", docUID, from, to)
		return err
	}
	klog.V(6).Infof("会话状态迁移: doc=%s, %s -> %s", docUID, from, to)
	return nil
}

// InvalidStateTransitionError 无效的状态迁移错误
type InvalidStateTransitionError struct {
	From string
	To   string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("invalid session state transition: %s -> %s", e.From, e.To)
}
